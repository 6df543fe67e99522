package notify

import (
	"context"

	"github.com/ignite/email-domain-filter/internal/domain"
)

// RecipientFilterFunc transforms the recipient value of a notification.
// Returning "" suppresses delivery.
type RecipientFilterFunc func(ctx context.Context, recipient string, order *domain.Order) string

// NotificationGateway accepts recipient filters for named events.
type NotificationGateway interface {
	RegisterRecipientFilter(event domain.NotificationEvent, fn RecipientFilterFunc) error
}

// Sender delivers a rendered message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg *domain.EmailMessage) (*domain.SendResult, error)
}
