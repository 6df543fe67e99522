package sender

import (
	"context"
	"strings"
	"time"

	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/ignite/email-domain-filter/internal/pkg/logger"
)

// LogSender records messages in the log instead of delivering them.
type LogSender struct{}

// NewLogSender creates a dry-run sender.
func NewLogSender() *LogSender { return &LogSender{} }

// Send logs the message and reports success.
func (LogSender) Send(_ context.Context, msg *domain.EmailMessage) (*domain.SendResult, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}
	logger.Info("log sender: notification",
		"event", string(msg.Event),
		"notification_id", msg.ID,
		"recipient", joinTo(msg.To),
		"subject", msg.Subject,
	)
	return &domain.SendResult{
		Success:   true,
		MessageID: "log-" + msg.ID,
		Sender:    "log",
		SentAt:    time.Now(),
	}, nil
}

func joinTo(to []string) string { return strings.Join(to, ",") }
