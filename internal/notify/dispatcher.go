package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/ignite/email-domain-filter/internal/pkg/logger"
)

// Result reports what happened to one dispatched notification.
type Result struct {
	ID                string                   `json:"id"`
	Event             domain.NotificationEvent `json:"event"`
	OriginalRecipient string                   `json:"original_recipient"`
	Recipient         string                   `json:"recipient"`
	Skipped           bool                     `json:"skipped"`
	Send              *domain.SendResult       `json:"send,omitempty"`
}

// DispatcherConfig holds the sender identity stamped on every message.
type DispatcherConfig struct {
	FromName  string
	FromEmail string
}

// Dispatcher is the concrete NotificationGateway. It is safe for
// concurrent use: filters may be registered while notifications flow.
type Dispatcher struct {
	mu        sync.RWMutex
	filters   map[domain.NotificationEvent][]RecipientFilterFunc
	templates *Templates
	sender    Sender
	cfg       DispatcherConfig
	newID     func() string
	now       func() time.Time
}

var _ NotificationGateway = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher for the known notification events.
func NewDispatcher(cfg DispatcherConfig, templates *Templates, sender Sender) *Dispatcher {
	filters := make(map[domain.NotificationEvent][]RecipientFilterFunc)
	for ev := range domain.DefaultEventStrategies() {
		filters[ev] = nil
	}
	return &Dispatcher{
		filters:   filters,
		templates: templates,
		sender:    sender,
		cfg:       cfg,
		newID:     func() string { return uuid.New().String() },
		now:       time.Now,
	}
}

// RegisterRecipientFilter appends fn to the filters run for event.
func (d *Dispatcher) RegisterRecipientFilter(event domain.NotificationEvent, fn RecipientFilterFunc) error {
	if fn == nil {
		return ErrNilFilter
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.filters[event]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}
	d.filters[event] = append(d.filters[event], fn)
	return nil
}

// Events lists the known events in name order.
func (d *Dispatcher) Events() []domain.NotificationEvent {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.NotificationEvent, 0, len(d.filters))
	for ev := range d.filters {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FilterCount returns how many filters are registered for event.
func (d *Dispatcher) FilterCount(event domain.NotificationEvent) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.filters[event])
}

// ResolveRecipient runs the registered filters for event without sending.
func (d *Dispatcher) ResolveRecipient(ctx context.Context, event domain.NotificationEvent, recipient string, order *domain.Order) (string, error) {
	d.mu.RLock()
	filters, ok := d.filters[event]
	filters = append([]RecipientFilterFunc(nil), filters...)
	d.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	for _, fn := range filters {
		recipient = fn(ctx, recipient, order)
	}
	return recipient, nil
}

// Dispatch filters the recipient for event and, if anyone is left, renders
// and sends the message. A send failure is reported in Result.Send and as
// the returned error.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.NotificationEvent, recipient string, order *domain.Order) (*Result, error) {
	filtered, err := d.ResolveRecipient(ctx, event, recipient, order)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:                d.newID(),
		Event:             event,
		OriginalRecipient: recipient,
		Recipient:         filtered,
	}

	to := splitRecipients(filtered)
	if len(to) == 0 {
		res.Skipped = true
		logger.Info("notify: notification skipped, no recipients left",
			"event", string(event),
			"notification_id", res.ID,
			"recipient", recipient,
		)
		return res, nil
	}

	subject, html, err := d.templates.Render(event, order)
	if err != nil {
		return nil, err
	}

	msg := &domain.EmailMessage{
		ID:        res.ID,
		Event:     event,
		To:        to,
		FromName:  d.cfg.FromName,
		FromEmail: d.cfg.FromEmail,
		Subject:   subject,
		HTMLBody:  html,
	}
	if order != nil {
		msg.OrderID = order.ID
	}

	sent, err := d.sender.Send(ctx, msg)
	if err != nil {
		res.Send = &domain.SendResult{Success: false, Error: err.Error(), SentAt: d.now()}
		return res, fmt.Errorf("sending %s notification: %w", event, err)
	}
	res.Send = sent
	return res, nil
}

// splitRecipients turns the comma-joined recipient value into the address
// list handed to the sender, dropping blanks.
func splitRecipients(recipient string) []string {
	var out []string
	for _, r := range strings.Split(recipient, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
