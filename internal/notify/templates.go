package notify

import (
	"fmt"

	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/osteele/liquid"
)

// MessageTemplate is the Liquid source for one event's subject and body.
type MessageTemplate struct {
	Subject string `yaml:"subject"`
	HTML    string `yaml:"html"`
}

// DefaultTemplates returns the built-in message for each known event.
func DefaultTemplates() map[domain.NotificationEvent]MessageTemplate {
	return map[domain.NotificationEvent]MessageTemplate{
		domain.EventNewOrder: {
			Subject: "[{{ site }}] New order #{{ order.number }}",
			HTML:    "<p>You have received an order from {{ order.billing_name | escape }}.</p><p>Total: {{ order.total }} {{ order.currency }}</p>",
		},
		domain.EventCustomerCompletedOrder: {
			Subject: "Your {{ site }} order is now complete",
			HTML:    "<p>Hi {{ order.billing_name | escape }},</p><p>We have finished processing order #{{ order.number }}.</p>",
		},
		domain.EventCustomerProcessingOrder: {
			Subject: "Your {{ site }} order has been received!",
			HTML:    "<p>Hi {{ order.billing_name | escape }},</p><p>Order #{{ order.number }} is now being processed.</p>",
		},
		domain.EventCustomerOnHoldOrder: {
			Subject: "Your {{ site }} order has been received!",
			HTML:    "<p>Hi {{ order.billing_name | escape }},</p><p>Order #{{ order.number }} is on hold until we confirm payment.</p>",
		},
		domain.EventCustomerInvoice: {
			Subject: "Invoice for order #{{ order.number }}",
			HTML:    "<p>Hi {{ order.billing_name | escape }},</p><p>Your invoice total is {{ order.total }} {{ order.currency }}.</p>",
		},
		domain.EventCustomerRefundedOrder: {
			Subject: "Your {{ site }} order #{{ order.number }} has been refunded",
			HTML:    "<p>Hi {{ order.billing_name | escape }},</p><p>Order #{{ order.number }} has been refunded.</p>",
		},
		domain.EventCustomerNote: {
			Subject: "Note added to your {{ site }} order",
			HTML:    "<p>Hi {{ order.billing_name | escape }},</p><blockquote>{{ order.customer_note | escape }}</blockquote>",
		},
	}
}

type compiled struct {
	subject *liquid.Template
	html    *liquid.Template
}

// Templates renders notification messages with Liquid. Templates are
// parsed once at construction.
type Templates struct {
	site      string
	templates map[domain.NotificationEvent]compiled
}

// NewTemplates parses every template. overrides replace the defaults
// field by field: an empty Subject or HTML keeps the default for that field.
func NewTemplates(site string, overrides map[domain.NotificationEvent]MessageTemplate) (*Templates, error) {
	engine := liquid.NewEngine()
	sources := DefaultTemplates()
	for ev, tpl := range overrides {
		merged := sources[ev]
		if tpl.Subject != "" {
			merged.Subject = tpl.Subject
		}
		if tpl.HTML != "" {
			merged.HTML = tpl.HTML
		}
		sources[ev] = merged
	}

	t := &Templates{site: site, templates: make(map[domain.NotificationEvent]compiled, len(sources))}
	for ev, src := range sources {
		subject, err := engine.ParseString(src.Subject)
		if err != nil {
			return nil, fmt.Errorf("parsing %s subject: %w", ev, err)
		}
		html, err := engine.ParseString(src.HTML)
		if err != nil {
			return nil, fmt.Errorf("parsing %s body: %w", ev, err)
		}
		t.templates[ev] = compiled{subject: subject, html: html}
	}
	return t, nil
}

// Render produces the subject and HTML body for event.
func (t *Templates) Render(event domain.NotificationEvent, order *domain.Order) (subject, html string, err error) {
	c, ok := t.templates[event]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	bindings := liquid.Bindings{
		"site":  t.site,
		"event": string(event),
		"order": orderBindings(order),
	}
	subject, err = c.subject.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("rendering %s subject: %w", event, err)
	}
	html, err = c.html.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("rendering %s body: %w", event, err)
	}
	return subject, html, nil
}

func orderBindings(o *domain.Order) map[string]any {
	if o == nil {
		return map[string]any{}
	}
	return map[string]any{
		"id":            o.ID,
		"number":        o.Number,
		"status":        o.Status,
		"billing_name":  o.BillingName,
		"billing_email": o.BillingEmail,
		"total":         fmt.Sprintf("%.2f", o.Total),
		"currency":      o.Currency,
		"customer_note": o.CustomerNote,
	}
}
