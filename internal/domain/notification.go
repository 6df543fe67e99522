package domain

import "time"

// Strategy selects how a recipient value is filtered.
type Strategy string

const (
	// StrategyDropOnMatch treats the recipient as one address and drops it
	// entirely when its domain is excluded.
	StrategyDropOnMatch Strategy = "drop_on_match"
	// StrategyPerAddress splits a comma-joined recipient value and drops
	// only the excluded addresses.
	StrategyPerAddress Strategy = "per_address"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyDropOnMatch || s == StrategyPerAddress
}

// NotificationEvent names an outbound order notification.
type NotificationEvent string

const (
	EventNewOrder                NotificationEvent = "new_order"
	EventCustomerCompletedOrder  NotificationEvent = "customer_completed_order"
	EventCustomerProcessingOrder NotificationEvent = "customer_processing_order"
	EventCustomerOnHoldOrder     NotificationEvent = "customer_on_hold_order"
	EventCustomerInvoice         NotificationEvent = "customer_invoice"
	EventCustomerRefundedOrder   NotificationEvent = "customer_refunded_order"
	EventCustomerNote            NotificationEvent = "customer_note"
)

// DefaultEventStrategies maps every known event to the strategy it is
// filtered with unless configuration says otherwise. Single-recipient
// events drop on match; customer events may carry several addresses.
func DefaultEventStrategies() map[NotificationEvent]Strategy {
	return map[NotificationEvent]Strategy{
		EventNewOrder:                StrategyDropOnMatch,
		EventCustomerCompletedOrder:  StrategyDropOnMatch,
		EventCustomerProcessingOrder: StrategyPerAddress,
		EventCustomerOnHoldOrder:     StrategyPerAddress,
		EventCustomerInvoice:         StrategyPerAddress,
		EventCustomerRefundedOrder:   StrategyPerAddress,
		EventCustomerNote:            StrategyPerAddress,
	}
}

// Order is the order handle passed along with a notification. Recipient
// filters receive it but do not inspect it; templates render from it.
type Order struct {
	ID           string  `json:"id"`
	Number       string  `json:"number"`
	Status       string  `json:"status"`
	BillingName  string  `json:"billing_name"`
	BillingEmail string  `json:"billing_email"`
	Total        float64 `json:"total"`
	Currency     string  `json:"currency"`
	CustomerNote string  `json:"customer_note,omitempty"`
}

// EmailMessage is the fully rendered message handed to a sender. To holds
// the filtered recipient value exactly as the filters returned it.
type EmailMessage struct {
	ID        string            `json:"id"`
	Event     NotificationEvent `json:"event"`
	OrderID   string            `json:"order_id"`
	To        []string          `json:"to"`
	FromName  string            `json:"from_name"`
	FromEmail string            `json:"from_email"`
	Subject   string            `json:"subject"`
	HTMLBody  string            `json:"html_body"`
	TextBody  string            `json:"text_body,omitempty"`
}

// SendResult is returned by a sender after attempting delivery.
type SendResult struct {
	Success   bool      `json:"success"`
	MessageID string    `json:"message_id"`
	Sender    string    `json:"sender"`
	SentAt    time.Time `json:"sent_at"`
	Error     string    `json:"error,omitempty"`
}

// NoticeLevel is the severity of an admin notice.
type NoticeLevel string

const (
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a message shown to operators on the settings page.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
