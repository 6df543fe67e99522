package sender

import "errors"

// Sentinel errors for senders.
var (
	ErrNotConfigured = errors.New("sender not configured")
	ErrNoRecipients  = errors.New("message has no recipients")
)
