package notify

import "errors"

// Sentinel errors for the notification pipeline.
var (
	ErrUnknownEvent = errors.New("unknown notification event")
	ErrNilFilter    = errors.New("recipient filter is nil")
)
