package domainfilter

import "errors"

// Sentinel errors for the domain filter.
var (
	ErrUnknownStrategy = errors.New("unknown filter strategy")
)
