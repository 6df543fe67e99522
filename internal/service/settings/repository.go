package settings

import "context"

// KeyExcludedDomains is the settings key holding the newline-delimited
// excluded-domain text.
const KeyExcludedDomains = "excluded_email_domains"

// Repository defines the key-value contract for persisted settings.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns the stored value. found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by repositories that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}
