package driven

import "context"

// RateLimiter guards a shared external resource. Every caller draws
// from the same counter for a given key; the geocoding provider uses
// one provider-wide key, not a per-user one.
type RateLimiter interface {
	// Allow reports whether one more call may proceed. A denial is a
	// normal outcome, not an error; err is reserved for backend
	// failures.
	Allow(ctx context.Context, key string) (bool, error)
}
