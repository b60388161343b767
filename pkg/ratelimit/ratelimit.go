// Package ratelimit provides best-effort request limiting for the public
// endpoints. Counters are advisory: a restart resets them, and redis
// errors fail open. That is acceptable for spam mitigation, not abuse
// prevention.
package ratelimit

import "context"

// Store is a per-key fixed-window counter. Allow consumes one slot for
// key and reports whether the request is within the window's limit.
type Store interface {
	Allow(ctx context.Context, key string) (bool, error)
}
