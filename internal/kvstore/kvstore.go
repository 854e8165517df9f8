// Package kvstore is the durable string-only key-value layer the session
// and recovery stores persist through. Backends report facts (absent key,
// quota, unavailability); TTL, corruption, and expiry policy live in the
// layers above this interface.
package kvstore

import (
	"context"
	"errors"
)

// Sentinel errors for storage facts. Backends return these (optionally
// wrapped) so callers can branch with errors.Is.
var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrUnavailable   = errors.New("storage unavailable")
)

// Store is interface-driven so the session and recovery layers stay
// testable and the daemon can swap in-memory, file, redis, or postgres
// persistence without rewiring business code.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
