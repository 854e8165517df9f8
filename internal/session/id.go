package session

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/mr-tron/base58"
)

// NewID returns a collision-resistant opaque session identifier. Uniqueness
// only matters within one store namespace and the registration server is
// the real arbiter of identity, so a millisecond timestamp plus a short
// random suffix is enough.
func NewID(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("sess_%d", now.UnixMilli())
	}
	return fmt.Sprintf("sess_%d_%s", now.UnixMilli(), base58.Encode(buf))
}
