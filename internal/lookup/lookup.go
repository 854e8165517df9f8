// Package lookup puts a time-bounded cache in front of an unreliable
// postal-code location service. The TTL is generous because code-to-place
// mappings are effectively static, and expired entries are kept around as
// a last-resort fallback when the live call fails: availability over
// strict freshness, since the autofilled field stays user-editable.
package lookup

import "context"

// Location is the resolved value for one postal code.
type Location struct {
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
	Country  string `json:"country"`
}

// Client is the external lookup call. Implementations may fail freely; the
// Resolver decides what failure means.
type Client interface {
	Lookup(ctx context.Context, code string) (Location, error)
}
