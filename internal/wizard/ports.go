package wizard

import (
	"context"

	"regwizard/internal/forms"
	"regwizard/internal/lookup"
)

// SubmitResult is the registration server's acknowledgement of a step.
type SubmitResult struct {
	// SessionID is the server-side correlator. The wizard adopts it after
	// the first accepted submission and treats it as immutable afterwards.
	SessionID string
	Message   string
}

// RegistrationClient submits wizard steps to the registration backend.
type RegistrationClient interface {
	SubmitStep(ctx context.Context, step int, sessionID string, form forms.Data) (SubmitResult, error)
	Status(ctx context.Context, sessionID string) (string, error)
}

// LocationResolver turns a postal code into a location, however cached.
type LocationResolver interface {
	Resolve(ctx context.Context, code string) (lookup.Location, error)
}

// FieldValidator reports whether one field value is acceptable. Validators
// only drive UI affordances; step gating never consults them.
type FieldValidator func(value any) bool
