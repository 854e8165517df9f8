package wizard

import "errors"

// Sentinel errors surfaced to callers. Submission and navigation failures
// are business outcomes the UI must react to, unlike the storage faults the
// lower layers absorb.
var (
	// ErrSubmissionRejected means the registration server refused a step.
	// The state machine does not advance and the step must be resubmitted.
	ErrSubmissionRejected = errors.New("step submission rejected")

	// ErrStepNotCompleted gates forward navigation: the current step has no
	// server-confirmed completion flag yet.
	ErrStepNotCompleted = errors.New("step not completed")

	// ErrStepMismatch means the caller submitted a step other than the one
	// the wizard is currently on.
	ErrStepMismatch = errors.New("step does not match current step")

	// ErrNoSession means an operation that needs live wizard state ran
	// before InitializeSession.
	ErrNoSession = errors.New("session not initialized")

	// ErrUnknownPincode means neither the resolver nor the built-in table
	// knows the postal code.
	ErrUnknownPincode = errors.New("unknown pincode")
)
