package wizard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"regwizard/internal/forms"
	"regwizard/internal/lookup"
	"regwizard/internal/platform/metrics"
	"regwizard/internal/recovery"
	"regwizard/internal/session"
)

// Submission outcomes recorded in metrics.
const (
	outcomeAccepted  = "accepted"
	outcomeRejected  = "rejected"
	outcomeCompleted = "completed"
)

// SubmitOutcome is what a successful submission leaves the caller with.
type SubmitOutcome struct {
	// Record is the post-transition wizard state; nil once Completed.
	Record    *session.Record
	Completed bool
	Message   string
}

// Service orchestrates one wizard flow. It owns the live in-memory state
// the UI edits and keeps the session store, the recovery snapshots, and the
// registration backend in step with it. The mutex is real concurrency, not
// ceremony: HTTP handlers and the auto-save ticker read this state from
// different goroutines.
type Service struct {
	sessions   *session.Store
	recovery   *recovery.Service
	client     RegistrationClient
	resolver   LocationResolver
	machine    Machine
	validators map[string]FieldValidator
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer

	mu   sync.Mutex
	live *session.Record
}

type Option func(*Service)

// WithSteps sets how many steps the wizard has.
func WithSteps(n int) Option {
	return func(s *Service) {
		s.machine = Machine{steps: n}
	}
}

// WithResolver enables network-backed location autofill. Without it only
// the built-in pincode table answers.
func WithResolver(r LocationResolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithValidators registers per-field validators consulted by FieldValid.
func WithValidators(v map[string]FieldValidator) Option {
	return func(s *Service) {
		s.validators = v
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(sessions *session.Store, recoverySvc *recovery.Service, client RegistrationClient, opts ...Option) (*Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if recoverySvc == nil {
		return nil, fmt.Errorf("recovery service is required")
	}
	if client == nil {
		return nil, fmt.Errorf("registration client is required")
	}

	s := &Service{
		sessions: sessions,
		recovery: recoverySvc,
		client:   client,
		machine:  Machine{steps: session.DefaultSteps},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   otel.Tracer("regwizard/wizard"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.machine.steps < 1 {
		return nil, fmt.Errorf("step count must be at least 1")
	}
	return s, nil
}

// InitializeSession restores the persisted session or creates a fresh one,
// and makes it the live state. Idempotent: once live state exists it is
// returned as-is rather than re-read, so a duplicate boot call cannot
// clobber newer edits.
func (s *Service) InitializeSession(ctx context.Context) (*session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live != nil {
		return s.live.Clone(), nil
	}
	if err := s.initLocked(ctx); err != nil {
		return nil, err
	}
	return s.live.Clone(), nil
}

// initLocked loads or creates live state. Callers hold s.mu.
func (s *Service) initLocked(ctx context.Context) error {
	rec, err := s.sessions.Load(ctx)
	if err != nil {
		return err
	}
	if rec != nil {
		rec.CurrentStep = s.machine.Clamp(rec.CurrentStep)
		s.live = rec
		s.logger.InfoContext(ctx, "session restored",
			"session_id", rec.SessionID,
			"current_step", rec.CurrentStep,
		)
		return nil
	}

	rec, err = s.sessions.Initialize(ctx, nil)
	if err != nil {
		return err
	}
	s.live = rec
	s.logger.InfoContext(ctx, "session created", "session_id", rec.SessionID)
	return nil
}

// Current returns an independent copy of the live state, or nil before
// InitializeSession and after completion.
func (s *Service) Current() *session.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live.Clone()
}

// CanAdvance reports whether the current step's completion is
// server-confirmed. Field validity never factors in.
func (s *Service) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return false
	}
	return s.machine.CanAdvance(s.live.CurrentStep, s.live.CompletedSteps)
}

// FieldValid runs the registered validator for name, true when none is
// registered. A UI affordance only; see CanAdvance.
func (s *Service) FieldValid(name string, value any) bool {
	v, ok := s.validators[name]
	if !ok {
		return true
	}
	return v(value)
}

// UpdateFields merges partial into the live form state, new values winning,
// and writes the merge through to the session store.
func (s *Service) UpdateFields(ctx context.Context, partial forms.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return ErrNoSession
	}
	s.live.FormData = forms.Apply(s.live.FormData, partial)
	return s.sessions.UpdateFormData(ctx, partial)
}

// SubmitStep sends the live form to the registration server for step. On
// acceptance the step is marked completed, the server correlator is adopted
// if this was the first acceptance, and the wizard advances; on the final
// step it completes and both stored namespaces are cleared. A rejection or
// transport failure leaves every piece of state exactly as it was.
func (s *Service) SubmitStep(ctx context.Context, step int) (*SubmitOutcome, error) {
	s.mu.Lock()
	if s.live == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if step != s.live.CurrentStep {
		current := s.live.CurrentStep
		s.mu.Unlock()
		return nil, fmt.Errorf("submitted step %d while on step %d: %w", step, current, ErrStepMismatch)
	}
	form := forms.Clone(s.live.FormData)
	sessionID := s.live.SessionID
	s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "wizard.submit_step",
		trace.WithAttributes(attribute.Int("wizard.step", step)))
	defer span.End()

	// The lock is not held across the network call; edits keep flowing
	// while the server thinks.
	result, err := s.client.SubmitStep(ctx, step, sessionID, form)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission failed")
		s.metrics.IncrementStepSubmissions(outcomeRejected)
		s.logger.WarnContext(ctx, "step submission failed",
			"step", step,
			"error", err,
		)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		// Completed concurrently; nothing left to transition.
		return nil, ErrNoSession
	}

	if result.SessionID != "" && !anyCompleted(s.live.CompletedSteps) {
		s.live.SessionID = result.SessionID
	}
	if step-1 < len(s.live.CompletedSteps) {
		s.live.CompletedSteps[step-1] = true
	}

	if s.machine.IsFinal(step) {
		s.sessions.Clear(ctx)
		s.recovery.ClearSnapshot(ctx)
		s.live = nil
		s.metrics.IncrementStepSubmissions(outcomeCompleted)
		s.logger.InfoContext(ctx, "wizard completed", "session_id", result.SessionID)
		return &SubmitOutcome{Completed: true, Message: result.Message}, nil
	}

	s.live.CurrentStep = s.machine.Clamp(step + 1)
	if err := s.sessions.Save(ctx, s.live); err != nil {
		return nil, err
	}
	s.metrics.IncrementStepSubmissions(outcomeAccepted)
	return &SubmitOutcome{Record: s.live.Clone(), Message: result.Message}, nil
}

// Previous steps back without losing form data. Always allowed; at the
// first step it stays put.
func (s *Service) Previous(ctx context.Context) (*session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return nil, ErrNoSession
	}
	if s.machine.CanGoBack(s.live.CurrentStep) {
		s.live.CurrentStep = s.machine.Previous(s.live.CurrentStep)
		if err := s.sessions.Save(ctx, s.live); err != nil {
			return nil, err
		}
	}
	return s.live.Clone(), nil
}

// Next navigates forward over an already-completed step, the path back
// after reviewing earlier input. It never submits anything; an unconfirmed
// step yields ErrStepNotCompleted.
func (s *Service) Next(ctx context.Context) (*session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return nil, ErrNoSession
	}
	next, err := s.machine.Next(s.live.CurrentStep, s.live.CompletedSteps)
	if err != nil {
		return nil, err
	}
	if next != s.live.CurrentStep {
		s.live.CurrentStep = next
		if err := s.sessions.Save(ctx, s.live); err != nil {
			return nil, err
		}
	}
	return s.live.Clone(), nil
}

// Abandon throws the draft away: live state, persisted session, and any
// recovery snapshot. Safe with no session; leftovers from an earlier run
// are cleared either way so a restart cannot resurrect them.
func (s *Service) Abandon(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.live = nil
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	if err := s.recovery.ClearSnapshot(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "registration draft abandoned")
	return nil
}

// RegistrationStatus asks the backend for the live session's status.
func (s *Service) RegistrationStatus(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.live == nil {
		s.mu.Unlock()
		return "", ErrNoSession
	}
	sessionID := s.live.SessionID
	s.mu.Unlock()

	return s.client.Status(ctx, sessionID)
}

// AutofillLocation resolves a postal code for address autofill: resolver
// first (cached, stale-tolerant), then the built-in table. Resolver
// failures on well-known codes degrade silently to the table; otherwise
// they propagate for the UI to surface next to an editable field.
func (s *Service) AutofillLocation(ctx context.Context, pincode string) (lookup.Location, error) {
	var resolveErr error
	if s.resolver != nil {
		loc, err := s.resolver.Resolve(ctx, pincode)
		if err == nil {
			return loc, nil
		}
		resolveErr = err
	}

	if loc, ok := wellKnownPincodes[pincode]; ok {
		if resolveErr != nil {
			s.logger.WarnContext(ctx, "autofill fell back to built-in pincode table",
				"pincode", pincode,
				"error", resolveErr,
			)
		}
		return loc, nil
	}

	if resolveErr != nil {
		return lookup.Location{}, resolveErr
	}
	return lookup.Location{}, fmt.Errorf("pincode %s: %w", pincode, ErrUnknownPincode)
}

// RecoveryPrompt summarizes the recovery snapshot for the restore dialog,
// nil when there is nothing worth offering.
func (s *Service) RecoveryPrompt(ctx context.Context) (*recovery.Prompt, error) {
	return s.recovery.PromptData(ctx)
}

// AcceptRecovery merges the snapshot under the live state: live values win
// every collision, recovery only fills gaps. The wizard jumps forward to
// the snapshot's step when that is further along, adopts the snapshot's
// server correlator when no step has been confirmed yet, persists the
// merge, and clears the snapshot. Returns nil when no usable snapshot
// exists.
func (s *Service) AcceptRecovery(ctx context.Context) (*session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.recovery.LoadSnapshot(ctx)
	if err != nil || snap == nil {
		return nil, err
	}
	if s.live == nil {
		if err := s.initLocked(ctx); err != nil {
			return nil, err
		}
	}

	s.live.FormData = s.recovery.MergeFormData(s.live.FormData, snap.FormData)
	if restored := s.machine.Clamp(snap.Step); restored > s.live.CurrentStep {
		s.live.CurrentStep = restored
	}
	if snap.SessionID != "" && !anyCompleted(s.live.CompletedSteps) {
		s.live.SessionID = snap.SessionID
	}

	if err := s.sessions.Save(ctx, s.live); err != nil {
		return nil, err
	}
	s.recovery.ClearSnapshot(ctx)
	s.logger.InfoContext(ctx, "recovery snapshot merged",
		"step", s.live.CurrentStep,
		"fields", len(s.live.FormData),
	)
	return s.live.Clone(), nil
}

// DiscardRecovery drops the snapshot unmerged.
func (s *Service) DiscardRecovery(ctx context.Context) error {
	return s.recovery.ClearSnapshot(ctx)
}

// StartAutoSave begins periodic recovery snapshots of the live state.
func (s *Service) StartAutoSave() {
	s.recovery.StartAutoSave(s.liveForm, s.liveStep, s.liveSessionID)
}

// StopAutoSave halts periodic snapshots. Safe to call at any time.
func (s *Service) StopAutoSave() {
	s.recovery.StopAutoSave()
}

// Close stops background work. The service is not usable afterwards.
func (s *Service) Close() {
	s.recovery.StopAutoSave()
}

func (s *Service) liveForm() forms.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return nil
	}
	return forms.Clone(s.live.FormData)
}

func (s *Service) liveStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return 0
	}
	return s.live.CurrentStep
}

func (s *Service) liveSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return ""
	}
	return s.live.SessionID
}

func anyCompleted(completed []bool) bool {
	for _, done := range completed {
		if done {
			return true
		}
	}
	return false
}
