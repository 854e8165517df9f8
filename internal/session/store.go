package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"regwizard/internal/forms"
	"regwizard/internal/kvstore"
	"regwizard/internal/platform/metrics"
)

const (
	DefaultTTL   = 24 * time.Hour
	DefaultSteps = 2
)

// Store persists Records through a durable key-value backend. Persistence
// here is best-effort by contract: storage faults are logged and absorbed
// so the user can always keep moving on in-memory state alone. Expiry is
// checked lazily on Load, never by a background sweep.
type Store struct {
	kv      kvstore.Store
	ttl     time.Duration
	steps   int
	prefix  string
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   func() time.Time
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithSteps fixes how many steps new sessions track.
func WithSteps(n int) Option {
	return func(s *Store) {
		s.steps = n
	}
}

// WithKeyPrefix namespaces the five record keys, letting several stores
// share one backend.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.clock = now
	}
}

func New(kv kvstore.Store, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store is required")
	}

	s := &Store{
		kv:     kv,
		ttl:    DefaultTTL,
		steps:  DefaultSteps,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.steps < 1 {
		return nil, fmt.Errorf("step count must be at least 1")
	}
	return s, nil
}

// Initialize creates, persists, and returns a fresh session seeded with the
// given form data.
func (s *Store) Initialize(ctx context.Context, seed forms.Data) (*Record, error) {
	rec := &Record{
		SessionID:      NewID(s.clock()),
		CurrentStep:    1,
		FormData:       forms.Clone(seed),
		CompletedSteps: make([]bool, s.steps),
	}
	if rec.FormData == nil {
		rec.FormData = forms.Data{}
	}
	if err := s.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Save serializes the record across the five keys and stamps LastUpdated.
// The record is mutated in place so the caller sees the stamp.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	rec.LastUpdated = s.clock()

	formJSON, err := json.Marshal(rec.FormData)
	if err != nil {
		s.logger.ErrorContext(ctx, "session save skipped, form data not serializable", "error", err)
		return nil
	}
	stepsJSON, err := json.Marshal(rec.CompletedSteps)
	if err != nil {
		s.logger.ErrorContext(ctx, "session save skipped, completed steps not serializable", "error", err)
		return nil
	}

	writes := []struct{ key, value string }{
		{keySessionID, rec.SessionID},
		{keyFormData, string(formJSON)},
		{keyCurrentStep, strconv.Itoa(rec.CurrentStep)},
		{keyCompletedSteps, string(stepsJSON)},
		{keyLastUpdated, rec.LastUpdated.Format(time.RFC3339Nano)},
	}
	for _, w := range writes {
		if err := s.kv.Set(ctx, s.prefix+w.key, w.value); err != nil {
			s.logger.WarnContext(ctx, "session save degraded to no-op",
				"key", w.key,
				"error", err,
			)
			s.metrics.IncrementStorageErrors()
			return nil
		}
	}
	return nil
}

// Load returns the stored record, or nil when no usable session exists. A
// missing key means absent; unparseable or expired state is cleared before
// reporting absent so the store self-heals on the next write.
func (s *Store) Load(ctx context.Context) (*Record, error) {
	values := make(map[string]string, len(recordKeys))
	for _, key := range recordKeys {
		v, err := s.kv.Get(ctx, s.prefix+key)
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			s.logger.WarnContext(ctx, "session load degraded to absent",
				"key", key,
				"error", err,
			)
			s.metrics.IncrementStorageErrors()
			return nil, nil
		}
		values[key] = v
	}

	rec, err := parseRecord(values)
	if err != nil {
		s.logger.WarnContext(ctx, "clearing corrupt session record", "error", err)
		s.metrics.IncrementSessionCorruption()
		s.Clear(ctx)
		return nil, nil
	}

	if s.clock().Sub(rec.LastUpdated) >= s.ttl {
		s.logger.InfoContext(ctx, "session expired",
			"session_id", rec.SessionID,
			"last_updated", rec.LastUpdated,
		)
		s.metrics.IncrementSessionExpiries()
		s.Clear(ctx)
		return nil, nil
	}

	s.metrics.IncrementSessionLoads()
	return rec, nil
}

// UpdateFormData shallow-merges partial over the stored form data, new
// values winning. No-op when no session exists.
func (s *Store) UpdateFormData(ctx context.Context, partial forms.Data) error {
	rec, err := s.Load(ctx)
	if err != nil || rec == nil {
		return err
	}
	rec.FormData = forms.Apply(rec.FormData, partial)
	return s.Save(ctx, rec)
}

// MarkStepCompleted flags the zero-based step index as server-confirmed.
// No-op when no session exists or the index is out of range.
func (s *Store) MarkStepCompleted(ctx context.Context, index int) error {
	rec, err := s.Load(ctx)
	if err != nil || rec == nil {
		return err
	}
	if index < 0 || index >= len(rec.CompletedSteps) {
		s.logger.WarnContext(ctx, "step completion index out of range",
			"index", index,
			"steps", len(rec.CompletedSteps),
		)
		return nil
	}
	rec.CompletedSteps[index] = true
	return s.Save(ctx, rec)
}

// Clear deletes all five keys unconditionally, best effort.
func (s *Store) Clear(ctx context.Context) error {
	for _, key := range recordKeys {
		if err := s.kv.Delete(ctx, s.prefix+key); err != nil {
			s.logger.WarnContext(ctx, "session key delete failed",
				"key", key,
				"error", err,
			)
			s.metrics.IncrementStorageErrors()
		}
	}
	return nil
}
