package recovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"regwizard/internal/forms"
	"regwizard/internal/kvstore"
	"regwizard/internal/platform/metrics"
)

const (
	DefaultKey              = "form_recovery"
	DefaultTTL              = 24 * time.Hour
	DefaultAutoSaveInterval = 5 * time.Second
)

// Notification events emitted to in-process observers.
const (
	EventSaved   = "formDataSaved"
	EventCleared = "formDataCleared"
)

// Notification tells observers a snapshot was written or deleted, so UI
// affordances like a "draft saved" badge can react.
type Notification struct {
	Event  string
	Fields int
	At     time.Time
}

// Service owns the recovery namespace. Like the session store it absorbs
// storage faults: a failed snapshot is logged and skipped, never surfaced
// as a blocking error.
type Service struct {
	kv       kvstore.Store
	key      string
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	clock    func() time.Time

	saverMu sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}

	subMu   sync.RWMutex
	subs    map[int]func(Notification)
	nextSub int
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithKey overrides the storage key the snapshot lives under.
func WithKey(key string) Option {
	return func(s *Service) {
		s.key = key
	}
}

func WithAutoSaveInterval(interval time.Duration) Option {
	return func(s *Service) {
		s.interval = interval
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

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.clock = now
	}
}

func New(kv kvstore.Store, opts ...Option) (*Service, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store is required")
	}

	s := &Service{
		kv:       kv,
		key:      DefaultKey,
		ttl:      DefaultTTL,
		interval: DefaultAutoSaveInterval,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    time.Now,
		subs:     make(map[int]func(Notification)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.interval <= 0 {
		return nil, fmt.Errorf("auto-save interval must be positive")
	}
	return s, nil
}

// Subscribe registers an observer for save/clear notifications, invoked
// synchronously after the write. The returned function removes it.
func (s *Service) Subscribe(fn func(Notification)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Service) notify(n Notification) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, fn := range s.subs {
		fn(n)
	}
}

// SaveSnapshot sanitizes form and persists it as the current snapshot.
// Sanitization happens here, at write time, so secrets never reach the
// durable store at all.
func (s *Service) SaveSnapshot(ctx context.Context, form forms.Data, step int, sessionID string, meta Metadata) error {
	if step < 0 {
		return fmt.Errorf("step must be non-negative")
	}

	snap := Snapshot{
		FormData:  Sanitize(form),
		Step:      step,
		SessionID: sessionID,
		Timestamp: s.clock(),
		Metadata:  withDevice(meta),
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		s.logger.ErrorContext(ctx, "snapshot skipped, form data not serializable", "error", err)
		return nil
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		s.logger.WarnContext(ctx, "snapshot save degraded to no-op", "error", err)
		s.metrics.IncrementStorageErrors()
		return nil
	}

	s.metrics.IncrementSnapshotSaves()
	s.notify(Notification{Event: EventSaved, Fields: len(snap.FormData), At: snap.Timestamp})
	return nil
}

// LoadSnapshot returns the stored snapshot, or nil when none is usable.
// Corrupt, structurally invalid, and expired snapshots are deleted on this
// first read attempt rather than proactively.
func (s *Service) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot load degraded to absent", "error", err)
		s.metrics.IncrementStorageErrors()
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt snapshot", "error", err)
		s.metrics.IncrementSessionCorruption()
		s.discard(ctx)
		return nil, nil
	}
	if !snap.Valid() {
		s.logger.WarnContext(ctx, "discarding structurally invalid snapshot", "step", snap.Step)
		s.metrics.IncrementSessionCorruption()
		s.discard(ctx)
		return nil, nil
	}
	if s.clock().Sub(snap.Timestamp) >= s.ttl {
		s.logger.InfoContext(ctx, "snapshot expired", "taken_at", snap.Timestamp)
		s.discard(ctx)
		return nil, nil
	}
	return &snap, nil
}

// HasSnapshot reports whether a usable snapshot exists.
func (s *Service) HasSnapshot(ctx context.Context) bool {
	snap, _ := s.LoadSnapshot(ctx)
	return snap != nil
}

// Age returns whole minutes since the snapshot was taken.
func (s *Service) Age(ctx context.Context) (int, bool) {
	snap, _ := s.LoadSnapshot(ctx)
	if snap == nil {
		return 0, false
	}
	return int(s.clock().Sub(snap.Timestamp).Minutes()), true
}

// PromptData summarizes the snapshot for the recovery dialog, or nil when
// there is nothing to offer.
func (s *Service) PromptData(ctx context.Context) (*Prompt, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil || snap == nil {
		return nil, err
	}
	return &Prompt{
		Step:       snap.Step,
		AgeMinutes: int(s.clock().Sub(snap.Timestamp).Minutes()),
		FieldCount: len(snap.FormData),
		HasData:    len(snap.FormData) > 0,
	}, nil
}

// ClearSnapshot deletes the namespace and tells observers.
func (s *Service) ClearSnapshot(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.WarnContext(ctx, "snapshot clear degraded to no-op", "error", err)
		s.metrics.IncrementStorageErrors()
		return nil
	}
	s.metrics.IncrementSnapshotClears()
	s.notify(Notification{Event: EventCleared, At: s.clock()})
	return nil
}

// MergeFormData combines live form state with a recovered snapshot's data.
// Live values always win on collision: recovery fills gaps, it never
// overwrites what the user re-entered since the reload.
func (s *Service) MergeFormData(current, recovered forms.Data) forms.Data {
	return forms.Merge(current, recovered)
}

// discard removes an unusable snapshot without notifying observers; there
// was never anything recoverable to announce.
func (s *Service) discard(ctx context.Context) {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.WarnContext(ctx, "snapshot discard failed", "error", err)
		s.metrics.IncrementStorageErrors()
	}
}
