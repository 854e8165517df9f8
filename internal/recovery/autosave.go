package recovery

import (
	"context"
	"time"

	"regwizard/internal/forms"
)

// StartAutoSave spawns a ticker goroutine that snapshots whatever the
// supplier functions return, skipping ticks with empty form data. If a
// saver is already running it is stopped and drained first, so one service
// never runs overlapping tickers.
func (s *Service) StartAutoSave(getForm func() forms.Data, getStep func() int, getSessionID func() string) {
	s.saverMu.Lock()
	defer s.saverMu.Unlock()

	if prev := s.stopLocked(); prev != nil {
		<-prev
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	go s.runAutoSave(ctx, done, getForm, getStep, getSessionID)
}

// StopAutoSave cancels the saver. It is idempotent and safe to call from
// inside a tick: it does not wait for an in-flight tick to finish, it
// guarantees no new tick begins once it returns.
func (s *Service) StopAutoSave() {
	s.saverMu.Lock()
	defer s.saverMu.Unlock()
	s.stopLocked()
}

func (s *Service) stopLocked() chan struct{} {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	done := s.done
	s.cancel, s.done = nil, nil
	return done
}

func (s *Service) runAutoSave(ctx context.Context, done chan struct{}, getForm func() forms.Data, getStep func() int, getSessionID func() string) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both channels can be ready at once; never start a tick
			// once cancellation is observable.
			if ctx.Err() != nil {
				return
			}
			s.tick(ctx, getForm, getStep, getSessionID)
		}
	}
}

// tick runs one auto-save pass. Panics and errors stay inside the tick so
// one bad pass cannot kill the ticker.
func (s *Service) tick(ctx context.Context, getForm func() forms.Data, getStep func() int, getSessionID func() string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "auto-save tick recovered", "panic", r)
		}
	}()

	form := getForm()
	if len(form) == 0 {
		return
	}
	if err := s.SaveSnapshot(ctx, form, getStep(), getSessionID(), Metadata{Source: SourceAuto}); err != nil {
		s.logger.ErrorContext(ctx, "auto-save tick failed", "error", err)
	}
}
