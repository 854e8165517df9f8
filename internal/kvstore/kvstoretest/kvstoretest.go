// Package kvstoretest provides Store wrappers with scripted failures so
// the session and recovery layers can prove they degrade instead of
// propagating storage faults.
package kvstoretest

import (
	"context"
	"sync"

	"regwizard/internal/kvstore"
)

// Faulty delegates to Inner until an error is armed for a verb, after
// which every call of that verb fails. Arm and disarm at any point in a
// test; zero value of each field means pass-through.
type Faulty struct {
	Inner kvstore.Store

	mu        sync.Mutex
	getErr    error
	setErr    error
	deleteErr error
	setCalls  int
}

func NewFaulty(inner kvstore.Store) *Faulty {
	return &Faulty{Inner: inner}
}

func (f *Faulty) FailGets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

func (f *Faulty) FailSets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

func (f *Faulty) FailDeletes(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteErr = err
}

// SetCalls reports how many Set calls reached the wrapper, failed or not.
func (f *Faulty) SetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setCalls
}

func (f *Faulty) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	err := f.getErr
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return f.Inner.Get(ctx, key)
}

func (f *Faulty) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.setCalls++
	err := f.setErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Inner.Set(ctx, key, value)
}

func (f *Faulty) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	err := f.deleteErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Inner.Delete(ctx, key)
}
