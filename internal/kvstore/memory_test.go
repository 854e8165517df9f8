package kvstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) TestGetSetDelete() {
	store := NewMemory()

	s.Run("missing key reports not found", func() {
		_, err := store.Get(s.ctx, "absent")
		s.ErrorIs(err, ErrNotFound)
	})

	s.Run("set then get round-trips", func() {
		s.Require().NoError(store.Set(s.ctx, "session_id", "sess_1"))
		v, err := store.Get(s.ctx, "session_id")
		s.Require().NoError(err)
		s.Equal("sess_1", v)
	})

	s.Run("overwrite replaces value", func() {
		s.Require().NoError(store.Set(s.ctx, "session_id", "sess_2"))
		v, err := store.Get(s.ctx, "session_id")
		s.Require().NoError(err)
		s.Equal("sess_2", v)
	})

	s.Run("delete is idempotent", func() {
		s.Require().NoError(store.Delete(s.ctx, "session_id"))
		s.Require().NoError(store.Delete(s.ctx, "session_id"))
		_, err := store.Get(s.ctx, "session_id")
		s.ErrorIs(err, ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestQuota() {
	s.Run("write exceeding quota fails without mutating state", func() {
		store := NewMemory(WithQuota(16))
		s.Require().NoError(store.Set(s.ctx, "a", "12345"))

		err := store.Set(s.ctx, "b", "0123456789abcdef")
		s.ErrorIs(err, ErrQuotaExceeded)

		_, err = store.Get(s.ctx, "b")
		s.ErrorIs(err, ErrNotFound)
		v, err := store.Get(s.ctx, "a")
		s.Require().NoError(err)
		s.Equal("12345", v)
	})

	s.Run("overwrite frees the old value's budget", func() {
		store := NewMemory(WithQuota(10))
		s.Require().NoError(store.Set(s.ctx, "k", "123456789"))
		s.Require().NoError(store.Set(s.ctx, "k", "987654321"))

		v, err := store.Get(s.ctx, "k")
		s.Require().NoError(err)
		s.Equal("987654321", v)
	})

	s.Run("delete releases budget", func() {
		store := NewMemory(WithQuota(8))
		s.Require().NoError(store.Set(s.ctx, "k", "1234567"))
		s.Require().NoError(store.Delete(s.ctx, "k"))
		s.Require().NoError(store.Set(s.ctx, "j", "7654321"))
	})

	s.Run("zero quota means unlimited", func() {
		store := NewMemory()
		for i := range 100 {
			s.Require().NoError(store.Set(s.ctx, fmt.Sprintf("k%d", i), "vvvvvvvvvvvvvvvv"))
		}
		s.Equal(100, store.Len())
	})
}

func (s *MemoryStoreSuite) TestConcurrentAccess() {
	store := NewMemory()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			key := fmt.Sprintf("k%d", i%5)
			_ = store.Set(s.ctx, key, "v")
			_, _ = store.Get(s.ctx, key)
			_ = store.Delete(s.ctx, key)
		})
	}
	wg.Wait()
}
