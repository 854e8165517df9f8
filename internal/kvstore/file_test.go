package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type FileStoreSuite struct {
	suite.Suite
	ctx  context.Context
	path string
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, new(FileStoreSuite))
}

func (s *FileStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "wizard-kv.json")
}

func (s *FileStoreSuite) TestOpen() {
	s.Run("missing path is rejected", func() {
		_, err := NewFile("")
		s.Error(err)
	})

	s.Run("missing file starts empty", func() {
		store, err := NewFile(s.path)
		s.Require().NoError(err)
		_, err = store.Get(s.ctx, "anything")
		s.ErrorIs(err, ErrNotFound)
	})

	s.Run("corrupt file starts empty instead of failing", func() {
		s.Require().NoError(os.WriteFile(s.path, []byte("{not json"), 0o600))
		store, err := NewFile(s.path)
		s.Require().NoError(err)
		_, err = store.Get(s.ctx, "anything")
		s.ErrorIs(err, ErrNotFound)
	})
}

func (s *FileStoreSuite) TestPersistence() {
	s.Run("values survive reopen", func() {
		store, err := NewFile(s.path)
		s.Require().NoError(err)
		s.Require().NoError(store.Set(s.ctx, "form_data", `{"name":"Asha"}`))
		s.Require().NoError(store.Set(s.ctx, "current_step", "2"))

		reopened, err := NewFile(s.path)
		s.Require().NoError(err)
		v, err := reopened.Get(s.ctx, "form_data")
		s.Require().NoError(err)
		s.Equal(`{"name":"Asha"}`, v)
		v, err = reopened.Get(s.ctx, "current_step")
		s.Require().NoError(err)
		s.Equal("2", v)
	})

	s.Run("delete survives reopen", func() {
		store, err := NewFile(s.path)
		s.Require().NoError(err)
		s.Require().NoError(store.Set(s.ctx, "k", "v"))
		s.Require().NoError(store.Delete(s.ctx, "k"))

		reopened, err := NewFile(s.path)
		s.Require().NoError(err)
		_, err = reopened.Get(s.ctx, "k")
		s.ErrorIs(err, ErrNotFound)
	})

	s.Run("no stray temp files are left behind", func() {
		store, err := NewFile(s.path)
		s.Require().NoError(err)
		for range 5 {
			s.Require().NoError(store.Set(s.ctx, "k", "v"))
		}
		entries, err := os.ReadDir(filepath.Dir(s.path))
		s.Require().NoError(err)
		s.Len(entries, 1)
	})
}

func TestFileStoreUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "kv.json")
	store, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "k", "v"))

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	err = store.Set(context.Background(), "k", "v2")
	require.ErrorIs(t, err, ErrUnavailable)

	// The failed write must not poison the in-memory view.
	v, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
}
