package pagestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "index.db")
}

func TestFileStoreAllocatesOnWrite(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path, ModeReadWrite)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, int64(0), s.EndPid())

	page := make([]byte, PageSize)
	copy(page, []byte("hello"))
	require.NoError(t, s.Write(0, page))
	require.Equal(t, int64(1), s.EndPid())

	readBack := make([]byte, PageSize)
	require.NoError(t, s.Read(0, readBack))
	require.Equal(t, page, readBack)
}

func TestFileStoreRejectsWrongSize(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path, ModeReadWrite)
	require.NoError(t, err)
	defer s.Close()

	require.Error(t, s.Write(0, make([]byte, PageSize-1)))
	require.Error(t, s.Read(0, make([]byte, PageSize+1)))
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path, ModeReadWrite)
	require.NoError(t, err)

	page := make([]byte, PageSize)
	copy(page, []byte("persisted"))
	require.NoError(t, s.Write(0, page))
	require.NoError(t, s.Close())

	reopened, err := Open(path, ModeReadWrite)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, int64(1), reopened.EndPid())
	readBack := make([]byte, PageSize)
	require.NoError(t, reopened.Read(0, readBack))
	require.Equal(t, page, readBack)
}

func TestFileStoreReadOnlyRejectsWrite(t *testing.T) {
	path := tempStorePath(t)
	w, err := Open(path, ModeReadWrite)
	require.NoError(t, err)
	require.NoError(t, w.Write(0, make([]byte, PageSize)))
	require.NoError(t, w.Close())

	r, err := Open(path, ModeRead)
	require.NoError(t, err)
	defer r.Close()

	require.Error(t, r.Write(0, make([]byte, PageSize)))
}

func TestOpenInvalidMode(t *testing.T) {
	_, err := Open(tempStorePath(t), Mode(99))
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestOpenMissingReadOnlyFails(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"), ModeRead)
	require.Error(t, err)
	require.True(t, os.IsNotExist(errUnwrap(err)))
}

func errUnwrap(err error) error {
	type unwrapper interface{ Unwrap() error }
	for {
		u, ok := err.(unwrapper)
		if !ok {
			return err
		}
		err = u.Unwrap()
	}
}
