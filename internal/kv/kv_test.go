package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// backends returns a fresh instance of every Storage implementation.
func backends(t *testing.T) map[string]types.Storage {
	t.Helper()

	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	sq, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)

	all := map[string]types.Storage{
		"memory": NewMemory(),
		"file":   fs,
		"sqlite": sq,
	}
	t.Cleanup(func() {
		for _, s := range all {
			s.Close()
		}
	})
	return all
}

func TestStorageRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(types.KeyLibrary)
			require.NoError(t, err)
			assert.False(t, ok, "fresh store has no library key")

			require.NoError(t, s.Set(types.KeyLibrary, `[{"text":"a","timestamp":"t1"}]`))
			got, ok, err := s.Get(types.KeyLibrary)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"text":"a","timestamp":"t1"}]`, got)

			require.NoError(t, s.Set(types.KeyLibrary, `[]`))
			got, _, err = s.Get(types.KeyLibrary)
			require.NoError(t, err)
			assert.Equal(t, `[]`, got, "Set overwrites the whole value")
		})
	}
}

func TestStorageRemove(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(types.KeyFolderList, `["Drafts"]`))
			require.NoError(t, s.Remove(types.KeyFolderList))

			_, ok, err := s.Get(types.KeyFolderList)
			require.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, s.Remove(types.KeyFolderList), "removing an absent key succeeds")
		})
	}
}

func TestStorageClosed(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Close())
			require.NoError(t, s.Close(), "Close is idempotent")

			_, _, err := s.Get(types.KeyLibrary)
			assert.ErrorIs(t, err, types.ErrStorageClosed)
			assert.ErrorIs(t, s.Set(types.KeyLibrary, "[]"), types.ErrStorageClosed)
			assert.ErrorIs(t, s.Remove(types.KeyLibrary), types.ErrStorageClosed)
		})
	}
}

func TestStorageEmptyKeyRejected(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Set("", "x"), types.ErrInvalidKey)
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(types.KeyLibrary, "[]"))

	data, err := os.ReadFile(filepath.Join(dir, "library.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files are left behind")
	assert.Equal(t, "library.json", entries[0].Name())
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	for _, key := range []string{"../escape", "a/b", `a\b`, ".hidden"} {
		assert.ErrorIs(t, s.Set(key, "x"), types.ErrInvalidKey, key)
		_, _, err := s.Get(key)
		assert.ErrorIs(t, err, types.ErrInvalidKey, key)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(types.KeyFolderList, `["Drafts"]`))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(types.KeyFolderList)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["Drafts"]`, got)
	assert.FileExists(t, filepath.Join(dir, DatabaseFile))
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.Config
		want    any
		wantErr error
	}{
		{name: "memory", cfg: types.Config{Backend: types.BackendMemory}, want: &Memory{}},
		{name: "file", cfg: types.Config{Backend: types.BackendFile, DataDir: t.TempDir()}, want: &FileStore{}},
		{name: "sqlite", cfg: types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, want: &SQLiteStore{}},
		{name: "empty backend", cfg: types.Config{}, wantErr: types.ErrBackendEmpty},
		{name: "unknown backend", cfg: types.Config{Backend: "redis"}, wantErr: types.ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}
}
