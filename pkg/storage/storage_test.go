package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

func TestOpen(t *testing.T) {
	for _, backend := range []string{types.BackendFile, types.BackendSQLite, types.BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(types.Config{Backend: backend, DataDir: t.TempDir()})
			require.NoError(t, err)
			defer s.Close()

			require.NoError(t, s.Set(types.KeyFolderList, `["Drafts"]`))
			v, ok, err := s.Get(types.KeyFolderList)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `["Drafts"]`, v)
		})
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open(types.Config{Backend: "postgres"})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestNewMemory(t *testing.T) {
	s := NewMemory()
	_, ok, err := s.Get(types.KeyLibrary)
	require.NoError(t, err)
	assert.False(t, ok)
}
