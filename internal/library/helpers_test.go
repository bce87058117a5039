package library

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scriptbox/internal/kv"
	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// fixedNow is the instant returned by the test clock.
var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// newTestStore returns a Store over an in-memory backend with a frozen
// clock, so every append competes for the same millisecond.
func newTestStore(t *testing.T, opts ...Option) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	t.Cleanup(func() { mem.Close() })
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(mem, opts...), mem
}

// seed writes raw JSON straight into storage, bypassing the Store.
func seed(t *testing.T, mem *kv.Memory, key, raw string) {
	t.Helper()
	require.NoError(t, mem.Set(key, raw))
}

// raw reads a key straight from storage.
func raw(t *testing.T, mem *kv.Memory, key string) (string, bool) {
	t.Helper()
	v, ok, err := mem.Get(key)
	require.NoError(t, err)
	return v, ok
}

var errDisk = errors.New("disk on fire")

// brokenStorage fails every operation.
type brokenStorage struct{}

func (brokenStorage) Get(string) (string, bool, error) { return "", false, errDisk }
func (brokenStorage) Set(string, string) error         { return errDisk }
func (brokenStorage) Remove(string) error              { return errDisk }
func (brokenStorage) Close() error                     { return nil }

var _ types.Storage = brokenStorage{}

func newMemoryStorage(t *testing.T) *kv.Memory {
	t.Helper()
	mem := kv.NewMemory()
	t.Cleanup(func() { mem.Close() })
	return mem
}
