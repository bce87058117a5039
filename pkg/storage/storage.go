// Package storage is the public entry point for opening a scriptbox
// storage backend. Implementation details stay in internal/kv.
//
// Example:
//
//	s, err := storage.Open(types.Config{
//	    Backend: types.BackendFile,
//	    DataDir: "/home/me/.local/share/scriptbox",
//	})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
package storage

import (
	"github.com/mesh-intelligence/scriptbox/internal/kv"
	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// Open validates cfg and opens the selected backend. The file and sqlite
// backends create cfg.DataDir if needed; the memory backend ignores it.
func Open(cfg types.Config) (types.Storage, error) {
	return kv.Open(cfg)
}

// NewMemory returns an empty in-process store, useful in tests.
func NewMemory() types.Storage {
	return kv.NewMemory()
}
