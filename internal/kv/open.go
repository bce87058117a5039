package kv

import (
	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// Open validates cfg and returns the matching Storage backend.
func Open(cfg types.Config) (types.Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case types.BackendFile:
		return NewFileStore(cfg.DataDir)
	case types.BackendSQLite:
		return NewSQLiteStore(cfg.DataDir)
	default:
		return NewMemory(), nil
	}
}
