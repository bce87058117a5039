package types

import "errors"

// Storage is the durable key-value port the library persists through.
// Values are opaque strings; the library stores JSON documents under a
// small fixed set of keys.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; err is reserved for failures of the underlying medium.
	Get(key string) (value string, ok bool, err error)

	// Set replaces the value stored under key.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key succeeds.
	Remove(key string) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Storage lifecycle errors.
var (
	ErrStorageClosed = errors.New("storage is closed")
	ErrInvalidKey    = errors.New("invalid storage key")
)

// Persisted keys.
const (
	KeyLibrary          = "library"
	KeyFolderList       = "folderList"
	KeyPromptUsageCount = "promptUsageCount"
	KeyPromptUsageLimit = "promptUsageLimit"
)
