package types

import (
	"errors"
	"strings"
	"time"
)

// Reserved folder names.
const (
	// FolderUncategorized is the implicit folder of items with no folder.
	FolderUncategorized = "Uncategorized"

	// FolderFavorites is a virtual view over the favorite flag. It is never
	// stored in the folder registry or on an item.
	FolderFavorites = "Favorites"
)

// DefaultTitle is shown for items whose title is absent or blank.
const DefaultTitle = "Untitled Script"

// TimestampLayout matches the ISO-8601 form written by the browser client
// (Date.prototype.toISOString): UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Library operation errors.
var (
	ErrEmptyText      = errors.New("nothing to save")
	ErrInvalidName    = errors.New("folder name must not be empty")
	ErrReservedFolder = errors.New("folder name is reserved")
)

// LibraryItem is a saved text snippet. Timestamp doubles as the identity key.
type LibraryItem struct {
	Text      string   `json:"text"`
	Title     string   `json:"title,omitempty"`
	Timestamp string   `json:"timestamp"`
	Folder    string   `json:"folder,omitempty"`
	Favorite  bool     `json:"favorite"`
	Tags      []string `json:"tags"`
}

// EffectiveFolder returns the folder the item is filed under, resolving an
// empty assignment to Uncategorized.
func (it LibraryItem) EffectiveFolder() string {
	if it.Folder == "" {
		return FolderUncategorized
	}
	return it.Folder
}

// DisplayTitle returns the title, or DefaultTitle when it is blank.
func (it LibraryItem) DisplayTitle() string {
	if t := strings.TrimSpace(it.Title); t != "" {
		return t
	}
	return DefaultTitle
}

// SavedAt parses Timestamp. The zero time is returned for values that are
// not valid ISO-8601.
func (it LibraryItem) SavedAt() time.Time {
	if t, err := time.Parse(time.RFC3339Nano, it.Timestamp); err == nil {
		return t
	}
	return time.Time{}
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// IsReservedFolder reports whether name may not be used as a real folder.
func IsReservedFolder(name string) bool {
	return name == FolderFavorites
}
