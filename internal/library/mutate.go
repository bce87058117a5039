package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// AppendItem saves text as a new item in folder (Uncategorized when blank)
// and publishes EventLibraryUpdated. Text that is empty after trimming is
// rejected with ErrEmptyText and nothing is persisted.
func (s *Store) AppendItem(text, folder string) (types.LibraryItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.LibraryItem{}, types.ErrEmptyText
	}
	folder = strings.TrimSpace(folder)
	if folder == "" {
		folder = types.FolderUncategorized
	}
	if types.IsReservedFolder(folder) {
		return types.LibraryItem{}, types.ErrReservedFolder
	}

	item, err := s.appendLocked(text, folder)
	if err != nil {
		return types.LibraryItem{}, err
	}
	s.bus.Publish(NewEvent(EventLibraryUpdated, SourceLocal))
	return item, nil
}

func (s *Store) appendLocked(text, folder string) (types.LibraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadItems()
	item := types.LibraryItem{
		Text:      text,
		Timestamp: s.uniqueTimestamp(items),
		Folder:    folder,
		Favorite:  false,
		Tags:      []string{},
	}
	if err := s.saveItems(append(items, item)); err != nil {
		return types.LibraryItem{}, err
	}
	s.logger.Debug("item saved", "timestamp", item.Timestamp, "folder", folder)
	return item, nil
}

// uniqueTimestamp returns the current instant in TimestampLayout, advanced
// one millisecond at a time past any timestamp already in items.
func (s *Store) uniqueTimestamp(items []types.LibraryItem) string {
	taken := make(map[string]bool, len(items))
	for _, it := range items {
		taken[it.Timestamp] = true
	}
	t := s.now().UTC().Truncate(time.Millisecond)
	for {
		ts := types.FormatTimestamp(t)
		if !taken[ts] {
			return ts
		}
		t = t.Add(time.Millisecond)
	}
}

// Find returns the first item with timestamp.
func (s *Store) Find(timestamp string) (types.LibraryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadItems()
	if i := indexOf(items, timestamp); i >= 0 {
		return items[i], true
	}
	return types.LibraryItem{}, false
}

// SetTitle retitles the first item with timestamp. A blank title falls back
// to DefaultTitle. Unknown timestamps are ignored.
func (s *Store) SetTitle(timestamp, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		title = types.DefaultTitle
	}
	return s.update(timestamp, func(it *types.LibraryItem) {
		it.Title = title
	})
}

// MoveToFolder files the first item with timestamp under folder and returns
// the view for folder, which is what the caller should display next.
// Unknown timestamps leave storage untouched.
func (s *Store) MoveToFolder(timestamp, folder string) ([]types.LibraryItem, error) {
	folder = strings.TrimSpace(folder)
	if types.IsReservedFolder(folder) {
		return nil, types.ErrReservedFolder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadItems()
	if i := indexOf(items, timestamp); i >= 0 {
		items[i].Folder = folder
		if err := s.saveItems(items); err != nil {
			return nil, err
		}
		s.logger.Debug("item moved", "timestamp", timestamp, "folder", folder)
	}
	return project(items, folder), nil
}

// ToggleFavorite flips the favorite flag of the first item with timestamp.
// Unknown timestamps are ignored.
func (s *Store) ToggleFavorite(timestamp string) error {
	return s.update(timestamp, func(it *types.LibraryItem) {
		it.Favorite = !it.Favorite
	})
}

// DeleteItem removes every item with timestamp. The collection is persisted
// even when nothing matched.
func (s *Store) DeleteItem(timestamp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadItems()
	kept := items[:0]
	for _, it := range items {
		if it.Timestamp != timestamp {
			kept = append(kept, it)
		}
	}
	if err := s.saveItems(kept); err != nil {
		return err
	}
	s.logger.Debug("item deleted", "timestamp", timestamp, "removed", len(items)-len(kept))
	return nil
}

// ClearAll erases every item once the Confirmer approves. The folder
// registry is kept. It reports whether anything was cleared.
func (s *Store) ClearAll() (bool, error) {
	if !s.confirm.Confirm(ClearPrompt) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Remove(types.KeyLibrary); err != nil {
		return false, fmt.Errorf("clearing library: %w", err)
	}
	s.logger.Debug("library cleared")
	return true, nil
}

// update applies fn to the first item with timestamp and persists. It does
// nothing when no item matches.
func (s *Store) update(timestamp string, fn func(*types.LibraryItem)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadItems()
	i := indexOf(items, timestamp)
	if i < 0 {
		return nil
	}
	fn(&items[i])
	return s.saveItems(items)
}

func indexOf(items []types.LibraryItem, timestamp string) int {
	for i, it := range items {
		if it.Timestamp == timestamp {
			return i
		}
	}
	return -1
}
