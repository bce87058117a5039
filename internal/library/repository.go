package library

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// LoadItems returns the persisted collection. Absent, unparseable, or
// mis-shaped data yields an empty slice; LoadItems never fails.
func (s *Store) LoadItems() []types.LibraryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadItems()
}

// SaveItems replaces the persisted collection with items.
func (s *Store) SaveItems(items []types.LibraryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveItems(items)
}

// LoadFolders returns the folder registry. The result always contains
// Uncategorized and never contains Favorites.
func (s *Store) LoadFolders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadFolders()
}

// SaveFolders replaces the persisted folder registry.
func (s *Store) SaveFolders(folders []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveFolders(folders)
}

func (s *Store) loadItems() []types.LibraryItem {
	items := []types.LibraryItem{}
	raw, ok := s.read(types.KeyLibrary)
	if !ok {
		return items
	}
	if err := compileSchemas(); err != nil {
		s.logger.Error("library schema unavailable", "error", err)
		return items
	}
	var decoded []types.LibraryItem
	if err := decodeValidated(itemsSchema, raw, &decoded); err != nil {
		s.logger.Warn("discarding malformed library", "error", err)
		return items
	}
	return append(items, decoded...)
}

func (s *Store) saveItems(items []types.LibraryItem) error {
	if items == nil {
		items = []types.LibraryItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding library: %w", err)
	}
	if err := s.storage.Set(types.KeyLibrary, string(data)); err != nil {
		return fmt.Errorf("saving library: %w", err)
	}
	return nil
}

func (s *Store) loadFolders() []string {
	folders := []string{}
	if raw, ok := s.read(types.KeyFolderList); ok {
		var decoded []string
		if err := compileSchemas(); err != nil {
			s.logger.Error("folder schema unavailable", "error", err)
		} else if err := decodeValidated(foldersSchema, raw, &decoded); err != nil {
			s.logger.Warn("discarding malformed folder list", "error", err)
		} else {
			for _, f := range decoded {
				if types.IsReservedFolder(f) {
					continue
				}
				folders = append(folders, f)
			}
		}
	}
	folders = dedupe(folders)
	if !slices.Contains(folders, types.FolderUncategorized) {
		folders = append(folders, types.FolderUncategorized)
	}
	return folders
}

func (s *Store) saveFolders(folders []string) error {
	if folders == nil {
		folders = []string{}
	}
	data, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("encoding folder list: %w", err)
	}
	if err := s.storage.Set(types.KeyFolderList, string(data)); err != nil {
		return fmt.Errorf("saving folder list: %w", err)
	}
	return nil
}

// read fetches key, treating storage failures as absence.
func (s *Store) read(key string) (string, bool) {
	raw, ok, err := s.storage.Get(key)
	if err != nil {
		s.logger.Warn("storage read failed", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}
