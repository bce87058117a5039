package library

import (
	"slices"
	"strings"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// EffectiveFolders returns the folders to display: Favorites first, then
// the declared registry, then any folder used by an item but not declared.
// Names are de-duplicated, blanks are dropped, and Uncategorized is always
// present.
func (s *Store) EffectiveFolders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders := s.loadFolders()
	items := s.loadItems()

	candidates := make([]string, 0, 1+len(folders)+len(items))
	candidates = append(candidates, types.FolderFavorites)
	candidates = append(candidates, folders...)
	for _, it := range items {
		candidates = append(candidates, it.EffectiveFolder())
	}
	candidates = append(candidates, types.FolderUncategorized)
	return dedupe(candidates)
}

// FolderOptions returns the folders an item can be moved to: Uncategorized
// first, then the declared registry.
func (s *Store) FolderOptions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders := s.loadFolders()
	return dedupe(append([]string{types.FolderUncategorized}, folders...))
}

// CreateFolder declares a folder. Blank names return ErrInvalidName and
// Favorites returns ErrReservedFolder. Declaring an existing folder is a
// no-op.
func (s *Store) CreateFolder(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.ErrInvalidName
	}
	if types.IsReservedFolder(name) {
		return types.ErrReservedFolder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folders := s.loadFolders()
	if slices.Contains(folders, name) {
		return nil
	}
	if err := s.saveFolders(append(folders, name)); err != nil {
		return err
	}
	s.logger.Debug("folder created", "folder", name)
	return nil
}

// DeleteFolder removes name from the registry and reassigns its items to
// Uncategorized. name is matched exactly, surrounding whitespace included,
// so folders stored with stray spaces can still be deleted. Items are never
// deleted. Blank names and Favorites are rejected without touching storage.
func (s *Store) DeleteFolder(name string) error {
	if strings.TrimSpace(name) == "" {
		return types.ErrInvalidName
	}
	if types.IsReservedFolder(strings.TrimSpace(name)) {
		return types.ErrReservedFolder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folders := slices.DeleteFunc(s.loadFolders(), func(f string) bool { return f == name })
	if err := s.saveFolders(folders); err != nil {
		return err
	}

	items := s.loadItems()
	moved := 0
	for i := range items {
		if items[i].Folder == name {
			items[i].Folder = types.FolderUncategorized
			moved++
		}
	}
	if err := s.saveItems(items); err != nil {
		return err
	}
	s.logger.Debug("folder deleted", "folder", name, "reassigned", moved)
	return nil
}

// dedupe keeps the first occurrence of each non-blank name.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
