package library

import "github.com/mesh-intelligence/scriptbox/pkg/types"

// EmptyViewMessage is shown when a view has no items.
const EmptyViewMessage = "No saved items yet."

// ResolveSelector maps an empty selector to Uncategorized. There is no
// "show all" view.
func ResolveSelector(selector string) string {
	if selector == "" {
		return types.FolderUncategorized
	}
	return selector
}

// SelectView returns the items shown for selector, in collection order.
// Favorites selects favorited items across all folders; any other name
// selects items filed under it. Unknown folders yield an empty slice.
func (s *Store) SelectView(selector string) []types.LibraryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return project(s.loadItems(), selector)
}

func project(items []types.LibraryItem, selector string) []types.LibraryItem {
	selector = ResolveSelector(selector)
	out := []types.LibraryItem{}
	for _, it := range items {
		if selector == types.FolderFavorites {
			if it.Favorite {
				out = append(out, it)
			}
			continue
		}
		if it.EffectiveFolder() == selector {
			out = append(out, it)
		}
	}
	return out
}
