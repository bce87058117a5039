package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

func TestAppendItem(t *testing.T) {
	s, _ := newTestStore(t)

	item, err := s.AppendItem("  Hello there  ", "")
	require.NoError(t, err)

	assert.Equal(t, "Hello there", item.Text, "text is stored trimmed")
	assert.Equal(t, types.FolderUncategorized, item.Folder)
	assert.Equal(t, "2024-05-01T10:00:00.000Z", item.Timestamp)
	assert.False(t, item.Favorite)
	assert.NotNil(t, item.Tags)
	assert.Empty(t, item.Tags)
	assert.Empty(t, item.Title)

	assert.Equal(t, []types.LibraryItem{item}, s.LoadItems())
}

func TestAppendItemPreservesOrderAndUniqueTimestamps(t *testing.T) {
	s, _ := newTestStore(t)

	inputs := []string{"one", "two", "three", "four", "five"}
	for _, in := range inputs {
		_, err := s.AppendItem(in, "Drafts")
		require.NoError(t, err)
	}

	items := s.LoadItems()
	require.Len(t, items, len(inputs))
	seen := map[string]bool{}
	for i, it := range items {
		assert.Equal(t, inputs[i], it.Text)
		assert.False(t, seen[it.Timestamp], "timestamp %s reused", it.Timestamp)
		seen[it.Timestamp] = true
	}
	assert.Equal(t, "2024-05-01T10:00:00.004Z", items[4].Timestamp)
}

func TestAppendItemSkipsExistingTimestamps(t *testing.T) {
	s, mem := newTestStore(t)
	seed(t, mem, types.KeyLibrary, `[{"text":"old","timestamp":"2024-05-01T10:00:00.000Z"}]`)

	item, err := s.AppendItem("new", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T10:00:00.001Z", item.Timestamp)
}

func TestAppendItemRejectsEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		s, mem := newTestStore(t)
		_, err := s.AppendItem("kept", "")
		require.NoError(t, err)
		before, _ := raw(t, mem, types.KeyLibrary)

		_, err = s.AppendItem(text, "Drafts")
		assert.ErrorIs(t, err, types.ErrEmptyText)

		after, _ := raw(t, mem, types.KeyLibrary)
		assert.Equal(t, before, after)
		assert.Len(t, s.LoadItems(), 1)
	}
}

func TestAppendItemRejectsFavoritesFolder(t *testing.T) {
	s, mem := newTestStore(t)

	_, err := s.AppendItem("text", types.FolderFavorites)
	assert.ErrorIs(t, err, types.ErrReservedFolder)

	_, ok := raw(t, mem, types.KeyLibrary)
	assert.False(t, ok)
}

func TestAppendItemPublishesLibraryUpdated(t *testing.T) {
	s, _ := newTestStore(t)

	var got []Event
	var seenItems int
	unsubscribe := s.Bus().Subscribe(func(e Event) {
		got = append(got, e)
		// A subscriber may read the library from inside the handler.
		seenItems = len(s.LoadItems())
	})

	_, err := s.AppendItem("hello", "")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, EventLibraryUpdated, got[0].Name)
	assert.Equal(t, SourceLocal, got[0].Source)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, 1, seenItems, "event is published after the write")

	unsubscribe()
	_, err = s.AppendItem("again", "")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = s.AppendItem(" ", "")
	require.Error(t, err)
	assert.Len(t, got, 1, "rejected appends publish nothing")
}

func TestSetTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "trimmed", title: "  Open house blurb ", want: "Open house blurb"},
		{name: "blank falls back", title: "   ", want: types.DefaultTitle},
		{name: "empty falls back", title: "", want: types.DefaultTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			item, err := s.AppendItem("body", "")
			require.NoError(t, err)

			require.NoError(t, s.SetTitle(item.Timestamp, tt.title))

			got, ok := s.Find(item.Timestamp)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Title)
		})
	}
}

func TestMissingTimestampIsSilentNoOp(t *testing.T) {
	s, mem := newTestStore(t)
	_, err := s.AppendItem("body", "Drafts")
	require.NoError(t, err)
	before, _ := raw(t, mem, types.KeyLibrary)

	assert.NoError(t, s.SetTitle("missing", "x"))
	assert.NoError(t, s.ToggleFavorite("missing"))
	view, err := s.MoveToFolder("missing", "Drafts")
	assert.NoError(t, err)
	assert.Len(t, view, 1, "view of the target folder is still returned")

	after, _ := raw(t, mem, types.KeyLibrary)
	assert.Equal(t, before, after)
}

func TestDuplicateTimestampsTouchFirstMatchOnly(t *testing.T) {
	s, mem := newTestStore(t)
	seed(t, mem, types.KeyLibrary, `[
		{"text":"first","timestamp":"dup"},
		{"text":"second","timestamp":"dup"},
		{"text":"other","timestamp":"x"}
	]`)

	require.NoError(t, s.SetTitle("dup", "Renamed"))
	require.NoError(t, s.ToggleFavorite("dup"))
	_, err := s.MoveToFolder("dup", "Work")
	require.NoError(t, err)

	items := s.LoadItems()
	require.Len(t, items, 3)
	assert.Equal(t, "Renamed", items[0].Title)
	assert.True(t, items[0].Favorite)
	assert.Equal(t, "Work", items[0].Folder)

	assert.Empty(t, items[1].Title)
	assert.False(t, items[1].Favorite)
	assert.Empty(t, items[1].Folder)

	found, ok := s.Find("dup")
	require.True(t, ok)
	assert.Equal(t, "first", found.Text)

	require.NoError(t, s.DeleteItem("dup"))
	assert.Equal(t, []string{"other"}, texts(s.LoadItems()), "delete removes every match")
}

func TestToggleFavorite(t *testing.T) {
	s, _ := newTestStore(t)
	a, err := s.AppendItem("a", "Drafts")
	require.NoError(t, err)
	b, err := s.AppendItem("b", "Work")
	require.NoError(t, err)
	_, err = s.AppendItem("c", "Work")
	require.NoError(t, err)

	require.NoError(t, s.ToggleFavorite(a.Timestamp))
	require.NoError(t, s.ToggleFavorite(b.Timestamp))
	assert.Equal(t, []string{"a", "b"}, texts(s.SelectView(types.FolderFavorites)))

	require.NoError(t, s.ToggleFavorite(a.Timestamp))
	got, _ := s.Find(a.Timestamp)
	assert.False(t, got.Favorite, "two toggles restore the original value")
	assert.Equal(t, []string{"b"}, texts(s.SelectView(types.FolderFavorites)))
}

func TestMoveToFolder(t *testing.T) {
	s, _ := newTestStore(t)
	a, err := s.AppendItem("a", "")
	require.NoError(t, err)
	_, err = s.AppendItem("b", "Work")
	require.NoError(t, err)

	view, err := s.MoveToFolder(a.Timestamp, "Work")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, texts(view), "returns the destination view")

	assert.Empty(t, s.SelectView(types.FolderUncategorized))
	assert.Equal(t, []string{"a", "b"}, texts(s.SelectView("Work")))
}

func TestMoveToFolderRejectsFavorites(t *testing.T) {
	s, _ := newTestStore(t)
	a, err := s.AppendItem("a", "")
	require.NoError(t, err)

	_, err = s.MoveToFolder(a.Timestamp, types.FolderFavorites)
	assert.ErrorIs(t, err, types.ErrReservedFolder)

	got, _ := s.Find(a.Timestamp)
	assert.Equal(t, types.FolderUncategorized, got.Folder)
}

func TestDeleteItem(t *testing.T) {
	s, _ := newTestStore(t)
	a, err := s.AppendItem("a", "")
	require.NoError(t, err)
	_, err = s.AppendItem("b", "")
	require.NoError(t, err)

	require.NoError(t, s.DeleteItem(a.Timestamp))
	assert.Equal(t, []string{"b"}, texts(s.LoadItems()))
}

func TestDeleteItemPersistsEvenWhenNothingMatches(t *testing.T) {
	s, mem := newTestStore(t)

	require.NoError(t, s.DeleteItem("missing"))

	v, ok := raw(t, mem, types.KeyLibrary)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestClearAll(t *testing.T) {
	t.Run("default confirmer declines", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.AppendItem("a", "")
		require.NoError(t, err)

		cleared, err := s.ClearAll()
		require.NoError(t, err)
		assert.False(t, cleared)
		assert.Len(t, s.LoadItems(), 1)
	})

	t.Run("declined", func(t *testing.T) {
		var asked string
		s, _ := newTestStore(t, WithConfirmer(ConfirmFunc(func(p string) bool {
			asked = p
			return false
		})))
		_, err := s.AppendItem("a", "")
		require.NoError(t, err)

		cleared, err := s.ClearAll()
		require.NoError(t, err)
		assert.False(t, cleared)
		assert.Equal(t, ClearPrompt, asked)
		assert.Len(t, s.LoadItems(), 1)
	})

	t.Run("confirmed keeps folders", func(t *testing.T) {
		s, mem := newTestStore(t, WithConfirmer(ConfirmFunc(func(string) bool { return true })))
		require.NoError(t, s.CreateFolder("Drafts"))
		_, err := s.AppendItem("a", "Drafts")
		require.NoError(t, err)

		cleared, err := s.ClearAll()
		require.NoError(t, err)
		assert.True(t, cleared)

		assert.Empty(t, s.LoadItems())
		_, ok := raw(t, mem, types.KeyLibrary)
		assert.False(t, ok)
		assert.Contains(t, s.LoadFolders(), "Drafts")
	})

	t.Run("storage failure", func(t *testing.T) {
		s := New(brokenStorage{}, WithConfirmer(ConfirmFunc(func(string) bool { return true })))
		cleared, err := s.ClearAll()
		assert.ErrorIs(t, err, errDisk)
		assert.False(t, cleared)
	})
}

func TestAppendThenCreateFolderScenario(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AppendItem("Hello", "Drafts")
	require.NoError(t, err)
	require.NoError(t, s.CreateFolder("Drafts"))
	require.NoError(t, s.CreateFolder("Drafts"), "redundant create is a no-op")

	folders := s.EffectiveFolders()
	assert.Contains(t, folders, "Drafts")
	assert.Contains(t, folders, types.FolderUncategorized)

	view := s.SelectView("Drafts")
	require.Len(t, view, 1)
	assert.Equal(t, "Hello", view[0].Text)
	assert.Equal(t, "Drafts", view[0].Folder)
	assert.False(t, view[0].Favorite)
}

func TestAppendItemUsesWallClockByDefault(t *testing.T) {
	mem := newMemoryStorage(t)
	s := New(mem)

	before := time.Now().UTC().Truncate(time.Millisecond)
	item, err := s.AppendItem("now", "")
	require.NoError(t, err)

	at := item.SavedAt()
	assert.False(t, at.Before(before))
	assert.WithinDuration(t, time.Now(), at, time.Minute)
}
