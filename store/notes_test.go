package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextnote/nextnote-server/domain"
)

func TestNoteAddReturnsRecord(t *testing.T) {
	s := newNoteStore(t, t.TempDir())

	n, err := s.Add(domain.NoteDraft{Title: "Plan", Content: "<p>ship it</p>"})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "Plan", n.Title)
	assert.False(t, n.CreatedAt.IsZero())

	got, ok := s.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, n.ID, got.ID)
}

func TestNoteMoveBetweenFolders(t *testing.T) {
	dir := t.TempDir()
	folders := newFolderStore(t, dir)
	notes := newNoteStore(t, dir)

	src, err := folders.Add("Source", nil, "")
	require.NoError(t, err)
	dst, err := folders.Add("Destination", nil, "")
	require.NoError(t, err)

	n, err := notes.Add(domain.NoteDraft{Title: "Plan", FolderID: &src.ID})
	require.NoError(t, err)

	moved, err := notes.Move(n.ID, &dst.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.FolderID)
	assert.Equal(t, dst.ID, *moved.FolderID)

	inDst := notes.ByFolder(&dst.ID)
	require.Len(t, inDst, 1)
	assert.Equal(t, n.ID, inDst[0].ID)
	assert.Empty(t, notes.ByFolder(&src.ID))
}

func TestNoteMoveToUnfiled(t *testing.T) {
	dir := t.TempDir()
	folders := newFolderStore(t, dir)
	notes := newNoteStore(t, dir)

	f, err := folders.Add("Work", nil, "")
	require.NoError(t, err)
	n, err := notes.Add(domain.NoteDraft{Title: "Loose", FolderID: &f.ID})
	require.NoError(t, err)

	moved, err := notes.Move(n.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, moved.FolderID)

	unfiled := notes.ByFolder(nil)
	require.Len(t, unfiled, 1)
	assert.Equal(t, n.ID, unfiled[0].ID)
}

func TestNoteSearch(t *testing.T) {
	s := newNoteStore(t, t.TempDir())

	_, err := s.Add(domain.NoteDraft{Title: "Groceries", Content: "<p>milk, eggs</p>"})
	require.NoError(t, err)
	_, err = s.Add(domain.NoteDraft{Title: "Plan", Content: "<p>Quarterly GOALS</p>"})
	require.NoError(t, err)

	assert.Len(t, s.Search("goals"), 1, "matches content case-insensitively")
	assert.Len(t, s.Search("GROC"), 1, "matches title case-insensitively")
	assert.Len(t, s.Search(""), 2, "empty query matches everything")
	assert.Empty(t, s.Search("nothing here"))
}

func TestNoteRecentOrderAndLimit(t *testing.T) {
	s := newNoteStore(t, t.TempDir())

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		n, err := s.Add(domain.NoteDraft{Title: title})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	// Touch the oldest note so it becomes the most recent.
	_, err := s.Update(ids[0], domain.NoteUpdate{Content: strptr("<p>edited</p>")})
	require.NoError(t, err)

	recent := s.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[0], recent[0].ID)
	assert.Equal(t, ids[2], recent[1].ID)

	assert.Len(t, s.Recent(0), 3, "default limit applies")
}

func TestNoteStarred(t *testing.T) {
	s := newNoteStore(t, t.TempDir())

	n, err := s.Add(domain.NoteDraft{Title: "Keep", Starred: true})
	require.NoError(t, err)
	_, err = s.Add(domain.NoteDraft{Title: "Meh"})
	require.NoError(t, err)

	starred := s.Starred()
	require.Len(t, starred, 1)
	assert.Equal(t, n.ID, starred[0].ID)
}

func TestNoteDeleteRemovesFromAllQueries(t *testing.T) {
	s := newNoteStore(t, t.TempDir())

	n, err := s.Add(domain.NoteDraft{Title: "Ephemeral", Content: "<p>gone soon</p>"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(n.ID))

	_, ok := s.Get(n.ID)
	assert.False(t, ok)
	assert.Empty(t, s.All())
	assert.Empty(t, s.Search("ephemeral"))
	assert.Empty(t, s.ByFolder(nil))

	assert.ErrorIs(t, s.Delete(n.ID), ErrNoteNotFound)
}

func TestNoteUnfile(t *testing.T) {
	dir := t.TempDir()
	folders := newFolderStore(t, dir)
	notes := newNoteStore(t, dir)

	f, err := folders.Add("Doomed", nil, "")
	require.NoError(t, err)
	n, err := notes.Add(domain.NoteDraft{Title: "Survivor", FolderID: &f.ID})
	require.NoError(t, err)
	keep, err := notes.Add(domain.NoteDraft{Title: "Elsewhere"})
	require.NoError(t, err)

	removed, err := folders.Delete(f.ID)
	require.NoError(t, err)
	moved, err := notes.Unfile(removed)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	got, ok := notes.Get(n.ID)
	require.True(t, ok)
	assert.Nil(t, got.FolderID)

	other, ok := notes.Get(keep.ID)
	require.True(t, ok)
	assert.Nil(t, other.FolderID)
	assert.Len(t, notes.ByFolder(nil), 2)
}

func TestNoteFolderRenameDoesNotBreakMembership(t *testing.T) {
	dir := t.TempDir()
	folders := newFolderStore(t, dir)
	notes := newNoteStore(t, dir)

	f, err := folders.Add("Work", nil, "")
	require.NoError(t, err)
	n, err := notes.Add(domain.NoteDraft{Title: "Attached", FolderID: &f.ID})
	require.NoError(t, err)

	_, err = folders.Update(f.ID, domain.FolderUpdate{Name: strptr("Work Stuff")})
	require.NoError(t, err)

	inFolder := notes.ByFolder(&f.ID)
	require.Len(t, inFolder, 1)
	assert.Equal(t, n.ID, inFolder[0].ID)
}

func TestNotePersistenceAcrossReload(t *testing.T) {
	dir := t.TempDir()
	s := newNoteStore(t, dir)

	n, err := s.Add(domain.NoteDraft{Title: "Durable", Content: "<p>hello</p>", Labels: []string{"l1"}})
	require.NoError(t, err)

	reloaded := newNoteStore(t, dir)
	got, ok := reloaded.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, "Durable", got.Title)
	assert.Equal(t, []string{"l1"}, got.Labels)
}
