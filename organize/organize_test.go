package organize

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/storage"
	"github.com/nextnote/nextnote-server/store"
)

func newService(t *testing.T) (*Service, *store.FolderStore, *store.NoteStore) {
	t.Helper()
	dir := t.TempDir()

	folderFile, err := storage.NewFile(dir, "folders")
	require.NoError(t, err)
	folders, err := store.NewFolderStore(folderFile, zerolog.Nop())
	require.NoError(t, err)

	noteFile, err := storage.NewFile(dir, "notes")
	require.NoError(t, err)
	notes, err := store.NewNoteStore(noteFile, zerolog.Nop())
	require.NoError(t, err)

	return NewService(folders, notes), folders, notes
}

func TestTreeShape(t *testing.T) {
	svc, folders, notes := newService(t)

	work, err := folders.Add("Work", nil, "#111111")
	require.NoError(t, err)
	projects, err := folders.Add("Projects", &work.ID, "#222222")
	require.NoError(t, err)
	_, err = folders.Add("Archive", &projects.ID, "#333333")
	require.NoError(t, err)
	_, err = folders.Add("Personal", nil, "#444444")
	require.NoError(t, err)

	_, err = notes.Add(domain.NoteDraft{Title: "Plan", FolderID: &projects.ID})
	require.NoError(t, err)

	tree := svc.Tree()
	require.Len(t, tree, 2, "two root folders")

	var workNode TreeNode
	for _, n := range tree {
		if n.Folder.ID == work.ID {
			workNode = n
		}
	}
	require.Equal(t, work.ID, workNode.Folder.ID)
	assert.Equal(t, 0, workNode.Depth)
	assert.Equal(t, "", workNode.Breadcrumb)
	assert.Equal(t, 1, workNode.ChildCount)

	require.Len(t, workNode.Children, 1)
	projNode := workNode.Children[0]
	assert.Equal(t, 1, projNode.Depth)
	assert.Equal(t, "Work", projNode.Breadcrumb)
	assert.Equal(t, 1, projNode.NoteCount)
	assert.Equal(t, 1, projNode.ChildCount)

	require.Len(t, projNode.Children, 1)
	assert.Equal(t, "Work / Projects", projNode.Children[0].Breadcrumb)
	assert.Equal(t, 2, projNode.Children[0].Depth)
}

func TestDestinations(t *testing.T) {
	svc, folders, notes := newService(t)

	work, err := folders.Add("Work", nil, "")
	require.NoError(t, err)
	_, err = folders.Add("Personal", nil, "")
	require.NoError(t, err)
	_, err = notes.Add(domain.NoteDraft{Title: "Unfiled one"})
	require.NoError(t, err)

	all := svc.Destinations("")
	require.Len(t, all, 3)
	assert.Nil(t, all[0].ID)
	assert.Equal(t, AllNotesName, all[0].Name)
	assert.Equal(t, 1, all[0].NoteCount)

	filtered := svc.Destinations("wor")
	require.Len(t, filtered, 2, "synthetic entry plus the matching folder")
	assert.Equal(t, AllNotesName, filtered[0].Name)
	require.NotNil(t, filtered[1].ID)
	assert.Equal(t, work.ID, *filtered[1].ID)
}

func TestCreateDestinationIsImmediatelySelectable(t *testing.T) {
	svc, _, _ := newService(t)

	f, err := svc.CreateDestination("Inbox")
	require.NoError(t, err)
	assert.Equal(t, defaultFolderColor, f.Color)
	assert.Nil(t, f.ParentID)

	dests := svc.Destinations("inbox")
	require.Len(t, dests, 2)
	require.NotNil(t, dests[1].ID)
	assert.Equal(t, f.ID, *dests[1].ID)
}

func TestMoveValidatesDestination(t *testing.T) {
	svc, _, notes := newService(t)

	n, err := notes.Add(domain.NoteDraft{Title: "Floating"})
	require.NoError(t, err)

	_, err = svc.Move(n.ID, strptr("no-such-folder"))
	assert.ErrorIs(t, err, store.ErrFolderNotFound)

	got, ok := notes.Get(n.ID)
	require.True(t, ok)
	assert.Nil(t, got.FolderID, "failed move leaves the note where it was")
}

func TestMoveBlocksNoop(t *testing.T) {
	svc, folders, notes := newService(t)

	f, err := folders.Add("Work", nil, "")
	require.NoError(t, err)
	n, err := notes.Add(domain.NoteDraft{Title: "Settled", FolderID: &f.ID})
	require.NoError(t, err)

	_, err = svc.Move(n.ID, &f.ID)
	assert.ErrorIs(t, err, ErrNoopMove)

	unfiled, err := notes.Add(domain.NoteDraft{Title: "Loose"})
	require.NoError(t, err)
	_, err = svc.Move(unfiled.ID, nil)
	assert.ErrorIs(t, err, ErrNoopMove, "unfiled to unfiled is also a noop")
}

func TestMoveHappyPath(t *testing.T) {
	svc, folders, notes := newService(t)

	f, err := folders.Add("Target", nil, "")
	require.NoError(t, err)
	n, err := notes.Add(domain.NoteDraft{Title: "Mover"})
	require.NoError(t, err)

	moved, err := svc.Move(n.ID, &f.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.FolderID)
	assert.Equal(t, f.ID, *moved.FolderID)

	_, err = svc.Move(n.ID, strptr("missing"))
	require.Error(t, err)

	back, err := svc.Move(n.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, back.FolderID)
}

func strptr(s string) *string { return &s }
