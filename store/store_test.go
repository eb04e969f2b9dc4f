package store

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nextnote/nextnote-server/storage"
)

func testFile(t *testing.T, dir, namespace string) *storage.File {
	t.Helper()
	f, err := storage.NewFile(dir, namespace)
	require.NoError(t, err)
	return f
}

func newFolderStore(t *testing.T, dir string) *FolderStore {
	t.Helper()
	s, err := NewFolderStore(testFile(t, dir, "folders"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func newNoteStore(t *testing.T, dir string) *NoteStore {
	t.Helper()
	s, err := NewNoteStore(testFile(t, dir, "notes"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func newTaskStore(t *testing.T, dir string) *TaskStore {
	t.Helper()
	s, err := NewTaskStore(testFile(t, dir, "tasks"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func newTemplateStore(t *testing.T, dir string) *TemplateStore {
	t.Helper()
	s, err := NewTemplateStore(testFile(t, dir, "templates"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func newLabelStore(t *testing.T, dir string) *LabelStore {
	t.Helper()
	s, err := NewLabelStore(testFile(t, dir, "labels"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func strptr(s string) *string { return &s }
