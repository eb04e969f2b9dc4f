package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f, err := NewFile(t.TempDir(), "notes")
	require.NoError(t, err)

	in := []record{{ID: "1", Name: "first"}, {ID: "2", Name: "second"}}
	require.NoError(t, f.Save(in))

	var out []record
	require.NoError(t, f.Load(&out))
	assert.Equal(t, in, out)
}

func TestLoadMissingFile(t *testing.T) {
	f, err := NewFile(t.TempDir(), "tasks")
	require.NoError(t, err)

	var out []record
	require.NoError(t, f.Load(&out))
	assert.Empty(t, out)
}

func TestLoadLegacyArraySnapshot(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"id":"1","name":"from before versioning"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "folders.json"), []byte(legacy), 0644))

	f, err := NewFile(dir, "folders")
	require.NoError(t, err)

	var out []record
	require.NoError(t, f.Load(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "from before versioning", out[0].Name)

	// Next save rewrites the snapshot in the versioned envelope.
	require.NoError(t, f.Save(out))
	data, err := os.ReadFile(filepath.Join(dir, "folders.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":1`)
}

func TestLoadRejectsFutureVersion(t *testing.T) {
	dir := t.TempDir()
	future := `{"version":99,"records":[]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "labels.json"), []byte(future), 0644))

	f, err := NewFile(dir, "labels")
	require.NoError(t, err)

	var out []record
	assert.Error(t, f.Load(&out))
}
