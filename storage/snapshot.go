package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Version is the current snapshot schema version. Snapshots written
// before versioning existed are bare JSON arrays and load as version 0.
const Version = 1

type envelope struct {
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

// File persists one collection as a JSON snapshot under its own
// namespace in the data directory. Writes go through a temp file and a
// rename so a crash mid-write never corrupts the previous snapshot.
type File struct {
	path string
}

func NewFile(dataDir, namespace string) (*File, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{path: filepath.Join(dataDir, namespace+".json")}, nil
}

// Load reads the snapshot into records, which must be a pointer to a
// slice. A missing file leaves records untouched. Legacy snapshots
// (a bare array with no envelope) are accepted and upgraded on the
// next Save.
func (f *File) Load(records any) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read snapshot %s: %w", f.path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, records); err != nil {
			return fmt.Errorf("parse legacy snapshot %s: %w", f.path, err)
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", f.path, err)
	}
	if env.Version > Version {
		return fmt.Errorf("snapshot %s has version %d, this build understands up to %d", f.path, env.Version, Version)
	}
	if len(env.Records) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Records, records); err != nil {
		return fmt.Errorf("parse snapshot records %s: %w", f.path, err)
	}
	return nil
}

// Save writes the full collection back under the current version.
func (f *File) Save(records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode snapshot records: %w", err)
	}

	data, err := json.Marshal(envelope{Version: Version, Records: raw})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
