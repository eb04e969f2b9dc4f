package organize

import (
	"errors"
	"strings"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/store"
)

// AllNotesName labels the synthetic destination for the unfiled
// bucket.
const AllNotesName = "All Notes"

// defaultFolderColor is used for folders created inline during the
// move flow, where the picker offers no color choice.
const defaultFolderColor = "#8b5cf6"

// ErrNoopMove rejects confirming a move onto the note's current
// folder. The note store itself would accept it; the workflow blocks
// it so the confirm action mirrors the disabled state in the picker.
var ErrNoopMove = errors.New("note is already in that folder")

// Destination is one selectable target in the move picker. A nil ID is
// the synthetic "All Notes" entry for the unfiled bucket.
type Destination struct {
	ID         *string `json:"id"`
	Name       string  `json:"name"`
	Breadcrumb string  `json:"breadcrumb,omitempty"`
	NoteCount  int     `json:"note_count"`
}

// Destinations lists the move targets, filtered by a case-insensitive
// substring match on folder name. The "All Notes" entry is always
// present and always first.
func (s *Service) Destinations(filter string) []Destination {
	out := []Destination{{
		ID:        nil,
		Name:      AllNotesName,
		NoteCount: len(s.notes.ByFolder(nil)),
	}}

	q := strings.ToLower(filter)
	for _, f := range s.folders.All() {
		if q != "" && !strings.Contains(strings.ToLower(f.Name), q) {
			continue
		}
		id := f.ID
		out = append(out, Destination{
			ID:         &id,
			Name:       f.Name,
			Breadcrumb: s.breadcrumb(f.ID),
			NoteCount:  len(s.notes.ByFolder(&id)),
		})
	}
	return out
}

// CreateDestination creates a root-level folder mid-flow so it becomes
// immediately selectable, using the picker's fixed default color.
func (s *Service) CreateDestination(name string) (domain.Folder, error) {
	return s.folders.Add(name, nil, defaultFolderColor)
}

// Move reassigns the note. The destination must be an existing folder
// or nil for the unfiled bucket; moving into a nonexistent folder is an
// error rather than a silently hidden note.
func (s *Service) Move(noteID string, folderID *string) (domain.Note, error) {
	if folderID != nil {
		if _, ok := s.folders.Get(*folderID); !ok {
			return domain.Note{}, store.ErrFolderNotFound
		}
	}

	note, ok := s.notes.Get(noteID)
	if !ok {
		return domain.Note{}, store.ErrNoteNotFound
	}
	if sameFolder(note.FolderID, folderID) {
		return domain.Note{}, ErrNoopMove
	}

	return s.notes.Move(noteID, folderID)
}

func sameFolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
