package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/storage"
)

const defaultRecentLimit = 10

// NoteStore owns the note collection. Folder references are plain ids;
// validating that a destination folder exists is the move workflow's
// job, the store itself stays permissive.
type NoteStore struct {
	mu    sync.RWMutex
	file  *storage.File
	notes []domain.Note
	log   zerolog.Logger
}

func NewNoteStore(file *storage.File, log zerolog.Logger) (*NoteStore, error) {
	s := &NoteStore{file: file, log: log.With().Str("store", "notes").Logger()}
	if err := file.Load(&s.notes); err != nil {
		return nil, err
	}
	return s, nil
}

// Add creates a note from the draft and returns the stored record, so
// callers never have to re-read the collection to learn the new id.
func (s *NoteStore) Add(draft domain.NoteDraft) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	n := domain.Note{
		ID:        uuid.NewString(),
		Title:     draft.Title,
		Content:   draft.Content,
		Labels:    append([]string(nil), draft.Labels...),
		FolderID:  draft.FolderID,
		Starred:   draft.Starred,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if n.Labels == nil {
		n.Labels = []string{}
	}

	next := make([]domain.Note, 0, len(s.notes)+1)
	next = append(next, s.notes...)
	next = append(next, n)
	if err := s.commit(next); err != nil {
		return domain.Note{}, err
	}
	s.log.Debug().Str("id", n.ID).Msg("note created")
	return n, nil
}

func (s *NoteStore) Update(id string, upd domain.NoteUpdate) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Note{}, ErrNoteNotFound
	}

	n := s.notes[i]
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.Labels != nil {
		n.Labels = append([]string{}, (*upd.Labels)...)
	}
	if upd.Starred != nil {
		n.Starred = *upd.Starred
	}
	if upd.Folder != nil {
		n.FolderID = upd.Folder.ID
	}
	n.UpdatedAt = time.Now()

	next := make([]domain.Note, len(s.notes))
	copy(next, s.notes)
	next[i] = n
	if err := s.commit(next); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

func (s *NoteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNoteNotFound
	}

	next := make([]domain.Note, 0, len(s.notes)-1)
	next = append(next, s.notes[:i]...)
	next = append(next, s.notes[i+1:]...)
	if err := s.commit(next); err != nil {
		return err
	}
	s.log.Debug().Str("id", id).Msg("note deleted")
	return nil
}

func (s *NoteStore) Get(id string) (domain.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.notes[i], true
	}
	return domain.Note{}, false
}

func (s *NoteStore) All() []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// ByFolder filters on exact folder equality. A nil folderID selects
// the unfiled bucket, which is a real bucket and not an error.
func (s *NoteStore) ByFolder(folderID *string) []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Note
	for _, n := range s.notes {
		if sameRef(n.FolderID, folderID) {
			out = append(out, n)
		}
	}
	return out
}

func (s *NoteStore) Starred() []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Note
	for _, n := range s.notes {
		if n.Starred {
			out = append(out, n)
		}
	}
	return out
}

// Recent returns the most recently updated notes, newest first. A
// non-positive limit falls back to the default of 10.
func (s *NoteStore) Recent(limit int) []domain.Note {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Search is a case-insensitive substring match against title or
// content, markup included. The empty query matches every note.
func (s *NoteStore) Search(query string) []domain.Note {
	q := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Note
	for _, n := range s.notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// Move reassigns the note to a folder (nil = unfiled) and refreshes
// its updated timestamp.
func (s *NoteStore) Move(id string, folderID *string) (domain.Note, error) {
	return s.Update(id, domain.NoteUpdate{Folder: &domain.ParentRef{ID: folderID}})
}

// Unfile moves every note filed under one of the given folders to the
// unfiled bucket. Used when a folder subtree is deleted. Returns how
// many notes were reassigned.
func (s *NoteStore) Unfile(folderIDs []string) (int, error) {
	if len(folderIDs) == 0 {
		return 0, nil
	}
	gone := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		gone[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moved := 0
	next := make([]domain.Note, len(s.notes))
	copy(next, s.notes)
	now := time.Now()
	for i, n := range next {
		if n.FolderID != nil && gone[*n.FolderID] {
			next[i].FolderID = nil
			next[i].UpdatedAt = now
			moved++
		}
	}
	if moved == 0 {
		return 0, nil
	}
	if err := s.commit(next); err != nil {
		return 0, err
	}
	return moved, nil
}

// RemoveLabel strips a deleted label's id from every note.
func (s *NoteStore) RemoveLabel(labelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	next := make([]domain.Note, len(s.notes))
	copy(next, s.notes)
	for i, n := range next {
		filtered := withoutLabel(n.Labels, labelID)
		if len(filtered) != len(n.Labels) {
			next[i].Labels = filtered
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.commit(next)
}

func (s *NoteStore) indexOf(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *NoteStore) commit(next []domain.Note) error {
	if err := s.file.Save(next); err != nil {
		return fmt.Errorf("persist notes: %w", err)
	}
	s.notes = next
	return nil
}

func withoutLabel(labels []string, labelID string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != labelID {
			out = append(out, l)
		}
	}
	return out
}
