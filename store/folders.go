package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/storage"
)

// FolderStore owns the flat folder list and the tree-shaped queries
// over it. Mutations replace the backing slice (copy-on-write) and
// persist the full collection, so slices handed out by queries are
// never aliased by later writes.
type FolderStore struct {
	mu      sync.RWMutex
	file    *storage.File
	folders []domain.Folder
	log     zerolog.Logger
}

func NewFolderStore(file *storage.File, log zerolog.Logger) (*FolderStore, error) {
	s := &FolderStore{file: file, log: log.With().Str("store", "folders").Logger()}
	if err := file.Load(&s.folders); err != nil {
		return nil, err
	}
	return s, nil
}

// Add creates a folder and returns the stored record, including the
// generated id and slug.
func (s *FolderStore) Add(name string, parentID *string, color string) (domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if parentID != nil && s.indexOf(*parentID) < 0 {
		return domain.Folder{}, fmt.Errorf("parent %s: %w", *parentID, ErrFolderNotFound)
	}

	now := time.Now()
	f := domain.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slugify(name),
		Color:     color,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := make([]domain.Folder, 0, len(s.folders)+1)
	next = append(next, s.folders...)
	next = append(next, f)
	if err := s.commit(next); err != nil {
		return domain.Folder{}, err
	}
	s.log.Debug().Str("id", f.ID).Str("slug", f.Slug).Msg("folder created")
	return f, nil
}

// Update merges the partial fields into the folder. A name change
// regenerates the slug. Reparenting walks the proposed ancestor chain
// first and rejects anything that would close a cycle.
func (s *FolderStore) Update(id string, upd domain.FolderUpdate) (domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Folder{}, ErrFolderNotFound
	}

	f := s.folders[i]
	if upd.Name != nil {
		f.Name = *upd.Name
		f.Slug = slugify(*upd.Name)
	}
	if upd.Color != nil {
		f.Color = *upd.Color
	}
	if upd.Parent != nil {
		if err := s.checkAcyclic(id, upd.Parent.ID); err != nil {
			return domain.Folder{}, err
		}
		f.ParentID = upd.Parent.ID
	}
	f.UpdatedAt = time.Now()

	next := make([]domain.Folder, len(s.folders))
	copy(next, s.folders)
	next[i] = f
	if err := s.commit(next); err != nil {
		return domain.Folder{}, err
	}
	return f, nil
}

// Delete removes the folder and, cascading, every descendant folder.
// It returns the ids of all removed folders so the caller can reassign
// the notes filed under them to the unfiled bucket.
func (s *FolderStore) Delete(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return nil, ErrFolderNotFound
	}

	removed := map[string]bool{id: true}
	// The tree only links child to parent, so sweep until no new
	// descendants turn up.
	for {
		grew := false
		for _, f := range s.folders {
			if f.ParentID != nil && removed[*f.ParentID] && !removed[f.ID] {
				removed[f.ID] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	next := make([]domain.Folder, 0, len(s.folders)-len(removed))
	ids := make([]string, 0, len(removed))
	for _, f := range s.folders {
		if removed[f.ID] {
			ids = append(ids, f.ID)
			continue
		}
		next = append(next, f)
	}
	if err := s.commit(next); err != nil {
		return nil, err
	}
	s.log.Debug().Str("id", id).Int("removed", len(ids)).Msg("folder deleted")
	return ids, nil
}

func (s *FolderStore) Get(id string) (domain.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.folders[i], true
	}
	return domain.Folder{}, false
}

// BySlug returns the first folder with the given slug. Duplicate slugs
// are permitted, so "first" is creation order.
func (s *FolderStore) BySlug(slug string) (domain.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.folders {
		if f.Slug == slug {
			return f, true
		}
	}
	return domain.Folder{}, false
}

func (s *FolderStore) All() []domain.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Folder, len(s.folders))
	copy(out, s.folders)
	return out
}

// Subfolders returns the immediate children of parentID; nil selects
// the root-level folders. This is the primitive the tree view recurses
// on.
func (s *FolderStore) Subfolders(parentID *string) []domain.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Folder
	for _, f := range s.folders {
		if sameRef(f.ParentID, parentID) {
			out = append(out, f)
		}
	}
	return out
}

// Path walks parent links upward from the folder and returns the chain
// root-first, ending with the folder itself. If a parent reference
// cannot be resolved the walk stops there rather than failing, so a
// snapshot carrying orphaned folders still yields a (truncated) path.
func (s *FolderStore) Path(id string) ([]domain.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}

	var chain []domain.Folder
	seen := map[string]bool{}
	for i >= 0 && !seen[s.folders[i].ID] {
		f := s.folders[i]
		seen[f.ID] = true
		chain = append(chain, f)
		if f.ParentID == nil {
			break
		}
		i = s.indexOf(*f.ParentID)
	}

	// Reverse into root-first order.
	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}
	return chain, true
}

// checkAcyclic rejects a reparent when the proposed parent chain leads
// back to the folder being moved. The walk tracks visited folders so a
// cycle already present in a loaded snapshot terminates instead of
// spinning under the held lock. Caller holds the lock.
func (s *FolderStore) checkAcyclic(id string, parentID *string) error {
	seen := map[string]bool{id: true}
	for parentID != nil {
		if seen[*parentID] {
			return ErrFolderCycle
		}
		seen[*parentID] = true
		i := s.indexOf(*parentID)
		if i < 0 {
			return fmt.Errorf("parent %s: %w", *parentID, ErrFolderNotFound)
		}
		parentID = s.folders[i].ParentID
	}
	return nil
}

func (s *FolderStore) indexOf(id string) int {
	for i, f := range s.folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (s *FolderStore) commit(next []domain.Folder) error {
	if err := s.file.Save(next); err != nil {
		return fmt.Errorf("persist folders: %w", err)
	}
	s.folders = next
	return nil
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
