package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/storage"
)

// LabelStore is the label catalog. Stripping a deleted label from the
// notes and tasks that reference it is orchestrated by the handler
// layer, which owns all three stores.
type LabelStore struct {
	mu     sync.RWMutex
	file   *storage.File
	labels []domain.Label
	log    zerolog.Logger
}

func NewLabelStore(file *storage.File, log zerolog.Logger) (*LabelStore, error) {
	s := &LabelStore{file: file, log: log.With().Str("store", "labels").Logger()}
	if err := file.Load(&s.labels); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LabelStore) Add(name, color string) (domain.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := domain.Label{ID: uuid.NewString(), Name: name, Color: color}
	next := make([]domain.Label, 0, len(s.labels)+1)
	next = append(next, s.labels...)
	next = append(next, l)
	if err := s.commit(next); err != nil {
		return domain.Label{}, err
	}
	return l, nil
}

func (s *LabelStore) Update(id string, name, color *string) (domain.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Label{}, ErrLabelNotFound
	}

	l := s.labels[i]
	if name != nil {
		l.Name = *name
	}
	if color != nil {
		l.Color = *color
	}

	next := make([]domain.Label, len(s.labels))
	copy(next, s.labels)
	next[i] = l
	if err := s.commit(next); err != nil {
		return domain.Label{}, err
	}
	return l, nil
}

func (s *LabelStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrLabelNotFound
	}

	next := make([]domain.Label, 0, len(s.labels)-1)
	next = append(next, s.labels[:i]...)
	next = append(next, s.labels[i+1:]...)
	return s.commit(next)
}

func (s *LabelStore) Get(id string) (domain.Label, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.labels[i], true
	}
	return domain.Label{}, false
}

func (s *LabelStore) All() []domain.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Label, len(s.labels))
	copy(out, s.labels)
	return out
}

func (s *LabelStore) indexOf(id string) int {
	for i, l := range s.labels {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s *LabelStore) commit(next []domain.Label) error {
	if err := s.file.Save(next); err != nil {
		return fmt.Errorf("persist labels: %w", err)
	}
	s.labels = next
	return nil
}
