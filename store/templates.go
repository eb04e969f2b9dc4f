package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/storage"
)

// TemplateStore holds the template catalog. The built-in blueprints are
// seeded into an empty snapshot on first load and guarded against
// direct mutation; user templates share the collection but carry
// BuiltIn=false.
type TemplateStore struct {
	mu        sync.RWMutex
	file      *storage.File
	templates []domain.Template
	log       zerolog.Logger
}

func NewTemplateStore(file *storage.File, log zerolog.Logger) (*TemplateStore, error) {
	s := &TemplateStore{file: file, log: log.With().Str("store", "templates").Logger()}
	if err := file.Load(&s.templates); err != nil {
		return nil, err
	}
	if len(s.templates) == 0 {
		seeded := builtInTemplates()
		if err := s.commit(seeded); err != nil {
			return nil, err
		}
		s.log.Info().Int("count", len(seeded)).Msg("seeded built-in templates")
	}
	return s, nil
}

func (s *TemplateStore) All() []domain.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *TemplateStore) ByCategory(category domain.TemplateCategory) []domain.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Template
	for _, t := range s.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Search matches name, description or any tag, case-insensitively.
func (s *TemplateStore) Search(query string) []domain.Template {
	q := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Template
	for _, t := range s.templates {
		if templateMatches(t, q) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TemplateStore) Get(id string) (domain.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.templates[i], true
	}
	return domain.Template{}, false
}

func (s *TemplateStore) Add(draft domain.TemplateDraft) (domain.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	t := domain.Template{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Category:    draft.Category,
		Icon:        draft.Icon,
		Content:     draft.Content,
		Tags:        append([]string(nil), draft.Tags...),
		IsPublic:    draft.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}

	next := make([]domain.Template, 0, len(s.templates)+1)
	next = append(next, s.templates...)
	next = append(next, t)
	if err := s.commit(next); err != nil {
		return domain.Template{}, err
	}
	return t, nil
}

func (s *TemplateStore) Update(id string, upd domain.TemplateUpdate) (domain.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Template{}, ErrTemplateNotFound
	}
	if s.templates[i].BuiltIn {
		return domain.Template{}, ErrBuiltInTemplate
	}

	t := s.templates[i]
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Category != nil {
		t.Category = *upd.Category
	}
	if upd.Icon != nil {
		t.Icon = *upd.Icon
	}
	if upd.Content != nil {
		t.Content = *upd.Content
	}
	if upd.Tags != nil {
		t.Tags = append([]string{}, (*upd.Tags)...)
	}
	if upd.IsPublic != nil {
		t.IsPublic = *upd.IsPublic
	}
	t.UpdatedAt = time.Now()

	next := make([]domain.Template, len(s.templates))
	copy(next, s.templates)
	next[i] = t
	if err := s.commit(next); err != nil {
		return domain.Template{}, err
	}
	return t, nil
}

func (s *TemplateStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrTemplateNotFound
	}
	if s.templates[i].BuiltIn {
		return ErrBuiltInTemplate
	}

	next := make([]domain.Template, 0, len(s.templates)-1)
	next = append(next, s.templates[:i]...)
	next = append(next, s.templates[i+1:]...)
	return s.commit(next)
}

// Use records one use of the template and returns it. The caller
// copies Content into a new note as-is; placeholder tokens stay
// literal.
func (s *TemplateStore) Use(id string) (domain.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Template{}, ErrTemplateNotFound
	}

	next := make([]domain.Template, len(s.templates))
	copy(next, s.templates)
	next[i].UsageCount++
	if err := s.commit(next); err != nil {
		return domain.Template{}, err
	}
	return next[i], nil
}

func (s *TemplateStore) indexOf(id string) int {
	for i, t := range s.templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TemplateStore) commit(next []domain.Template) error {
	if err := s.file.Save(next); err != nil {
		return fmt.Errorf("persist templates: %w", err)
	}
	s.templates = next
	return nil
}

func templateMatches(t domain.Template, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
