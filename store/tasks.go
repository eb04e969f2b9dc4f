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

// TaskStore mirrors the note CRUD shape for tasks. Status transitions
// are deliberately free-form.
type TaskStore struct {
	mu    sync.RWMutex
	file  *storage.File
	tasks []domain.Task
	log   zerolog.Logger
}

func NewTaskStore(file *storage.File, log zerolog.Logger) (*TaskStore, error) {
	s := &TaskStore{file: file, log: log.With().Str("store", "tasks").Logger()}
	if err := file.Load(&s.tasks); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TaskStore) Add(draft domain.TaskDraft) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	t := domain.Task{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Labels:      append([]string(nil), draft.Labels...),
		Starred:     draft.Starred,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}

	next := make([]domain.Task, 0, len(s.tasks)+1)
	next = append(next, s.tasks...)
	next = append(next, t)
	if err := s.commit(next); err != nil {
		return domain.Task{}, err
	}
	s.log.Debug().Str("id", t.ID).Msg("task created")
	return t, nil
}

func (s *TaskStore) Update(id string, upd domain.TaskUpdate) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, ErrTaskNotFound
	}

	t := s.tasks[i]
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.Labels != nil {
		t.Labels = append([]string{}, (*upd.Labels)...)
	}
	if upd.Starred != nil {
		t.Starred = *upd.Starred
	}
	t.UpdatedAt = time.Now()

	next := make([]domain.Task, len(s.tasks))
	copy(next, s.tasks)
	next[i] = t
	if err := s.commit(next); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (s *TaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrTaskNotFound
	}

	next := make([]domain.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	return s.commit(next)
}

func (s *TaskStore) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return domain.Task{}, false
}

func (s *TaskStore) All() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Starred() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Task
	for _, t := range s.tasks {
		if t.Starred {
			out = append(out, t)
		}
	}
	return out
}

// Archive returns tasks whose due date falls strictly before the
// calendar day of now. Tasks with no due date never archive.
func (s *TaskStore) Archive(now time.Time) []domain.Task {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Task
	for _, t := range s.tasks {
		if t.DueDate != nil && t.DueDate.Before(today) {
			out = append(out, t)
		}
	}
	return out
}

// Search is a case-insensitive substring match against title or
// description.
func (s *TaskStore) Search(query string) []domain.Task {
	q := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Task
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

// RemoveLabel strips a deleted label's id from every task.
func (s *TaskStore) RemoveLabel(labelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	next := make([]domain.Task, len(s.tasks))
	copy(next, s.tasks)
	for i, t := range next {
		filtered := withoutLabel(t.Labels, labelID)
		if len(filtered) != len(t.Labels) {
			next[i].Labels = filtered
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.commit(next)
}

func (s *TaskStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) commit(next []domain.Task) error {
	if err := s.file.Save(next); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	s.tasks = next
	return nil
}
