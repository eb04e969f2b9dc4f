// Package dashboard composes the read-only aggregate view from the
// note, task and folder stores.
package dashboard

import (
	"time"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/store"
)

type Summary struct {
	NoteCount     int                       `json:"note_count"`
	FolderCount   int                       `json:"folder_count"`
	TaskCount     int                       `json:"task_count"`
	StarredNotes  int                       `json:"starred_notes"`
	TasksByStatus map[domain.TaskStatus]int `json:"tasks_by_status"`
	OverdueTasks  int                       `json:"overdue_tasks"`
	RecentNotes   []domain.Note             `json:"recent_notes"`
	WritingStreak int                       `json:"writing_streak"`
}

// Build assembles the dashboard as of now. The clock is a parameter so
// the streak and overdue counts are testable.
func Build(notes *store.NoteStore, tasks *store.TaskStore, folders *store.FolderStore, now time.Time) Summary {
	byStatus := map[domain.TaskStatus]int{
		domain.TaskTodo:       0,
		domain.TaskInProgress: 0,
		domain.TaskDone:       0,
	}
	for _, t := range tasks.All() {
		byStatus[t.Status]++
	}

	return Summary{
		NoteCount:     len(notes.All()),
		FolderCount:   len(folders.All()),
		TaskCount:     len(tasks.All()),
		StarredNotes:  len(notes.Starred()),
		TasksByStatus: byStatus,
		OverdueTasks:  len(tasks.Archive(now)),
		RecentNotes:   notes.Recent(0),
		WritingStreak: WritingStreak(notes.All(), now),
	}
}

// WritingStreak counts consecutive calendar days, walking backward
// from today, on which at least one note was updated. A quiet today
// does not break an ongoing run; the count then starts at yesterday.
func WritingStreak(notes []domain.Note, now time.Time) int {
	active := make(map[string]bool, len(notes))
	for _, n := range notes {
		active[dayKey(n.UpdatedAt.In(now.Location()))] = true
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !active[dayKey(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for active[dayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
