package domain

import "time"

// Note is a single rich-text note. Content is the serialized editor
// markup and is stored verbatim. A nil FolderID means the note is
// unfiled, which is a real, queryable bucket distinct from "folder not
// found".
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Labels    []string  `json:"labels"`
	FolderID  *string   `json:"folder_id"`
	Starred   bool      `json:"starred"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteDraft holds the caller-supplied fields of a new note.
type NoteDraft struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Labels   []string `json:"labels"`
	FolderID *string  `json:"folder_id"`
	Starred  bool     `json:"starred"`
}

// NoteUpdate carries a partial note mutation. Nil fields are left
// untouched.
type NoteUpdate struct {
	Title   *string
	Content *string
	Labels  *[]string
	Starred *bool
	Folder  *ParentRef
}
