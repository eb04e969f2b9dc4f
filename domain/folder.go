package domain

import "time"

// Folder is a node in the user's folder tree. A nil ParentID means the
// folder sits at the root level.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color"`
	ParentID  *string   `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParentRef distinguishes "reparent to X", "reparent to root" (nil ID)
// and "leave the parent alone" (nil ParentRef) in partial updates.
type ParentRef struct {
	ID *string
}

// FolderUpdate carries a partial folder mutation. Nil fields are left
// untouched. A name change regenerates the slug.
type FolderUpdate struct {
	Name   *string
	Color  *string
	Parent *ParentRef
}
