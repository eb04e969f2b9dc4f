package store

import "errors"

var (
	ErrFolderNotFound   = errors.New("folder not found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrLabelNotFound    = errors.New("label not found")

	// ErrFolderCycle is returned when a reparent would make a folder an
	// ancestor of itself.
	ErrFolderCycle = errors.New("folder cannot be moved under itself or its descendants")

	// ErrBuiltInTemplate guards the seeded templates against direct
	// mutation. Using one (which bumps its usage count) is still allowed.
	ErrBuiltInTemplate = errors.New("built-in templates cannot be modified")
)
