package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/organize"
	"github.com/nextnote/nextnote-server/store"
)

// handleListNotes returns all notes, or a folder-scoped view when the
// folder query parameter is present. "none" selects the unfiled
// bucket.
func (s *Server) handleListNotes(c *fiber.Ctx) error {
	folder := c.Query("folder")
	switch folder {
	case "":
		return c.JSON(s.notes.All())
	case "none":
		return c.JSON(s.notes.ByFolder(nil))
	default:
		if _, ok := s.folders.Get(folder); !ok {
			return s.fail(c, fiber.StatusNotFound, "folder not found")
		}
		return c.JSON(s.notes.ByFolder(&folder))
	}
}

func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	var draft domain.NoteDraft
	if err := c.BodyParser(&draft); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(draft.Title) == "" && strings.TrimSpace(draft.Content) == "" {
		return s.fail(c, fiber.StatusUnprocessableEntity, "a note needs a title or content")
	}
	if draft.FolderID != nil {
		if _, ok := s.folders.Get(*draft.FolderID); !ok {
			return s.fail(c, fiber.StatusNotFound, "folder not found")
		}
	}

	note, err := s.notes.Add(draft)
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("note_created", note)
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (s *Server) handleGetNote(c *fiber.Ctx) error {
	note, ok := s.notes.Get(c.Params("id"))
	if !ok {
		return s.fail(c, fiber.StatusNotFound, "note not found")
	}
	return c.JSON(note)
}

func (s *Server) handleUpdateNote(c *fiber.Ctx) error {
	var req struct {
		Title    *string         `json:"title"`
		Content  *string         `json:"content"`
		Labels   *[]string       `json:"labels"`
		Starred  *bool           `json:"starred"`
		FolderID json.RawMessage `json:"folder_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}

	folderRef, err := parseRef(req.FolderID)
	if err != nil {
		return s.fail(c, fiber.StatusBadRequest, "folder_id must be a string or null")
	}
	if folderRef != nil && folderRef.ID != nil {
		if _, ok := s.folders.Get(*folderRef.ID); !ok {
			return s.fail(c, fiber.StatusNotFound, "folder not found")
		}
	}

	note, err := s.notes.Update(c.Params("id"), domain.NoteUpdate{
		Title:   req.Title,
		Content: req.Content,
		Labels:  req.Labels,
		Starred: req.Starred,
		Folder:  folderRef,
	})
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return s.fail(c, fiber.StatusNotFound, "note not found")
		}
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("note_updated", note)
	return c.JSON(note)
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.notes.Delete(id); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return s.fail(c, fiber.StatusNotFound, "note not found")
		}
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("note_deleted", fiber.Map{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleMoveNote(c *fiber.Ctx) error {
	var req struct {
		FolderID json.RawMessage `json:"folder_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}

	// Absent and null both mean the unfiled bucket here; the picker
	// always submits an explicit destination.
	var dest *string
	if ref, err := parseRef(req.FolderID); err != nil {
		return s.fail(c, fiber.StatusBadRequest, "folder_id must be a string or null")
	} else if ref != nil {
		dest = ref.ID
	}

	note, err := s.organizer.Move(c.Params("id"), dest)
	switch {
	case errors.Is(err, store.ErrNoteNotFound):
		return s.fail(c, fiber.StatusNotFound, "note not found")
	case errors.Is(err, store.ErrFolderNotFound):
		return s.fail(c, fiber.StatusNotFound, "folder not found")
	case errors.Is(err, organize.ErrNoopMove):
		return s.fail(c, fiber.StatusUnprocessableEntity, err.Error())
	case err != nil:
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("note_moved", note)
	return c.JSON(note)
}

func (s *Server) handleStarredNotes(c *fiber.Ctx) error {
	return c.JSON(s.notes.Starred())
}

func (s *Server) handleRecentNotes(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return c.JSON(s.notes.Recent(limit))
}

func (s *Server) handleSearchNotes(c *fiber.Ctx) error {
	return c.JSON(s.notes.Search(c.Query("q")))
}
