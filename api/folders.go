package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/store"
)

func (s *Server) handleListFolders(c *fiber.Ctx) error {
	return c.JSON(s.folders.All())
}

func (s *Server) handleCreateFolder(c *fiber.Ctx) error {
	var req struct {
		Name     string  `json:"name"`
		ParentID *string `json:"parent_id"`
		Color    string  `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Name) == "" {
		return s.fail(c, fiber.StatusUnprocessableEntity, "folder name is required")
	}

	folder, err := s.folders.Add(req.Name, req.ParentID, req.Color)
	if err != nil {
		if errors.Is(err, store.ErrFolderNotFound) {
			return s.fail(c, fiber.StatusNotFound, "parent folder not found")
		}
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("folder_created", folder)
	return c.Status(fiber.StatusCreated).JSON(folder)
}

func (s *Server) handleGetFolder(c *fiber.Ctx) error {
	folder, ok := s.folders.Get(c.Params("id"))
	if !ok {
		return s.fail(c, fiber.StatusNotFound, "folder not found")
	}
	return c.JSON(folder)
}

func (s *Server) handleFolderBySlug(c *fiber.Ctx) error {
	folder, ok := s.folders.BySlug(c.Params("slug"))
	if !ok {
		return s.fail(c, fiber.StatusNotFound, "folder not found")
	}
	return c.JSON(folder)
}

func (s *Server) handleUpdateFolder(c *fiber.Ctx) error {
	var req struct {
		Name     *string         `json:"name"`
		Color    *string         `json:"color"`
		ParentID json.RawMessage `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return s.fail(c, fiber.StatusUnprocessableEntity, "folder name cannot be empty")
	}

	parentRef, err := parseRef(req.ParentID)
	if err != nil {
		return s.fail(c, fiber.StatusBadRequest, "parent_id must be a string or null")
	}

	folder, err := s.folders.Update(c.Params("id"), domain.FolderUpdate{
		Name:   req.Name,
		Color:  req.Color,
		Parent: parentRef,
	})
	switch {
	case errors.Is(err, store.ErrFolderCycle):
		return s.fail(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrFolderNotFound):
		return s.fail(c, fiber.StatusNotFound, err.Error())
	case err != nil:
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("folder_updated", folder)
	return c.JSON(folder)
}

// handleDeleteFolder removes the folder and its whole subtree; notes
// filed anywhere under it land in the unfiled bucket.
func (s *Server) handleDeleteFolder(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := s.folders.Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrFolderNotFound) {
			return s.fail(c, fiber.StatusNotFound, "folder not found")
		}
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}

	unfiled, err := s.notes.Unfile(removed)
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.log.Info().Str("folder", id).Int("folders_removed", len(removed)).Int("notes_unfiled", unfiled).Msg("folder subtree deleted")

	s.hub.Broadcast("folder_deleted", fiber.Map{"id": id, "removed": removed, "notes_unfiled": unfiled})
	return c.JSON(fiber.Map{"removed": removed, "notes_unfiled": unfiled})
}

func (s *Server) handleFolderPath(c *fiber.Ctx) error {
	path, ok := s.folders.Path(c.Params("id"))
	if !ok {
		return s.fail(c, fiber.StatusNotFound, "folder not found")
	}
	return c.JSON(path)
}

func (s *Server) handleFolderNotes(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := s.folders.Get(id); !ok {
		return s.fail(c, fiber.StatusNotFound, "folder not found")
	}
	return c.JSON(s.notes.ByFolder(&id))
}

func (s *Server) handleFolderTree(c *fiber.Ctx) error {
	return c.JSON(s.organizer.Tree())
}

func (s *Server) handleDestinations(c *fiber.Ctx) error {
	return c.JSON(s.organizer.Destinations(c.Query("q")))
}

// handleCreateDestination creates a folder from inside the move picker
// so it is immediately selectable as a target.
func (s *Server) handleCreateDestination(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Name) == "" {
		return s.fail(c, fiber.StatusUnprocessableEntity, "folder name is required")
	}

	folder, err := s.organizer.CreateDestination(req.Name)
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("folder_created", folder)
	return c.Status(fiber.StatusCreated).JSON(folder)
}
