package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nextnote/nextnote-server/store"
)

func (s *Server) handleListLabels(c *fiber.Ctx) error {
	return c.JSON(s.labels.All())
}

func (s *Server) handleCreateLabel(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Name) == "" {
		return s.fail(c, fiber.StatusUnprocessableEntity, "label name is required")
	}

	label, err := s.labels.Add(req.Name, req.Color)
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(label)
}

func (s *Server) handleUpdateLabel(c *fiber.Ctx) error {
	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}

	label, err := s.labels.Update(c.Params("id"), req.Name, req.Color)
	if err != nil {
		if errors.Is(err, store.ErrLabelNotFound) {
			return s.fail(c, fiber.StatusNotFound, "label not found")
		}
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(label)
}

// handleDeleteLabel removes the label and strips its id from every
// note and task so no dangling references stick around.
func (s *Server) handleDeleteLabel(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.labels.Delete(id); err != nil {
		if errors.Is(err, store.ErrLabelNotFound) {
			return s.fail(c, fiber.StatusNotFound, "label not found")
		}
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := s.notes.RemoveLabel(id); err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := s.tasks.RemoveLabel(id); err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
