package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/store"
)

// handleListTemplates serves the gallery: optional category filter and
// free-text search.
func (s *Server) handleListTemplates(c *fiber.Ctx) error {
	if cat := c.Query("category"); cat != "" {
		category := domain.TemplateCategory(cat)
		if !category.Valid() {
			return s.fail(c, fiber.StatusUnprocessableEntity, "unknown template category")
		}
		return c.JSON(s.templates.ByCategory(category))
	}
	if q := c.Query("q"); q != "" {
		return c.JSON(s.templates.Search(q))
	}
	return c.JSON(s.templates.All())
}

func (s *Server) handleCreateTemplate(c *fiber.Ctx) error {
	var draft domain.TemplateDraft
	if err := c.BodyParser(&draft); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(draft.Name) == "" {
		return s.fail(c, fiber.StatusUnprocessableEntity, "template name is required")
	}
	if !draft.Category.Valid() {
		return s.fail(c, fiber.StatusUnprocessableEntity, "unknown template category")
	}

	tmpl, err := s.templates.Add(draft)
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(tmpl)
}

func (s *Server) handleGetTemplate(c *fiber.Ctx) error {
	tmpl, ok := s.templates.Get(c.Params("id"))
	if !ok {
		return s.fail(c, fiber.StatusNotFound, "template not found")
	}
	return c.JSON(tmpl)
}

func (s *Server) handleUpdateTemplate(c *fiber.Ctx) error {
	var req struct {
		Name        *string                  `json:"name"`
		Description *string                  `json:"description"`
		Category    *domain.TemplateCategory `json:"category"`
		Icon        *string                  `json:"icon"`
		Content     *string                  `json:"content"`
		Tags        *[]string                `json:"tags"`
		IsPublic    *bool                    `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Category != nil && !req.Category.Valid() {
		return s.fail(c, fiber.StatusUnprocessableEntity, "unknown template category")
	}

	tmpl, err := s.templates.Update(c.Params("id"), domain.TemplateUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Icon:        req.Icon,
		Content:     req.Content,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	switch {
	case errors.Is(err, store.ErrTemplateNotFound):
		return s.fail(c, fiber.StatusNotFound, "template not found")
	case errors.Is(err, store.ErrBuiltInTemplate):
		return s.fail(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(tmpl)
}

func (s *Server) handleDeleteTemplate(c *fiber.Ctx) error {
	err := s.templates.Delete(c.Params("id"))
	switch {
	case errors.Is(err, store.ErrTemplateNotFound):
		return s.fail(c, fiber.StatusNotFound, "template not found")
	case errors.Is(err, store.ErrBuiltInTemplate):
		return s.fail(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleUseTemplate spawns a note from the template. The content is
// copied verbatim, placeholder tokens included, and the template's
// usage count goes up by one. The note is created before the counter
// moves so a failed note save never counts as a use.
func (s *Server) handleUseTemplate(c *fiber.Ctx) error {
	var req struct {
		FolderID *string `json:"folder_id"`
	}
	// The body is optional; an empty body files the note as unfiled.
	_ = c.BodyParser(&req)
	if req.FolderID != nil {
		if _, ok := s.folders.Get(*req.FolderID); !ok {
			return s.fail(c, fiber.StatusNotFound, "folder not found")
		}
	}

	tmpl, ok := s.templates.Get(c.Params("id"))
	if !ok {
		return s.fail(c, fiber.StatusNotFound, "template not found")
	}

	note, err := s.notes.Add(domain.NoteDraft{
		Title:    tmpl.Name,
		Content:  tmpl.Content,
		FolderID: req.FolderID,
	})
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}

	tmpl, err = s.templates.Use(tmpl.ID)
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("template_used", fiber.Map{"template": tmpl, "note": note})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"template": tmpl, "note": note})
}
