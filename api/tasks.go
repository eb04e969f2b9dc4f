package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/store"
)

func (s *Server) handleListTasks(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		return c.JSON(s.tasks.Search(q))
	}
	if c.QueryBool("starred") {
		return c.JSON(s.tasks.Starred())
	}
	return c.JSON(s.tasks.All())
}

func (s *Server) handleCreateTask(c *fiber.Ctx) error {
	var draft domain.TaskDraft
	if err := c.BodyParser(&draft); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(draft.Title) == "" {
		return s.fail(c, fiber.StatusUnprocessableEntity, "task title is required")
	}
	if draft.Status != "" && !draft.Status.Valid() {
		return s.fail(c, fiber.StatusUnprocessableEntity, "unknown task status")
	}
	if draft.Priority != "" && !draft.Priority.Valid() {
		return s.fail(c, fiber.StatusUnprocessableEntity, "unknown task priority")
	}

	task, err := s.tasks.Add(draft)
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("task_created", task)
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *Server) handleGetTask(c *fiber.Ctx) error {
	task, ok := s.tasks.Get(c.Params("id"))
	if !ok {
		return s.fail(c, fiber.StatusNotFound, "task not found")
	}
	return c.JSON(task)
}

func (s *Server) handleUpdateTask(c *fiber.Ctx) error {
	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *domain.TaskStatus   `json:"status"`
		DueDate     *time.Time           `json:"due_date"`
		Priority    *domain.TaskPriority `json:"priority"`
		Labels      *[]string            `json:"labels"`
		Starred     *bool                `json:"starred"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return s.fail(c, fiber.StatusUnprocessableEntity, "task title cannot be empty")
	}
	if req.Status != nil && !req.Status.Valid() {
		return s.fail(c, fiber.StatusUnprocessableEntity, "unknown task status")
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return s.fail(c, fiber.StatusUnprocessableEntity, "unknown task priority")
	}

	task, err := s.tasks.Update(c.Params("id"), domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Labels:      req.Labels,
		Starred:     req.Starred,
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return s.fail(c, fiber.StatusNotFound, "task not found")
		}
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("task_updated", task)
	return c.JSON(task)
}

func (s *Server) handleDeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.tasks.Delete(id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return s.fail(c, fiber.StatusNotFound, "task not found")
		}
		return s.fail(c, fiber.StatusInternalServerError, err.Error())
	}
	s.hub.Broadcast("task_deleted", fiber.Map{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// handleTaskArchive lists tasks whose due date has already passed.
func (s *Server) handleTaskArchive(c *fiber.Ctx) error {
	return c.JSON(s.tasks.Archive(s.now()))
}
