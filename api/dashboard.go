package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nextnote/nextnote-server/dashboard"
)

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	return c.JSON(dashboard.Build(s.notes, s.tasks, s.folders, s.now()))
}
