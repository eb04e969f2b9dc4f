package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nextnote/nextnote-server/auth"
)

func (s *Server) handleSignup(c *fiber.Ctx) error {
	if s.users == nil {
		return s.fail(c, fiber.StatusServiceUnavailable, "accounts are not configured on this server")
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return s.fail(c, fiber.StatusUnprocessableEntity, "name, email and password are required")
	}

	user, err := s.users.Signup(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return s.fail(c, fiber.StatusConflict, err.Error())
		}
		s.log.Error().Err(err).Msg("signup failed")
		return s.fail(c, fiber.StatusInternalServerError, "could not create the account")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	if s.users == nil {
		return s.fail(c, fiber.StatusServiceUnavailable, "accounts are not configured on this server")
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := s.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return s.fail(c, fiber.StatusUnauthorized, err.Error())
		}
		s.log.Error().Err(err).Msg("login failed")
		return s.fail(c, fiber.StatusInternalServerError, "could not log in")
	}
	return c.JSON(user)
}
