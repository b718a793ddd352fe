package server

import (
	"datablog/internal/auth"
	"datablog/internal/dto"
	"datablog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /auth/home
func (s *Server) Home(c *fiber.Ctx) error {
	return c.SendString("Main Page")
}

// Login handles POST /auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Register handles POST /auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req dto.UserDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := s.authService.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Logout handles POST /auth/logout. The presented token stays revoked until it expires.
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals(claimsLocal).(*auth.Claims)
	if !ok {
		return respondError(c, models.NewUnauthenticatedError("Authentication required"))
	}
	if err := s.authService.Logout(c.UserContext(), claims); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
