package server

import (
	"datablog/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /api/users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	q, err := parsePageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.userService.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, page)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := s.userService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserByEmail handles GET /api/users/email/:email
func (s *Server) GetUserByEmail(c *fiber.Ctx) error {
	user, err := s.userService.GetByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// CreateUser handles POST /api/users?roleId=
func (s *Server) CreateUser(c *fiber.Ctx) error {
	roleID, err := queryUint(c, "roleId")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UserDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := s.userService.Create(c.UserContext(), req, roleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PUT /api/users/:id?newRoleId=
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	newRoleID, err := optionalQueryUint(c, "newRoleId")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UserDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := s.userService.Update(c.UserContext(), id, req, newRoleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.userService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
