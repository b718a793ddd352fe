package server

import (
	"datablog/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ListRoles handles GET /api/roles
func (s *Server) ListRoles(c *fiber.Ctx) error {
	q, err := parsePageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.roleService.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, page)
}

// GetRole handles GET /api/roles/:id
func (s *Server) GetRole(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	role, err := s.roleService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(role)
}

// CreateRole handles POST /api/roles
func (s *Server) CreateRole(c *fiber.Ctx) error {
	var req dto.RoleDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	role, err := s.roleService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(role)
}

// UpdateRole handles PUT /api/roles/:id
func (s *Server) UpdateRole(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.RoleDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	role, err := s.roleService.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(role)
}

// DeleteRole handles DELETE /api/roles/:id. Holders of the role keep their accounts without a role.
func (s *Server) DeleteRole(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.roleService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
