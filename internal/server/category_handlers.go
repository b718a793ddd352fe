package server

import (
	"datablog/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ListCategories handles GET /api/category
func (s *Server) ListCategories(c *fiber.Ctx) error {
	q, err := parsePageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.categoryService.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, page)
}

// GetCategory handles GET /api/category/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	category, err := s.categoryService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// GetCategoryByTitle handles GET /api/category/title/:title
func (s *Server) GetCategoryByTitle(c *fiber.Ctx) error {
	category, err := s.categoryService.GetByTitle(c.UserContext(), c.Params("title"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// CreateCategory handles POST /api/category?parentId=
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	parentID, err := optionalQueryUint(c, "parentId")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CategoryDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	category, err := s.categoryService.Create(c.UserContext(), req, parentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/category/:id?parentId=
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	parentID, err := optionalQueryUint(c, "parentId")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CategoryDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	category, err := s.categoryService.Update(c.UserContext(), id, req, parentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/category/:id
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.categoryService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
