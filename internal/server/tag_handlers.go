package server

import (
	"datablog/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ListTags handles GET /api/tags
func (s *Server) ListTags(c *fiber.Ctx) error {
	q, err := parsePageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.tagService.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, page)
}

// ListTagsByPost handles GET /api/tags/post?postId=&sortBy=&direction=
func (s *Server) ListTagsByPost(c *fiber.Ctx) error {
	postID, err := queryUint(c, "postId")
	if err != nil {
		return respondError(c, err)
	}
	tags, err := s.tagService.ListByPost(c.UserContext(), postID, c.Query("sortBy"), c.Query("direction"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tag, err := s.tagService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// CreateTag handles POST /api/tags
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req dto.TagDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	tag, err := s.tagService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// UpdateTag handles PUT /api/tags/:id
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.TagDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	tag, err := s.tagService.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// DeleteTag handles DELETE /api/tags/:id
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.tagService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
