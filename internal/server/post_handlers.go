package server

import (
	"datablog/internal/dto"
	"datablog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	q, err := parsePageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.postService.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, page)
}

// ListPostsByUser handles GET /api/posts/user/:userId
func (s *Server) ListPostsByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	q, err := parsePageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.postService.ListByUser(c.UserContext(), userID, q)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, page)
}

// ListPostsByCategory handles GET /api/posts/category/:categoryId
func (s *Server) ListPostsByCategory(c *fiber.Ctx) error {
	categoryID, err := parseID(c, "categoryId")
	if err != nil {
		return respondError(c, err)
	}
	q, err := parsePageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.postService.ListByCategory(c.UserContext(), categoryID, q)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, page)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	post, err := s.postService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetPostByTitle handles GET /api/posts/title/:title
func (s *Server) GetPostByTitle(c *fiber.Ctx) error {
	post, err := s.postService.GetByTitle(c.UserContext(), c.Params("title"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts?userId=&tagIds=&categoryId=
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := queryUint(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	categoryID, err := queryUint(c, "categoryId")
	if err != nil {
		return respondError(c, err)
	}
	tagIDs, err := queryUintList(c, "tagIds")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.PostDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		Post:       req,
		UserID:     userID,
		TagIDs:     tagIDs,
		CategoryID: categoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id?newUserId=&newTagsId=&newCategoryId=
// The post's tag set is replaced by newTagsId.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	newUserID, err := queryUint(c, "newUserId")
	if err != nil {
		return respondError(c, err)
	}
	newCategoryID, err := queryUint(c, "newCategoryId")
	if err != nil {
		return respondError(c, err)
	}
	newTagIDs, err := queryUintList(c, "newTagsId")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.PostDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.Update(c.UserContext(), service.UpdatePostInput{
		ID:            id,
		Post:          req,
		NewUserID:     newUserID,
		NewTagIDs:     newTagIDs,
		NewCategoryID: newCategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.postService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
