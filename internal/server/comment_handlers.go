package server

import (
	"datablog/internal/dto"
	"datablog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/comment?postId=&page=&size=
// Only top-level comments are paged; replies are nested under them.
func (s *Server) ListComments(c *fiber.Ctx) error {
	postID, err := queryUint(c, "postId")
	if err != nil {
		return respondError(c, err)
	}
	q, err := parsePageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.commentService.ListByPost(c.UserContext(), postID, q.Page, q.Size)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, page)
}

// GetComment handles GET /api/comment/:commentId?postId=
func (s *Server) GetComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}
	postID, err := queryUint(c, "postId")
	if err != nil {
		return respondError(c, err)
	}
	comment, err := s.commentService.GetByID(c.UserContext(), commentID, postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// CreateComment handles POST /api/comment?postId=&parentCommentId=&userId=
// Without userId the comment is authored by the caller.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := queryUint(c, "postId")
	if err != nil {
		return respondError(c, err)
	}
	parentID, err := optionalQueryUint(c, "parentCommentId")
	if err != nil {
		return respondError(c, err)
	}
	userID, err := optionalQueryUint(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	if userID == nil {
		p, err := currentPrincipal(c)
		if err != nil {
			return respondError(c, err)
		}
		userID = &p.UserID
	}
	var req dto.CommentDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		Content:  req.Content,
		PostID:   postID,
		ParentID: parentID,
		UserID:   *userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comment/:commentId?parentCommentId=&postId=&userId=
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}
	parentID, err := optionalQueryUint(c, "parentCommentId")
	if err != nil {
		return respondError(c, err)
	}
	postID, err := queryUint(c, "postId")
	if err != nil {
		return respondError(c, err)
	}
	userID, err := queryUint(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CommentDTO
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.Update(c.UserContext(), service.UpdateCommentInput{
		CommentID: commentID,
		ParentID:  parentID,
		Content:   req.Content,
		PostID:    postID,
		UserID:    userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comment/:commentId?postId=&userId=
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}
	postID, err := queryUint(c, "postId")
	if err != nil {
		return respondError(c, err)
	}
	userID, err := queryUint(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	err = s.commentService.Delete(c.UserContext(), service.DeleteCommentInput{
		CommentID: commentID,
		PostID:    postID,
		UserID:    userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
