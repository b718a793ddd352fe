package dto

import (
	"time"

	"datablog/internal/models"
)

// CommentDTO is the wire form of a comment and its replies.
type CommentDTO struct {
	ID            uint         `json:"id,omitempty"`
	PublishedAt   *time.Time   `json:"publishedAt,omitempty"`
	Content       string       `json:"content,omitempty"`
	ChildComments []CommentDTO `json:"childComments,omitempty"`
	UserName      string       `json:"userName,omitempty"`
	IDUser        *uint        `json:"idUser,omitempty"`
	IDPost        *uint        `json:"idPost,omitempty"`
}

// CommentFromModel maps a single comment without replies.
func CommentFromModel(c *models.Comment) CommentDTO {
	d := CommentDTO{
		ID:      c.ID,
		Content: c.Content,
		IDUser:  c.UserID,
		IDPost:  c.PostID,
	}
	if !c.PublishedAt.IsZero() {
		published := c.PublishedAt
		d.PublishedAt = &published
	}
	if c.User != nil {
		d.UserName = c.User.FullName()
	}
	return d
}

// CommentTree maps root comments with their reply chains resolved from descendants.
func CommentTree(roots, descendants []*models.Comment) []CommentDTO {
	return mapForest(roots, descendants,
		func(c *models.Comment) uint { return c.ID },
		func(c *models.Comment) *uint { return c.ParentID },
		func(c *models.Comment, children []CommentDTO) CommentDTO {
			d := CommentFromModel(c)
			d.ChildComments = children
			return d
		},
	)
}
