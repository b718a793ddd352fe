package service

import (
	"context"
	"log/slog"
	"time"

	"datablog/internal/dto"
	"datablog/internal/middleware"
	"datablog/internal/models"
	"datablog/internal/observability"
	"datablog/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// CommentService manages comments and their reply trees.
type CommentService struct {
	store repository.Store
	now   func() time.Time
}

type CreateCommentInput struct {
	Content  string
	PostID   uint
	ParentID *uint
	UserID   uint
}

type UpdateCommentInput struct {
	CommentID uint
	ParentID  *uint
	Content   string
	PostID    uint
	UserID    uint
}

type DeleteCommentInput struct {
	CommentID uint
	PostID    uint
	UserID    uint
}

func NewCommentService(store repository.Store) *CommentService {
	return &CommentService{store: store, now: time.Now}
}

func commentID(c *models.Comment) uint { return c.ID }

func requirePost(ctx context.Context, store repository.Store, postID uint) error {
	ok, err := store.Posts().Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}

func (s *CommentService) tree(ctx context.Context, store repository.Store, roots []*models.Comment) ([]dto.CommentDTO, error) {
	if len(roots) == 0 {
		return []dto.CommentDTO{}, nil
	}
	replies, err := store.Comments().Descendants(ctx, idsOf(roots, commentID))
	if err != nil {
		return nil, err
	}
	return dto.CommentTree(roots, replies), nil
}

// ListByPost pages a post's comments by ascending id and keeps the top-level ones,
// each with its replies. The total counts the top-level comments on this page.
func (s *CommentService) ListByPost(ctx context.Context, postID uint, page, size int) (dto.Page[dto.CommentDTO], error) {
	if err := requirePost(ctx, s.store, postID); err != nil {
		return dto.Page[dto.CommentDTO]{}, err
	}

	comments, _, err := s.store.Comments().ListByPost(ctx, postID, page, size)
	if err != nil {
		return dto.Page[dto.CommentDTO]{}, err
	}
	roots := make([]*models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.IsRoot() {
			roots = append(roots, c)
		}
	}
	tree, err := s.tree(ctx, s.store, roots)
	if err != nil {
		return dto.Page[dto.CommentDTO]{}, err
	}

	_, size = pageFor(repository.PageQuery{Page: page, Size: size})
	return dto.NewPage(tree, page, size, int64(len(tree))), nil
}

// GetByID returns a comment of the given post with its replies.
func (s *CommentService) GetByID(ctx context.Context, commentID, postID uint) (*dto.CommentDTO, error) {
	if err := requirePost(ctx, s.store, postID); err != nil {
		return nil, err
	}
	comment, err := s.store.Comments().GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID == nil || *comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	tree, err := s.tree(ctx, s.store, []*models.Comment{comment})
	if err != nil {
		return nil, err
	}
	return &tree[0], nil
}

// Create adds a comment. A reply is attached to its parent's post whatever PostID says.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (out *dto.CommentDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "CommentService.Create", attribute.Int64("post.id", int64(in.PostID)))
	defer func() { end(err) }()

	comment := &models.Comment{Content: in.Content}
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := requirePost(ctx, tx, in.PostID); err != nil {
			return err
		}
		user, err := tx.Users().GetByID(ctx, in.UserID)
		if err != nil {
			return err
		}

		postID := in.PostID
		comment.PostID = &postID
		if in.ParentID != nil {
			parent, err := tx.Comments().GetByID(ctx, *in.ParentID)
			if err != nil {
				return err
			}
			comment.ParentID = &parent.ID
			comment.PostID = parent.PostID
		}
		comment.UserID = &user.ID
		comment.PublishedAt = s.now()

		if err := tx.Comments().Create(ctx, comment); err != nil {
			return err
		}
		comment.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordMutation("comment", "create")
	result := dto.CommentFromModel(comment)
	return &result, nil
}

// Update rewrites a comment's content, post and author. Only the current author may do it.
// Moving a comment to another post moves its whole reply subtree with it.
func (s *CommentService) Update(ctx context.Context, in UpdateCommentInput) (out *dto.CommentDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "CommentService.Update", attribute.Int64("comment.id", int64(in.CommentID)))
	defer func() { end(err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		comment, err := tx.Comments().GetByID(ctx, in.CommentID)
		if err != nil {
			return err
		}
		if err := requirePost(ctx, tx, in.PostID); err != nil {
			return err
		}
		user, err := tx.Users().GetByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !comment.AuthoredBy(in.UserID) {
			return models.NewUnauthorizedError("You can only update your own comments")
		}

		replies, err := tx.Comments().Descendants(ctx, []uint{comment.ID})
		if err != nil {
			return err
		}

		postID := in.PostID
		postChanged := comment.PostID == nil || *comment.PostID != postID

		switch {
		case in.ParentID != nil:
			if *in.ParentID == in.CommentID {
				return models.NewInvalidArgumentError("A comment cannot be its own parent")
			}
			parent, err := tx.Comments().GetByID(ctx, *in.ParentID)
			if err != nil {
				return err
			}
			for _, r := range replies {
				if r.ID == parent.ID {
					return models.NewInvalidArgumentError("A comment cannot reply to one of its own replies")
				}
			}
			if parent.PostID == nil || *parent.PostID != postID {
				return models.NewInvalidArgumentError("The parent comment belongs to another post")
			}
			comment.ParentID = &parent.ID
		case postChanged:
			// the old parent stays behind, so the comment becomes a root of the new post
			comment.ParentID = nil
		}

		comment.Content = in.Content
		comment.PostID = &postID
		comment.UserID = &user.ID
		if err := tx.Comments().Update(ctx, comment); err != nil {
			return err
		}
		if postChanged {
			if err := tx.Comments().MoveToPost(ctx, idsOf(replies, commentID), postID); err != nil {
				return err
			}
			for _, r := range replies {
				r.PostID = &postID
			}
		}
		comment.User = user

		tree := dto.CommentTree([]*models.Comment{comment}, replies)
		out = &tree[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordMutation("comment", "update")
	return out, nil
}

// Delete removes a comment and every reply below it. Only the author may do it.
func (s *CommentService) Delete(ctx context.Context, in DeleteCommentInput) (err error) {
	ctx, end := observability.StartSpan(ctx, "CommentService.Delete", attribute.Int64("comment.id", int64(in.CommentID)))
	defer func() { end(err) }()

	var removed int
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := requirePost(ctx, tx, in.PostID); err != nil {
			return err
		}
		comment, err := tx.Comments().GetByID(ctx, in.CommentID)
		if err != nil {
			return err
		}
		if !comment.AuthoredBy(in.UserID) {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}

		replies, err := tx.Comments().Descendants(ctx, []uint{comment.ID})
		if err != nil {
			return err
		}
		ids := append([]uint{comment.ID}, idsOf(replies, commentID)...)
		removed = len(ids)
		return tx.Comments().DeleteByIDs(ctx, ids)
	})
	if err != nil {
		return err
	}

	observability.RecordMutation("comment", "delete")
	middleware.Logger.InfoContext(ctx, "comment deleted",
		slog.Uint64("comment_id", uint64(in.CommentID)),
		slog.Int("removed", removed),
	)
	return nil
}
