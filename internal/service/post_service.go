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

// PostService manages posts and their tag associations.
type PostService struct {
	store repository.Store
	now   func() time.Time
}

type CreatePostInput struct {
	Post       dto.PostDTO
	UserID     uint
	TagIDs     []uint
	CategoryID uint
}

type UpdatePostInput struct {
	ID            uint
	Post          dto.PostDTO
	NewUserID     uint
	NewTagIDs     []uint
	NewCategoryID uint
}

func NewPostService(store repository.Store) *PostService {
	return &PostService{store: store, now: time.Now}
}

func postPage(posts []*models.Post, total int64, q repository.PageQuery) dto.Page[dto.PostDTO] {
	content := make([]dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		content = append(content, dto.PostFromModel(p))
	}
	page, size := pageFor(q)
	return dto.NewPage(content, page, size, total)
}

func (s *PostService) List(ctx context.Context, q repository.PageQuery) (dto.Page[dto.PostDTO], error) {
	posts, total, err := s.store.Posts().List(ctx, q)
	if err != nil {
		return dto.Page[dto.PostDTO]{}, err
	}
	return postPage(posts, total, q), nil
}

func (s *PostService) ListByCategory(ctx context.Context, categoryID uint, q repository.PageQuery) (dto.Page[dto.PostDTO], error) {
	if _, err := s.store.Categories().GetByID(ctx, categoryID); err != nil {
		return dto.Page[dto.PostDTO]{}, err
	}
	posts, total, err := s.store.Posts().ListByCategory(ctx, categoryID, q)
	if err != nil {
		return dto.Page[dto.PostDTO]{}, err
	}
	return postPage(posts, total, q), nil
}

func (s *PostService) ListByUser(ctx context.Context, userID uint, q repository.PageQuery) (dto.Page[dto.PostDTO], error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return dto.Page[dto.PostDTO]{}, err
	}
	posts, total, err := s.store.Posts().ListByUser(ctx, userID, q)
	if err != nil {
		return dto.Page[dto.PostDTO]{}, err
	}
	return postPage(posts, total, q), nil
}

func (s *PostService) GetByID(ctx context.Context, id uint) (*dto.PostDTO, error) {
	post, err := s.store.Posts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.PostFromModel(post)
	return &out, nil
}

func (s *PostService) GetByTitle(ctx context.Context, title string) (*dto.PostDTO, error) {
	post, err := s.store.Posts().GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	out := dto.PostFromModel(post)
	return &out, nil
}

// loadTags fetches every tag by id and fails on the first one that is missing.
func loadTags(ctx context.Context, tx repository.Store, ids []uint) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		tag, err := tx.Tags().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// Create inserts a post owned by UserID, filed under CategoryID and tagged with TagIDs.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (out *dto.PostDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "PostService.Create")
	defer func() { end(err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		category, err := tx.Categories().GetByID(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		tags, err := loadTags(ctx, tx, in.TagIDs)
		if err != nil {
			return err
		}

		post := in.Post.ToModel()
		post.CreatedAt = s.now()
		post.UserID = &user.ID
		post.CategoryID = &category.ID
		if err := tx.Posts().Create(ctx, post); err != nil {
			return err
		}
		if err := tx.PostTags().Attach(ctx, post.ID, idsOf(tags, func(t models.Tag) uint { return t.ID })); err != nil {
			return err
		}

		saved, err := tx.Posts().GetByID(ctx, post.ID)
		if err != nil {
			return err
		}
		result := dto.PostFromModel(saved)
		out = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordMutation("post", "create")
	return out, nil
}

// Update overwrites the post, reassigns owner and category and replaces its tag set.
// The old join rows are removed before the new tags are checked, inside one transaction,
// so a missing tag leaves the original set in place.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (out *dto.PostDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "PostService.Update", attribute.Int64("post.id", int64(in.ID)))
	defer func() { end(err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		post, err := tx.Posts().GetByID(ctx, in.ID)
		if err != nil {
			return err
		}

		now := s.now()
		post.Title = in.Post.Title
		post.MetaTitle = in.Post.MetaTitle
		post.Slug = in.Post.Slug
		post.Content = in.Post.Content
		post.Summary = in.Post.Summary
		post.UpdatedAt = &now

		user, err := tx.Users().GetByID(ctx, in.NewUserID)
		if err != nil {
			return err
		}
		category, err := tx.Categories().GetByID(ctx, in.NewCategoryID)
		if err != nil {
			return err
		}
		post.UserID, post.User = &user.ID, user
		post.CategoryID, post.Category = &category.ID, category
		if err := tx.Posts().Update(ctx, post); err != nil {
			return err
		}

		if err := tx.PostTags().DeleteByPost(ctx, post.ID); err != nil {
			return err
		}
		tags, err := loadTags(ctx, tx, in.NewTagIDs)
		if err != nil {
			return err
		}
		if err := tx.PostTags().Attach(ctx, post.ID, idsOf(tags, func(t models.Tag) uint { return t.ID })); err != nil {
			return err
		}

		saved, err := tx.Posts().GetByID(ctx, post.ID)
		if err != nil {
			return err
		}
		result := dto.PostFromModel(saved)
		out = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordMutation("post", "update")
	return out, nil
}

// Delete removes a post together with its comments and tag links.
func (s *PostService) Delete(ctx context.Context, id uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "PostService.Delete", attribute.Int64("post.id", int64(id)))
	defer func() { end(err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		return deletePosts(ctx, tx, []uint{id}, true)
	})
	if err != nil {
		return err
	}

	observability.RecordMutation("post", "delete")
	middleware.Logger.InfoContext(ctx, "post deleted", slog.Uint64("post_id", uint64(id)))
	return nil
}

// deletePosts removes posts with their comments and join rows. With mustExist set,
// every id is checked first.
func deletePosts(ctx context.Context, tx repository.Store, ids []uint, mustExist bool) error {
	if mustExist {
		for _, id := range ids {
			if err := requirePost(ctx, tx, id); err != nil {
				return err
			}
		}
	}
	if err := tx.Comments().DeleteByPosts(ctx, ids); err != nil {
		return err
	}
	if err := tx.PostTags().DeleteByPosts(ctx, ids); err != nil {
		return err
	}
	return tx.Posts().DeleteByIDs(ctx, ids)
}
