package repository

import (
	"context"

	"datablog/internal/models"

	"gorm.io/gorm"
)

// PostTagRepository maintains rows of the post_tag join table directly.
type PostTagRepository interface {
	Attach(ctx context.Context, postID uint, tagIDs []uint) error
	DeleteByPost(ctx context.Context, postID uint) error
	DeleteByPosts(ctx context.Context, postIDs []uint) error
	DeleteByTag(ctx context.Context, tagID uint) error
}

type postTagRepository struct {
	db *gorm.DB
}

// NewPostTagRepository creates a new post_tag repository
func NewPostTagRepository(db *gorm.DB) PostTagRepository {
	return &postTagRepository{db: db}
}

func (r *postTagRepository) Attach(ctx context.Context, postID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.PostTag, 0, len(tagIDs))
	seen := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, models.PostTag{PostID: postID, TagID: id})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *postTagRepository) DeleteByPost(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM post_tag WHERE id_post = ?", postID).Error
}

func (r *postTagRepository) DeleteByPosts(ctx context.Context, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec("DELETE FROM post_tag WHERE id_post IN ?", postIDs).Error
}

func (r *postTagRepository) DeleteByTag(ctx context.Context, tagID uint) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM post_tag WHERE id_tag = ?", tagID).Error
}
