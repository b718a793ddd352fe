package repository

import (
	"context"

	"datablog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	// ListByPost pages every comment of a post, replies included, by ascending id.
	ListByPost(ctx context.Context, postID uint, page, size int) ([]*models.Comment, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// Descendants loads every reply below the given comment ids, breadth first.
	Descendants(ctx context.Context, ids []uint) ([]*models.Comment, error)
	IDsByUser(ctx context.Context, userID uint) ([]uint, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	// MoveToPost reassigns the given comments to postID.
	MoveToPost(ctx context.Context, ids []uint, postID uint) error
	DeleteByIDs(ctx context.Context, ids []uint) error
	DeleteByPosts(ctx context.Context, postIDs []uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

var commentSorts = sortColumns{fallback: "id", columns: map[string]string{"id": "id"}}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, page, size int) ([]*models.Comment, int64, error) {
	var comments []*models.Comment
	base := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id_post = ?", postID)
	total, err := paginate(base, PageQuery{Page: page, Size: size}, commentSorts, &comments, withAuthor)
	return comments, total, err
}

func withAuthor(db *gorm.DB) *gorm.DB { return db.Preload("User") }

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, lookupError(err, "Comment", id)
	}
	return &comment, nil
}

func (r *commentRepository) Descendants(ctx context.Context, ids []uint) ([]*models.Comment, error) {
	return descendants(ctx, r.db, ids, func(db *gorm.DB, frontier []uint) ([]*models.Comment, error) {
		var level []*models.Comment
		err := db.Preload("User").Where("id_parent IN ?", frontier).Order("id").Find(&level).Error
		return level, err
	}, func(c *models.Comment) uint { return c.ID })
}

func (r *commentRepository) IDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id_user = ?", userID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error
}

func (r *commentRepository) MoveToPost(ctx context.Context, ids []uint, postID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Comment{}).Where("id IN ?", ids).Update("id_post", postID).Error
}

func (r *commentRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Comment{}).Error
}

func (r *commentRepository) DeleteByPosts(ctx context.Context, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec("DELETE FROM posts_comments WHERE id_post IN ?", postIDs).Error
}
