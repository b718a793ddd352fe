package repository

import (
	"context"

	"datablog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var postSorts = sortColumns{
	fallback: "title",
	columns: map[string]string{
		"id":        "id",
		"title":     "title",
		"metaTitle": "meta_title",
		"slug":      "slug",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"summary":   "summary",
	},
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, q PageQuery) ([]*models.Post, int64, error)
	ListByCategory(ctx context.Context, categoryID uint, q PageQuery) ([]*models.Post, int64, error)
	ListByUser(ctx context.Context, userID uint, q PageQuery) ([]*models.Post, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByTitle(ctx context.Context, title string) (*models.Post, error)
	IDsByUser(ctx context.Context, userID uint) ([]uint, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	DeleteByIDs(ctx context.Context, ids []uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") })
}

func (r *postRepository) List(ctx context.Context, q PageQuery) ([]*models.Post, int64, error) {
	var posts []*models.Post
	total, err := paginate(r.db.WithContext(ctx).Model(&models.Post{}), q, postSorts, &posts, withDetails)
	return posts, total, err
}

func (r *postRepository) ListByCategory(ctx context.Context, categoryID uint, q PageQuery) ([]*models.Post, int64, error) {
	var posts []*models.Post
	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("id_category = ?", categoryID)
	total, err := paginate(base, q, postSorts, &posts, withDetails)
	return posts, total, err
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, q PageQuery) ([]*models.Post, int64, error) {
	var posts []*models.Post
	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("id_user = ?", userID)
	total, err := paginate(base, q, postSorts, &posts, withDetails)
	return posts, total, err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := withDetails(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, lookupError(err, "Post", id)
	}
	return &post, nil
}

func (r *postRepository) GetByTitle(ctx context.Context, title string) (*models.Post, error) {
	var post models.Post
	if err := withDetails(r.db.WithContext(ctx)).Where("title = ?", title).First(&post).Error; err != nil {
		return nil, lookupByError(err, "Post", "title", title)
	}
	return &post, nil
}

func (r *postRepository) IDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id_user = ?", userID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error, "Post")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error, "Post")
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *postRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Post{}).Error
}
