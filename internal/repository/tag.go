package repository

import (
	"context"

	"datablog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var tagSorts = sortColumns{
	fallback: "title",
	columns:  map[string]string{"id": "id", "title": "title", "metaTitle": "meta_title", "slug": "slug"},
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	List(ctx context.Context, q PageQuery) ([]*models.Tag, int64, error)
	// ListByPost returns every tag of a post ordered by title, or by id when byID is set.
	ListByPost(ctx context.Context, postID uint, byID, desc bool) ([]*models.Tag, error)
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context, q PageQuery) ([]*models.Tag, int64, error) {
	var tags []*models.Tag
	total, err := paginate(r.db.WithContext(ctx).Model(&models.Tag{}), q, tagSorts, &tags)
	return tags, total, err
}

func (r *tagRepository) ListByPost(ctx context.Context, postID uint, byID, desc bool) ([]*models.Tag, error) {
	col := "tags.title"
	if byID {
		col = "tags.id"
	}
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN post_tag ON post_tag.id_tag = tags.id").
		Where("post_tag.id_post = ?", postID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: col, Raw: true}, Desc: desc}).
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, lookupError(err, "Tag", id)
	}
	return &tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return writeError(r.db.WithContext(ctx).Create(tag).Error, "Tag")
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return writeError(r.db.WithContext(ctx).Save(tag).Error, "Tag")
}

func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Tag{}, id).Error
}
