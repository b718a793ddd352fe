package repository

import (
	"context"

	"datablog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var categorySorts = sortColumns{
	fallback: "title",
	columns:  map[string]string{"id": "id", "title": "title", "metaTitle": "meta_title", "slug": "slug"},
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context, q PageQuery) ([]*models.Category, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByTitle(ctx context.Context, title string) (*models.Category, error)
	// Descendants loads every category below the given ids, breadth first.
	Descendants(ctx context.Context, ids []uint) ([]*models.Category, error)
	CountChildren(ctx context.Context, id uint) (int64, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
	// DetachPosts clears id_category on every post filed under the category.
	DetachPosts(ctx context.Context, id uint) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, q PageQuery) ([]*models.Category, int64, error) {
	var categories []*models.Category
	total, err := paginate(r.db.WithContext(ctx).Model(&models.Category{}), q, categorySorts, &categories)
	return categories, total, err
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, lookupError(err, "Category", id)
	}
	return &category, nil
}

func (r *categoryRepository) GetByTitle(ctx context.Context, title string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&category).Error; err != nil {
		return nil, lookupByError(err, "Category", "title", title)
	}
	return &category, nil
}

func (r *categoryRepository) Descendants(ctx context.Context, ids []uint) ([]*models.Category, error) {
	return descendants(ctx, r.db, ids, func(db *gorm.DB, frontier []uint) ([]*models.Category, error) {
		var level []*models.Category
		err := db.Where("id_parent IN ?", frontier).Order("id").Find(&level).Error
		return level, err
	}, func(c *models.Category) uint { return c.ID })
}

func (r *categoryRepository) CountChildren(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id_parent = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error, "Category")
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error, "Category")
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

func (r *categoryRepository) DetachPosts(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Exec("UPDATE posts SET id_category = NULL WHERE id_category = ?", id)
	return res.RowsAffected, res.Error
}

// descendants walks a parent-linked table level by level. Rows already seen
// are skipped so a corrupted cycle terminates.
func descendants[T any](ctx context.Context, db *gorm.DB, ids []uint,
	loadLevel func(db *gorm.DB, frontier []uint) ([]T, error), idOf func(T) uint,
) ([]T, error) {
	visited := make(map[uint]bool, len(ids))
	for _, id := range ids {
		visited[id] = true
	}

	var out []T
	frontier := ids
	for len(frontier) > 0 {
		level, err := loadLevel(db.WithContext(ctx), frontier)
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0:0]
		for _, row := range level {
			id := idOf(row)
			if visited[id] {
				continue
			}
			visited[id] = true
			out = append(out, row)
			frontier = append(frontier, id)
		}
	}
	return out, nil
}
