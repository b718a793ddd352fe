package repository

import (
	"context"

	"datablog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var userSorts = sortColumns{
	fallback: "email",
	columns: map[string]string{
		"id":           "id",
		"firstName":    "first_name",
		"lastName":     "last_name",
		"email":        "email",
		"registeredAt": "registered_at",
		"active":       "is_active",
	},
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context, q PageQuery) ([]*models.User, int64, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context, q PageQuery) ([]*models.User, int64, error) {
	var users []*models.User
	total, err := paginate(r.db.WithContext(ctx).Model(&models.User{}), q, userSorts, &users, withRole)
	return users, total, err
}

func withRole(db *gorm.DB) *gorm.DB { return db.Preload("Role") }

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&user, id).Error; err != nil {
		return nil, lookupError(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, lookupByError(err, "User", "email", email)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error, "User")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error, "User")
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}
