package repository

import (
	"context"

	"datablog/internal/models"

	"gorm.io/gorm"
)

var roleSorts = sortColumns{
	fallback: "name",
	columns:  map[string]string{"id": "id", "name": "name", "description": "description"},
}

// RoleRepository defines the interface for role data operations
type RoleRepository interface {
	List(ctx context.Context, q PageQuery) ([]*models.Role, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uint) error
	// DetachUsers clears id_role on every holder and returns how many users were touched.
	DetachUsers(ctx context.Context, roleID uint) (int64, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) List(ctx context.Context, q PageQuery) ([]*models.Role, int64, error) {
	var roles []*models.Role
	total, err := paginate(r.db.WithContext(ctx).Model(&models.Role{}), q, roleSorts, &roles)
	return roles, total, err
}

func (r *roleRepository) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, lookupError(err, "Role", id)
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, lookupByError(err, "Role", "name", name)
	}
	return &role, nil
}

func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	return writeError(r.db.WithContext(ctx).Create(role).Error, "Role")
}

func (r *roleRepository) Update(ctx context.Context, role *models.Role) error {
	return writeError(r.db.WithContext(ctx).Save(role).Error, "Role")
}

func (r *roleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Role{}, id).Error
}

func (r *roleRepository) DetachUsers(ctx context.Context, roleID uint) (int64, error) {
	res := r.db.WithContext(ctx).Exec("UPDATE users SET id_role = NULL WHERE id_role = ?", roleID)
	return res.RowsAffected, res.Error
}
