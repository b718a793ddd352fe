package dto

import "datablog/internal/models"

// RoleDTO is the wire form of a role.
type RoleDTO struct {
	ID          uint   `json:"id,omitempty"`
	Name        string `json:"name,omitempty" validate:"notblank" label:"name"`
	Description string `json:"description,omitempty"`
}

func RoleFromModel(r *models.Role) RoleDTO {
	return RoleDTO{ID: r.ID, Name: r.Name, Description: r.Description}
}

func (d RoleDTO) ToModel() *models.Role {
	return &models.Role{Name: d.Name, Description: d.Description}
}
