package dto

import (
	"time"

	"datablog/internal/models"
)

// UserDTO is the wire form of a user. Password is accepted on input and never written back.
type UserDTO struct {
	ID           uint       `json:"id,omitempty"`
	FirstName    string     `json:"firstName" validate:"notblank" label:"first name"`
	LastName     string     `json:"lastName" validate:"notblank" label:"last name"`
	FullName     string     `json:"fullName,omitempty"`
	Email        string     `json:"email" validate:"notblank,email" label:"email address"`
	Password     string     `json:"password,omitempty" validate:"notblank,min=6,max=20" label:"password"`
	RegisteredAt *time.Time `json:"registeredAt,omitempty"`
	Active       bool       `json:"active"`
	Role         *RoleDTO   `json:"role,omitempty"`
}

// UserFromModel maps a user, including the role when it was loaded.
func UserFromModel(u *models.User) UserDTO {
	d := UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		Active:    u.IsActive,
	}
	if !u.RegisteredAt.IsZero() {
		registered := u.RegisteredAt
		d.RegisteredAt = &registered
	}
	if u.Role != nil {
		role := RoleDTO{ID: u.Role.ID, Name: u.Role.Name}
		d.Role = &role
	}
	return d
}
