package models

import (
	"strings"
	"time"
)

// User is a registered blog account.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	RegisteredAt time.Time `json:"registered_at"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	RoleID       *uint     `gorm:"column:id_role;index" json:"role_id,omitempty"`
	Role         *Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName pins the table name.
func (User) TableName() string { return "users" }

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RoleName returns the name of the user's role, or "" if the user has none.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
