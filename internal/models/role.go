// Package models contains data structures for the blog's domain models.
package models

// Role names that the authorization guard understands.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Role is an authorization role held by users. Holders reference it through users.id_role.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

// TableName pins the table name.
func (Role) TableName() string { return "roles" }
