package models

import "time"

// Comment is a post comment or a reply to another comment.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Content     string    `gorm:"type:text" json:"content"`
	PublishedAt time.Time `json:"published_at"`
	PostID      *uint     `gorm:"column:id_post;index" json:"post_id,omitempty"`
	Post        *Post     `gorm:"foreignKey:PostID" json:"-"`
	ParentID    *uint     `gorm:"column:id_parent;index" json:"parent_id,omitempty"`
	Parent      *Comment  `gorm:"foreignKey:ParentID" json:"-"`
	UserID      *uint     `gorm:"column:id_user;index" json:"user_id,omitempty"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName pins the table name.
func (Comment) TableName() string { return "posts_comments" }

// IsRoot reports whether the comment is a top-level comment.
func (c *Comment) IsRoot() bool { return c.ParentID == nil }

// AuthoredBy reports whether userID wrote the comment.
func (c *Comment) AuthoredBy(userID uint) bool {
	return c.UserID != nil && *c.UserID == userID
}

