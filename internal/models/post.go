package models

import "time"

// Post is a blog article owned by a user and optionally filed under a category.
type Post struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"size:255;uniqueIndex;not null" json:"title"`
	MetaTitle  string     `gorm:"size:255;uniqueIndex;not null" json:"meta_title"`
	Slug       string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Summary    string     `gorm:"type:text" json:"summary"`
	Content    string     `gorm:"type:text" json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
	UserID     *uint      `gorm:"column:id_user;index" json:"user_id,omitempty"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CategoryID *uint      `gorm:"column:id_category;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags       []Tag      `gorm:"many2many:post_tag;joinForeignKey:IDPost;joinReferences:IDTag" json:"tags,omitempty"`
}

// TableName pins the table name.
func (Post) TableName() string { return "posts" }

// TagIDs returns the ids of the loaded tags.
func (p *Post) TagIDs() []uint {
	ids := make([]uint, 0, len(p.Tags))
	for _, t := range p.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}
