package models

// Category is a node of the category tree. Children are found through ParentID,
// never through an embedded collection.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:150;uniqueIndex;not null" json:"title"`
	MetaTitle string    `gorm:"size:255;uniqueIndex;not null" json:"meta_title"`
	Slug      string    `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	ParentID  *uint     `gorm:"column:id_parent;index" json:"parent_id,omitempty"`
	Parent    *Category `gorm:"foreignKey:ParentID" json:"-"`
}

// TableName pins the table name.
func (Category) TableName() string { return "categories" }

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool { return c.ParentID == nil }
