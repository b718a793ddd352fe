package models

// Tag labels posts through the post_tag join table.
type Tag struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"size:150;uniqueIndex;not null" json:"title"`
	MetaTitle string `gorm:"size:255;uniqueIndex;not null" json:"meta_title"`
	Slug      string `gorm:"size:150;uniqueIndex;not null" json:"slug"`
}

// TableName pins the table name.
func (Tag) TableName() string { return "tags" }

// PostTag is one row of the post_tag join table.
type PostTag struct {
	PostID uint `gorm:"column:id_post;primaryKey;autoIncrement:false"`
	TagID  uint `gorm:"column:id_tag;primaryKey;autoIncrement:false;index"`
}

// TableName pins the join table name.
func (PostTag) TableName() string { return "post_tag" }
