package dto

import "datablog/internal/models"

// CategoryDTO is the wire form of a category and its subtree.
type CategoryDTO struct {
	ID              uint          `json:"id,omitempty"`
	Title           string        `json:"title" validate:"notblank" label:"title"`
	MetaTitle       string        `json:"metaTitle" validate:"notblank" label:"metaTitle"`
	Slug            string        `json:"slug" validate:"notblank" label:"slug"`
	ChildCategories []CategoryDTO `json:"childCategories,omitempty"`
}

// CategoryFromModel maps a single category without children.
func CategoryFromModel(c *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Title:     c.Title,
		MetaTitle: c.MetaTitle,
		Slug:      c.Slug,
	}
}

// CategoryTree maps roots with their children resolved from descendants.
func CategoryTree(roots, descendants []*models.Category) []CategoryDTO {
	return mapForest(roots, descendants,
		func(c *models.Category) uint { return c.ID },
		func(c *models.Category) *uint { return c.ParentID },
		func(c *models.Category, children []CategoryDTO) CategoryDTO {
			d := CategoryFromModel(c)
			d.ChildCategories = children
			return d
		},
	)
}

// ToModel copies the writable fields. ID and children are ignored.
func (d CategoryDTO) ToModel() *models.Category {
	return &models.Category{
		Title:     d.Title,
		MetaTitle: d.MetaTitle,
		Slug:      d.Slug,
	}
}
