package dto

import "datablog/internal/models"

// TagDTO is the wire form of a tag.
type TagDTO struct {
	ID        uint   `json:"id,omitempty"`
	Title     string `json:"title" validate:"notblank" label:"title"`
	MetaTitle string `json:"metaTitle" validate:"notblank" label:"metaTitle"`
	Slug      string `json:"slug" validate:"notblank" label:"slug"`
}

func TagFromModel(t *models.Tag) TagDTO {
	return TagDTO{
		ID:        t.ID,
		Title:     t.Title,
		MetaTitle: t.MetaTitle,
		Slug:      t.Slug,
	}
}

func (d TagDTO) ToModel() *models.Tag {
	return &models.Tag{
		Title:     d.Title,
		MetaTitle: d.MetaTitle,
		Slug:      d.Slug,
	}
}
