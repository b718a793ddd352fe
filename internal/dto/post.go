package dto

import (
	"time"

	"datablog/internal/models"
)

// PostDTO is the wire form of a post.
type PostDTO struct {
	ID        uint         `json:"id,omitempty"`
	Title     string       `json:"title" validate:"notblank" label:"title"`
	MetaTitle string       `json:"metaTitle" validate:"notblank" label:"metaTitle"`
	Slug      string       `json:"slug" validate:"notblank" label:"slug"`
	CreatedAt *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
	Content   string       `json:"content,omitempty"`
	Summary   string       `json:"summary,omitempty"`
	UserName  string       `json:"userName,omitempty"`
	UserID    *uint        `json:"userId,omitempty"`
	Tags      []TagRef     `json:"tags"`
	Category  *CategoryRef `json:"category,omitempty"`
}

// TagRef is the short tag form embedded in a post.
type TagRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// CategoryRef is the short category form embedded in a post.
type CategoryRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// PostFromModel maps a post with whatever associations were preloaded.
func PostFromModel(p *models.Post) PostDTO {
	d := PostDTO{
		ID:        p.ID,
		Title:     p.Title,
		MetaTitle: p.MetaTitle,
		Slug:      p.Slug,
		UpdatedAt: p.UpdatedAt,
		Content:   p.Content,
		Summary:   p.Summary,
		UserID:    p.UserID,
		Tags:      make([]TagRef, 0, len(p.Tags)),
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		d.CreatedAt = &created
	}
	if p.User != nil {
		d.UserName = p.User.FullName()
	}
	for _, t := range p.Tags {
		d.Tags = append(d.Tags, TagRef{ID: t.ID, Title: t.Title})
	}
	if p.Category != nil {
		d.Category = &CategoryRef{ID: p.Category.ID, Title: p.Category.Title}
	}
	return d
}

// ToModel copies the writable fields.
func (d PostDTO) ToModel() *models.Post {
	return &models.Post{
		Title:     d.Title,
		MetaTitle: d.MetaTitle,
		Slug:      d.Slug,
		Content:   d.Content,
		Summary:   d.Summary,
	}
}
