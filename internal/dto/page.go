// Package dto defines the JSON shapes exchanged with API clients and the
// mapping between them and the persisted models.
package dto

// Page is a slice of results plus the paging metadata clients need to walk the collection.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Page             int   `json:"page"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// NewPage builds a page for the zero-based page index.
func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:          content,
		Page:             page,
		Size:             size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            page == 0,
		Last:             page+1 >= totalPages,
		Empty:            len(content) == 0,
	}
}

// MapPage converts every element of a page, keeping its metadata.
func MapPage[S, T any](p Page[S], fn func(S) T) Page[T] {
	out := make([]T, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[T]{
		Content:          out,
		Page:             p.Page,
		Size:             p.Size,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		NumberOfElements: len(out),
		First:            p.First,
		Last:             p.Last,
		Empty:            len(out) == 0,
	}
}
