// Package service implements the blog's business rules on top of the repository Store.
package service

import (
	"datablog/internal/repository"
)

func pageFor(q repository.PageQuery) (page, size int) {
	return q.Page, q.Limit()
}

func idsOf[T any](items []T, idOf func(T) uint) []uint {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, idOf(it))
	}
	return ids
}
