package service

import (
	"context"
	"fmt"
	"log/slog"

	"datablog/internal/dto"
	"datablog/internal/middleware"
	"datablog/internal/models"
	"datablog/internal/observability"
	"datablog/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// CategoryService manages the category tree.
type CategoryService struct {
	store repository.Store
}

func NewCategoryService(store repository.Store) *CategoryService {
	return &CategoryService{store: store}
}

func categoryID(c *models.Category) uint { return c.ID }

// List returns the root categories found on the requested page, each with its subtree.
// Non-root rows on the page are dropped, so the page total counts roots on this page only.
func (s *CategoryService) List(ctx context.Context, q repository.PageQuery) (dto.Page[dto.CategoryDTO], error) {
	ctx, end := observability.StartSpan(ctx, "CategoryService.List")
	page, err := s.list(ctx, q)
	end(err)
	return page, err
}

func (s *CategoryService) list(ctx context.Context, q repository.PageQuery) (dto.Page[dto.CategoryDTO], error) {
	categories, _, err := s.store.Categories().List(ctx, q)
	if err != nil {
		return dto.Page[dto.CategoryDTO]{}, err
	}

	roots := make([]*models.Category, 0, len(categories))
	for _, c := range categories {
		if c.IsRoot() {
			roots = append(roots, c)
		}
	}
	tree, err := s.tree(ctx, s.store, roots)
	if err != nil {
		return dto.Page[dto.CategoryDTO]{}, err
	}

	page, size := pageFor(q)
	return dto.NewPage(tree, page, size, int64(len(tree))), nil
}

func (s *CategoryService) tree(ctx context.Context, store repository.Store, roots []*models.Category) ([]dto.CategoryDTO, error) {
	if len(roots) == 0 {
		return []dto.CategoryDTO{}, nil
	}
	descendants, err := store.Categories().Descendants(ctx, idsOf(roots, categoryID))
	if err != nil {
		return nil, err
	}
	return dto.CategoryTree(roots, descendants), nil
}

func (s *CategoryService) single(ctx context.Context, store repository.Store, c *models.Category) (*dto.CategoryDTO, error) {
	tree, err := s.tree(ctx, store, []*models.Category{c})
	if err != nil {
		return nil, err
	}
	return &tree[0], nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*dto.CategoryDTO, error) {
	c, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.single(ctx, s.store, c)
}

func (s *CategoryService) GetByTitle(ctx context.Context, title string) (*dto.CategoryDTO, error) {
	c, err := s.store.Categories().GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return s.single(ctx, s.store, c)
}

// Create inserts a new category, under parentID when one is given.
func (s *CategoryService) Create(ctx context.Context, in dto.CategoryDTO, parentID *uint) (out *dto.CategoryDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "CategoryService.Create")
	defer func() { end(err) }()

	category := in.ToModel()
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if parentID != nil {
			parent, err := tx.Categories().GetByID(ctx, *parentID)
			if err != nil {
				return err
			}
			category.ParentID = &parent.ID
		}
		return tx.Categories().Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	observability.RecordMutation("category", "create")
	result := dto.CategoryFromModel(category)
	return &result, nil
}

// Update overwrites title, metaTitle and slug. The parent changes only when parentID is given
// and must not be the category itself or any of its descendants.
func (s *CategoryService) Update(ctx context.Context, id uint, in dto.CategoryDTO, parentID *uint) (out *dto.CategoryDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "CategoryService.Update", attribute.Int64("category.id", int64(id)))
	defer func() { end(err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		category, err := tx.Categories().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if parentID != nil {
			if *parentID == id {
				return models.NewInvalidArgumentError("A category cannot be its own parent")
			}
			parent, err := tx.Categories().GetByID(ctx, *parentID)
			if err != nil {
				return err
			}
			if err := s.ensureNotAncestor(ctx, tx, id, parent); err != nil {
				return err
			}
			category.ParentID = &parent.ID
		}

		category.Title = in.Title
		category.MetaTitle = in.MetaTitle
		category.Slug = in.Slug
		if err := tx.Categories().Update(ctx, category); err != nil {
			return err
		}

		out, err = s.single(ctx, tx, category)
		return err
	})
	if err != nil {
		return nil, err
	}

	observability.RecordMutation("category", "update")
	return out, nil
}

// ensureNotAncestor walks up from parent and fails if it reaches id.
func (s *CategoryService) ensureNotAncestor(ctx context.Context, tx repository.Store, id uint, parent *models.Category) error {
	seen := map[uint]bool{parent.ID: true}
	current := parent
	for current.ParentID != nil {
		next := *current.ParentID
		if next == id {
			return models.NewInvalidArgumentError(
				fmt.Sprintf("Category %d cannot be moved under its own descendant %d", id, parent.ID))
		}
		if seen[next] {
			return nil
		}
		seen[next] = true

		var err error
		if current, err = tx.Categories().GetByID(ctx, next); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a category without children. Posts filed under it are kept with no category.
func (s *CategoryService) Delete(ctx context.Context, id uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "CategoryService.Delete", attribute.Int64("category.id", int64(id)))
	defer func() { end(err) }()

	var detached int64
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Categories().GetByID(ctx, id); err != nil {
			return err
		}
		children, err := tx.Categories().CountChildren(ctx, id)
		if err != nil {
			return err
		}
		if children > 0 {
			return models.NewInvalidArgumentError(
				fmt.Sprintf("Category with ID %d has child categories and cannot be deleted", id))
		}
		if detached, err = tx.Categories().DetachPosts(ctx, id); err != nil {
			return err
		}
		return tx.Categories().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	observability.RecordMutation("category", "delete")
	middleware.Logger.InfoContext(ctx, "category deleted",
		slog.Uint64("category_id", uint64(id)),
		slog.Int64("detached_posts", detached),
	)
	return nil
}
