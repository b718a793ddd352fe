package service

import (
	"context"
	"strings"

	"datablog/internal/dto"
	"datablog/internal/observability"
	"datablog/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// TagService manages tags.
type TagService struct {
	store repository.Store
}

func NewTagService(store repository.Store) *TagService {
	return &TagService{store: store}
}

func (s *TagService) List(ctx context.Context, q repository.PageQuery) (dto.Page[dto.TagDTO], error) {
	tags, total, err := s.store.Tags().List(ctx, q)
	if err != nil {
		return dto.Page[dto.TagDTO]{}, err
	}
	content := make([]dto.TagDTO, 0, len(tags))
	for _, t := range tags {
		content = append(content, dto.TagFromModel(t))
	}
	page, size := pageFor(q)
	return dto.NewPage(content, page, size, total), nil
}

// ListByPost returns all tags of a post. sortBy "id" orders by id, anything else by title.
func (s *TagService) ListByPost(ctx context.Context, postID uint, sortBy, direction string) ([]dto.TagDTO, error) {
	if err := requirePost(ctx, s.store, postID); err != nil {
		return nil, err
	}
	tags, err := s.store.Tags().ListByPost(ctx, postID, sortBy == "id", strings.EqualFold(direction, "desc"))
	if err != nil {
		return nil, err
	}
	out := make([]dto.TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, dto.TagFromModel(t))
	}
	return out, nil
}

func (s *TagService) GetByID(ctx context.Context, id uint) (*dto.TagDTO, error) {
	tag, err := s.store.Tags().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.TagFromModel(tag)
	return &out, nil
}

func (s *TagService) Create(ctx context.Context, in dto.TagDTO) (out *dto.TagDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "TagService.Create")
	defer func() { end(err) }()

	tag := in.ToModel()
	if err = s.store.Tags().Create(ctx, tag); err != nil {
		return nil, err
	}
	observability.RecordMutation("tag", "create")
	result := dto.TagFromModel(tag)
	return &result, nil
}

func (s *TagService) Update(ctx context.Context, id uint, in dto.TagDTO) (out *dto.TagDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "TagService.Update", attribute.Int64("tag.id", int64(id)))
	defer func() { end(err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		tag, err := tx.Tags().GetByID(ctx, id)
		if err != nil {
			return err
		}
		tag.Title = in.Title
		tag.MetaTitle = in.MetaTitle
		tag.Slug = in.Slug
		if err := tx.Tags().Update(ctx, tag); err != nil {
			return err
		}
		result := dto.TagFromModel(tag)
		out = &result
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.RecordMutation("tag", "update")
	return out, nil
}

// Delete unlinks the tag from every post, then removes it.
func (s *TagService) Delete(ctx context.Context, id uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "TagService.Delete", attribute.Int64("tag.id", int64(id)))
	defer func() { end(err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Tags().GetByID(ctx, id); err != nil {
			return err
		}
		if err := tx.PostTags().DeleteByTag(ctx, id); err != nil {
			return err
		}
		return tx.Tags().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	observability.RecordMutation("tag", "delete")
	return nil
}
