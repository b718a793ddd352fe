package service

import (
	"context"
	"log/slog"

	"datablog/internal/dto"
	"datablog/internal/middleware"
	"datablog/internal/observability"
	"datablog/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// RoleService manages authorization roles.
type RoleService struct {
	store repository.Store
}

func NewRoleService(store repository.Store) *RoleService {
	return &RoleService{store: store}
}

func (s *RoleService) List(ctx context.Context, q repository.PageQuery) (dto.Page[dto.RoleDTO], error) {
	roles, total, err := s.store.Roles().List(ctx, q)
	if err != nil {
		return dto.Page[dto.RoleDTO]{}, err
	}
	content := make([]dto.RoleDTO, 0, len(roles))
	for _, r := range roles {
		content = append(content, dto.RoleFromModel(r))
	}
	page, size := pageFor(q)
	return dto.NewPage(content, page, size, total), nil
}

func (s *RoleService) GetByID(ctx context.Context, id uint) (*dto.RoleDTO, error) {
	role, err := s.store.Roles().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.RoleFromModel(role)
	return &out, nil
}

func (s *RoleService) Create(ctx context.Context, in dto.RoleDTO) (out *dto.RoleDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "RoleService.Create")
	defer func() { end(err) }()

	role := in.ToModel()
	if err = s.store.Roles().Create(ctx, role); err != nil {
		return nil, err
	}
	observability.RecordMutation("role", "create")
	result := dto.RoleFromModel(role)
	return &result, nil
}

func (s *RoleService) Update(ctx context.Context, id uint, in dto.RoleDTO) (out *dto.RoleDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "RoleService.Update", attribute.Int64("role.id", int64(id)))
	defer func() { end(err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		role, err := tx.Roles().GetByID(ctx, id)
		if err != nil {
			return err
		}
		role.Name = in.Name
		role.Description = in.Description
		if err := tx.Roles().Update(ctx, role); err != nil {
			return err
		}
		result := dto.RoleFromModel(role)
		out = &result
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.RecordMutation("role", "update")
	return out, nil
}

// Delete removes a role. Users holding it keep their accounts with no role.
func (s *RoleService) Delete(ctx context.Context, id uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "RoleService.Delete", attribute.Int64("role.id", int64(id)))
	defer func() { end(err) }()

	var detached int64
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Roles().GetByID(ctx, id); err != nil {
			return err
		}
		var err error
		if detached, err = tx.Roles().DetachUsers(ctx, id); err != nil {
			return err
		}
		return tx.Roles().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	observability.RecordMutation("role", "delete")
	middleware.Logger.InfoContext(ctx, "role deleted",
		slog.Uint64("role_id", uint64(id)),
		slog.Int64("detached_users", detached),
	)
	return nil
}
