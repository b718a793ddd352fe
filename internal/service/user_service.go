package service

import (
	"context"
	"log/slog"
	"time"

	"datablog/internal/dto"
	"datablog/internal/middleware"
	"datablog/internal/models"
	"datablog/internal/observability"
	"datablog/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// UserService manages user accounts.
type UserService struct {
	store  repository.Store
	hasher passwordHasher
	now    func() time.Time
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store, now: time.Now}
}

func (s *UserService) List(ctx context.Context, q repository.PageQuery) (dto.Page[dto.UserDTO], error) {
	users, total, err := s.store.Users().List(ctx, q)
	if err != nil {
		return dto.Page[dto.UserDTO]{}, err
	}
	content := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		content = append(content, dto.UserFromModel(u))
	}
	page, size := pageFor(q)
	return dto.NewPage(content, page, size, total), nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserDTO, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.UserFromModel(user)
	return &out, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*dto.UserDTO, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	out := dto.UserFromModel(user)
	return &out, nil
}

// Create registers an active user holding roleID.
func (s *UserService) Create(ctx context.Context, in dto.UserDTO, roleID uint) (*dto.UserDTO, error) {
	return s.create(ctx, in, func(tx repository.Store) (*models.Role, error) {
		return tx.Roles().GetByID(ctx, roleID)
	})
}

// Register creates an account with the USER role. It fails with NotFound when that role is missing.
func (s *UserService) Register(ctx context.Context, in dto.UserDTO) (*dto.UserDTO, error) {
	return s.create(ctx, in, func(tx repository.Store) (*models.Role, error) {
		return tx.Roles().GetByName(ctx, models.RoleUser)
	})
}

func (s *UserService) create(ctx context.Context, in dto.UserDTO, role func(repository.Store) (*models.Role, error)) (out *dto.UserDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "UserService.Create")
	defer func() { end(err) }()

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		IsActive:  true,
	}
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		r, err := role(tx)
		if err != nil {
			return err
		}
		if user.Password, err = s.hasher.Hash(in.Password); err != nil {
			return models.NewInternalError(err)
		}
		user.RegisteredAt = s.now()
		user.RoleID = &r.ID
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		user.Role = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordMutation("user", "create")
	middleware.Logger.InfoContext(ctx, "user created",
		slog.Uint64("new_user_id", uint64(user.ID)),
		slog.String("role", user.RoleName()),
	)
	result := dto.UserFromModel(user)
	return &result, nil
}

// Update overwrites names, email and password. The role changes only when the user already
// holds one and newRoleID is given.
func (s *UserService) Update(ctx context.Context, id uint, in dto.UserDTO, newRoleID *uint) (out *dto.UserDTO, err error) {
	ctx, end := observability.StartSpan(ctx, "UserService.Update", attribute.Int64("user.id", int64(id)))
	defer func() { end(err) }()

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user.RoleID != nil && newRoleID != nil {
			role, err := tx.Roles().GetByID(ctx, *newRoleID)
			if err != nil {
				return err
			}
			user.RoleID, user.Role = &role.ID, role
		}

		user.FirstName = in.FirstName
		user.LastName = in.LastName
		user.Email = in.Email
		if user.Password, err = s.hasher.Hash(in.Password); err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}
		result := dto.UserFromModel(user)
		out = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordMutation("user", "update")
	return out, nil
}

// Delete removes a user, the user's comments with their replies, and the user's posts
// with everything attached to them.
func (s *UserService) Delete(ctx context.Context, id uint) (err error) {
	ctx, end := observability.StartSpan(ctx, "UserService.Delete", attribute.Int64("user.id", int64(id)))
	defer func() { end(err) }()

	var removedPosts int
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, id); err != nil {
			return err
		}

		commentIDs, err := tx.Comments().IDsByUser(ctx, id)
		if err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			replies, err := tx.Comments().Descendants(ctx, commentIDs)
			if err != nil {
				return err
			}
			if err := tx.Comments().DeleteByIDs(ctx, append(commentIDs, idsOf(replies, commentID)...)); err != nil {
				return err
			}
		}

		postIDs, err := tx.Posts().IDsByUser(ctx, id)
		if err != nil {
			return err
		}
		if err := deletePosts(ctx, tx, postIDs, false); err != nil {
			return err
		}
		removedPosts = len(postIDs)
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	observability.RecordMutation("user", "delete")
	middleware.Logger.InfoContext(ctx, "user deleted",
		slog.Uint64("deleted_user_id", uint64(id)),
		slog.Int("removed_posts", removedPosts),
	)
	return nil
}
