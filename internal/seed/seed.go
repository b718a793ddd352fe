// Package seed loads reference data and demo content. The reference data (roles,
// category tree, tags) is safe to load repeatedly; demo content is for development only.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"datablog/internal/dto"
	"datablog/internal/middleware"
	"datablog/internal/models"
	"datablog/internal/repository"
	"datablog/internal/service"

	"gorm.io/gorm"
)

// Options configures a full seeding run.
type Options struct {
	AdminEmail      string
	AdminPassword   string
	Users           int
	Posts           int
	CommentsPerPost int
	Clean           bool
	// RandSeed makes demo content reproducible. Zero picks a random seed.
	RandSeed int64
}

// Seeder writes through the services so seeded rows obey the same rules as API writes.
type Seeder struct {
	db         *gorm.DB
	store      repository.Store
	roles      *service.RoleService
	users      *service.UserService
	categories *service.CategoryService
	tags       *service.TagService
	posts      *service.PostService
	comments   *service.CommentService
}

func NewSeeder(db *gorm.DB) *Seeder {
	store := repository.NewStore(db)
	return &Seeder{
		db:         db,
		store:      store,
		roles:      service.NewRoleService(store),
		users:      service.NewUserService(store),
		categories: service.NewCategoryService(store),
		tags:       service.NewTagService(store),
		posts:      service.NewPostService(store),
		comments:   service.NewCommentService(store),
	}
}

// Run clears (optionally) and loads fixtures, the admin account and demo content.
func (s *Seeder) Run(ctx context.Context, fx *Fixtures, opts Options) error {
	if opts.Clean {
		if err := s.ClearAll(ctx); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}
	if err := s.Roles(ctx, fx.Roles); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	if opts.AdminEmail != "" {
		if _, err := s.Admin(ctx, opts.AdminEmail, opts.AdminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}
	if err := s.Categories(ctx, fx.Categories); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := s.Tags(ctx, fx.Tags); err != nil {
		return fmt.Errorf("seed tags: %w", err)
	}
	if opts.Users > 0 || opts.Posts > 0 {
		if _, err := s.Demo(ctx, opts); err != nil {
			return fmt.Errorf("seed demo content: %w", err)
		}
	}
	return nil
}

// Roles creates every role that does not exist yet.
func (s *Seeder) Roles(ctx context.Context, roles []RoleFixture) error {
	created := 0
	for _, r := range roles {
		_, err := s.store.Roles().GetByName(ctx, r.Name)
		if err == nil {
			continue
		}
		if !models.IsCode(err, models.CodeNotFound) {
			return err
		}
		if _, err := s.roles.Create(ctx, dto.RoleDTO{Name: r.Name, Description: r.Description}); err != nil {
			return err
		}
		created++
	}
	middleware.Logger.InfoContext(ctx, "roles seeded", slog.Int("created", created))
	return nil
}

// Admin ensures an ADMIN account for email exists. An existing account is left untouched.
func (s *Seeder) Admin(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := s.store.Users().GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !models.IsCode(err, models.CodeNotFound) {
		return nil, err
	}

	role, err := s.store.Roles().GetByName(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.Create(ctx, dto.UserDTO{
		FirstName: "Blog",
		LastName:  "Administrator",
		Email:     email,
		Password:  password,
	}, role.ID); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "admin account created", slog.String("email", email))
	return s.store.Users().GetByEmail(ctx, email)
}

// Categories creates the category tree, skipping nodes whose title already exists.
func (s *Seeder) Categories(ctx context.Context, roots []CategoryFixture) error {
	for _, root := range roots {
		if err := s.category(ctx, root, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) category(ctx context.Context, node CategoryFixture, parentID *uint) error {
	var id uint
	existing, err := s.store.Categories().GetByTitle(ctx, node.Title)
	switch {
	case err == nil:
		id = existing.ID
	case models.IsCode(err, models.CodeNotFound):
		created, err := s.categories.Create(ctx, node.dto(), parentID)
		if err != nil {
			return err
		}
		id = created.ID
	default:
		return err
	}

	for _, child := range node.Children {
		if err := s.category(ctx, child, &id); err != nil {
			return err
		}
	}
	return nil
}

// Tags creates every tag, treating a uniqueness conflict as already seeded.
func (s *Seeder) Tags(ctx context.Context, tags []TagFixture) error {
	for _, t := range tags {
		if _, err := s.tags.Create(ctx, t.dto()); err != nil && !models.IsCode(err, models.CodeConflict) {
			return err
		}
	}
	return nil
}

// ClearAll deletes every row, children before parents.
func (s *Seeder) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []interface{}{
			&models.PostTag{},
			&models.Comment{},
			&models.Post{},
			&models.Tag{},
			&models.Category{},
			&models.User{},
			&models.Role{},
		} {
			if err := tx.Delete(m).Error; err != nil {
				return err
			}
		}
		middleware.Logger.InfoContext(ctx, "existing data cleared")
		return nil
	})
}
