// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"datablog/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxPageSize caps the number of rows a single page can request.
const MaxPageSize = 100

// PageQuery selects one page of a sorted listing. SortBy is a DTO field name.
type PageQuery struct {
	Page   int
	Size   int
	SortBy string
	Desc   bool
}

// Limit returns the effective page size: 10 when unset, capped at MaxPageSize.
func (q PageQuery) Limit() int {
	switch {
	case q.Size < 1:
		return 10
	case q.Size > MaxPageSize:
		return MaxPageSize
	}
	return q.Size
}

func (q PageQuery) offset() int {
	if q.Page < 0 {
		return 0
	}
	return q.Page * q.Limit()
}

// sortColumns maps the sortable DTO field names of a resource to columns.
type sortColumns struct {
	fallback string
	columns  map[string]string
}

func (s sortColumns) order(sortBy string, desc bool) (clause.OrderBy, error) {
	if sortBy == "" {
		sortBy = s.fallback
	}
	col, ok := s.columns[sortBy]
	if !ok {
		return clause.OrderBy{}, models.NewInvalidArgumentError(fmt.Sprintf("Unknown sort property: %s", sortBy))
	}
	cols := []clause.OrderByColumn{{Column: clause.Column{Name: col}, Desc: desc}}
	if col != "id" {
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return clause.OrderBy{Columns: cols}, nil
}

// paginate counts the rows matched by base and loads the requested page into dest.
// scopes apply to the page query only, so preloads never reach the count.
func paginate(base *gorm.DB, q PageQuery, sorts sortColumns, dest interface{}, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	order, err := sorts.order(q.SortBy, q.Desc)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	err = base.Session(&gorm.Session{}).
		Scopes(scopes...).
		Clauses(order).
		Limit(q.Limit()).
		Offset(q.offset()).
		Find(dest).Error
	return total, err
}

// lookupError converts a failed single-row lookup into an AppError.
func lookupError(err error, resource string, key interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, key)
	}
	return writeError(err, resource)
}

// lookupByError is lookupError for lookups by a non-id field.
func lookupByError(err error, resource, field string, value interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundByError(resource, field, value)
	}
	return writeError(err, resource)
}

// writeError converts unique violations into Conflict. Other errors pass through.
func writeError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return models.NewConflictError(fmt.Sprintf("%s already exists", resource), err)
	}
	return err
}

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Store groups the repositories that share one database handle.
type Store interface {
	Roles() RoleRepository
	Users() UserRepository
	Categories() CategoryRepository
	Tags() TagRepository
	Posts() PostRepository
	PostTags() PostTagRepository
	Comments() CommentRepository

	// WithinTransaction runs fn against a Store bound to one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by db.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Roles() RoleRepository { return NewRoleRepository(s.db) }
func (s *gormStore) Users() UserRepository { return NewUserRepository(s.db) }
func (s *gormStore) Categories() CategoryRepository { return NewCategoryRepository(s.db) }
func (s *gormStore) Tags() TagRepository { return NewTagRepository(s.db) }
func (s *gormStore) Posts() PostRepository { return NewPostRepository(s.db) }
func (s *gormStore) PostTags() PostTagRepository { return NewPostTagRepository(s.db) }
func (s *gormStore) Comments() CommentRepository { return NewCommentRepository(s.db) }

func (s *gormStore) WithinTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
