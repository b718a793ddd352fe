// Package testutil provides shared test databases and fixtures for backend tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"datablog/internal/database"
	"datablog/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewSQLiteDB opens a private in-memory SQLite database with the full schema applied.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:datablog_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// Fixtures inserts rows directly, bypassing services.
type Fixtures struct {
	t  testing.TB
	db *gorm.DB
}

func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

func (f *Fixtures) create(v interface{}) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(v).Error)
}

func (f *Fixtures) Role(name string) *models.Role {
	r := &models.Role{Name: name, Description: name + " role"}
	f.create(r)
	return r
}

// User creates an active user. passwordHash is stored as is.
func (f *Fixtures) User(email, passwordHash string, role *models.Role) *models.User {
	u := &models.User{
		FirstName:    "Test",
		LastName:     email,
		Email:        email,
		Password:     passwordHash,
		RegisteredAt: time.Now(),
		IsActive:     true,
	}
	if role != nil {
		u.RoleID = &role.ID
	}
	f.create(u)
	u.Role = role
	return u
}

func (f *Fixtures) Category(title string, parent *models.Category) *models.Category {
	c := &models.Category{Title: title, MetaTitle: "meta " + title, Slug: "slug-" + title}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	f.create(c)
	return c
}

func (f *Fixtures) Tag(title string) *models.Tag {
	tag := &models.Tag{Title: title, MetaTitle: "meta " + title, Slug: "slug-" + title}
	f.create(tag)
	return tag
}

// Post creates a post with its join rows.
func (f *Fixtures) Post(title string, owner *models.User, category *models.Category, tags ...*models.Tag) *models.Post {
	f.t.Helper()
	p := &models.Post{
		Title:     title,
		MetaTitle: "meta " + title,
		Slug:      "slug-" + title,
		Content:   "content of " + title,
		Summary:   "summary of " + title,
		CreatedAt: time.Now(),
	}
	if owner != nil {
		p.UserID = &owner.ID
	}
	if category != nil {
		p.CategoryID = &category.ID
	}
	require.NoError(f.t, f.db.Omit("User", "Category", "Tags").Create(p).Error)
	for _, tag := range tags {
		f.create(&models.PostTag{PostID: p.ID, TagID: tag.ID})
	}
	return p
}

func (f *Fixtures) Comment(content string, post *models.Post, author *models.User, parent *models.Comment) *models.Comment {
	c := &models.Comment{Content: content, PublishedAt: time.Now(), PostID: &post.ID, UserID: &author.ID}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	f.t.Helper()
	require.NoError(f.t, f.db.Omit("Post", "User", "Parent").Create(c).Error)
	return c
}

// Count returns the number of rows in table matching the optional condition.
func (f *Fixtures) Count(table, where string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	q := f.db.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(f.t, q.Count(&n).Error)
	return n
}
