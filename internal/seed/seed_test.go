package seed

import (
	"context"
	"strings"
	"testing"

	"datablog/internal/models"
	"datablog/internal/repository"
	"datablog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixtures(t *testing.T) {
	fx, err := DefaultFixtures()
	require.NoError(t, err)

	names := make([]string, 0, len(fx.Roles))
	for _, r := range fx.Roles {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{models.RoleAdmin, models.RoleUser}, names)
	assert.NotEmpty(t, fx.Tags)
	require.NotEmpty(t, fx.Categories)
	assert.Equal(t, "JAVA", fx.Categories[0].Title)
	assert.Equal(t, "Streams", fx.Categories[0].Children[0].Title)
}

func TestLoadFixtures_RejectsUnknownFields(t *testing.T) {
	_, err := LoadFixtures(strings.NewReader("roles:\n  - name: ADMIN\n    colour: red\n"))
	assert.Error(t, err)

	fx, err := LoadFixtures(strings.NewReader("tags:\n  - title: go\n    metaTitle: go\n    slug: go\n"))
	require.NoError(t, err)
	assert.Len(t, fx.Tags, 1)
}

func TestSeeder_RunIsRepeatable(t *testing.T) {
	t.Parallel()
	db := testutil.NewSQLiteDB(t)
	counts := testutil.NewFixtures(t, db)
	s := NewSeeder(db)
	ctx := context.Background()

	fx, err := DefaultFixtures()
	require.NoError(t, err)
	opts := Options{AdminEmail: "root@example.com", AdminPassword: "rootpass"}

	require.NoError(t, s.Run(ctx, fx, opts))
	require.NoError(t, s.Run(ctx, fx, opts))

	assert.Equal(t, int64(2), counts.Count("roles", ""))
	assert.Equal(t, int64(1), counts.Count("users", ""))
	assert.Equal(t, int64(8), counts.Count("categories", ""))
	assert.Equal(t, int64(5), counts.Count("tags", ""))

	store := repository.NewStore(db)
	admin, err := store.Users().GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.RoleName())

	streams, err := store.Categories().GetByTitle(ctx, "Streams")
	require.NoError(t, err)
	java, err := store.Categories().GetByTitle(ctx, "JAVA")
	require.NoError(t, err)
	require.NotNil(t, streams.ParentID)
	assert.Equal(t, java.ID, *streams.ParentID)
}

func TestSeeder_Demo(t *testing.T) {
	t.Parallel()
	db := testutil.NewSQLiteDB(t)
	counts := testutil.NewFixtures(t, db)
	s := NewSeeder(db)
	ctx := context.Background()

	fx, err := DefaultFixtures()
	require.NoError(t, err)
	require.NoError(t, s.Run(ctx, fx, Options{}))

	res, err := s.Demo(ctx, Options{Users: 3, Posts: 4, CommentsPerPost: 5, RandSeed: 42})
	require.NoError(t, err)
	assert.Equal(t, &DemoResult{Users: 3, Posts: 4, Comments: 20}, res)
	assert.Equal(t, int64(4), counts.Count("posts", ""))
	assert.Equal(t, int64(20), counts.Count("posts_comments", ""))
	assert.Positive(t, counts.Count("post_tag", ""))
	assert.Zero(t, counts.Count("posts", "id_user IS NULL OR id_category IS NULL"))

	require.NoError(t, s.ClearAll(ctx))
	for _, table := range []string{"post_tag", "posts_comments", "posts", "tags", "categories", "users", "roles"} {
		assert.Zero(t, counts.Count(table, ""), table)
	}
}

func TestSeeder_DemoNeedsUserRole(t *testing.T) {
	t.Parallel()
	s := NewSeeder(testutil.NewSQLiteDB(t))

	_, err := s.Demo(context.Background(), Options{Users: 1})
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
