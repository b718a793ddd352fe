package dto

import (
	"testing"
	"time"

	"datablog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 0, 2, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.First)
	assert.False(t, p.Last)
	assert.False(t, p.Empty)
	assert.Equal(t, 2, p.NumberOfElements)

	last := NewPage([]int{5}, 2, 2, 5)
	assert.True(t, last.Last)
	assert.False(t, last.First)

	empty := NewPage[int](nil, 0, 10, 0)
	assert.NotNil(t, empty.Content)
	assert.True(t, empty.Empty)
	assert.True(t, empty.Last)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestMapPage(t *testing.T) {
	src := NewPage([]int{1, 2, 3}, 1, 3, 9)
	out := MapPage(src, func(i int) string { return string(rune('a' + i - 1)) })
	assert.Equal(t, []string{"a", "b", "c"}, out.Content)
	assert.Equal(t, src.TotalPages, out.TotalPages)
	assert.Equal(t, src.Page, out.Page)
	assert.Equal(t, int64(9), out.TotalElements)
}

func TestCategoryTree(t *testing.T) {
	java := &models.Category{ID: 1, Title: "JAVA"}
	streams := &models.Category{ID: 2, Title: "Streams", ParentID: uintPtr(1)}
	lambdas := &models.Category{ID: 3, Title: "Lambdas", ParentID: uintPtr(2)}
	golang := &models.Category{ID: 4, Title: "Go"}

	tree := CategoryTree([]*models.Category{java, golang}, []*models.Category{streams, lambdas})
	require.Len(t, tree, 2)
	assert.Equal(t, "JAVA", tree[0].Title)
	require.Len(t, tree[0].ChildCategories, 1)
	assert.Equal(t, "Streams", tree[0].ChildCategories[0].Title)
	require.Len(t, tree[0].ChildCategories[0].ChildCategories, 1)
	assert.Equal(t, "Lambdas", tree[0].ChildCategories[0].ChildCategories[0].Title)
	assert.Empty(t, tree[1].ChildCategories)
}

func TestCategoryTree_CycleTerminates(t *testing.T) {
	a := &models.Category{ID: 1, Title: "A", ParentID: uintPtr(2)}
	b := &models.Category{ID: 2, Title: "B", ParentID: uintPtr(1)}

	tree := CategoryTree([]*models.Category{a}, []*models.Category{a, b})
	require.Len(t, tree, 1)
	require.Len(t, tree[0].ChildCategories, 1)
	assert.Equal(t, "B", tree[0].ChildCategories[0].Title)
	assert.Empty(t, tree[0].ChildCategories[0].ChildCategories)
}

func TestCommentTree(t *testing.T) {
	published := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	author := &models.User{ID: 9, FirstName: "Ada", LastName: "Lovelace"}
	root := &models.Comment{ID: 1, Content: "first", PublishedAt: published, PostID: uintPtr(3), UserID: uintPtr(9), User: author}
	reply := &models.Comment{ID: 2, Content: "reply", ParentID: uintPtr(1), PostID: uintPtr(3)}

	tree := CommentTree([]*models.Comment{root}, []*models.Comment{reply})
	require.Len(t, tree, 1)
	assert.Equal(t, "Ada Lovelace", tree[0].UserName)
	assert.Equal(t, uint(9), *tree[0].IDUser)
	assert.Equal(t, published, *tree[0].PublishedAt)
	require.Len(t, tree[0].ChildComments, 1)
	assert.Equal(t, "reply", tree[0].ChildComments[0].Content)
	assert.Nil(t, tree[0].ChildComments[0].PublishedAt)
}

func TestRoundTripKeepsWritableFields(t *testing.T) {
	tests := []struct {
		name string
		trip  func() (in, out [5]string, modelID uint)
	}{
		{
			name: "post",
			trip: func() (in, out [5]string, modelID uint) {
				d := PostDTO{ID: 42, Title: "Streams", MetaTitle: "Java streams", Slug: "java-streams", Content: "body", Summary: "short"}
				m := d.ToModel()
				back := PostFromModel(m)
				return [5]string{d.Title, d.MetaTitle, d.Slug, d.Content, d.Summary},
					[5]string{back.Title, back.MetaTitle, back.Slug, back.Content, back.Summary}, m.ID
			},
		},
		{
			name: "category",
			trip: func() (in, out [5]string, modelID uint) {
				d := CategoryDTO{ID: 42, Title: "JAVA", MetaTitle: "Java", Slug: "java"}
				m := d.ToModel()
				back := CategoryFromModel(m)
				return [5]string{d.Title, d.MetaTitle, d.Slug}, [5]string{back.Title, back.MetaTitle, back.Slug}, m.ID
			},
		},
		{
			name: "tag",
			trip: func() (in, out [5]string, modelID uint) {
				d := TagDTO{ID: 42, Title: "testing", MetaTitle: "Testing", Slug: "testing"}
				m := d.ToModel()
				back := TagFromModel(m)
				return [5]string{d.Title, d.MetaTitle, d.Slug}, [5]string{back.Title, back.MetaTitle, back.Slug}, m.ID
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out, modelID := tt.trip()
			assert.Equal(t, in, out)
			assert.Zero(t, modelID, "ToModel must not copy the incoming id")
		})
	}
}
