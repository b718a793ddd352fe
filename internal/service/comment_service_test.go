package service

import (
	"context"
	"testing"

	"datablog/internal/models"
	"datablog/internal/repository"
	"datablog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateReplyUsesParentPost(t *testing.T) {
	t.Parallel()
	store, fx := newTestStore(t)
	svc := NewCommentService(store)
	ctx := context.Background()

	author := fx.User("author@example.com", "x", nil)
	first := fx.Post("first", author, nil)
	second := fx.Post("second", author, nil)
	parent := fx.Comment("root", first, author, nil)

	reply, err := svc.Create(ctx, CreateCommentInput{Content: "reply", PostID: second.ID, ParentID: &parent.ID, UserID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, *reply.IDPost)
	assert.Equal(t, author.FullName(), reply.UserName)
	assert.NotNil(t, reply.PublishedAt)

	_, err = svc.Create(ctx, CreateCommentInput{Content: "x", PostID: first.ID, ParentID: uintPtr(999), UserID: author.ID})
	assertCode(t, err, models.CodeNotFound)
	_, err = svc.Create(ctx, CreateCommentInput{Content: "x", PostID: 999, UserID: author.ID})
	assertCode(t, err, models.CodeNotFound)
	// a reply still names an existing post even though it follows its parent's
	_, err = svc.Create(ctx, CreateCommentInput{Content: "x", PostID: 999, ParentID: &parent.ID, UserID: author.ID})
	assertCode(t, err, models.CodeNotFound)
	_, err = svc.Create(ctx, CreateCommentInput{Content: "x", PostID: first.ID, UserID: 999})
	assertCode(t, err, models.CodeNotFound)
}

func TestCommentService_ListAndGet(t *testing.T) {
	t.Parallel()
	store, fx := newTestStore(t)
	svc := NewCommentService(store)
	ctx := context.Background()

	author := fx.User("author@example.com", "x", nil)
	post := fx.Post("p", author, nil)
	other := fx.Post("other", author, nil)
	root := fx.Comment("root", post, author, nil)
	reply := fx.Comment("reply", post, author, root)
	fx.Comment("nested", post, author, reply)
	fx.Comment("second root", post, author, nil)
	foreign := fx.Comment("elsewhere", other, author, nil)

	page, err := svc.ListByPost(ctx, post.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(2), page.TotalElements)
	require.Len(t, page.Content[0].ChildComments, 1)
	require.Len(t, page.Content[0].ChildComments[0].ChildComments, 1)
	assert.Equal(t, "nested", page.Content[0].ChildComments[0].ChildComments[0].Content)

	got, err := svc.GetByID(ctx, reply.ID, post.ID)
	require.NoError(t, err)
	assert.Len(t, got.ChildComments, 1)

	_, err = svc.GetByID(ctx, foreign.ID, post.ID)
	assertCode(t, err, models.CodeNotFound)
	_, err = svc.ListByPost(ctx, 999, 0, 10)
	assertCode(t, err, models.CodeNotFound)
}

func TestCommentService_OnlyAuthorCanModify(t *testing.T) {
	t.Parallel()
	store, fx := newTestStore(t)
	svc := NewCommentService(store)
	ctx := context.Background()

	author := fx.User("author@example.com", "x", nil)
	stranger := fx.User("stranger@example.com", "x", nil)
	post := fx.Post("p", author, nil)
	comment := fx.Comment("mine", post, author, nil)

	_, err := svc.Update(ctx, UpdateCommentInput{CommentID: comment.ID, Content: "hijack", PostID: post.ID, UserID: stranger.ID})
	assertCode(t, err, models.CodeUnauthorized)

	err = svc.Delete(ctx, DeleteCommentInput{CommentID: comment.ID, PostID: post.ID, UserID: stranger.ID})
	assertCode(t, err, models.CodeUnauthorized)
	assert.Equal(t, int64(1), fx.Count("posts_comments", ""))

	updated, err := svc.Update(ctx, UpdateCommentInput{CommentID: comment.ID, Content: "edited", PostID: post.ID, UserID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestCommentService_UpdateParentRules(t *testing.T) {
	t.Parallel()
	store, fx := newTestStore(t)
	svc := NewCommentService(store)
	ctx := context.Background()

	author := fx.User("author@example.com", "x", nil)
	post := fx.Post("p", author, nil)
	root := fx.Comment("root", post, author, nil)
	child := fx.Comment("child", post, author, root)
	sibling := fx.Comment("sibling", post, author, nil)

	tests := []struct {
		name     string
		parentID uint
		code     string
	}{
		{"own parent", root.ID, models.CodeInvalidArgument},
		{"own reply", child.ID, models.CodeInvalidArgument},
		{"missing parent", 999, models.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parentID := tt.parentID
			_, err := svc.Update(ctx, UpdateCommentInput{CommentID: root.ID, ParentID: &parentID, Content: "x", PostID: post.ID, UserID: author.ID})
			assertCode(t, err, tt.code)
		})
	}

	moved, err := svc.Update(ctx, UpdateCommentInput{CommentID: root.ID, ParentID: &sibling.ID, Content: "root", PostID: post.ID, UserID: author.ID})
	require.NoError(t, err)
	require.Len(t, moved.ChildComments, 1)
	assert.Equal(t, int64(1), fx.Count("posts_comments", "id = ? AND id_parent = ?", root.ID, sibling.ID))
}

func TestCommentService_DeleteRemovesReplies(t *testing.T) {
	t.Parallel()
	store, fx := newTestStore(t)
	svc := NewCommentService(store)

	author := fx.User("author@example.com", "x", nil)
	other := fx.User("other@example.com", "x", nil)
	post := fx.Post("p", author, nil)
	root := fx.Comment("root", post, author, nil)
	reply := fx.Comment("reply", post, other, root)
	fx.Comment("deeper", post, author, reply)
	fx.Comment("unrelated", post, other, nil)

	require.NoError(t, svc.Delete(context.Background(), DeleteCommentInput{CommentID: root.ID, PostID: post.ID, UserID: author.ID}))
	assert.Equal(t, int64(1), fx.Count("posts_comments", ""))
	assert.Equal(t, int64(1), fx.Count("posts_comments", "content = ?", "unrelated"))
}

func TestCommentService_UpdateMovesThreadToPost(t *testing.T) {
	t.Parallel()
	db := testutil.NewSQLiteDB(t)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	store, fx := repository.NewStore(db), testutil.NewFixtures(t, db)
	svc := NewCommentService(store)
	ctx := context.Background()

	author := fx.User("author@example.com", "x", nil)
	first := fx.Post("first", author, nil)
	second := fx.Post("second", author, nil)
	anchor := fx.Comment("anchor", first, author, nil)
	root := fx.Comment("root", first, author, anchor)
	reply := fx.Comment("reply", first, author, root)
	nested := fx.Comment("nested", first, author, reply)

	moved, err := svc.Update(ctx, UpdateCommentInput{CommentID: root.ID, Content: "root", PostID: second.ID, UserID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, second.ID, *moved.IDPost)
	require.Len(t, moved.ChildComments, 1)
	assert.Equal(t, second.ID, *moved.ChildComments[0].IDPost)

	assert.Equal(t, int64(3), fx.Count("posts_comments", "id_post = ?", second.ID))
	assert.Equal(t, int64(1), fx.Count("posts_comments", "id = ? AND id_parent IS NULL", root.ID))
	assert.Equal(t, int64(1), fx.Count("posts_comments", "id = ? AND id_post = ?", nested.ID, second.ID))

	page, err := svc.ListByPost(ctx, second.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	require.Len(t, page.Content[0].ChildComments, 1)
	require.Len(t, page.Content[0].ChildComments[0].ChildComments, 1)

	page, err = svc.ListByPost(ctx, first.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Empty(t, page.Content[0].ChildComments)

	require.NoError(t, NewPostService(store).Delete(ctx, second.ID))
	assert.Equal(t, int64(0), fx.Count("posts_comments", "id_post = ?", second.ID))
	assert.Equal(t, int64(1), fx.Count("posts_comments", "id = ?", anchor.ID))
}

func TestCommentService_UpdateRejectsParentFromOtherPost(t *testing.T) {
	t.Parallel()
	store, fx := newTestStore(t)
	svc := NewCommentService(store)
	ctx := context.Background()

	author := fx.User("author@example.com", "x", nil)
	first := fx.Post("first", author, nil)
	second := fx.Post("second", author, nil)
	comment := fx.Comment("comment", first, author, nil)
	elsewhere := fx.Comment("elsewhere", second, author, nil)

	_, err := svc.Update(ctx, UpdateCommentInput{CommentID: comment.ID, ParentID: &elsewhere.ID, Content: "x", PostID: first.ID, UserID: author.ID})
	assertCode(t, err, models.CodeInvalidArgument)

	// naming the parent's post moves the comment under it
	moved, err := svc.Update(ctx, UpdateCommentInput{CommentID: comment.ID, ParentID: &elsewhere.ID, Content: "x", PostID: second.ID, UserID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, second.ID, *moved.IDPost)
	assert.Equal(t, int64(1), fx.Count("posts_comments", "id = ? AND id_parent = ? AND id_post = ?", comment.ID, elsewhere.ID, second.ID))
}
