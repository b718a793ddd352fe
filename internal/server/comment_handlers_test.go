package server

import (
	"fmt"
	"net/http"
	"testing"

	"datablog/internal/dto"
	"datablog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentHandlers_CreateDefaultsToCaller(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	post := env.fx.Post("hello", env.admin, nil)

	resp, data := env.do(http.MethodPost, fmt.Sprintf("/api/comment?postId=%d", post.ID),
		dto.CommentDTO{Content: "nice"}, env.userToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	root := decode[dto.CommentDTO](t, data)
	require.NotNil(t, root.IDUser)
	assert.Equal(t, env.user.ID, *root.IDUser)
	assert.Equal(t, env.user.FullName(), root.UserName)

	resp, data = env.do(http.MethodPost,
		fmt.Sprintf("/api/comment?postId=%d&parentCommentId=%d&userId=%d", post.ID, root.ID, env.admin.ID),
		dto.CommentDTO{Content: "thanks"}, env.userToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	reply := decode[dto.CommentDTO](t, data)
	assert.Equal(t, env.admin.ID, *reply.IDUser)

	resp, data = env.do(http.MethodGet, fmt.Sprintf("/api/comment?postId=%d", post.ID), nil, env.userToken)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	page := decode[dto.Page[dto.CommentDTO]](t, data)
	require.Len(t, page.Content, 1)
	require.Len(t, page.Content[0].ChildComments, 1)
	assert.Equal(t, "thanks", page.Content[0].ChildComments[0].Content)

	resp, data = env.do(http.MethodGet, fmt.Sprintf("/api/comment/%d?postId=%d", root.ID, post.ID), nil, env.userToken)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Len(t, decode[dto.CommentDTO](t, data).ChildComments, 1)
}

func TestCommentHandlers_OnlyAuthorCanModify(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	post := env.fx.Post("hello", env.admin, nil)
	comment := env.fx.Comment("mine", post, env.user, nil)

	resp, data := env.do(http.MethodPut,
		fmt.Sprintf("/api/comment/%d?postId=%d&userId=%d", comment.ID, post.ID, env.admin.ID),
		dto.CommentDTO{Content: "hijacked"}, env.adminToken)
	assertError(t, resp, data, http.StatusUnauthorized, models.CodeUnauthorized)

	resp, data = env.do(http.MethodDelete,
		fmt.Sprintf("/api/comment/%d?postId=%d&userId=%d", comment.ID, post.ID, env.admin.ID),
		nil, env.adminToken)
	assertError(t, resp, data, http.StatusUnauthorized, models.CodeUnauthorized)

	resp, data = env.do(http.MethodPut,
		fmt.Sprintf("/api/comment/%d?postId=%d&userId=%d", comment.ID, post.ID, env.user.ID),
		dto.CommentDTO{Content: "edited"}, env.adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "edited", decode[dto.CommentDTO](t, data).Content)

	resp, _ = env.do(http.MethodDelete,
		fmt.Sprintf("/api/comment/%d?postId=%d&userId=%d", comment.ID, post.ID, env.user.ID),
		nil, env.adminToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, env.fx.Count("posts_comments", ""))
}

func TestCommentHandlers_MissingPost(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, data := env.do(http.MethodPost, "/api/comment?postId=77", dto.CommentDTO{Content: "hi"}, env.userToken)
	assertError(t, resp, data, http.StatusNotFound, models.CodeNotFound)

	resp, data = env.do(http.MethodGet, "/api/comment/1?postId=77", nil, env.userToken)
	assertError(t, resp, data, http.StatusNotFound, models.CodeNotFound)
}
