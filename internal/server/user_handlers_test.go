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

func TestUserHandlers(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	in := dto.UserDTO{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "cobol60"}
	resp, data := env.do(http.MethodPost, fmt.Sprintf("/api/users?roleId=%d", env.adminRole.ID), in, env.adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	created := decode[dto.UserDTO](t, data)
	assert.True(t, created.Active)
	assert.Equal(t, models.RoleAdmin, created.Role.Name)

	resp, data = env.do(http.MethodGet, "/api/users/email/grace@example.com", nil, env.userToken)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, created.ID, decode[dto.UserDTO](t, data).ID)

	resp, data = env.do(http.MethodGet, "/api/users?sortBy=email", nil, env.userToken)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	page := decode[dto.Page[dto.UserDTO]](t, data)
	require.Len(t, page.Content, 3)
	assert.Equal(t, "admin@example.com", page.Content[0].Email)

	in.LastName = "Murray Hopper"
	resp, data = env.do(http.MethodPut, fmt.Sprintf("/api/users/%d?newRoleId=2", created.ID), in, env.adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	updated := decode[dto.UserDTO](t, data)
	assert.Equal(t, "Grace Murray Hopper", updated.FullName)
	assert.Equal(t, models.RoleUser, updated.Role.Name)

	resp, _ = env.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil, env.adminToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil, env.userToken)
	assertError(t, resp, data, http.StatusNotFound, models.CodeNotFound)

	t.Run("unknown role", func(t *testing.T) {
		resp, data := env.do(http.MethodPost, "/api/users?roleId=99", in, env.adminToken)
		assertError(t, resp, data, http.StatusNotFound, models.CodeNotFound)
	})
	t.Run("missing role", func(t *testing.T) {
		resp, data := env.do(http.MethodPost, "/api/users", in, env.adminToken)
		assertError(t, resp, data, http.StatusBadRequest, models.CodeInvalidArgument)
	})
}

func TestRoleHandlers_DeleteDetachesHolders(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, data := env.do(http.MethodPost, "/api/roles", dto.RoleDTO{Name: "EDITOR", Description: "edits"}, env.adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	editor := decode[dto.RoleDTO](t, data)

	role := &models.Role{ID: editor.ID}
	env.fx.User("e1@example.com", "x", role)
	env.fx.User("e2@example.com", "x", role)

	resp, data = env.do(http.MethodPost, "/api/roles", dto.RoleDTO{Name: "EDITOR"}, env.adminToken)
	assertError(t, resp, data, http.StatusConflict, models.CodeConflict)

	resp, _ = env.do(http.MethodDelete, fmt.Sprintf("/api/roles/%d", editor.ID), nil, env.adminToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int64(2), env.fx.Count("users", "id_role IS NULL"))
	assert.Zero(t, env.fx.Count("roles", "id = ?", editor.ID))
}

func TestTagHandlers(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, _ := env.do(http.MethodGet, "/api/tags", nil, env.userToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data := env.do(http.MethodPost, "/api/tags", dto.TagDTO{Title: "go", MetaTitle: "go", Slug: "go"}, env.adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	tag := decode[dto.TagDTO](t, data)

	resp, data = env.do(http.MethodPut, fmt.Sprintf("/api/tags/%d", tag.ID),
		dto.TagDTO{Title: "golang", MetaTitle: "golang", Slug: "golang"}, env.adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "golang", decode[dto.TagDTO](t, data).Title)

	post := env.fx.Post("tagged", env.user, nil, &models.Tag{ID: tag.ID})
	resp, _ = env.do(http.MethodDelete, fmt.Sprintf("/api/tags/%d", tag.ID), nil, env.adminToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, env.fx.Count("post_tag", "id_post = ?", post.ID))

	resp, data = env.do(http.MethodGet, fmt.Sprintf("/api/tags/%d", tag.ID), nil, env.userToken)
	body := assertError(t, resp, data, http.StatusNotFound, models.CodeNotFound)
	assert.Contains(t, body.Error, fmt.Sprint(tag.ID))
}
