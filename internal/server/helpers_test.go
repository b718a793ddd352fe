package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"datablog/internal/models"
	"datablog/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"commentId", "comment ID"},
		{"parentCommentId", "parent comment ID"},
		{"newTagsId", "new tags ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestQueryUintList(t *testing.T) {
	app := fiber.New()
	app.Get("/ids", func(c *fiber.Ctx) error {
		ids, err := queryUintList(c, "tagIds")
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(ids)
	})

	tests := []struct {
		name   string
		query  string
		status int
		want   []uint
	}{
		{"absent", "", http.StatusOK, nil},
		{"comma list", "?tagIds=1,2,3", http.StatusOK, []uint{1, 2, 3}},
		{"repeated keys", "?tagIds=4&tagIds=5", http.StatusOK, []uint{4, 5}},
		{"mixed with blanks", "?tagIds=1,,2&tagIds=3", http.StatusOK, []uint{1, 2, 3}},
		{"not a number", "?tagIds=1,a", http.StatusBadRequest, nil},
		{"zero", "?tagIds=0", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ids"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				return
			}
			var got []uint
			data, _ := io.ReadAll(resp.Body)
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePageQuery(t *testing.T) {
	app := fiber.New()
	var got repository.PageQuery
	app.Get("/page", func(c *fiber.Ctx) error {
		q, err := parsePageQuery(c)
		if err != nil {
			return respondError(c, err)
		}
		got = q
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name   string
		query  string
		status int
		want   repository.PageQuery
	}{
		{"defaults", "", http.StatusOK, repository.PageQuery{Page: 0, Size: 10}},
		{"explicit", "?page=2&size=5&sortBy=title&direction=DeSc", http.StatusOK,
			repository.PageQuery{Page: 2, Size: 5, SortBy: "title", Desc: true}},
		{"other direction is ascending", "?direction=down", http.StatusOK, repository.PageQuery{Size: 10}},
		{"negative page", "?page=-1", http.StatusBadRequest, repository.PageQuery{}},
		{"zero size", "?size=0", http.StatusBadRequest, repository.PageQuery{}},
		{"non numeric size", "?size=big", http.StatusBadRequest, repository.PageQuery{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = repository.PageQuery{}
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/page"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRespondError_UnknownErrorIsInternal(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, assert.AnError)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]interface{}
	data, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}

func TestParseID(t *testing.T) {
	tests := []struct {
		path    string
		want    uint
		wantErr string
	}{
		{"/comments/7", 7, ""},
		{"/comments/abc", 0, "Invalid comment ID"},
		{"/comments/0", 0, "Invalid comment ID"},
		{"/comments/-3", 0, "Invalid comment ID"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			app := fiber.New()
			app.Get("/comments/:commentId", func(c *fiber.Ctx) error {
				id, err := parseID(c, "commentId")
				if tt.wantErr == "" {
					assert.NoError(t, err)
				} else {
					assert.True(t, models.IsCode(err, models.CodeInvalidArgument))
					assert.EqualError(t, err, tt.wantErr)
				}
				assert.Equal(t, tt.want, id)
				return c.SendStatus(fiber.StatusOK)
			})
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			resp.Body.Close()
		})
	}
}
