package server

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"datablog/internal/auth"
	"datablog/internal/dto"
	"datablog/internal/middleware"
	"datablog/internal/models"
	"datablog/internal/repository"
	"datablog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// respondError maps err to its HTTP status once, at the boundary. Anything that is not an
// AppError is logged and reported as an internal error.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}

	status := appErr.Status()
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, appErr)
}

// parseID extracts a route parameter by name as a positive uint.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewInvalidArgumentError("Invalid " + humanizeParam(param))
	}
	return uint(id), nil
}

// humanizeParam converts a parameter name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "parentCommentId" -> "parent comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

func parseUint(raw, param string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil || v == 0 {
		return 0, models.NewInvalidArgumentError("Invalid " + humanizeParam(param))
	}
	return uint(v), nil
}

// queryUint reads a required positive integer query parameter.
func queryUint(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Query(param)
	if raw == "" {
		return 0, models.NewInvalidArgumentError(fmt.Sprintf("Required parameter '%s' is missing", param))
	}
	return parseUint(raw, param)
}

// optionalQueryUint reads a positive integer query parameter that may be absent.
func optionalQueryUint(c *fiber.Ctx, param string) (*uint, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	v, err := parseUint(raw, param)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// queryUintList reads a list-valued query parameter given as "1,2,3", as repeated keys,
// or both. Blank items are skipped.
func queryUintList(c *fiber.Ctx, param string) ([]uint, error) {
	var ids []uint
	for _, raw := range c.Context().QueryArgs().PeekMulti(param) {
		for _, item := range strings.Split(string(raw), ",") {
			if strings.TrimSpace(item) == "" {
				continue
			}
			id, err := parseUint(item, param)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// parsePageQuery reads page, size, sortBy and direction.
func parsePageQuery(c *fiber.Ctx) (repository.PageQuery, error) {
	q := repository.PageQuery{
		Page:   0,
		Size:   10,
		SortBy: c.Query("sortBy"),
		Desc:   strings.EqualFold(c.Query("direction"), "desc"),
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return q, models.NewInvalidArgumentError("Page index must not be less than zero")
		}
		q.Page = page
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return q, models.NewInvalidArgumentError("Page size must not be less than one")
		}
		q.Size = size
	}
	return q, nil
}

// parseBody decodes the JSON body into dst and validates it.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return models.NewInvalidArgumentError("Invalid request body")
	}
	return validation.Struct(dst)
}

// respondPage writes 204 for an empty page and the page otherwise.
func respondPage[T any](c *fiber.Ctx, page dto.Page[T]) error {
	if page.Empty {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(page)
}

// currentPrincipal returns the authenticated caller. AuthRequired guarantees it on /api routes.
func currentPrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	return p, nil
}
