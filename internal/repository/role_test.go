package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"datablog/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRepository_GetByID(t *testing.T) {
	tests := []struct {
		name         string
		mockBehavior func(sqlmock.Sqlmock)
		expectedName string
		expectedCode string
	}{
		{
			name: "Success",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "roles" WHERE "roles"."id" = $1 ORDER BY "roles"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(1, "ADMIN", "Manage everything"))
			},
			expectedName: "ADMIN",
		},
		{
			name: "Not Found",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "roles" WHERE "roles"."id" = $1`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))
			},
			expectedCode: models.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.mockBehavior(mock)

			role, err := NewRoleRepository(db).GetByID(context.Background(), 1)
			if tt.expectedCode != "" {
				assert.True(t, models.IsCode(err, tt.expectedCode), "got %v", err)
				assert.Nil(t, role)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedName, role.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoleRepository_DetachUsers(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET id_role = NULL WHERE id_role = $1`)).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := NewRoleRepository(db).DetachUsers(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_CreateDuplicateIsConflict(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "roles"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := NewRoleRepository(db).Create(context.Background(), &models.Role{Name: "ADMIN"})
	assert.True(t, models.IsCode(err, models.CodeConflict), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("connection reset")))
}
