package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPostTagRepository_Deletes(t *testing.T) {
	tests := []struct {
		name         string
		run          func(PostTagRepository) error
		mockBehavior func(sqlmock.Sqlmock)
	}{
		{
			name: "by post",
			run:  func(r PostTagRepository) error { return r.DeleteByPost(context.Background(), 7) },
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM post_tag WHERE id_post = $1`)).
					WithArgs(7).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name: "by several posts",
			run:  func(r PostTagRepository) error { return r.DeleteByPosts(context.Background(), []uint{3, 4}) },
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM post_tag WHERE id_post IN ($1,$2)`)).
					WithArgs(3, 4).
					WillReturnResult(sqlmock.NewResult(0, 5))
			},
		},
		{
			name:         "no posts is a no-op",
			run:          func(r PostTagRepository) error { return r.DeleteByPosts(context.Background(), nil) },
			mockBehavior: func(sqlmock.Sqlmock) {},
		},
		{
			name: "by tag",
			run:  func(r PostTagRepository) error { return r.DeleteByTag(context.Background(), 9) },
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM post_tag WHERE id_tag = $1`)).
					WithArgs(9).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.mockBehavior(mock)

			assert.NoError(t, tt.run(NewPostTagRepository(db)))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostTagRepository_Attach(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostTagRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "post_tag" ("id_post","id_tag") VALUES ($1,$2),($3,$4)`)).
		WithArgs(1, 2, 1, 3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	// duplicate ids collapse to one row
	err := repo.Attach(context.Background(), 1, []uint{2, 3, 2})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
