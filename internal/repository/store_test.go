package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestStore_WithinTransaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM post_tag WHERE id_tag = $1`)).
			WithArgs(4).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewStore(db).WithinTransaction(context.Background(), func(s Store) error {
			return s.PostTags().DeleteByTag(context.Background(), 4)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM post_tag WHERE id_post = $1`)).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectRollback()

		err := NewStore(db).WithinTransaction(context.Background(), func(s Store) error {
			if err := s.PostTags().DeleteByPost(context.Background(), 1); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
