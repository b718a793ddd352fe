package service

import (
	"testing"

	"datablog/internal/models"
	"datablog/internal/repository"
	"datablog/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) (repository.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return repository.NewStore(db), testutil.NewFixtures(t, db)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, models.IsCode(err, code), "expected %s, got %v", code, err)
}

func uintPtr(v uint) *uint { return &v }
