package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinecrest/camp-roster-api/internal/models"
)

func TestTagRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTagRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, color, created_at, updated_at FROM tags ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color", "created_at", "updated_at"}).
			AddRow("tag1", "crafts", "#ff8800", now, now).
			AddRow("tag2", "outdoors", "#00aa44", now, now))

	tags, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "crafts", tags[0].Name)
	assert.Equal(t, "#00aa44", tags[1].Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryExistsByName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTagRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM tags WHERE LOWER(name) = LOWER($1) LIMIT 1")).
		WithArgs("crafts").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByName(context.Background(), "crafts", "")
	require.NoError(t, err)
	assert.True(t, exists)

	// No row means no duplicate, not an error.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM tags WHERE LOWER(name) = LOWER($1) AND id <> $2 LIMIT 1")).
		WithArgs("crafts", "tag1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err = repo.ExistsByName(context.Background(), "crafts", "tag1")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTagRepository(db)

	mock.ExpectExec("INSERT INTO tags").
		WithArgs(sqlmock.AnyArg(), "crafts", "#ff8800", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	tag := &models.Tag{Name: "crafts", Color: "#ff8800"}
	require.NoError(t, repo.Create(context.Background(), tag))
	assert.NotEmpty(t, tag.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryUpdateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTagRepository(db)

	mock.ExpectExec("UPDATE tags SET").
		WithArgs("crafts", "#ffaa00", sqlmock.AnyArg(), "tag1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	tag := &models.Tag{ID: "tag1", Name: "crafts", Color: "#ffaa00"}
	require.NoError(t, repo.Update(context.Background(), tag))

	mock.ExpectExec("DELETE FROM tags").
		WithArgs("tag1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Delete(context.Background(), "tag1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
