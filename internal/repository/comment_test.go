package repository

import (
	"context"
	"regexp"
	"testing"

	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{Content: "nice one", UserID: 1, PostID: 2}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetThreadByPostID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	// roots, newest first
	mock.ExpectQuery(`SELECT comments\..* FROM "comments" WHERE \(?post_id = \$2 AND parent_id IS NULL\)?`).
		WithArgs(9, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "post_id", "likes_count", "liked"}).
			AddRow(2, "second root", 10, 5, 1, false).
			AddRow(1, "first root", 11, 5, 0, false))
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(10, "user10").
			AddRow(11, "user11"))

	// replies of root 2, oldest first
	mock.ExpectQuery(`SELECT comments\..* FROM "comments" WHERE \(?parent_id = \$2`).
		WithArgs(9, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "post_id", "parent_id", "likes_count", "liked"}).
			AddRow(3, "a reply", 12, 5, 2, 0, false))
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(12, "user12"))

	// replies of root 1: none
	mock.ExpectQuery(`SELECT comments\..* FROM "comments" WHERE \(?parent_id = \$2`).
		WithArgs(9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "post_id", "parent_id", "likes_count", "liked"}))

	thread, err := repo.GetThreadByPostID(ctx, 5, 9)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, uint(2), thread[0].ID)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, "a reply", thread[0].Replies[0].Content)
	assert.Empty(t, thread[1].Replies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_LikeUnlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	t.Run("First like inserts a row", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "comment_likes"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		inserted, err := repo.Like(ctx, 1, 2)
		assert.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("Repeat like affects zero rows", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "comment_likes"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectCommit()

		inserted, err := repo.Like(ctx, 1, 2)
		assert.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("Unlike reports whether a row existed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comment_likes" WHERE user_id = $1 AND comment_id = $2`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		removed, err := repo.Unlike(ctx, 1, 2)
		assert.NoError(t, err)
		assert.False(t, removed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	// soft delete sets deleted_at
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
