package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tasker-api/internal/config"
	"github.com/yukikurage/tasker-api/internal/database"
	"github.com/yukikurage/tasker-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:", DBLogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

const deleteSessionSQL = "DELETE FROM `refresh_sessions` WHERE token = ?"

func TestSessionRepository_Rotate_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WithArgs("old-token").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `refresh_sessions`")).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	next := &models.RefreshSession{Token: "new-token", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Rotate(context.Background(), "old-token", next))
	require.EqualValues(t, 7, next.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Rotate_AlreadyConsumed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WithArgs("old-token").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	next := &models.RefreshSession{Token: "new-token", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	err := repo.Rotate(context.Background(), "old-token", next)
	require.ErrorIs(t, err, ErrSessionConsumed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Rotate_InsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WithArgs("old-token").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `refresh_sessions`")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	next := &models.RefreshSession{Token: "new-token", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	err := repo.Rotate(context.Background(), "old-token", next)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrSessionConsumed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	repo := NewSessionRepository(db)

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, user))

	first := &models.RefreshSession{Token: "t1", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, first))

	found, err := repo.FindByToken(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "alice", found.User.Username)

	require.NoError(t, repo.Rotate(ctx, "t1", &models.RefreshSession{Token: "t2", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}))
	require.ErrorIs(t, repo.Rotate(ctx, "t1", &models.RefreshSession{Token: "t3", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}), ErrSessionConsumed)

	_, err = repo.FindByToken(ctx, "t1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindByToken(ctx, "t3")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.DeleteByToken(ctx, "t2")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = repo.DeleteByToken(ctx, "t2")
	require.NoError(t, err)
	require.Zero(t, n)

	// Token values are unique.
	require.NoError(t, repo.Create(ctx, &models.RefreshSession{Token: "dup", UserID: user.ID, ExpiresAt: time.Now()}))
	err = repo.Create(ctx, &models.RefreshSession{Token: "dup", UserID: user.ID, ExpiresAt: time.Now()})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, repo.DeleteAllForUser(ctx, user.ID))
	_, err = repo.FindByToken(ctx, "dup")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
