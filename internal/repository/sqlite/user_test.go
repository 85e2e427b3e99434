package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" creates a fresh database that exists only for this test, with
// the real schema applied by the embedded migrations.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(context.Background(), MemoryPath, testLogger())
	require.NoError(t, err, "failed to create test db")
	t.Cleanup(func() { db.Close() })
	return db
}

// newMockDB wraps a sqlmock connection for failure paths a real SQLite
// database won't produce on demand.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() { conn.Close() })
	return newDB(conn, testLogger()), mock
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		FirstName:    "Jane",
		LastName:     "Doe",
		EmailAddress: email,
		PasswordHash: "$2a$04$not-a-real-hash",
	}
	require.NoError(t, db.CreateUser(context.Background(), user), "failed to create test user")
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		FirstName:    "Jane",
		LastName:     "Doe",
		EmailAddress: "jane@x.com",
		PasswordHash: "$2a$04$hash",
	}
	err := db.CreateUser(context.Background(), user)
	require.NoError(t, err)

	assert.Len(t, user.ID, 20, "xid strings are 20 characters")
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "dup@x.com")

	err := db.CreateUser(context.Background(), &model.User{
		FirstName:    "Other",
		LastName:     "Person",
		EmailAddress: "dup@x.com",
		PasswordHash: "$2a$04$hash",
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)

	var count int
	require.NoError(t, db.conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count, "duplicate insert must not create a row")
}

func TestCreateUser_EmailIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "case@x.com")

	err := db.CreateUser(context.Background(), &model.User{
		FirstName: "A", LastName: "B", EmailAddress: "CASE@x.com", PasswordHash: "h",
	})
	assert.NoError(t, err)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	err := db.CreateUser(context.Background(), &model.User{EmailAddress: "jane@x.com"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrConflict)
	assert.Contains(t, err.Error(), "sqlite: inserting user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// =========================================================================
// LOOKUP TESTS
// =========================================================================

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "byid@x.com")

	found, err := db.GetUserByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Jane", found.FirstName)
	assert.Equal(t, "Doe", found.LastName)
	assert.Equal(t, "byid@x.com", found.EmailAddress)
	assert.Equal(t, created.PasswordHash, found.PasswordHash)
}

func TestGetUserByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByID(context.Background(), "nonexistent-id")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "lookup@x.com")

	found, err := db.GetUserByEmail(context.Background(), "lookup@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = db.GetUserByEmail(context.Background(), "LOOKUP@x.com")
	assert.ErrorIs(t, err, apperror.ErrNotFound, "lookup is an exact match")
}

func TestGetUserByEmail_UnexpectedDBError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email_address = \\?").
		WithArgs("jane@x.com").
		WillReturnError(errors.New("database is locked"))

	_, err := db.GetUserByEmail(context.Background(), "jane@x.com")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := newTestDB(t)

	assert.NoError(t, db.migrate(context.Background()), "running migrations twice must not fail")
}

func TestPing(t *testing.T) {
	db := newTestDB(t)

	assert.NoError(t, db.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() { conn.Close() })
	db := newDB(conn, testLogger())

	mock.ExpectPing().WillReturnError(errors.New("disk I/O error"))

	assert.Error(t, db.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "app.db")

	_, err := New(context.Background(), path, testLogger())

	assert.ErrorContains(t, err, "pinging database")
}
