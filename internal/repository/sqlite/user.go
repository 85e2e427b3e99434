package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/xid"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

var userColumns = []string{
	"id", "first_name", "last_name", "email_address", "password_hash", "created_at", "updated_at",
}

// CreateUser inserts a new user. The caller must already have replaced the
// plaintext password with a hash in user.PasswordHash.
//
// ID and timestamps are generated here and written back into user.
// A duplicate email_address hits the UNIQUE constraint and comes back as
// apperror.ErrConflict; no row is written in that case.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	id := xid.New().String()

	query, args, err := db.sql.
		Insert("users").
		Columns(userColumns...).
		Values(id, user.FirstName, user.LastName, user.EmailAddress, user.PasswordHash, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: building user insert: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", "emailAddress")
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetUserByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, sq.Eq{"id": id})
}

// GetUserByEmail looks a user up by exact email address (binary collation,
// so the match is case-sensitive).
func (db *DB) GetUserByEmail(ctx context.Context, emailAddress string) (*model.User, error) {
	return db.getUser(ctx, sq.Eq{"email_address": emailAddress})
}

func (db *DB) getUser(ctx context.Context, where sq.Eq) (*model.User, error) {
	query, args, err := db.sql.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: building user select: %w", err)
	}

	var u model.User
	err = db.conn.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.EmailAddress,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	return &u, nil
}
