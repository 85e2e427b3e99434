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

// compile-time check that *DB implements repository.CourseRepository
var _ repository.CourseRepository = (*DB)(nil)

// courseWithOwner selects a course joined with its owner's public columns.
// The column order here must match scanCourse.
func (db *DB) courseWithOwner() sq.SelectBuilder {
	return db.sql.
		Select(
			"c.id", "c.title", "c.description", "c.estimated_time", "c.materials_needed",
			"c.user_id", "c.created_at", "c.updated_at",
			"u.id", "u.first_name", "u.last_name", "u.email_address",
		).
		From("courses c").
		Join("users u ON u.id = c.user_id")
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*model.Course, error) {
	var (
		c     model.Course
		owner model.User
		est   sql.NullString
		mat   sql.NullString
	)
	if err := row.Scan(
		&c.ID, &c.Title, &c.Description, &est, &mat,
		&c.UserID, &c.CreatedAt, &c.UpdatedAt,
		&owner.ID, &owner.FirstName, &owner.LastName, &owner.EmailAddress,
	); err != nil {
		return nil, err
	}
	if est.Valid {
		c.EstimatedTime = &est.String
	}
	if mat.Valid {
		c.MaterialsNeeded = &mat.String
	}
	c.User = &owner
	return &c, nil
}

// CreateCourse inserts a course owned by course.UserID.
//
// ID and timestamps are generated here. If the owner row doesn't exist the
// foreign key rejects the insert and apperror.ErrNotFound is returned.
func (db *DB) CreateCourse(ctx context.Context, course *model.Course) error {
	now := time.Now().UTC()
	id := xid.New().String()

	query, args, err := db.sql.
		Insert("courses").
		Columns("id", "title", "description", "estimated_time", "materials_needed", "user_id", "created_at", "updated_at").
		Values(id, course.Title, course.Description, nullString(course.EstimatedTime), nullString(course.MaterialsNeeded), course.UserID, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: building course insert: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("User")
		}
		return fmt.Errorf("sqlite: inserting course: %w", err)
	}

	course.ID = id
	course.CreatedAt = now
	course.UpdatedAt = now
	return nil
}

// GetCourse retrieves one course with its owner embedded.
// Returns apperror.ErrNotFound if no course has that ID.
func (db *DB) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	query, args, err := db.courseWithOwner().Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: building course select: %w", err)
	}

	course, err := scanCourse(db.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Course")
		}
		return nil, fmt.Errorf("sqlite: getting course %s: %w", id, err)
	}
	return course, nil
}

// ListCourses returns every course, oldest first, each with its owner.
// An empty table gives an empty (non-nil) slice so it encodes as [].
func (db *DB) ListCourses(ctx context.Context) ([]model.Course, error) {
	query, args, err := db.courseWithOwner().OrderBy("c.created_at", "c.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: building course list: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing courses: %w", err)
	}
	// Rows hold a pooled connection until closed.
	defer rows.Close()

	courses := make([]model.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning course row: %w", err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating courses: %w", err)
	}

	return courses, nil
}

// UpdateCourse writes the editable fields of course back to its row.
// user_id and created_at are never changed. A missing row gives
// apperror.ErrNotFound.
func (db *DB) UpdateCourse(ctx context.Context, course *model.Course) error {
	course.UpdatedAt = time.Now().UTC()

	query, args, err := db.sql.
		Update("courses").
		SetMap(map[string]any{
			"title":            course.Title,
			"description":      course.Description,
			"estimated_time":   nullString(course.EstimatedTime),
			"materials_needed": nullString(course.MaterialsNeeded),
			"updated_at":       course.UpdatedAt,
		}).
		Where(sq.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: building course update: %w", err)
	}

	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating course %s: %w", course.ID, err)
	}
	return requireAffected(result, "Course")
}

// DeleteCourse removes a course by ID. A missing row gives apperror.ErrNotFound.
func (db *DB) DeleteCourse(ctx context.Context, id string) error {
	query, args, err := db.sql.Delete("courses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: building course delete: %w", err)
	}

	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlite: deleting course %s: %w", id, err)
	}
	return requireAffected(result, "Course")
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// requireAffected turns "0 rows affected" into a NotFound error.
func requireAffected(result sql.Result, resource string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource)
	}
	return nil
}
