// Package repository declares the storage contracts the service layer
// depends on. Implementations live in sub-packages (see repository/sqlite).
package repository

import (
	"context"

	"github.com/sakif/course-api/internal/model"
)

// UserRepository stores user accounts.
//
// Create returns apperror.ErrConflict if the email address is taken.
// Getters return apperror.ErrNotFound when no row matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, emailAddress string) (*model.User, error)
}

// CourseRepository stores courses. GetCourse and ListCourses embed the
// owning user's public fields in Course.User.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *model.Course) error
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	ListCourses(ctx context.Context) ([]model.Course, error)
	UpdateCourse(ctx context.Context, course *model.Course) error
	DeleteCourse(ctx context.Context, id string) error
}
