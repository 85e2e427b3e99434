package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/repository"
)

// Ownership messages returned as 403 bodies.
const (
	MsgUpdateForbidden = "Forbidden: You can only update your own courses"
	MsgDeleteForbidden = "Forbidden: You can only delete your own courses"
)

// CourseService handles course reads and the owner-only write rules.
type CourseService struct {
	courses repository.CourseRepository
	logger  *slog.Logger
}

func NewCourseService(courses repository.CourseRepository, logger *slog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		logger:  logger,
	}
}

// List returns every course with its owner, oldest first.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}

// Get returns one course with its owner.
// Returns apperror.ErrNotFound if the course doesn't exist.
func (s *CourseService) Get(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.courses.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to get course",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("getting course %s: %w", id, err)
	}
	return course, nil
}

// Create validates and stores a new course owned by owner.
//
// The owner always comes from the authenticated identity. Nothing in the
// input can choose a different one.
func (s *CourseService) Create(ctx context.Context, owner *model.User, in model.CourseInput) (*model.Course, error) {
	if msgs := in.ValidateCreate(); len(msgs) > 0 {
		return nil, apperror.Validation(msgs)
	}

	course := &model.Course{UserID: owner.ID}
	in.Apply(course)

	if err := s.courses.CreateCourse(ctx, course); err != nil {
		s.logger.Error("failed to create course",
			slog.String("userID", owner.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating course: %w", err)
	}

	s.logger.Info("course created",
		slog.String("id", course.ID),
		slog.String("userID", owner.ID),
	)
	return course, nil
}

// Update applies a partial update to a course owned by user.
//
// Checks run in a fixed order: the course must exist (ErrNotFound), then
// belong to user (ErrForbidden), then the input must validate (ErrValidation).
func (s *CourseService) Update(ctx context.Context, user *model.User, id string, in model.CourseInput) error {
	course, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if course.UserID != user.ID {
		return apperror.Forbidden(MsgUpdateForbidden)
	}

	if msgs := in.ValidateUpdate(); len(msgs) > 0 {
		return apperror.Validation(msgs)
	}

	in.Apply(course)

	if err := s.courses.UpdateCourse(ctx, course); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to update course",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("updating course %s: %w", id, err)
	}

	s.logger.Info("course updated", slog.String("id", id))
	return nil
}

// Delete removes a course owned by user. Not-found is checked before
// ownership.
func (s *CourseService) Delete(ctx context.Context, user *model.User, id string) error {
	course, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if course.UserID != user.ID {
		return apperror.Forbidden(MsgDeleteForbidden)
	}

	if err := s.courses.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete course",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting course %s: %w", id, err)
	}

	s.logger.Info("course deleted", slog.String("id", id))
	return nil
}
