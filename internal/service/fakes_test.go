package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/model"
)

// =========================================================================
// FAKES AND HELPERS
// =========================================================================

// fakeUserRepo is an in-memory implementation of repository.UserRepository.
// Using a fake (not a mock framework) keeps tests easy to read; you can see
// exactly what the fake does.
type fakeUserRepo struct {
	users  map[string]*model.User // keyed by ID
	nextID int
	// set to a non-nil error to simulate a database failure
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.EmailAddress == user.EmailAddress {
			return apperror.Conflict("user", "emailAddress")
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("User")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, emailAddress string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.EmailAddress == emailAddress {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("User")
}

// fakeCourseRepo is an in-memory repository.CourseRepository.
type fakeCourseRepo struct {
	courses map[string]*model.Course
	nextID  int
	// set to a non-nil error to simulate a database failure
	listErr   error
	updateErr error
	deleteErr error
	updated   int
	deleted   int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]*model.Course)}
}

func (f *fakeCourseRepo) CreateCourse(ctx context.Context, course *model.Course) error {
	f.nextID++
	course.ID = fmt.Sprintf("course-%d", f.nextID)
	course.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	course.UpdatedAt = course.CreatedAt
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperror.NotFound("Course")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourseRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Course, 0, len(f.courses))
	for _, c := range f.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCourseRepo) UpdateCourse(ctx context.Context, course *model.Course) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.courses[course.ID]; !ok {
		return apperror.NotFound("Course")
	}
	f.updated++
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) DeleteCourse(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.courses[id]; !ok {
		return apperror.NotFound("Course")
	}
	f.deleted++
	delete(f.courses, id)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUserService(t *testing.T, repo *fakeUserRepo) *UserService {
	t.Helper()
	// Cost 4 is bcrypt minimum; makes tests fast
	return NewUserService(repo, auth.NewPasswordService(4), discardLogger())
}

func newTestCourseService(t *testing.T, repo *fakeCourseRepo) *CourseService {
	t.Helper()
	return NewCourseService(repo, discardLogger())
}
