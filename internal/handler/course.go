package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/model"
)

// CourseService is the part of service.CourseService the handlers call.
type CourseService interface {
	List(ctx context.Context) ([]model.Course, error)
	Get(ctx context.Context, id string) (*model.Course, error)
	Create(ctx context.Context, owner *model.User, in model.CourseInput) (*model.Course, error)
	Update(ctx context.Context, user *model.User, id string, in model.CourseInput) error
	Delete(ctx context.Context, user *model.User, id string) error
}

// CourseHandler serves /api/courses.
type CourseHandler struct {
	courses CourseService
	logger  *slog.Logger
}

func NewCourseHandler(courses CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{courses: courses, logger: logger}
}

// HandleList returns every course with its owner embedded.
//
// HTTP: GET /api/courses
func (h *CourseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// HandleGet returns one course.
//
// HTTP: GET /api/courses/{id}
func (h *CourseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	course, err := h.courses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// HandleCreate stores a course owned by the authenticated user.
//
// HTTP: POST /api/courses (Basic Auth)
// REQUEST BODY: {"title":"...","description":"...","estimatedTime":null,"materialsNeeded":null}
//
// 201 with Location: /api/courses/{id} and no body on success.
func (h *CourseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var in model.CourseInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}

	course, err := h.courses.Create(r.Context(), user, in)
	if err != nil {
		writeError(w, h.logger, err, http.StatusBadRequest, "Error creating course")
		return
	}

	writeCreated(w, "/api/courses/"+course.ID)
}

// HandleUpdate applies a partial update. Only the owner may update.
//
// HTTP: PUT /api/courses/{id} (Basic Auth)
func (h *CourseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var in model.CourseInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}

	if err := h.courses.Update(r.Context(), user, chi.URLParam(r, "id"), in); err != nil {
		writeError(w, h.logger, err, http.StatusBadRequest, "Error updating course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes a course. Only the owner may delete.
//
// HTTP: DELETE /api/courses/{id} (Basic Auth)
func (h *CourseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.courses.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// currentUser reads the user bound by auth.RequireBasicAuth. A route wired
// without the middleware gets a 401 here instead of a nil dereference.
func (h *CourseHandler) currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "Access Denied"})
	}
	return user, ok
}
