// Package handler turns HTTP requests into service calls and service results
// into JSON responses. Handlers know about status codes and headers; they
// don't know about SQL or bcrypt.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/model"
)

// UserService is the part of service.UserService the handlers call.
type UserService interface {
	Register(ctx context.Context, in model.UserInput) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// UserHandler serves /api/users.
type UserHandler struct {
	users  UserService
	logger *slog.Logger
}

func NewUserHandler(users UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleGetCurrent returns the authenticated user.
//
// HTTP: GET /api/users (Basic Auth)
//
// RESPONSE FORMAT:
//
//	{"id":"...","firstName":"Jane","lastName":"Doe","emailAddress":"jane@x.com"}
//
// The record is re-read so a row removed after authentication gives 404.
func (h *UserHandler) HandleGetCurrent(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "Access Denied"})
		return
	}

	user, err := h.users.GetUser(r.Context(), current.ID)
	if err != nil {
		writeError(w, h.logger, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleCreate registers a new account.
//
// HTTP: POST /api/users
// REQUEST BODY: {"firstName":"Jane","lastName":"Doe","emailAddress":"jane@x.com","password":"..."}
//
// 201 with Location: / and no body on success.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.UserInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}

	if _, err := h.users.Register(r.Context(), in); err != nil {
		writeError(w, h.logger, err, http.StatusBadRequest, "Error creating user")
		return
	}

	writeCreated(w, "/")
}
