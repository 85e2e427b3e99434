package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// ERROR SHAPES:
// Clients see one of three bodies, depending on what went wrong:
//   {"message": "Course not found"}                     ← most failures
//   {"errors": ["Title is required", ...]}              ← validation
//   {"message": "Invalid JSON body", "error": {}}       ← unparseable body / panic

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/middleware"
)

// ErrorResponse is the {"message": ...} body used by most failures.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationResponse lists every violated rule, in field order.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set BEFORE the body. Once Encode writes, the
// headers are gone and later changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeCreated sends 201 with a Location header and no body.
func writeCreated(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusCreated)
}

// writeError maps a domain error to its HTTP response.
//
// ERROR MAPPING:
//
//	apperror.ErrValidation      → 400 {"errors": [...]}
//	apperror.ErrNotFound        → 404 {"message": "<resource> not found"}
//	apperror.ErrForbidden       → 403 {"message": "Forbidden: ..."}
//	apperror.ErrUnauthenticated → 401 {"message": "Access Denied"}
//	anything else               → fallbackStatus {"message": fallbackMsg}
//
// The fallback differs per route (creating a user fails with 400, listing
// courses with 500). Unclassified errors are logged here because their
// text never reaches the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, fallbackStatus int, fallbackMsg string) {
	if msgs := apperror.ValidationMessages(err); msgs != nil {
		writeJSON(w, http.StatusBadRequest, ValidationResponse{Errors: msgs})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Message: appErr.Message})
			return
		case errors.Is(err, apperror.ErrForbidden):
			writeJSON(w, http.StatusForbidden, ErrorResponse{Message: appErr.Message})
			return
		case errors.Is(err, apperror.ErrUnauthenticated):
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "Access Denied"})
			return
		}
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, fallbackStatus, ErrorResponse{Message: fallbackMsg})
}

// MaxBodyBytes caps request bodies at 100kb.
const MaxBodyBytes = 100 << 10

// decodeJSON reads exactly one JSON value from the request body into dst.
//
// An empty body decodes as {}. Bodies over MaxBodyBytes get 413, and
// anything unparseable (including trailing data after the value) gets
// 400 {"message":"Invalid JSON body","error":{}}, the same shapes the final
// error handler uses. decodeJSON returns false when it has already answered.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))

	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err == nil {
		if err = dec.Decode(&struct{}{}); errors.Is(err, io.EOF) {
			return true
		}
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
	}

	logger.Warn("invalid JSON body",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		middleware.WriteGlobalError(w, http.StatusRequestEntityTooLarge, "request entity too large")
		return false
	}
	middleware.WriteGlobalError(w, http.StatusBadRequest, "Invalid JSON body")
	return false
}
