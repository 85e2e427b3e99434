package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
)

// contextKey is an unexported type used for context keys in this package.
// Only this package can create a key of this type, so no other package can
// read or shadow the authenticated user.
type contextKey string

const userKey contextKey = "currentUser"

// Authenticator resolves a username/password pair to a user.
//
// Implementations return an error wrapping apperror.ErrUnauthenticated when
// the credentials are wrong (the message says why, for logs only), and any
// other error for store failures.
type Authenticator interface {
	Authenticate(ctx context.Context, emailAddress, password string) (*model.User, error)
}

type messageBody struct {
	Message string `json:"message"`
}

// RequireBasicAuth is a middleware that enforces HTTP Basic Authentication.
//
// The username is the user's email address. On success the resolved user is
// stored in the request context and the chain continues; otherwise the
// request ends here with 401 {"message":"Access Denied"}.
//
// The client never learns which step failed. The reason goes to the log:
//
//	auth header not found
//	user not found for username: x@example.com
//	authentication failure for username: x@example.com
func RequireBasicAuth(authn Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, pass, ok := r.BasicAuth()
			if !ok {
				logger.Warn("auth header not found", slog.String("path", r.URL.Path))
				deny(w)
				return
			}

			user, err := authn.Authenticate(r.Context(), name, pass)
			if err != nil {
				if errors.Is(err, apperror.ErrUnauthenticated) {
					logger.Warn(err.Error())
					deny(w)
					return
				}
				logger.Error("authentication lookup failed",
					slog.String("username", name),
					slog.String("error", err.Error()),
				)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			logger.Info("authentication successful for username: " + user.EmailAddress)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the authenticated user from the request context.
//
// Returns (nil, false) if the request did not pass through RequireBasicAuth.
//
//	user, ok := auth.UserFromContext(r.Context())
//	if !ok {
//	    // anonymous request
//	}
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

func deny(w http.ResponseWriter) {
	writeMessage(w, http.StatusUnauthorized, "Access Denied")
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(messageBody{Message: msg})
}
