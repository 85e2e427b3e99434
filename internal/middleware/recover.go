package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// GlobalErrorResponse is the body written by the final error handler.
// "error" is always an empty object; details stay in the logs.
type GlobalErrorResponse struct {
	Message string   `json:"message"`
	Error   struct{} `json:"error"`
}

// statusCoder is implemented by errors that know which HTTP status they map to.
type statusCoder interface {
	StatusCode() int
}

// WriteGlobalError writes {"message": msg, "error": {}} with the given status.
func WriteGlobalError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(GlobalErrorResponse{Message: msg}); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// Recoverer is the final error handler. It catches a panic from any handler
// further down the chain and answers with GlobalErrorResponse instead of
// dropping the connection.
//
// The status comes from the panic value if it implements StatusCode() int,
// otherwise 500. With logStack set, the stack trace is logged as well.
//
// http.ErrAbortHandler is re-panicked so net/http can abort the response
// the way it expects, same as chi's own Recoverer.
func Recoverer(logger *slog.Logger, logStack bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				status := http.StatusInternalServerError
				var msg string
				switch v := rec.(type) {
				case error:
					msg = v.Error()
					var sc statusCoder
					if errors.As(v, &sc) && sc.StatusCode() >= 400 && sc.StatusCode() <= 599 {
						status = sc.StatusCode()
					}
				default:
					msg = fmt.Sprint(v)
				}

				attrs := []any{
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", status),
					slog.String("error", msg),
				}
				if logStack {
					attrs = append(attrs, slog.String("stack", string(debug.Stack())))
				}
				logger.Error("panic recovered", attrs...)

				WriteGlobalError(w, status, msg)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
