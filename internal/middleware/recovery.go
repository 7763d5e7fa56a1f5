package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"portal/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response.
// When the handler already started its response (an import answering late, say)
// nothing more is written; the client sees a truncated body instead of two.
// http.ErrAbortHandler is re-raised so net/http aborts the connection quietly.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &trackingWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"response_started", tw.started,
					"stack", string(debug.Stack()),
				)
				if !tw.started {
					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(tw, r)
		})
	}
}

// trackingWriter records whether the status line has been sent
type trackingWriter struct {
	http.ResponseWriter
	started bool
}

func (t *trackingWriter) WriteHeader(status int) {
	t.started = true
	t.ResponseWriter.WriteHeader(status)
}

func (t *trackingWriter) Write(b []byte) (int, error) {
	t.started = true
	return t.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController
func (t *trackingWriter) Unwrap() http.ResponseWriter {
	return t.ResponseWriter
}
