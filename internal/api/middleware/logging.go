package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen caps client supplied ids before they reach every log line.
const maxRequestIDLen = 64

type loggerKey struct{}

// statusRecorder remembers the status and body size of a storefront response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n

	return n, err
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func requestID(r *http.Request) string {
	id := r.Header.Get(RequestIDHeader)
	if id == "" || len(id) > maxRequestIDLen {
		return uuid.NewString()
	}

	for i := 0; i < len(id); i++ {
		if c := id[i]; c < '!' || c > '~' {
			return uuid.NewString()
		}
	}

	return id
}

// completionLevel reports server faults as errors and client faults as warnings.
func completionLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Logging gives every request a correlation id and a request scoped logger,
// then logs one line when the response completes.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()

		id := requestID(r)
		w.Header().Set(RequestIDHeader, id)

		logger := slog.Default().With(
			slog.String("correlation_id", id),
			slog.String("http_method", r.Method),
			slog.String("http_path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
		)

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sr, r.WithContext(WithLogger(r.Context(), logger)))

		logger.LogAttrs(r.Context(), completionLevel(sr.status), "Request completed",
			slog.Int("http_status", sr.status),
			slog.Int("bytes", sr.bytes),
			slog.Duration("duration", time.Since(start)),
			slog.String("user_agent", r.UserAgent()),
		)
	})
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext falls back to slog.Default outside a request.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
