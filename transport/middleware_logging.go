package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	utilsContext "github.com/muhammadheryan/product-console/utils/context"
	"github.com/muhammadheryan/product-console/utils/logger"
	"go.uber.org/zap"
)

// LoggingMiddleware logs HTTP requests and responses. Registered after
// SessionMiddleware so the session id is already in the context.
func LoggingMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", time.Since(start)),
			}
			if sid, ok := utilsContext.GetSessionID(r.Context()); ok {
				fields = append(fields, zap.String("session", sid))
			}
			logger.Info("HTTP request", fields...)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
