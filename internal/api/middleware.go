package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexandriaapp/alexandria-server/internal/auth"
	"github.com/alexandriaapp/alexandria-server/internal/logger"
	"github.com/alexandriaapp/alexandria-server/internal/service"
)

// resolveIdentity attaches the acting identity to the request context.
// It fails open: a missing, malformed, or unverifiable bearer token leaves
// the request anonymous instead of rejecting it. Queries accept anonymous
// callers; mutations that need an identity reject nil themselves.
func resolveIdentity(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			user := authSvc.ResolveIdentity(r.Context(), authHeader[len("Bearer "):])
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// requestLogger logs each request with method, path, status, and duration.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start))
		})
	}
}
