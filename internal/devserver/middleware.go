package devserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth"
)

// Messages of the auth middleware.
const (
	noTokenMessage      = "Access denied. No token provided."
	invalidTokenMessage = "Invalid or expired token"
)

type ctxKey int

const (
	callerKey ctxKey = iota
	loggerKey
)

// caller is the authenticated user of a request.
type caller struct {
	UserID   int64
	Username string
}

func callerFrom(r *http.Request) (caller, bool) {
	c, ok := r.Context().Value(callerKey).(caller)
	return c, ok
}

func logFrom(r *http.Request) *slog.Logger {
	if l, ok := r.Context().Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// bearerToken returns the token of an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	_, token, ok := strings.Cut(header, " ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *Server) verify(token string) (caller, bool) {
	claims, err := auth.Verify(s.secret, token, s.now())
	if err != nil {
		return caller{}, false
	}
	return caller{UserID: claims.UserID, Username: claims.Username}, true
}

// requireAuth rejects requests without a valid token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, noTokenMessage)
			return
		}
		c, ok := s.verify(token)
		if !ok {
			writeError(w, http.StatusForbidden, invalidTokenMessage)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey, c)))
	})
}

// optionalAuth identifies the caller when a valid token is sent and
// otherwise serves the request anonymously.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := s.verify(bearerToken(r)); ok {
			r = r.WithContext(context.WithValue(r.Context(), callerKey, c))
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs each request through slog with its request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), loggerKey, logger)))

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// recoverer turns a panicking handler into a JSON 500.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logFrom(r).Error("handler panicked", "panic", rec)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
