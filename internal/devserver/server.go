// Package devserver is an in-memory implementation of the social network
// API, for local development and end-to-end tests of the terminal client.
//
// Routes live under /api and mirror the production backend:
//
//	POST   /api/auth/register            GET    /api/users/search?query=
//	POST   /api/auth/login               GET    /api/users/list
//	GET    /api/auth/profile             GET    /api/users/{username}
//	GET    /api/posts                    GET    /api/users/{username}/posts
//	POST   /api/posts                    GET    /api/comments/post/{postId}
//	GET    /api/posts/{id}               POST   /api/comments/post/{postId}
//	DELETE /api/posts/{id}               GET    /api/comments/{id}
//	POST   /api/follows/{username}       DELETE /api/comments/{id}
//	DELETE /api/follows/{username}       GET    /api/follows/list/following
//	GET    /api/follows/feed             GET    /api/follows/list/followers
//	GET    /api/follows/check/{username}
//
// Tokens are HS256 JWTs carrying userId and username. Passwords are
// stored as bcrypt hashes. Nothing survives a restart.
package devserver

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

const (
	apiPrefix = "/api"

	// DefaultAddr is the listen address of a local backend.
	DefaultAddr = "127.0.0.1:3000"
	// DefaultTokenTTL is how long issued tokens stay valid.
	DefaultTokenTTL = 24 * time.Hour
)

// Config configures a Server.
type Config struct {
	// JWTSecret signs tokens. A random secret is generated when empty.
	JWTSecret []byte
	TokenTTL  time.Duration
	// BcryptCost defaults to 12.
	BcryptCost int
	Logger     *slog.Logger
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Server serves the API from memory.
type Server struct {
	store    *store
	contract *contract
	secret   []byte
	ttl      time.Duration
	cost     int
	logger   *slog.Logger
	now      func() time.Time
	router   chi.Router
}

// New creates a server with an empty store.
func New(ctx context.Context, config Config) (*Server, error) {
	c, err := loadContract(ctx)
	if err != nil {
		return nil, err
	}

	secret := config.JWTSecret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
	}

	s := &Server{
		store:    newStore(),
		contract: c,
		secret:   secret,
		ttl:      config.TokenTTL,
		cost:     config.BcryptCost,
		logger:   config.Logger,
		now:      config.Clock,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTokenTTL
	}
	if s.cost == 0 {
		s.cost = 12
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.cost < bcrypt.MinCost || s.cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", s.cost)
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})

	r.Get("/health", s.health)

	r.Route(apiPrefix, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(s.contract.validate).Post("/register", s.register)
			r.With(s.contract.validate).Post("/login", s.login)
			r.With(s.requireAuth).Get("/profile", s.profile)
		})

		r.Route("/posts", func(r chi.Router) {
			r.With(s.optionalAuth).Get("/", s.listPosts)
			r.With(s.requireAuth, s.contract.validate).Post("/", s.createPost)
			r.Get("/{id}", s.getPost)
			r.With(s.requireAuth).Delete("/{id}", s.deletePost)
		})

		r.Route("/follows", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/list/following", s.listFollowing)
			r.Get("/list/followers", s.listFollowers)
			r.Get("/feed", s.followingFeed)
			r.Get("/check/{username}", s.checkFollowing)
			r.Post("/{username}", s.followUser)
			r.Delete("/{username}", s.unfollowUser)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(s.optionalAuth)
			r.Get("/search", s.searchUsers)
			r.Get("/list", s.listUsers)
			r.Get("/{username}", s.userProfile)
			r.Get("/{username}/posts", s.userPosts)
		})

		r.Route("/comments", func(r chi.Router) {
			r.With(s.optionalAuth).Get("/post/{postId}", s.listComments)
			r.With(s.requireAuth, s.contract.validate).Post("/post/{postId}", s.createComment)
			r.With(s.optionalAuth).Get("/{id}", s.getComment)
			r.With(s.requireAuth).Delete("/{id}", s.deleteComment)
		})
	})

	return r
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled. The ready callback,
// if set, receives the bound address once the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("dev server listening", "addr", ln.Addr().String())
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dev server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down dev server: %w", err)
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339Nano),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a JSON request body into v. An empty body leaves v
// unchanged.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
