package server

import (
	"context"
	"net/http"
	"time"

	"github.com/ccatimbang/todo-api/internal/auth"
	"github.com/ccatimbang/todo-api/internal/config"
	"github.com/ccatimbang/todo-api/internal/http/handlers"
	"github.com/ccatimbang/todo-api/internal/middleware"
	"github.com/ccatimbang/todo-api/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, users storage.UserStore, todos storage.TodoStore) *Server {
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	return &Server{inner: &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, users, todos, tokenManager),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}}
}

// Handler builds the root handler: routes plus CORS and logging middleware.
// Exposed separately so tests can run the exact production routing against
// an httptest server.
func Handler(cfg config.Config, users storage.UserStore, todos storage.TodoStore, tokens *auth.TokenManager) http.Handler {
	mux := http.NewServeMux()
	handlers.NewHealthHandler().Register(mux)
	handlers.NewAuthHandler(users, tokens).Register(mux)
	handlers.NewTodoHandler(todos, tokens).Register(mux)

	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
