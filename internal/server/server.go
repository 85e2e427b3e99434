// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer; it connects handlers, middleware, and
// routes, and decides how the server starts and stops.
//
// DEPENDENCY INJECTION FLOW:
//
//	main.go:      config.Load() → server.New(ctx, cfg, logger)
//	server.New:   sqlite.DB → UserService / CourseService → UserHandler / CourseHandler
//
// This is the "composition root" pattern: all dependencies are wired in one
// place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/config"
	"github.com/sakif/course-api/internal/handler"
	"github.com/sakif/course-api/internal/middleware"
	sqliteRepo "github.com/sakif/course-api/internal/repository/sqlite"
	"github.com/sakif/course-api/internal/service"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database pool. Start closes it after the HTTP server
// has drained; callers that never call Start (tests) call Close instead.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, runs migrations, and wires every route.
//
// IMPORT ALIAS:
// We import repository/sqlite as `sqliteRepo` to avoid confusion with
// the sqlite driver package.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.DBPath != sqliteRepo.MemoryPath {
		// 0755 = owner can read/write/execute, others can read/execute.
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqliteRepo.New(ctx, cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /                   → welcome message
// GET    /api/users          → current user                 (Basic Auth)
// POST   /api/users          → register
// GET    /api/courses        → list courses
// GET    /api/courses/{id}   → get course
// POST   /api/courses        → create course                (Basic Auth)
// PUT    /api/courses/{id}   → update own course            (Basic Auth)
// DELETE /api/courses/{id}   → delete own course            (Basic Auth)
// anything else            → 404 {"message":"Route Not Found"}
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns unique ID to each request (for tracing)
// 2. RealIP: extracts real client IP from proxy headers
// 3. StripSlashes: /api/courses/ routes the same as /api/courses
// 4. Logger: logs each request with timing info
// 5. Recoverer: turns a panic into a JSON error; sits inside Logger so the
// logged status is the one the client got
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.StripSlashes)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Recoverer(s.logger, s.config.EnableGlobalErrorLogging))

	// A wrong method on a known path is reported like an unknown path.
	s.router.NotFound(handler.HandleNotFound)
	s.router.MethodNotAllowed(handler.HandleNotFound)

	// DEPENDENCY CHAIN:
	//   s.db implements both repository interfaces
	//   services receive the interfaces, handlers receive the services
	users := service.NewUserService(s.db, auth.NewPasswordService(s.config.BcryptCost), s.logger)
	courses := service.NewCourseService(s.db, s.logger)

	userHandler := handler.NewUserHandler(users, s.logger)
	courseHandler := handler.NewCourseHandler(courses, s.logger)

	requireAuth := auth.RequireBasicAuth(users, s.logger)

	s.router.Get("/", handler.HandleHome)

	s.router.Route("/api", func(r chi.Router) {
		r.NotFound(handler.HandleNotFound)
		r.MethodNotAllowed(handler.HandleNotFound)

		r.With(requireAuth).Get("/users", userHandler.HandleGetCurrent)
		r.Post("/users", userHandler.HandleCreate)

		r.Get("/courses", courseHandler.HandleList)
		r.Get("/courses/{id}", courseHandler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/courses", courseHandler.HandleCreate)
			r.Put("/courses/{id}", courseHandler.HandleUpdate)
			r.Delete("/courses/{id}", courseHandler.HandleDelete)
		})
	})
}

// Handler exposes the router, which lets tests drive it with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database pool.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
