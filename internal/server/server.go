// Package server wires the HTTP layer together: router, middleware, handlers
// and the http.Server lifecycle.
//
// MIDDLEWARE ORDER:
// Middleware runs in the order it is added. RequestID comes first so every
// later layer (including the access log) can read the id; Recoverer comes
// before the handlers so a panic becomes a 500 instead of a dropped
// connection; CORS answers preflight requests before routing.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/ghiffarsabda/kormimvp/internal/auth"
	"github.com/ghiffarsabda/kormimvp/internal/handler"
	"github.com/ghiffarsabda/kormimvp/internal/middleware"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/service"
)

// shutdownTimeout is how long in-flight requests get after a stop signal.
const shutdownTimeout = 30 * time.Second

type Config struct {
	Port               int
	CORSAllowedOrigins []string

	// Admin surface. Left unmounted when JWTSecret is empty.
	JWTSecret     string
	TokenTTL      time.Duration // 0 means auth.DefaultTokenTTL
	AdminUsername string
	AdminPassword string // provisioned at startup when set
	BcryptCost    int    // 0 means the auth package default
}

type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	store  repository.Store

	// nil when the admin surface is disabled
	tokens      *auth.TokenService
	authService *service.AuthService
}

// New builds the router on top of store. The caller owns store and closes it
// after Start returns.
//
// When an admin password is configured the account is created (or its
// password rotated) here, before any request is served.
func New(ctx context.Context, cfg Config, logger *slog.Logger, store repository.Store) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if cfg.JWTSecret != "" {
		if err := s.setupAuth(ctx); err != nil {
			return nil, fmt.Errorf("setting up admin auth: %w", err)
		}
		if !allowCredentials(cfg.CORSAllowedOrigins) {
			logger.Warn("CORS origins are a wildcard; cross-origin admin clients must send a Bearer token")
		}
	} else {
		logger.Warn("JWT_SECRET not set; admin routes are disabled")
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupAuth(ctx context.Context) error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return err
	}

	passwords := auth.NewPasswordService()
	if s.config.BcryptCost > 0 {
		passwords = auth.NewPasswordServiceWithCost(s.config.BcryptCost)
	}

	s.tokens = tokens
	s.authService = service.NewAuthService(s.store.Users(), tokens, passwords, s.logger)

	if s.config.AdminPassword == "" {
		s.logger.Warn("ADMIN_PASSWORD not set; no admin account was provisioned")
		return nil
	}
	_, err = s.authService.EnsureAdmin(ctx, s.config.AdminUsername, s.config.AdminPassword)
	return err
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: allowCredentials(s.config.CORSAllowedOrigins),
		MaxAge:           300,
	}))

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusNotFound, "not_found", "route not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	categories := handler.NewSportCategoryHandler(s.store.SportCategories(), s.logger)
	organizations := handler.NewOrganizationHandler(s.store.Organizations(), s.logger)
	events := handler.NewEventHandler(s.store.Events(), s.logger)
	news := handler.NewNewsHandler(s.store.News(), s.logger)
	gallery := handler.NewGalleryHandler(s.store.Gallery(), s.logger)
	submissions := handler.NewSubmissionHandler(s.store.Messages(), s.store.JoinRequests(), s.logger)
	seed := handler.NewSeedHandler(s.store, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/sport-categories", categories.HandleList)
		r.Get("/sport-categories/{id}", categories.HandleGet)

		r.Get("/organizations", organizations.HandleList)
		r.Get("/organizations/{id}", organizations.HandleGet)
		r.Post("/organizations", organizations.HandleCreate)

		r.Get("/events", events.HandleList)
		r.Get("/events/{id}", events.HandleGet)
		r.Post("/events", events.HandleCreate)

		r.Get("/news", news.HandleList)
		r.Get("/news/{id}", news.HandleGet)
		r.Post("/news", news.HandleCreate)
		r.Patch("/news/{id}", news.HandleUpdate)
		r.Delete("/news/{id}", news.HandleDelete)

		r.Get("/gallery", gallery.HandleList)
		r.Get("/gallery/{id}", gallery.HandleGet)
		r.Post("/gallery", gallery.HandleCreate)

		r.Post("/contact", submissions.HandleContact)
		r.Post("/join", submissions.HandleJoin)

		r.Post("/initialize-data", seed.HandleInitialize)

		if s.authService == nil {
			return
		}

		authHandler := handler.NewAuthHandler(s.authService, s.logger)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/logout", authHandler.HandleLogout)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(s.tokens))

				r.Get("/me", authHandler.HandleMe)

				r.Get("/messages", submissions.HandleListMessages)
				r.Get("/messages/{id}", submissions.HandleGetMessage)
				r.Delete("/messages/{id}", submissions.HandleDeleteMessage)
				r.Get("/join-requests", submissions.HandleListJoinRequests)
				r.Get("/join-requests/{id}", submissions.HandleGetJoinRequest)
				r.Delete("/join-requests/{id}", submissions.HandleDeleteJoinRequest)

				r.Post("/sport-categories", categories.HandleCreate)
				r.Put("/sport-categories/{id}", categories.HandleUpdate)
				r.Delete("/sport-categories/{id}", categories.HandleDelete)
				r.Put("/organizations/{id}", organizations.HandleUpdate)
				r.Delete("/organizations/{id}", organizations.HandleDelete)
				r.Put("/events/{id}", events.HandleUpdate)
				r.Delete("/events/{id}", events.HandleDelete)
				r.Put("/gallery/{id}", gallery.HandleUpdate)
				r.Delete("/gallery/{id}", gallery.HandleDelete)
			})
		})
	})
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
//
// Two goroutines run under one errgroup: the listener, and a watcher that
// calls Shutdown once ctx is done. A listener failure (port in use) cancels
// the group so the watcher exits too.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d/api", s.config.Port)),
			slog.Bool("admin", s.authService != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}

// allowCredentials reports whether cross-origin requests may carry the admin
// cookie. Browsers refuse credentialed responses for a wildcard origin, so
// with "*" cross-origin admin clients must use the Authorization header.
func allowCredentials(origins []string) bool {
	if len(origins) == 0 {
		return false
	}
	return !slices.Contains(origins, "*")
}

// writeStatus answers router-level misses in the API's error shape.
func writeStatus(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q,"message":%q}`+"\n", kind, message)
}
