package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, db database.Database, portfolio *services.Portfolio, renderer Renderer) (Server, error) {
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Server.Port)

	startupTime := time.Now()

	router := newRouter(db, portfolio, renderer, withConfig(cfg), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.Config
	startupTime time.Time
	now         func() time.Time
}

func withConfig(c config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// withClock replaces the clock used to sign admin tokens.
func withClock(now func() time.Time) func(*router) {
	return func(r *router) {
		r.now = now
	}
}

func newRouter(db database.Database, portfolio *services.Portfolio, renderer Renderer, opts ...func(*router)) *chi.Mux {
	router := router{now: time.Now}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware)
	chiRouter.Use(corsMiddleware(router.config.Server.AcceptedOrigins))

	secret := adminSigningKey(router.config.Admin)
	handlers := initializeHandlers(db, portfolio, renderer, router.config.Admin, secret, router.now)
	authMiddleware := newAuthMiddleware(secret)

	setupAdminRoutes(chiRouter, handlers, authMiddleware)
	setupPublicRoutes(chiRouter, handlers)

	log.Debug().Time("startupTime", router.startupTime).Msg("router ready")
	return chiRouter
}

// adminSigningKey prefers a dedicated secret and falls back to the admin password.
func adminSigningKey(cfg config.AdminConfig) []byte {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret)
	}
	return []byte(cfg.Password)
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
