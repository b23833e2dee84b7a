package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"scrollforcause/platform/internal/auth"
	"scrollforcause/platform/internal/database"
	"scrollforcause/platform/internal/feed"
	"scrollforcause/platform/internal/mailer"
	"scrollforcause/platform/internal/server/api"
	"scrollforcause/platform/internal/server/storage"
)

// NewRouter assembles the API routes over the given database.
func NewRouter(db *database.DB, logger zerolog.Logger, defaultFeedLimit int) http.Handler {
	feedHandler := api.NewFeedHandler(feed.NewEngine(storage.NewFeedRepository(db)), defaultFeedLimit)

	categories := storage.NewCategoryRepository(db)
	categoryHandler := api.NewCategoryHandler(categories)

	orgs := storage.NewOrganizationRepository(db)
	volunteers := storage.NewVolunteerRepository(db)
	volunteerHandler := api.NewVolunteerHandler(volunteers, categories)
	opportunityHandler := api.NewOpportunityHandler(orgs, storage.NewOpportunityRepository(db))
	dashboardHandler := api.NewDashboardHandler(orgs, storage.NewDashboardRepository(db))
	adminHandler := api.NewAdminHandler(orgs, categories, mailer.NewLogMailer(logger))
	meHandler := api.NewMeHandler(volunteers, orgs)

	r := chi.NewRouter()
	r.Use(auth.Middleware)

	r.Get("/health", healthCheckHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// The feed is publicly readable; no identity required.
		r.Get("/feed", feedHandler.GetFeed)
		r.Get("/categories", categoryHandler.GetCategories)

		r.With(auth.RequireAuthenticated).Get("/me", meHandler.GetMe)
		r.With(auth.RequireAuthenticated).Post("/volunteers", volunteerHandler.RegisterVolunteer)

		r.Group(func(r chi.Router) {
			r.Use(auth.Require(auth.RoleOrganization))
			r.Post("/opportunities", opportunityHandler.CreateOpportunity)
			r.Get("/organizations/dashboard", dashboardHandler.GetDashboard)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Require(auth.RoleAdmin))
			r.Get("/admin/organizations", adminHandler.ListOrganizations)
			r.Get("/admin/organizations/{id}", adminHandler.GetOrganization)
			r.Put("/admin/organizations/{id}/verify", adminHandler.VerifyOrganization)
		})
	})

	// Set up middleware chain for logging and request tracking
	h := hlog.NewHandler(logger)(r)
	h = hlog.MethodHandler("method")(h)
	h = hlog.URLHandler("url")(h)
	h = hlog.RemoteAddrHandler("remote_addr")(h)
	h = hlog.UserAgentHandler("user_agent")(h)
	h = hlog.RequestIDHandler("req_id", "Request-Id")(h)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		idReq, _ := hlog.IDFromRequest(r)

		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Str("req_id", idReq.String()).
			Msg("HTTP Request")
	})(h)

	return h
}

// RunServer starts the HTTP server with graceful shutdown support.
// It sets up routes, middleware, and handles OS signals for clean termination.
func RunServer(db *database.DB, listenAddr string, logger zerolog.Logger, defaultFeedLimit int) error {
	logger = logger.With().Str("service", "platform-api").Logger()

	h := NewRouter(db, logger, defaultFeedLimit)

	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("address", listenAddr).Msg("API Server starting")
		err := httpServer.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Fatal().Err(err).Msg("Server failed to start")

	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("HTTP server shutdown error")
			if err := httpServer.Close(); err != nil {
				logger.Error().Err(err).Msg("HTTP server force close error")
			}
		} else {
			logger.Info().Msg("HTTP server shutdown complete.")
		}
		if err := <-serverErr; err != nil {
			logger.Error().Err(err).Msg("ListenAndServe error during shutdown")
		}
	}

	logger.Info().Msg("Server exiting.")
	return nil
}

// healthCheckHandler responds to health check requests with a simple 200 OK.
// This endpoint is used by monitoring systems to verify the service is operational.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	log.Debug().Msg("Health check request received")

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("Error writing health check response")
	}
}
