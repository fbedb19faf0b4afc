package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"highwayMonitor/internal/api/handlers/http/admin"
	"highwayMonitor/internal/api/handlers/http/public"
	"highwayMonitor/internal/api/handlers/http/system"
	"highwayMonitor/internal/api/handlers/ws"
	"highwayMonitor/internal/config"
	"highwayMonitor/internal/domain"
	"highwayMonitor/internal/middleware"
)

// multipartOverhead covers form fields and part headers on top of the image.
const multipartOverhead = 1 << 20

type Handlers struct {
	Admin  *admin.Handler
	Public *public.Handler
	System *system.Handler
	Feed   *ws.Handler
}

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, h Handlers) *Server {
	return &Server{
		logger: logger,
		router: InitRouter(cfg, h, logger),
		cfg:    *cfg,
	}
}

func (s *Server) Handler() http.Handler { return s.router }

func InitRouter(cfg *config.Config, h Handlers, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/health", h.System.SystemHealth)
		api.Get("/ready", h.System.SystemReady)
		api.Get("/ws", h.Feed.Feed)

		api.Route("/incidents", func(ir chi.Router) {
			// PUBLIC
			ir.Group(func(pr chi.Router) {
				pr.Use(middleware.Limit(20, 40, 5*time.Minute, logger))
				pr.Get("/", h.Public.IncidentList)
				pr.Get("/images/*", h.Public.IncidentImage)
				pr.Get("/{id}", h.Public.IncidentGet)
			})

			// OPERATOR
			ir.Group(func(opr chi.Router) {
				opr.Use(middleware.APIKeyMiddleware(cfg.APIKey))
				opr.Use(middleware.Limit(5, 10, 10*time.Minute, logger))

				upload := middleware.LimitBody(domain.MaxImageBytes + multipartOverhead)
				opr.With(upload).Post("/", h.Admin.IncidentCreate)
				opr.With(upload).Post("/{id}/images", h.Admin.IncidentAddImage)
				opr.Put("/{id}/confirm", h.Admin.IncidentConfirm)
				opr.Put("/{id}/resolve", h.Admin.IncidentResolve)
			})
		})

		api.Route("/dashboard", func(dr chi.Router) {
			dr.Use(middleware.Limit(20, 40, 5*time.Minute, logger))
			dr.Get("/overview", h.Public.DashboardOverview)
			dr.Get("/active-incidents", h.Public.DashboardActive)
			dr.Get("/statistics", h.Public.DashboardStatistics)
		})

		api.Route("/reports", func(rr chi.Router) {
			rr.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			rr.Use(middleware.Limit(5, 10, 10*time.Minute, logger))
			rr.Get("/incidents", h.Admin.ReportIncidents)
			rr.Get("/statistics", h.Admin.ReportStatistics)
			rr.Get("/resolved", h.Admin.ReportResolved)
		})
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
