package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/carehome/carehome-api/internal/domain/assessment"
	"github.com/carehome/carehome-api/internal/domain/booking"
	"github.com/carehome/carehome-api/internal/domain/dashboard"
	"github.com/carehome/carehome-api/internal/domain/enquiry"
	"github.com/carehome/carehome-api/internal/domain/notification"
	"github.com/carehome/carehome-api/internal/domain/property"
	"github.com/carehome/carehome-api/internal/domain/record"
	"github.com/carehome/carehome-api/internal/domain/room"
	"github.com/carehome/carehome-api/internal/domain/survey"
	"github.com/carehome/carehome-api/internal/domain/wizard"
	"github.com/carehome/carehome-api/internal/middleware"
	"github.com/carehome/carehome-api/internal/pkg/database"
	"github.com/carehome/carehome-api/internal/pkg/metrics"
	pkgresponse "github.com/carehome/carehome-api/internal/pkg/response"
)

// handlers groups everything the router mounts. Nil handlers are skipped.
type handlers struct {
	Enquiry      *enquiry.Handler
	Property     *property.Handler
	Room         *room.Handler
	Booking      *booking.Handler
	Record       *record.Handler
	Wizard       *wizard.Handler
	Dashboard    *dashboard.Handler
	Notification *notification.Handler
	Survey       *survey.Handler
	Assessment   *assessment.Handler
}

type routerConfig struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	DB             *sqlx.DB
	Redis          *redis.Client
	UploadDir      string
}

func newRouter(cfg routerConfig, h handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// WebSocket endpoint (before Compress)
	if h.Notification != nil {
		r.Mount("/ws", h.Notification.WSRoutes())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := database.Health(ctx, cfg.DB, cfg.Redis)
		if !database.Healthy(status) {
			pkgresponse.JSON(w, http.StatusServiceUnavailable, status)
			return
		}
		pkgresponse.OK(w, status)
	})

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	if cfg.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		if h.Enquiry != nil {
			r.Mount("/enquiries", h.Enquiry.Routes())
		}
		if h.Property != nil {
			r.Mount("/properties", h.Property.Routes())
		}
		if h.Room != nil {
			r.Mount("/rooms", h.Room.Routes())
		}
		if h.Dashboard != nil {
			r.Mount("/dashboard", h.Dashboard.Routes())
		}
		if h.Wizard != nil {
			r.Mount("/room-finder", h.Wizard.Routes())
			h.Wizard.RegisterRecordRoutes(r)
		}
		if h.Booking != nil {
			h.Booking.RegisterRecordRoutes(r)
		}
		if h.Record != nil {
			h.Record.RegisterRecordRoutes(r)
		}
		if h.Notification != nil {
			h.Notification.RegisterHistory(r)
		}
		if h.Survey != nil {
			h.Survey.RegisterRecordRoutes(r)
		}
		if h.Assessment != nil {
			r.Mount("/assessments", h.Assessment.Routes())
			h.Assessment.RegisterRecordRoutes(r)
		}
	})

	return r
}
