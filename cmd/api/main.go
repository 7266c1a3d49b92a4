package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/carehome/carehome-api/internal/config"
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
	"github.com/carehome/carehome-api/internal/pkg/database"
	"github.com/carehome/carehome-api/internal/pkg/email"
	"github.com/carehome/carehome-api/internal/pkg/logger"
	"github.com/carehome/carehome-api/internal/pkg/metrics"
	"github.com/carehome/carehome-api/internal/pkg/money"
	"github.com/carehome/carehome-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting care home API")

	db, err := database.NewPostgres(cfg.DatabaseURL, database.DefaultPool)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	formatter, err := money.NewFormatter(cfg.Currency, cfg.Locale)
	if err != nil {
		log.Warn().Err(err).Str("currency", cfg.Currency).Msg("Unsupported currency settings, falling back to GBP")
		formatter = money.Must("GBP", "en-GB")
	}

	images, uploadDir := newImageStore(cfg)

	var mailer *email.Service
	if cfg.EmailEnabled() {
		mailer = email.NewService(email.NewSendGridClient(email.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}))
		defer mailer.Close()
	} else {
		log.Warn().Msg("SendGrid not configured, enquiry emails disabled")
	}

	// ---------- Repositories ----------
	roomRepo := room.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	recordRepo := record.NewRepository(db)
	enquiryRepo := enquiry.NewRepository(db)
	propertyRepo := property.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	surveyRepo := survey.NewRepository(db)
	assessmentRepo := assessment.NewRepository(db)

	// ---------- Services ----------
	roomService := room.NewService(roomRepo, images, redis, cfg.SearchCacheTTL, formatter, m)
	bookingService := booking.NewService(bookingRepo, roomRepo, roomService, m)
	recordService := record.NewService(recordRepo, redis, cfg.RecordCacheTTL, m)
	propertyService := property.NewService(propertyRepo)
	dashboardService := dashboard.NewService(enquiryRepo, roomRepo)
	surveyService := survey.NewService(surveyRepo, recordService)
	assessmentService := assessment.NewService(assessmentRepo)

	var enquiryService *enquiry.Service
	if mailer != nil {
		enquiryService = enquiry.NewService(enquiryRepo, mailer, cfg.AdmissionsEmail)
	} else {
		enquiryService = enquiry.NewService(enquiryRepo, nil, cfg.AdmissionsEmail)
	}

	// ---------- Notifications ----------
	hub := notification.NewHub(redis, m)
	go hub.Run()
	notificationStore := notification.NewStore(notificationRepo)
	sink := notification.Multi{notification.ContextSink{}, hub, notificationStore, notification.LogSink{}}

	// ---------- Room finder ----------
	sessions := wizard.NewRegistry(wizard.Dependencies{
		Rooms:     &roomSearcher{rooms: roomService},
		Bookings:  &bookingConfirmer{bookings: bookingService},
		Records:   &recordProvider{records: recordService},
		Sink:      sink,
		Formatter: formatter,
		Metrics:   m,
	}, cfg.WizardSessionTTL)

	sweeper, err := wizard.StartSweeper(sessions, cfg.WizardSweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.WizardSweepSchedule).Msg("Invalid room finder sweep schedule")
	}

	forwardCtx, stopForwarding := context.WithCancel(context.Background())
	go forwardRecordUpdates(recordService.Subscribe(forwardCtx), hub)

	// ---------- Router ----------
	router := newRouter(routerConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        m,
		Gatherer:       registry,
		DB:             db,
		Redis:          redis,
		UploadDir:      uploadDir,
	}, handlers{
		Enquiry:      enquiry.NewHandler(enquiryService),
		Property:     property.NewHandler(propertyService),
		Room:         room.NewHandler(roomService),
		Booking:      booking.NewHandler(bookingService),
		Record:       record.NewHandler(recordService),
		Wizard:       wizard.NewHandler(sessions),
		Dashboard:    dashboard.NewHandler(dashboardService),
		Notification: notification.NewHandler(hub, notificationStore, cfg.AllowedOrigins),
		Survey:       survey.NewHandler(surveyService),
		Assessment:   assessment.NewHandler(assessmentService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	<-sweeper.Stop().Done()
	stopForwarding()
	hub.Shutdown()

	log.Info().Msg("Server exited properly")
}

// newImageStore returns S3 storage when credentials are set, otherwise a local
// directory served under /uploads. The second result is that directory, or "".
func newImageStore(cfg *config.Config) (storage.Images, string) {
	if cfg.Storage().Enabled() {
		s3Images, err := storage.NewS3Images(cfg.Storage())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 image storage")
		}
		log.Info().Str("bucket", cfg.S3Bucket).Msg("Room images stored in S3")
		return s3Images, ""
	}

	baseURL := strings.TrimRight(cfg.PublicURL, "/") + "/uploads"
	local, err := storage.NewLocalImages(cfg.UploadDir, baseURL)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("Failed to create local image storage")
	}
	log.Warn().Str("dir", cfg.UploadDir).Msg("S3 not configured, storing room images locally")
	return local, cfg.UploadDir
}

type recordUpdateNotifier interface {
	RecordUpdated(recordID uuid.UUID)
}

// forwardRecordUpdates pushes record change events to websocket clients until updates closes
func forwardRecordUpdates(updates <-chan uuid.UUID, hub recordUpdateNotifier) {
	for id := range updates {
		hub.RecordUpdated(id)
	}
}
