package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/medbook/booking-api/internal/config"
	"github.com/medbook/booking-api/internal/handler"
	appointmentHandler "github.com/medbook/booking-api/internal/handler/appointment"
	authHandler "github.com/medbook/booking-api/internal/handler/auth"
	availabilityHandler "github.com/medbook/booking-api/internal/handler/availability"
	prescriptionHandler "github.com/medbook/booking-api/internal/handler/prescription"
	profileHandler "github.com/medbook/booking-api/internal/handler/profile"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/repository/postgres"
	redisrepo "github.com/medbook/booking-api/internal/repository/redis"
	"github.com/medbook/booking-api/internal/router"
	appointmentService "github.com/medbook/booking-api/internal/service/appointment"
	authService "github.com/medbook/booking-api/internal/service/auth"
	availabilityService "github.com/medbook/booking-api/internal/service/availability"
	prescriptionService "github.com/medbook/booking-api/internal/service/prescription"
	profileService "github.com/medbook/booking-api/internal/service/profile"
	"github.com/medbook/booking-api/pkg/auth"
	"github.com/medbook/booking-api/pkg/media"
	"github.com/medbook/booking-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redisrepo.NewClient(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer redisClient.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	slotRepo := postgres.NewSlotRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	prescriptionRepo := postgres.NewPrescriptionRepository(base)
	tokenRepo := redisrepo.NewTokenRepository(redisClient)

	// Shared infrastructure
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)
	uploader := media.NewHTTPUploader(cfg.Media.UploadEndpoint, cfg.Media.Timeout())
	store := media.NewLocalStore(cfg.Documents.Dir, cfg.Documents.BaseURL)

	// Services
	authSvc := authService.NewService(userRepo, tokenRepo, jwtSvc, hasher)
	availabilitySvc := availabilityService.NewService(slotRepo, appointmentRepo, doctorRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, availabilitySvc, store)
	profileSvc := profileService.NewService(doctorRepo, patientRepo, uploader, store)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, store)

	// Handlers
	h := handler.NewHandler(base)
	authH := authHandler.NewHandler(authSvc)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	profileH := profileHandler.NewHandler(profileSvc)
	prescriptionH := prescriptionHandler.NewHandler(prescriptionSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimit.RPS > 0 {
		rateLimiterCfg = middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RPS),
			Burst: cfg.RateLimit.Burst,
		}
	}

	r := router.NewRouter(
		authMiddleware,
		authH,
		profileH,
		availabilityH,
		appointmentH,
		prescriptionH,
		h,
		router.Config{
			RateLimiter:   rateLimiterCfg,
			CORS:          middleware.DefaultCORSConfig(),
			Timeout:       cfg.Server.Timeout(),
			MetricsPrefix: "booking_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
