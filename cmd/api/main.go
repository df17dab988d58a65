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

	"github.com/agendaclinic/scheduling-api/internal/config"
	"github.com/agendaclinic/scheduling-api/internal/handler"
	appointmentHandler "github.com/agendaclinic/scheduling-api/internal/handler/appointment"
	authHandler "github.com/agendaclinic/scheduling-api/internal/handler/auth"
	doctorHandler "github.com/agendaclinic/scheduling-api/internal/handler/doctor"
	patientHandler "github.com/agendaclinic/scheduling-api/internal/handler/patient"
	"github.com/agendaclinic/scheduling-api/internal/middleware"
	"github.com/agendaclinic/scheduling-api/internal/repository/postgres"
	"github.com/agendaclinic/scheduling-api/internal/router"
	authService "github.com/agendaclinic/scheduling-api/internal/service/auth"
	schedulingService "github.com/agendaclinic/scheduling-api/internal/service/scheduling"
	"github.com/agendaclinic/scheduling-api/pkg/auth"
	"github.com/agendaclinic/scheduling-api/pkg/metrics"
	"github.com/agendaclinic/scheduling-api/pkg/security"
	"github.com/agendaclinic/scheduling-api/pkg/validator"
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

	// Repositories
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	m := metrics.NewMetrics("scheduling", "api")
	schedulingSvc := schedulingService.NewService(
		doctorRepo,
		patientRepo,
		appointmentRepo,
		validator.New(),
		m,
	)
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:      cfg.JWT.Secret,
		ExpiryHours: cfg.JWT.ExpiryHours,
	})
	authSvc := authService.NewService(userRepo, jwtSvc, security.NewBcryptHasher(12))

	// Handlers
	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	appointmentH := appointmentHandler.NewHandler(schedulingSvc)
	doctorH := doctorHandler.NewHandler(doctorRepo)
	patientH := patientHandler.NewHandler(patientRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		appointmentH,
		doctorH,
		patientH,
		h,
		router.Config{
			RateLimit:  rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:  cfg.Server.RateLimitBurst,
			Timeout:    time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig: middleware.DefaultCORSConfig(),
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
