package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/agendaclinic/scheduling-api/internal/config"
	"github.com/agendaclinic/scheduling-api/internal/repository/postgres"
	"github.com/agendaclinic/scheduling-api/pkg/logger"
	"github.com/agendaclinic/scheduling-api/pkg/messaging/redis"
	"github.com/agendaclinic/scheduling-api/pkg/metrics"
	"github.com/agendaclinic/scheduling-api/pkg/worker"
)

// The relay worker is configured from the environment only; it typically runs
// as a sidecar next to the API and shares its database and broker.
type workerConfig struct {
	DBHost     string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int           `envconfig:"DB_PORT" default:"5432"`
	DBUser     string        `envconfig:"DB_USER" default:"scheduler"`
	DBPassword string        `envconfig:"DB_PASSWORD" default:"scheduler"`
	DBName     string        `envconfig:"DB_NAME" default:"scheduling"`
	DBSSLMode  string        `envconfig:"DB_SSLMODE" default:"disable"`
	RedisURL   string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	BatchSize  int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	PollEvery  time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	Channel    string        `envconfig:"OUTBOX_CHANNEL" default:"appointments.events"`
}

func main() {
	var cfg workerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	db, err := postgres.NewDB(config.DatabaseConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	l := logger.NewLogger(nil)

	zl := log.Logger
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.RedisURL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	processor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:    cfg.BatchSize,
			PollInterval: cfg.PollEvery,
			Channel:      cfg.Channel,
		},
		l,
		metrics.NewMetrics("scheduling", "worker"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")
	cancel()
}
