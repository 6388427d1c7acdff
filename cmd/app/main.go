package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/bootstrap"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/logger"
	"github.com/Domenick1991/flightdesk/internal/migrations"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrationsEnabled {
		if err := migrations.Up(cfg.Database.URL(), zl); err != nil {
			zl.Fatal("apply migrations", zap.Error(err))
		}
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zl.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	repos := repository.NewRepositories(pool)

	deps := bootstrap.APIDeps{
		Config: cfg,
		Repos:  repos,
		Log:    zl,
		Ping:   pool.Ping,
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, zl)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			zl.Warn("kafka unavailable, resource events may be dropped", zap.Error(err))
		}
		deps.Producer = producer
	}

	if err := auth.SeedSuperAdmin(ctx, repos.Users, cfg.Auth, zl); err != nil {
		zl.Fatal("seed super admin", zap.Error(err))
	}

	if err := bootstrap.Run(ctx, cfg.HTTP.Address, bootstrap.NewAPIHandler(deps), cfg.HTTP.ShutdownTimeout(), zl); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
