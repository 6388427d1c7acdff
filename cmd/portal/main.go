package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/bootstrap"
	"github.com/Domenick1991/flightdesk/internal/gateway"
	"github.com/Domenick1991/flightdesk/internal/logger"
	"github.com/Domenick1991/flightdesk/internal/portal"
	"github.com/Domenick1991/flightdesk/internal/session"
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

	rdb := session.NewRedisClient(cfg.Redis)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zl.Fatal("connect redis", zap.Error(err))
	}

	store := session.NewRedisStore(rdb, cfg.Portal.SessionTTL())
	client := gateway.NewClient(cfg.Portal.APIBaseURL, cfg.Portal.RequestTimeout(), store, zl)

	router := portal.NewRouter(portal.RouterConfig{
		Log:        zl,
		Sessions:   store,
		Cookie:     cfg.Portal.SessionCookie,
		SessionTTL: cfg.Portal.SessionTTL(),
		Handler:    portal.NewHandler(client, cfg.Pagination.DefaultPageSize, zl),
	})

	if err := bootstrap.Run(ctx, cfg.Portal.Address, router, cfg.HTTP.ShutdownTimeout(), zl); err != nil {
		zl.Fatal("portal server error", zap.Error(err))
	}
}
