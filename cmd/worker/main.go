package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/audit"
	"github.com/Domenick1991/flightdesk/internal/bootstrap"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
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

	recorder, err := audit.NewRecorder(zl, prometheus.DefaultRegisterer)
	if err != nil {
		zl.Fatal("init audit recorder", zap.Error(err))
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.EventsTopic, zl)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metricsDone := make(chan struct{})
	go func() {
		defer close(metricsDone)
		handler := bootstrap.MetricsHandler(prometheus.DefaultGatherer)
		if err := bootstrap.Run(ctx, cfg.Worker.MetricsAddress, handler, cfg.HTTP.ShutdownTimeout(), zl); err != nil {
			zl.Error("metrics server failed", zap.Error(err))
			cancel()
		}
	}()

	zl.Info("audit worker started", zap.String("topic", cfg.Kafka.EventsTopic), zap.String("group", cfg.Kafka.GroupID))
	err = consumer.Consume(ctx, recorder.Record)
	cancel()
	<-metricsDone
	if err != nil {
		zl.Fatal("consumer stopped", zap.Error(err))
	}
	zl.Info("audit worker stopped")
}
