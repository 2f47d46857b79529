package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipment-reconciler/internal/core/cache"
	"shipment-reconciler/internal/core/config"
	"shipment-reconciler/internal/core/database"
	"shipment-reconciler/internal/core/httpclient"
	"shipment-reconciler/internal/core/logger"
	"shipment-reconciler/internal/core/server"
	notificationadapter "shipment-reconciler/internal/features/notifications/adapters"
	notificationports "shipment-reconciler/internal/features/notifications/ports"
	notificationservice "shipment-reconciler/internal/features/notifications/service"
	trackingadapter "shipment-reconciler/internal/features/tracking/adapters"
	"shipment-reconciler/internal/features/tracking/domain"
	trackinghandler "shipment-reconciler/internal/features/tracking/handler"
	"shipment-reconciler/internal/features/tracking/ports"
	trackingservice "shipment-reconciler/internal/features/tracking/service"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// @title Shipment Reconciler API
// @version 1.0
// @description Carrier webhook ingestion and shipment status reconciliation.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("notify_driver", cfg.Notifications.Driver),
	)

	// Database
	gormLog := logger.NewGormLogger(l, logger.GormLogLevel(cfg.LogLevel))
	db, err := database.Open(cfg.Database, gormLog)
	if err != nil {
		l.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := trackingadapter.AutoMigrate(db.DB); err != nil {
		l.Fatal("Database migration failed", zap.Error(err))
	}
	l.Info("Database connection verified")

	store := trackingadapter.NewGormStore(db.DB)
	healthChecks := []server.HealthCheck{{Name: "database", Check: store.Ping}}

	// Optional Redis: seen-event cache and pub/sub notifications
	var redisCache *cache.RedisAdapter
	if cfg.Redis.URL != "" {
		redisCache, err = cache.NewRedisAdapter(cfg.Redis.URL)
		if err != nil {
			l.Fatal("Redis configuration invalid", zap.Error(err))
		}
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			l.Warn("Redis unreachable, continuing without seen cache until it recovers", zap.Error(err))
		} else {
			l.Info("Redis connection verified")
		}
		cancel()

		healthChecks = append(healthChecks, server.HealthCheck{Name: "redis", Check: redisCache.Ping})
	}

	var seen ports.SeenCache
	if redisCache != nil {
		seen = trackingadapter.NewRedisSeenCache(redisCache, cfg.Redis.DedupTTL())
	}
	dedup := trackingservice.NewDeduplicator(store.Repositories().Events(), seen)

	// Notifications
	publisher, closer, err := newPublisher(cfg.Notifications, redisCache)
	if err != nil {
		l.Fatal("Notification publisher setup failed", zap.Error(err))
	}
	if closer != nil {
		defer closer.Close()
	}
	dispatcher := notificationservice.NewDispatcher(publisher, cfg.Notifications.Timeout())

	// Tracking services & handlers
	reconciler := trackingservice.NewReconciliationService(store, dedup, dispatcher,
		trackingservice.WithNDRPolicy(domain.NDRPolicy{
			MaxAttempts: cfg.NDR.MaxAttempts,
			RetryAfter:  cfg.NDR.RetryAfter(),
		}),
	)
	webhookHdl := trackinghandler.NewWebhookHandler(reconciler)
	trackingHdl := trackinghandler.NewTrackingHandler(trackingservice.NewTrackingService(store))
	ndrHdl := trackinghandler.NewNDRHandler(trackingservice.NewNDRService(store))

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/healthz", server.HealthHandler(healthChecks...))
	srv.App.Post("/webhooks/carrier", webhookHdl.ReceiveStatus)
	srv.App.Get("/tracking/:waybill", trackingHdl.GetTracking)
	srv.App.Post("/shipments/:waybill/ndr-actions", ndrHdl.SubmitAction)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		l.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			l.Error("Server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("Server shutdown failed", zap.Error(err))
	}
	if err := dispatcher.Drain(shutdownCtx); err != nil {
		l.Warn("Pending notifications dropped", zap.Error(err))
	}
	l.Info("Application stopped")
}

// newPublisher builds the configured notification channel. The returned
// closer, when not nil, must be closed on shutdown.
func newPublisher(cfg config.NotificationConfig, redisCache *cache.RedisAdapter) (notificationports.Publisher, io.Closer, error) {
	switch cfg.Driver {
	case "redis":
		if redisCache == nil {
			return nil, nil, fmt.Errorf("redis notifications require REDIS_URL")
		}
		return notificationadapter.NewRedisPublisher(redisCache, cfg.RedisChannelPrefix), nil, nil
	case "kafka":
		p := notificationadapter.NewKafkaPublisher(cfg.BrokerList(), cfg.KafkaTopic)
		return p, p, nil
	case "http":
		return notificationadapter.NewHTTPPublisher(httpclient.NewClient(cfg.Timeout()), cfg.WebhookURL), nil, nil
	case "log", "":
		return notificationadapter.NewLogPublisher(), nil, nil
	}
	return nil, nil, fmt.Errorf("unsupported notification driver: %s", cfg.Driver)
}
