package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resto-backoffice/internal/api"
	"resto-backoffice/internal/config"
	"resto-backoffice/internal/database"
	"resto-backoffice/internal/idempotency"
	"resto-backoffice/internal/logger"
	"resto-backoffice/internal/messaging"
	"resto-backoffice/internal/services/analytics"
	"resto-backoffice/internal/services/catalog"
	"resto-backoffice/internal/services/customer"
	"resto-backoffice/internal/services/notification"
	"resto-backoffice/internal/services/order"
	"resto-backoffice/internal/services/review"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to the configuration file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("resto-backoffice")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", requestID, fmt.Sprintf("Starting backoffice on port %d", cfg.Server.Port))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", requestID, "Received shutdown signal")
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service_failed", requestID, "Backoffice service failed", err)
		os.Exit(1)
	}

	log.Info("service_stopped", requestID, "Service stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", requestID, "Connected to PostgreSQL database")

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", requestID, "Connected to RabbitMQ")

	publisher := messaging.NewPublisher(conn, log)

	// In-process audit tail of the notifications queue. External senders can
	// bind their own queues to notifications_fanout.
	subscriber := notification.NewSubscriber(
		messaging.NewConsumer(conn, log, "notifications_queue", "backoffice-audit", 10), log)
	go func() {
		if err := subscriber.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("subscriber_failed", requestID, "Notification subscriber failed", err)
		}
	}()
	defer subscriber.Close()

	var idem *idempotency.Store
	if addr := cfg.RedisAddr(); addr != "" {
		idem, err = idempotency.New(ctx, addr)
		if err != nil {
			return fmt.Errorf("failed to initialize idempotency store: %w", err)
		}
		defer idem.Close()
		log.Info("redis_connected", requestID, "Connected to Redis")
	} else {
		log.Warn("idempotency_disabled", requestID, "Redis not configured, idempotency keys are ignored")
	}

	catalogSvc := catalog.NewService(catalog.NewRepository(db))
	customerSvc := customer.NewService(customer.NewRepository(db))
	orderRepo := order.NewRepository(db)

	var idemStore order.IdempotencyStore
	if idem != nil {
		idemStore = idem
	}
	orderSvc := order.NewService(orderRepo, catalogSvc, customerSvc, publisher, idemStore, log)
	reviewSvc := review.NewService(review.NewRepository(db), customerSvc)
	analyticsSvc := analytics.NewService(analytics.NewRepository(db), orderRepo)

	health := map[string]api.HealthChecker{
		"database": db.Ping,
		"rabbitmq": func(context.Context) error {
			if conn.IsClosed() {
				return fmt.Errorf("connection closed")
			}
			return nil
		},
	}
	if idem != nil {
		health["redis"] = idem.Ping
	}

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewServer(
			orderSvc, catalogSvc, customerSvc, reviewSvc, analyticsSvc,
			health, log, time.Duration(cfg.Server.RequestTimeout)*time.Second,
		).SetupRoutes(),
	}

	go func() {
		log.Info("http_listening", requestID, fmt.Sprintf("HTTP server listening on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", requestID, "HTTP server failed", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
