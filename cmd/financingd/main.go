package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrobank/financing-service/internal/application/usecase"
	"github.com/agrobank/financing-service/internal/domain/service"
	"github.com/agrobank/financing-service/internal/infrastructure/adapter"
	"github.com/agrobank/financing-service/internal/infrastructure/config"
	"github.com/agrobank/financing-service/internal/infrastructure/messaging"
	pgRepo "github.com/agrobank/financing-service/internal/infrastructure/persistence/postgres"
	"github.com/agrobank/financing-service/internal/infrastructure/scheduler"
	grpcPresentation "github.com/agrobank/financing-service/internal/presentation/grpc"
	"github.com/agrobank/financing-service/internal/presentation/rest"
	"github.com/agrobank/financing-service/pkg/auth"
	pkgkafka "github.com/agrobank/financing-service/pkg/kafka"
	"github.com/agrobank/financing-service/pkg/observability"
	pkgpostgres "github.com/agrobank/financing-service/pkg/postgres"
)

const (
	eventsTopic        = "financing.events"
	notificationsTopic = "financing.notifications"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  "json",
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	logger.Info("starting financing-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without", "error", err)
	} else {
		defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Kafka.
	kafkaProducer := pkgkafka.NewProducer(cfg.Kafka)
	defer kafkaProducer.Close()

	notifier := messaging.NewKafkaNotifier(kafkaProducer, notificationsTopic, logger)

	// Persistence.
	uow := pgRepo.NewUnitOfWork(pool)
	outboxRepo := pgRepo.NewOutboxRepo(pool)

	// Outbox relay.
	relay := messaging.NewOutboxRelay(
		outboxRepo, kafkaProducer, eventsTopic,
		cfg.Outbox.PollInterval, cfg.Outbox.BatchSize, logger,
	)
	go relay.Run(ctx)

	// Domain services and adapters.
	allocator := service.NewRepaymentAllocator()
	policy := service.NewCreditPolicy()
	renderer := adapter.NewTemplateContractRenderer(cfg.Financing.DocumentBaseURL)
	identity := adapter.NewJWTIdentity()

	// Use cases.
	useCases := grpcPresentation.UseCases{
		Submit:           usecase.NewSubmitApplicationUseCase(uow, notifier, cfg.Financing.MinimumAmount),
		Review:           usecase.NewReviewApplicationUseCase(uow, notifier, policy),
		Cancel:           usecase.NewCancelApplicationUseCase(uow),
		GenerateContract: usecase.NewGenerateContractUseCase(uow, renderer, logger),
		SignContract:     usecase.NewSignContractUseCase(uow, notifier),
		Disburse:         usecase.NewDisburseUseCase(uow, notifier),
		Repay:            usecase.NewRepayUseCase(uow, notifier, allocator),
		EarlyQuote:       usecase.NewEarlyQuoteUseCase(uow, allocator),
		CreateGroup:      usecase.NewCreateGroupUseCase(uow, cfg.Financing.MinimumAmount),
		JoinGroup:        usecase.NewJoinGroupUseCase(uow),
		ConfirmMember:    usecase.NewConfirmMemberUseCase(uow, notifier),
		QuitGroup:        usecase.NewQuitGroupUseCase(uow),
		MatchCandidates:  usecase.NewMatchCandidatesUseCase(uow, 0),
		ConfirmAndApply:  usecase.NewConfirmAndApplyUseCase(uow, notifier),
		Summary:          usecase.NewRepaymentSummaryUseCase(uow),
		Statistics:       usecase.NewFarmerStatisticsUseCase(uow),
		Sweep: usecase.NewOverdueSweepUseCase(
			uow, notifier, logger,
			cfg.Financing.PenaltyDailyRate, cfg.Financing.SweepBatchSize,
		),
		Queries: usecase.NewQueryUseCase(uow),
	}

	// Overdue sweep cron.
	sweeper := scheduler.NewOverdueSweeper(useCases.Sweep, cfg.Financing.SweepSpec, logger)
	if err := sweeper.Start(); err != nil {
		logger.Error("failed to start overdue sweeper", "error", err)
		os.Exit(1)
	}
	defer sweeper.Stop()

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{Issuer: cfg.JWT.Issuer}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = cfg.JWT.Secret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewFinancingHandler(useCases, identity)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("financing-service stopped")
}
