package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"entropy-status-backend/pkg/clients/chain"
	"entropy-status-backend/pkg/clients/metadata"
	"entropy-status-backend/pkg/httpServer"
	"entropy-status-backend/pkg/services/enrichment"
	"entropy-status-backend/pkg/services/status"
	"entropy-status-backend/pkg/workers"
	"entropy-status-backend/pkg/workers/chainhealth"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() (err error) {
	// Tools
	config := loadConfig()
	if config == nil {
		fmt.Println("failed to load configuration")
		return
	}

	logLevel := slog.LevelInfo
	if level, ok := logLevels[config.System.LogLevel]; ok {
		logLevel = level
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Metrics
	metrics := newAppMetrics(config)

	// Clients
	dialer := chain.NewDialer(config.Chain.Endpoint, config.Chain.PageSize, logger).
		WithMetrics(metrics.rpcRequestsCount, metrics.rpcRequestsDuration)

	metadataClient := metadata.NewClient(config.Metadata.ServiceBase)
	metadataClient = metadata.NewMetrics(metrics.metadataRequestsCount, metrics.metadataRequestsDuration, metadataClient)

	// Services
	enrichmentSvc := enrichment.NewService(
		metadataClient,
		config.Metadata.Concurrency,
		config.Metadata.Timeout,
		logger,
	)

	statusSvc := status.NewService(
		dialer,
		enrichmentSvc,
		status.Config{
			NetworkName:  config.Chain.NetworkName,
			SS58Prefix:   config.Chain.SS58Prefix,
			DecodePolicy: config.Chain.DecodePolicy,
		},
		logger,
	)

	// Workers
	healthWorker := chainhealth.NewWorker(
		dialer,
		config.Workers.ChainCheckInterval,
		metrics.chainUp,
		metrics.chainLastCheck,
		logger,
	)
	healthWorker = chainhealth.NewMetrics(metrics.workersRunCount, metrics.workersRunDuration, healthWorker)

	cancelCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workers := workers.NewWorkers(healthWorker, logger)
	if err = workers.Start(cancelCtx); err != nil {
		logger.Error("failed to start workers", slog.String("error", err.Error()))
		return
	}

	// HTTP Server
	adminAuthTokens := strings.Split(config.System.AdminAuthTokens, ",")
	app := fiber.New()
	server := httpServer.New(
		app,
		statusSvc,
		adminAuthTokens,
		config.System.RequestTimeout,
		config.Metrics.Namespace,
		config.Metrics.ServerSubsystem,
		logger,
	)

	server.RegisterRoutes()

	go func() {
		if err := app.Listen(":" + config.System.Port); err != nil {
			logger.Error("error starting server", slog.String("err", err.Error()))
		}
	}()

	logger.Info("status backend started",
		slog.String("chain_endpoint", config.Chain.Endpoint),
		slog.String("metadata_service", config.Metadata.ServiceBase),
	)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	<-signalChan
	cancel()

	err = app.ShutdownWithTimeout(time.Second * 5)
	if err != nil {
		logger.Error("server shut down error", slog.String("err", err.Error()))
		return err
	}

	return err
}
