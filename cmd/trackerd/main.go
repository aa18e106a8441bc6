package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Gordoburrito/tracking-script/internal/config"
	"github.com/Gordoburrito/tracking-script/internal/crm"
	"github.com/Gordoburrito/tracking-script/internal/form"
	"github.com/Gordoburrito/tracking-script/internal/handler"
	"github.com/Gordoburrito/tracking-script/internal/logger"
	"github.com/Gordoburrito/tracking-script/internal/match"
	"github.com/Gordoburrito/tracking-script/internal/service"
	"github.com/Gordoburrito/tracking-script/internal/storage/memory"
	"github.com/Gordoburrito/tracking-script/internal/storage/sqlite"
	"github.com/Gordoburrito/tracking-script/internal/telecom"
	"github.com/Gordoburrito/tracking-script/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting tracking agent",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage scopes: transient lives for the agent's lifetime, durable
	// survives restarts
	transientStore := memory.NewStore()
	durableStore, err := sqlite.NewStore(cfg.Storage.DBPath, log)
	if err != nil {
		log.Fatal("Failed to open durable store", zap.Error(err))
	}
	defer func(durableStore *sqlite.Store) {
		if err := durableStore.Close(); err != nil {
			log.Error("Failed to close durable store", zap.Error(err))
		}
	}(durableStore)

	// Outbound collection API client and detached dispatcher
	crmClient := crm.NewClient(crm.ClientConfig{
		BaseURL: cfg.CRM.BaseURL,
		Token:   cfg.CRM.Token,
		Timeout: time.Duration(cfg.CRM.RequestTimeoutSec) * time.Second,
	}, log)

	dispatcher := crm.NewDispatcher(crmClient, crm.DispatcherConfig{
		BufferSize: cfg.CRM.DispatchBufferSize,
		MaxRetries: cfg.CRM.DispatchMaxRetries,
		RetryDelay: time.Duration(cfg.CRM.DispatchRetryDelayMs) * time.Millisecond,
	}, log)
	go dispatcher.Start(ctx)

	// Core components
	sessionTracker := tracker.NewTracker(transientStore, durableStore, log)
	detector := telecom.NewDetector(sessionTracker, dispatcher, log)
	pipeline := form.NewPipeline(sessionTracker, sessionTracker, dispatcher, form.PipelineConfig{
		Debounce: time.Duration(cfg.Forms.DebounceMs) * time.Millisecond,
	}, log)
	pipeline.SetSearcher(match.NewFuzzySearcher())

	trackingService := service.NewTrackingService(sessionTracker, detector, pipeline, log)

	h := handler.NewHandler(trackingService, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	server := &http.Server{Addr: addr, Handler: h}

	go func() {
		log.Info("Intake server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start intake server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	// Best-effort: drain the live session into history before exit, the
	// same way the page drains on unload
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessionTracker.TransferToHistory(shutdownCtx)

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down intake server", zap.Error(err))
	}
}
