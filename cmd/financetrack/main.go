package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"financetrack/internal/cache"
	"financetrack/internal/cli"
	"financetrack/internal/events"
	apphttp "financetrack/internal/http"
	"financetrack/internal/log"
	"financetrack/internal/services"
	"financetrack/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	persistence, closeBackend, err := cli.OpenPersistence(logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize persistence backend", log.FieldError, err, log.FieldBackend, cfg.Backend)
		os.Exit(1)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			logger.Error("Failed to close persistence backend", "error", err)
		}
	}()

	ledger, err := store.Open(ctx, persistence)
	if err != nil {
		logger.Error("Failed to open ledger", log.FieldError, err, log.FieldBackend, cfg.Backend)
		os.Exit(1)
	}

	// Event publishing is optional: without a broker URL the service runs
	// standalone and mutations are not announced.
	var publisher *events.Client
	if cfg.AMQPURL != "" {
		publisher, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", "error", err)
			os.Exit(1)
		}
		logger.Info("Connected to AMQP broker", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	svc := services.NewLedgerService(ledger, publisher)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close ledger service", "error", err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		EvolutionWindow: cfg.EvolutionWindow,
		CacheTTL:        cfg.CacheTTL,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	janitor := cache.NewJanitor(time.Minute)
	for _, c := range srv.Caches() {
		janitor.Register(c)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting financetrack server", "port", cfg.Port, log.FieldBackend, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return janitor.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
