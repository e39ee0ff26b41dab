package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/taf-decoder/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/taf-decoder/internal/adapter/kafka"
	"github.com/couchcryptid/taf-decoder/internal/config"
	"github.com/couchcryptid/taf-decoder/internal/decoder"
	"github.com/couchcryptid/taf-decoder/internal/observability"
	"github.com/couchcryptid/taf-decoder/internal/pipeline"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	lenient := decoder.NewCachedDecoder(decoder.For(decoder.Lenient), cfg.DecodeCacheSize, metrics)
	strict := decoder.NewCachedDecoder(decoder.For(decoder.Strict), cfg.DecodeCacheSize, metrics)
	serviceDecoder := decoder.Decoder(lenient)
	if cfg.DecodeStrict {
		serviceDecoder = strict
	}
	logger.Info("decoder configured",
		"strict", cfg.DecodeStrict,
		"cache_size", cfg.DecodeCacheSize,
		"workers", cfg.DecodeWorkers,
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(serviceDecoder, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, httpadapter.Decoders{
		Lenient: lenient,
		Strict:  strict,
		Workers: cfg.DecodeWorkers,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
