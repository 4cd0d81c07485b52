package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/httpapi"
	"interview-insights-go/internal/llm"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/processor"
	"interview-insights-go/internal/report"
	"interview-insights-go/internal/storage"
	"interview-insights-go/internal/store"
	"interview-insights-go/internal/transcription"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)
	log.WithField("service", "interview-insights-go").Info("starting service")

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.WithError(err).Warn("sentry init failed")
		} else {
			log.Info("sentry initialized")
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		sentry.CaptureException(err)
		log.WithError(err).Error("server terminated")
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	gen, err := llm.New(cfg.LLM, log)
	if err != nil {
		return fmt.Errorf("llm client: %w", err)
	}
	analyzer := processor.New(gen, processor.Options{
		Timeout:       cfg.LLM.Timeout,
		KeywordPrefix: cfg.Keywords.PrefixChars,
		KeywordCount:  cfg.Keywords.Count,
		Assembler:     report.NewAssembler(),
		Logger:        log,
	})

	// Speech-to-text is optional; the text endpoints work without it.
	transcriber, err := transcription.New(cfg.STT, log)
	if err != nil {
		log.WithError(err).Warn("speech-to-text disabled")
	}

	var reports store.ReportStore
	if cfg.Redis.Addr != "" {
		rs, err := store.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rs.Close()
		reports = rs
		log.WithField("addr", cfg.Redis.Addr).Info("using redis report store")
	} else {
		reports = store.NewMemoryStore(cfg.Redis.ReportTTL)
	}

	var artifacts storage.ArtifactStore
	if cfg.MinIO.Endpoint != "" {
		ms, err := storage.NewMinIOStore(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
		artifacts = ms
		log.WithField("bucket", cfg.MinIO.Bucket).Info("using minio artifact store")
	} else {
		artifacts = storage.NewLocalStore(cfg.OutputDir)
	}

	e := httpapi.New(httpapi.Deps{
		Config:      cfg,
		Analyzer:    analyzer,
		Reports:     reports,
		Artifacts:   artifacts,
		Transcriber: transcriber,
		Logger:      log,
	})
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = cfg.LLM.Timeout + 60*time.Second
	e.Server.IdleTimeout = 120 * time.Second

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
