package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HailXD/Tarot-Draw/internal/adapters/decks"
	httpadapter "github.com/HailXD/Tarot-Draw/internal/adapters/http"
	"github.com/HailXD/Tarot-Draw/internal/adapters/notify/discord"
	"github.com/HailXD/Tarot-Draw/internal/app"
	"github.com/HailXD/Tarot-Draw/internal/config"
	"github.com/HailXD/Tarot-Draw/internal/ports"
	"github.com/HailXD/Tarot-Draw/internal/tracing"
)

// stdRNG delegates to math/rand/v2 (auto-seeded). It backs empty seeds.
type stdRNG struct{}

func (stdRNG) Float64() float64 { return rand.Float64() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: "tarotd",
		Environment: cfg.AppEnv,
		Exporter:    cfg.TracesExporter,
		PrettyPrint: cfg.TracesPretty,
		Sampler:     cfg.TracesSampler,
		SamplerArg:  cfg.TracesSamplerArg,
	}, logger)
	if err != nil {
		logger.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}

	var notifier ports.Notifier = discord.Noop{}
	if cfg.WebhookURL != "" {
		notifier = discord.NewClient(&http.Client{Timeout: cfg.WebhookTimeout}, cfg.WebhookURL, logger)
	} else {
		logger.Info("no WEBHOOK_URL set, deal notifications disabled")
	}

	sessions := app.NewSessionStore(cfg.SessionTTL)
	if cfg.SessionTTL > 0 {
		go sessions.Run(ctx, max(cfg.SessionTTL/4, time.Second))
	}

	svc := app.NewTarotService(decks.NewStore(), notifier, stdRNG{}, sessions, logger, app.Options{
		AnimationSteps:    cfg.AnimationSteps,
		AnimationDuration: cfg.AnimationDuration,
		NotifyTimeout:     cfg.WebhookTimeout,
	})

	e := httpadapter.NewEcho(logger)
	handler := httpadapter.NewHandler(svc, cfg.DefaultDeck, cfg.WSAllowedOrigins)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Streams end once their sessions close, which lets Shutdown finish.
	sessions.Close()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	svc.Wait()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown error", "error", err)
	}
}
