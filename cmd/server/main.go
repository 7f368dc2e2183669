package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/equalsplit/internal/config"
	"github.com/mmynk/equalsplit/internal/discord"
	"github.com/mmynk/equalsplit/internal/metrics"
	"github.com/mmynk/equalsplit/internal/middleware"
	"github.com/mmynk/equalsplit/internal/storage/memory"
	"github.com/mmynk/equalsplit/pkg/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("EQUALSPLIT_CONFIG"))
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize in-memory roster storage
	store := memory.New(cfg.Roster.TTL)
	defer store.Close()
	slog.Info("Storage initialized", "roster_ttl", cfg.Roster.TTL)

	m := metrics.New(store.Len)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPM, cfg.RateLimit.Burst, 10*time.Minute, m)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(cfg, store, m, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr, "currency", cfg.Currency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Discord.Token != "" {
		bot, err := discord.New(cfg.Discord.Token, discord.NewHandler(store, cfg.Currency, m))
		if err != nil {
			return err
		}
		g.Go(func() error {
			return bot.Run(gctx)
		})
	} else {
		slog.Info("Discord bot disabled", "reason", "no token configured")
	}

	return g.Wait()
}
