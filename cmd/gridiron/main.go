package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/gridiron/internal/api/backend"
	"github.com/omarshaarawi/gridiron/internal/api/espn"
	"github.com/omarshaarawi/gridiron/internal/bot"
	"github.com/omarshaarawi/gridiron/internal/config"
	"github.com/omarshaarawi/gridiron/internal/httpapi"
	"github.com/omarshaarawi/gridiron/internal/logging"
	"github.com/omarshaarawi/gridiron/internal/metrics"
	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/omarshaarawi/gridiron/internal/repository/memory"
	"github.com/omarshaarawi/gridiron/internal/repository/redis"
	"github.com/omarshaarawi/gridiron/internal/scheduler"
	"github.com/omarshaarawi/gridiron/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(logging.New(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var cache espn.Cache = espn.NopCache{}
	var pruner scheduler.Pruner
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		mem := memory.NewCache(cfg.Cache.TTL, nil)
		cache, pruner = mem, mem
	case config.CacheRedis:
		rc, err := redis.New(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
		if err != nil {
			return err
		}
		defer rc.Close()
		cache = rc
	}
	slog.Info("Response cache configured", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)

	espnClient := espn.NewClient(cfg.ESPNAPI, espn.WithCache(cache), espn.WithMetrics(m))
	espnAPI := espn.NewAPI(espnClient)

	fallback := service.NewFallbackGenerator(nil, nil, espnAPI.Formatter(), cfg.Fallback.RosterSize)
	sportsService := service.NewSportsService(espnAPI, fallback,
		service.WithWeekInterval(cfg.ESPNAPI.WeekInterval),
		service.WithMaxWeek(cfg.ESPNAPI.MaxWeek),
		service.WithMetrics(m),
	)

	backendClient := backend.NewClient(cfg.Backend)

	favoriteLeague, err := models.ParseLeague(cfg.Telegram.FavoriteLeague)
	if err != nil {
		slog.Warn("Invalid favorite league, using nfl", "error", err)
		favoriteLeague = models.LeagueNFL
	}

	var sendMessage func(string) error
	if cfg.Telegram.Token != "" {
		handler := bot.NewHandler(sportsService, backendClient, favoriteLeague)
		telegramBot, err := bot.NewTelegramBot(cfg.Telegram.Token, cfg.Telegram.ChatID, handler)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	location, err := time.LoadLocation(cfg.ESPNAPI.Timezone)
	if err != nil {
		slog.Error("Failed to load location", "error", err)
		location = time.UTC
	}

	sched, err := scheduler.NewScheduler(sportsService, pruner, scheduler.Settings{
		Location:       location,
		PruneInterval:  cfg.Cache.PruneInterval,
		FavoriteTeam:   cfg.Telegram.FavoriteTeam,
		FavoriteLeague: favoriteLeague,
	}, sendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr: ":" + cfg.HTTP.Port,
		Handler: httpapi.NewRouter(sportsService, backendClient, httpapi.Options{
			CORSOrigins: cfg.HTTP.CORSOrigins,
			Metrics:     m.Handler(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
