package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/playforge/xobot/internal/config"
	"github.com/playforge/xobot/internal/game"
	"github.com/playforge/xobot/internal/repository"
	"github.com/playforge/xobot/internal/repository/storage"
	"github.com/playforge/xobot/internal/service"
	"github.com/playforge/xobot/internal/usecase"
	"github.com/playforge/xobot/transport/rest"
	"github.com/playforge/xobot/transport/telegram"
)

var (
	ErrAddrNotFound = errors.New("redis address string is empty")
	ErrNoToken      = errors.New("telegram token is empty")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	if conf.Telegram.Token == "" {
		return ErrNoToken
	}

	redisClient, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisClient.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	snapshotRepo := repository.NewSnapshotRepository(redisClient)

	profileService, err := service.NewProfileService(ctx, logger, snapshotRepo, time.Now)
	if err != nil {
		return fmt.Errorf("could not load profiles: %w", err)
	}

	registry := game.NewRegistry()
	gameManager := usecase.NewGameManager(logger, registry, profileService, conf.Game.TurnBudget(), time.Now)

	// run HTTP liveness server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Telegram poller
	botErrCh := make(chan error, 1)
	go func() {
		bot, botErr := telegram.New(logger, conf.Telegram.Token, conf.Telegram.PollTimeout, gameManager)
		if botErr != nil {
			log.Error("Telegram bot error", "error", botErr)
			botErrCh <- botErr
			return
		}

		log.Info("Starting Telegram bot")
		if botErr = bot.Start(ctx); botErr != nil {
			log.Error("Telegram bot error", "error", botErr)
			botErrCh <- botErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-botErrCh:
		return fmt.Errorf("telegram bot error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
