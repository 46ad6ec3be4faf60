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

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const shutdownTimeout = 15 * time.Second

func newLogger() *slog.Logger {
	if config.Development() {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func main() {
	logger := newLogger()
	mines.Log = logger.With(slog.String("component", "mines"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Error("game server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	board, err := config.NewBoard()
	if err != nil {
		return err
	}
	window, err := config.InputWindow()
	if err != nil {
		return err
	}
	ttl, err := config.SessionTTL()
	if err != nil {
		return err
	}

	origins := config.AllowedOrigins()
	app := &application{
		logger:   logger,
		ws:       config.NewWebSocket(origins),
		board:    *board,
		origins:  origins,
		basePath: config.BasePath(),
	}

	db, err := database.ConnectAndMigrate(ctx)
	switch {
	case errors.Is(err, config.ErrNotConfigured):
		logger.Warn("no database configured, game records disabled")
	case err != nil:
		return fmt.Errorf("failed to connect and migrate db: %w", err)
	default:
		defer db.Close()
		app.repo = repository.New(db)
	}

	jwt, err := config.NewJWT()
	switch {
	case errors.Is(err, config.ErrNotConfigured):
		logger.Warn("no JWT keys configured, player accounts disabled")
	case err != nil:
		return fmt.Errorf("failed to read jwt config: %w", err)
	default:
		if app.cookies, err = config.NewCookies(jwt); err != nil {
			return fmt.Errorf("failed to read cookies config: %w", err)
		}
	}

	app.store = session.NewStore(
		session.WithLogger(logger),
		session.WithInputWindow(window),
		session.OnFinish(app.gameFinished),
	)

	port := config.Port()
	server := &http.Server{
		Addr:              port,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("game online",
			slog.String("port", port),
			slog.String("base path", app.basePath),
			slog.Any("board", board),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return app.janitor(gCtx, ttl)
	})

	return g.Wait()
}
