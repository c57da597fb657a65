// Command lineupd serves the lineup planner API.
//
// @title Lineup Planner API
// @version 1.0
// @description Build multi-stage event lineups: events, artist slots, conflicts, undo/redo and exports.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"lineupplanner/config"
	_ "lineupplanner/docs"
	"lineupplanner/internal/adapters/email"
	"lineupplanner/internal/adapters/roster"
	deliveryhttp "lineupplanner/internal/delivery/http"
	"lineupplanner/internal/delivery/http/controllers"
	"lineupplanner/internal/delivery/http/middleware"
	"lineupplanner/internal/domain"
	"lineupplanner/internal/repository/file"
	"lineupplanner/internal/repository/memory"
	"lineupplanner/internal/repository/postgres"
	redisrepo "lineupplanner/internal/repository/redis"
	"lineupplanner/internal/services"
)

func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	artists := roster.Default()
	if cfg.RosterFile != "" {
		if artists, err = roster.LoadFile(cfg.RosterFile); err != nil {
			return err
		}
	}
	opts := services.LineupOptions{Roster: artists, SaveTimeout: cfg.SaveTimeout}
	if cfg.SeedDemo {
		opts.Seed = services.DemoState()
	}
	svc := services.NewLineupService(ctx, logger, store, opts)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("flushing lineup state", "err", err)
		}
	}()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		ReplyTo:     cfg.Mail.ReplyTo,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	notifier := services.NewNotificationService(mailer, email.NewTemplateRenderer(), logger)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Lineup:  controllers.NewLineupController(logger, svc),
		Events:  controllers.NewEventController(logger, svc),
		Slots:   controllers.NewSlotController(logger, svc),
		Exports: controllers.NewExportController(logger, svc, notifier, cfg.Location()),
	})
	handler := middleware.LoggingMiddleware(logger,
		middleware.CORS(cfg.CORSAllowedOrigins,
			middleware.Roles(domain.Role(cfg.DefaultRole), router)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("signal received, shutting down")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore builds the state store selected by STORE_DRIVER. The returned func releases its connections.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.StateStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("using redis state store", "addr", cfg.Redis.Addr, "key", cfg.StateKey)
		return redisrepo.NewStateRepository(client, cfg.StateKey), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("using postgres state store", "key", cfg.StateKey)
		return postgres.NewStateRepository(db, cfg.StateKey), func() { _ = db.Close() }, nil

	case config.StoreMemory:
		logger.Warn("using in-memory state store, changes are lost on restart")
		return memory.NewStateRepository(), func() {}, nil

	default:
		logger.Info("using file state store", "path", cfg.StateFile)
		return file.NewStateRepository(cfg.StateFile), func() {}, nil
	}
}
