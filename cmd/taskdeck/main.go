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
	"github.com/urfave/cli/v2"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/database"
	"github.com/taskdeck/taskdeck/internal/handler"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/service"
)

// @title TaskDeck API
// @version 1.0
// @description Task management service with ownership-scoped access and an append-only audit log.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "taskdeck",
		Usage: "task management server with audit logging",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   config.DefaultLogLevel,
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Value:   config.DefaultPort,
						Usage:   "port to listen on",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:     "database-url",
						Usage:    "PostgreSQL connection string",
						EnvVars:  []string{"DATABASE_URL"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "jwt-secret",
						Usage:    "secret for signing access tokens",
						EnvVars:  []string{"JWT_SECRET"},
						Required: true,
					},
					&cli.DurationFlag{
						Name:    "token-ttl",
						Value:   config.DefaultTokenTTL,
						Usage:   "access token lifetime",
						EnvVars: []string{"TOKEN_TTL"},
					},
				},
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply pending database migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "database-url",
						Usage:    "PostgreSQL connection string",
						EnvVars:  []string{"DATABASE_URL"},
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					logger.Setup(c.String("log-level"))
					return database.Migrate(c.String("database-url"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	logger.Setup(c.String("log-level"))

	cfg := config.Config{
		Port:        c.String("port"),
		DatabaseURL: c.String("database-url"),
		JWTSecret:   c.String("jwt-secret"),
		TokenTTL:    c.Duration("token-ttl"),
		LogLevel:    c.String("log-level"),
	}

	ctx := c.Context

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	mux := http.NewServeMux()
	h := handler.New(db.Pool, tokens)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.RequestID(middleware.Metrics(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
