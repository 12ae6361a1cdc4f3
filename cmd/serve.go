package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/imagehub/imagehub-web/internal/api"
	"github.com/imagehub/imagehub-web/internal/api/handler"
	"github.com/imagehub/imagehub-web/internal/core/ports"
	"github.com/imagehub/imagehub-web/internal/core/service"
	"github.com/imagehub/imagehub-web/internal/infrastructure/content"
	mongostore "github.com/imagehub/imagehub-web/internal/infrastructure/db/mongo"
	redisstore "github.com/imagehub/imagehub-web/internal/infrastructure/db/redis"
	"github.com/imagehub/imagehub-web/internal/infrastructure/imagehub"
	"github.com/imagehub/imagehub-web/internal/infrastructure/memory"
	"github.com/imagehub/imagehub-web/internal/pkg/config"
	"github.com/imagehub/imagehub-web/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web front-end",
		Long: `Starts the ImageHub web front-end.

Configuration is read from the environment (and a .env file when present).
The --port flag overrides PORT.`,
		Example: `  # Start server on PORT (default 8080)
  imagehub-web serve

  # Start server on custom port with in-memory sessions
  SESSION_BACKEND=memory imagehub-web serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.LoadWith(ctx, envconfig.OsLookuper())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			log := logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.Development(),
				Service: "imagehub-web",
			})

			store, guard, closeBackend, err := openBackend(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeBackend()

			landing, err := content.DefaultLanding()
			if err != nil {
				return err
			}

			client := imagehub.NewClient(&http.Client{Timeout: cfg.API.Timeout}, cfg.API.BaseURL)
			sessions := service.NewSessionService(store, cfg.Session.TTL, logger.Component("sessions"))

			e, err := api.NewRouter(api.Deps{
				Config:    cfg,
				Logger:    log,
				Sessions:  sessions,
				Auth:      service.NewAuthService(client, logger.Component("auth")),
				Images:    service.NewImageService(client, cfg.UI.PageSize, logger.Component("images")),
				Admin:     service.NewAdminService(client, logger.Component("admin")),
				Profiles:  client,
				Sequencer: service.NewSequencer(guard, logger.Component("sequence")),
				Landing:   landing,
				Checks: map[string]handler.Pinger{
					cfg.Session.Backend: sessions,
					"imagehub_api":      client,
				},
			})
			if err != nil {
				return err
			}

			addr := ":" + cfg.Port

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Str("api", client.BaseURL()).Str("sessions", cfg.Session.Backend).Msg("imagehub-web listening")
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-ctx.Done():
				log.Info().Msg("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := e.Shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("server shutdown failed")
					return err
				}
				log.Info().Msg("server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on (overrides PORT)")

	return cmd
}

// openBackend connects the configured session backend. The returned func
// releases it.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStore, ports.SequenceGuard, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}
		return redisstore.NewSessionStore(rdb), redisstore.NewSequenceGuard(rdb), closeFn, nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}
		return mongostore.NewSessionStore(db), mongostore.NewSequenceGuard(db), closeFn, nil

	case config.BackendMemory:
		log.Warn().Msg("in-memory sessions: logins are lost on restart")
		return memory.NewSessionStore(), memory.NewSequenceGuard(), func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
