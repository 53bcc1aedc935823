package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"notodo/internal/api"
	"notodo/internal/assistant"
	"notodo/internal/auth"
	"notodo/internal/config"
	"notodo/internal/logger"
	"notodo/internal/mcp"
	"notodo/internal/service"
)

type loader func(w io.Writer) (*config.Config, error)

const shutdownTimeout = 10 * time.Second

func newServeCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

// newApp assembles the HTTP handler and returns it with a cleanup func.
func newApp(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	log := logger.Component("server")

	s, err := openStore(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Info("store opened", "driver", cfg.Database.Driver)

	if cfg.Auth.Secret == "" {
		log.Warn("auth.secret not set, using the development secret")
	}
	issuer := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var analyzer service.Analyzer
	if cfg.Assistant.APIKey != "" {
		g, err := assistant.NewGemini(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model, logger.Component("assistant"))
		if err != nil {
			s.Close()
			return nil, nil, err
		}
		analyzer = g
	} else {
		log.Info("notes assistant disabled, assistant.api_key not set")
	}

	svc := service.New(s, service.Options{
		Issuer:    issuer,
		Logger:    slog.Default(),
		Assistant: analyzer,
	})

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.NewHandlers(svc, s, logger.Component("api")), api.RouterConfig{
		BasePath:    cfg.Server.BasePath,
		CORSOrigins: cfg.Server.CORSOrigins,
		Tokens:      issuer,
		MCP:         mcp.NewMCPServer(svc, Version).Handler(),
		Logger:      logger.Component("http"),
	})

	return router, func() { s.Close() }, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Component("server")

	handler, cleanup, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "addr", srv.Addr, "base_path", cfg.Server.BasePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
