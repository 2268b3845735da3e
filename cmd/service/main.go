// Package main is the entry point for the posts gateway.
//
// @title Posts Gateway API
// @version 1.0
// @description Re-exposes an upstream posts and comments API with RFC 7807 problem responses.
// @BasePath /
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/posts-gateway/docs"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/clients/acl"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/middleware"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/problem"
	"github.com/jsamuelsen/posts-gateway/internal/app"
	"github.com/jsamuelsen/posts-gateway/internal/platform/config"
	"github.com/jsamuelsen/posts-gateway/internal/platform/logging"
	"github.com/jsamuelsen/posts-gateway/internal/platform/telemetry"
	"github.com/jsamuelsen/posts-gateway/internal/ports"
)

// Set through ldflags, e.g.
// -X main.Version=1.2.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg)
	logging.SetDefault(logger)

	logger.Info("starting posts gateway",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("profile", profile),
		slog.String("posts_url", cfg.Services.Posts.BaseURL),
		slog.String("comments_url", cfg.Services.Comments.BaseURL))

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		if err := telProvider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error("telemetry shutdown failed", slog.Any("error", err))
		}
	}()

	server, err := newGateway(cfg, logger)
	if err != nil {
		return err
	}

	return serve(ctx, logger, server, cfg.Server.ShutdownTimeout)
}

func newLogger(cfg *config.Config) *slog.Logger {
	file := cfg.Log.File

	return logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    file.Enabled,
			Path:       file.Path,
			MaxSizeMB:  file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAgeDays: file.MaxAgeDays,
			Compress:   file.Compress,
		},
	})
}

// newGateway wires the upstream clients, the ACL, the post service and the
// router onto a server that is ready to start.
func newGateway(cfg *config.Config, logger *slog.Logger) (*http.Server, error) {
	postsHTTP, err := newUpstreamClient(cfg, cfg.Services.Posts, logger)
	if err != nil {
		return nil, fmt.Errorf("creating posts client: %w", err)
	}

	commentsHTTP, err := newUpstreamClient(cfg, cfg.Services.Comments, logger)
	if err != nil {
		return nil, fmt.Errorf("creating comments client: %w", err)
	}

	postsClient := acl.NewPostsClient(acl.PostsClientConfig{
		Posts:    postsHTTP,
		Comments: commentsHTTP,
		Logger:   logger,
	})

	readiness := ports.NewHealthRegistry(ports.WithCheckTimeout(cfg.Client.Timeout))
	if err := readiness.Register(postsClient); err != nil {
		return nil, fmt.Errorf("registering posts readiness check: %w", err)
	}

	postService := app.NewPostService(app.PostServiceConfig{PostsClient: postsClient, Logger: logger})

	docs.SwaggerInfo.Version = Version

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		Translator:    problem.NewTranslator(problem.Config{Logger: logger, Registerer: prometheus.DefaultRegisterer}),
		HealthHandler: handlers.NewHealthHandler(readiness, handlers.NewBuildInfo(Version, Commit, BuildTime)),
		PostHandler:   handlers.NewPostHandler(postService),
	})

	return server, nil
}

// newUpstreamClient builds the client for one upstream endpoint. Inbound
// request and correlation ids are forwarded on every call.
func newUpstreamClient(cfg *config.Config, endpoint config.ServiceEndpointConfig, logger *slog.Logger) (*clients.Client, error) {
	return clients.New(&clients.Config{
		BaseURL:     endpoint.BaseURL,
		ServiceName: endpoint.Name,
		Timeout:     cfg.Client.Timeout,
		Transport:   cfg.Client.Transport,
		HeaderFunc:  middleware.PropagateIDs,
		Logger:      logger,
	})
}

// serve runs server until ctx is cancelled by a signal or the server fails,
// then drains in-flight requests within shutdownTimeout.
func serve(ctx context.Context, logger *slog.Logger, server *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err, failed := <-server.Start(); failed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("shutting down", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}
