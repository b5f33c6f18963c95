// Package main is the entry point for the consumer-router binary.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/consumer-router/config"
	"github.com/angeloszaimis/consumer-router/internal/handler"
	"github.com/angeloszaimis/consumer-router/internal/httpserver"
	"github.com/angeloszaimis/consumer-router/internal/metrics"
	"github.com/angeloszaimis/consumer-router/internal/pipeline"
	"github.com/angeloszaimis/consumer-router/internal/routing"
	"github.com/angeloszaimis/consumer-router/pkg/logger"
)

const noDecision = "no decision"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "consumer-router",
		Short: "Host and path based service routing for the consumer web sites",
		Long: `consumer-router decides which consumer service should receive a request
from its host name and path, and exposes that decision over HTTP.

Example:
  consumer-router serve --config ./config/config.yaml
  consumer-router resolve --host local-dev-consumer-web.com --path /consumer-web/api`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (YAML)")

	rootCmd.AddCommand(newServeCmd(), newResolveCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the routing decision server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return serve(ctx, cfg)
		},
	}
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the service id for a host and path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			host, err := cmd.Flags().GetString("host")
			if err != nil {
				return fmt.Errorf("failed to get host flag: %w", err)
			}

			path, err := cmd.Flags().GetString("path")
			if err != nil {
				return fmt.Errorf("failed to get path flag: %w", err)
			}

			log := logger.New(logger.Options{
				Level:       cfg.Logging.Level,
				Environment: cfg.Server.Environment,
				Output:      cmd.ErrOrStderr(),
			})

			return resolve(cmd.OutOrStdout(), routing.NewRouter(cfg.Routing(), log), host, path)
		},
	}

	cmd.Flags().String("host", "", "Request host name")
	cmd.Flags().String("path", "/", "Request path")

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

func resolve(out io.Writer, router *routing.Router, host, path string) error {
	serviceID, ok := router.Resolve(host, path)
	if !ok {
		serviceID = noDecision
	}

	_, err := fmt.Fprintln(out, serviceID)
	return err
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.New(logger.Options{
		Level:       cfg.Logging.Level,
		AddSource:   cfg.Logging.AddSource,
		Environment: cfg.Server.Environment,
	})

	collector := metrics.NewCollector(cfg.Metrics.BufferSize, log)
	collector.Start(ctx)

	router := routing.NewRouter(cfg.Routing(), log)
	chain := pipeline.NewChain(log, router)
	routingHandler := handler.NewRoutingHandler(log, chain, collector)

	srv, err := httpserver.New(httpserver.Options{
		Addr:            cfg.Server.Address,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, setupRouter(routingHandler, collector))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		return err
	}

	log.Info("Routing service starting",
		slog.String("addr", srv.Addr()),
		slog.String("consumer_domain", cfg.Domains.ConsumerDomain),
		slog.String("consumer_admin_domain", cfg.Domains.ConsumerAdminDomain))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
			return err
		}
		return nil
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting routing service", slog.Any("err", err))
		}
		return err
	}
}
