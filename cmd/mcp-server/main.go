// cmd/mcp-server/main.go: standalone HTTP MCP server for gotangency
//
// Exposes the tangency tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server --config tangency.yaml --addr :8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Typed endpoints:    POST /v1/{polynomial,circle,ellipse}/tangent
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/njchilds90/gotangency/internal/config"
	"github.com/njchilds90/gotangency/internal/server"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mcp-server:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:           "mcp-server",
		Short:         "Serve the tangency tools over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cfg.Log.NewLogger(os.Stderr)
			if cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("gotangency MCP server starting",
				"addr", cfg.Server.Addr,
				"metrics", cfg.Metrics.Enabled,
				"metrics_path", cfg.Metrics.Path)
			if err := server.New(cfg, logger).Run(ctx); err != nil {
				logger.Error("Server stopped", "error", err)
				return err
			}
			logger.Info("Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error, overrides log.level")
	return cmd
}
