package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/msto63/monkey/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the front end over gRPC and WebSocket",
	Long: `Starts the monkey.v1.Frontend gRPC service and, when enabled, the
WebSocket endpoint with its /health route.

Defaults:
  gRPC       0.0.0.0:9300
  WebSocket  ws://0.0.0.0:9301/ws
  Health     http://0.0.0.0:9301/health`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, "monkey-serve", false)

	svc, cleanup, err := newService(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(svc, server.ConfigFrom(cfg, logger))
	if err := srv.Start(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "gRPC:      %s\n", cfg.GRPCAddress())
	if cfg.WebSocket.Enabled {
		fmt.Fprintf(out, "WebSocket: ws://%s%s\n", cfg.WebSocketAddress(), cfg.WebSocket.Path)
		fmt.Fprintf(out, "Health:    http://%s/health\n", cfg.WebSocketAddress())
	}
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
