package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/msto63/monkey/internal/repl"
	"github.com/spf13/cobra"
)

var replMode string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive line loop",
	Long: `Reads lines and prints each token of the line through EOF.
Type :ast to parse lines instead, :tokens to switch back and :quit to leave.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVarP(&replMode, "mode", "m", "", "start mode: tokens or ast (default from config)")
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, "monkey-repl", true)

	svc, cleanup, err := newService(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	replCfg := repl.ConfigFrom(cfg, logger)
	if replMode != "" {
		replCfg.Mode = replMode
	}
	return repl.New(svc, replCfg, os.Stdout).Run(ctx)
}
