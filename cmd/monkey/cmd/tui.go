package cmd

import (
	"context"

	"github.com/msto63/monkey/internal/tui/explorer"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Start the live source explorer",
	Long: `Opens an editor that shows the token stream, canonical form and
diagnostics of the source while you type. An optional file seeds the editor.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	initial := ""
	if len(args) == 1 {
		if initial, err = readSource(args, cmd.InOrStdin()); err != nil {
			return err
		}
	}

	// The explorer analyzes on every edit; keep those out of the history.
	cfg.History.Enabled = false
	svc, cleanup, err := newService(cfg, newLogger(cfg, "monkey-tui", true))
	if err != nil {
		return err
	}
	defer cleanup()

	return explorer.Run(context.Background(), svc, initial)
}
