package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/internal/store"
	"github.com/spf13/cobra"
)

var (
	historyLimit     int
	historyFailed    bool
	historyOperation string
	historyPrune     time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recorded tokenize and parse requests",
	Long: `Lists recorded requests, newest first. With an ID the full record is
printed, including source and diagnostics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records")
	historyCmd.Flags().BoolVar(&historyFailed, "failed", false, "only requests with diagnostics")
	historyCmd.Flags().StringVar(&historyOperation, "operation", "", "only tokenize or parse requests")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "delete records older than this duration")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return mdwerror.New("history is disabled in the configuration").WithCode(mdwerror.CodeConfigError)
	}

	svc, cleanup, err := newService(cfg, newLogger(cfg, "monkey-history", true))
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if historyPrune > 0 {
		removed, err := svc.Prune(ctx, historyPrune)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pruned %d records\n", removed)
		return nil
	}

	if len(args) == 1 {
		rec, err := svc.Record(ctx, args[0])
		if err != nil {
			return err
		}
		printRecord(cmd, rec)
		return nil
	}

	records, err := svc.History(ctx, store.Filter{
		Operation:  store.Operation(historyOperation),
		OnlyFailed: historyFailed,
		Limit:      historyLimit,
	})
	if err != nil {
		return err
	}
	stats, err := svc.Statistics(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOPERATION\tERRORS\tCREATED\tSOURCE")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			rec.ID, rec.Operation, rec.ErrorCount,
			rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			preview(rec.Source, 40))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d records, %d failed\n", stats.Total, stats.Failed)
	return nil
}

func printRecord(cmd *cobra.Command, rec *store.Record) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:         %s\n", rec.ID)
	fmt.Fprintf(out, "Operation:  %s\n", rec.Operation)
	fmt.Fprintf(out, "Created:    %s\n", rec.CreatedAt.Local().Format(time.RFC3339))
	if rec.RequestID != "" {
		fmt.Fprintf(out, "Request ID: %s\n", rec.RequestID)
	}
	if rec.Operation == store.OperationTokenize {
		fmt.Fprintf(out, "Tokens:     %d\n", rec.TokenCount)
	}
	fmt.Fprintf(out, "\n%s\n", rec.Source)
	if rec.Canonical != "" {
		fmt.Fprintf(out, "\nCanonical:\n  %s\n", rec.Canonical)
	}
	if len(rec.Diagnostics) > 0 {
		fmt.Fprintln(out, "\nDiagnostics:")
		for _, d := range rec.Diagnostics {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}
}

// preview returns the first line of s, cut to max runes
func preview(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return s
}
