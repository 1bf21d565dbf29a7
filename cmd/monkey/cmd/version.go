package cmd

import (
	"fmt"

	"github.com/msto63/monkey/pkg/core/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.Info())
		for _, component := range []string{"frontend", "repl", "explorer", "grpc", "websocket", "history"} {
			fmt.Fprintf(out, "  %-10s %s\n", component, version.ServiceVersion(component))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
