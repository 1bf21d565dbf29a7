package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tokensPositions bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Print the token stream of a source file",
	Long: `Tokenizes the source and prints one token per line, through EOF.
Reads stdin when no file or "-" is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVarP(&tokensPositions, "positions", "p", false, "prefix each token with line:column")
}

func runTokens(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := readSource(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(cfg, newLogger(cfg, "monkey-tokens", true))
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := svc.Tokenize(context.Background(), source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tok := range result.Tokens {
		if tokensPositions {
			fmt.Fprintf(out, "%d:%d\t%s\n", tok.Line, tok.Column, tok.Debug)
			continue
		}
		fmt.Fprintln(out, tok.Debug)
	}
	return nil
}
