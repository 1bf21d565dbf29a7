package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/internal/server"
	"github.com/msto63/monkey/internal/service"
	"github.com/msto63/monkey/pkg/core/config"
	coregrpc "github.com/msto63/monkey/pkg/core/grpc"
	"github.com/spf13/cobra"
)

var (
	parseTree   bool
	parseRemote string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a source file and print its canonical form",
	Long: `Parses the source and prints the canonical rendering of the program,
or the syntax tree with --tree. Diagnostics are printed to stderr and the
command fails when there are any.

With --remote the source is sent to a running "monkey serve" instance.

Examples:
  monkey parse program.mk
  echo "let x = 1 + 2;" | monkey parse --tree
  monkey parse --remote localhost:9300 program.mk`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVarP(&parseTree, "tree", "t", false, "print the syntax tree instead of the canonical form")
	parseCmd.Flags().StringVar(&parseRemote, "remote", "", "gRPC address of a running server")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := readSource(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var result *service.ParseResult
	if parseRemote != "" {
		result, err = parseRemotely(cfg, source)
	} else {
		result, err = parseLocally(cfg, source)
	}
	if err != nil {
		return err
	}
	return printParseResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, parseTree)
}

func parseLocally(cfg *config.Config, source string) (*service.ParseResult, error) {
	svc, cleanup, err := newService(cfg, newLogger(cfg, "monkey-parse", true))
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return svc.Parse(context.Background(), source)
}

func parseRemotely(cfg *config.Config, source string) (*service.ParseResult, error) {
	clientCfg := coregrpc.DefaultClientConfig(parseRemote)
	clientCfg.Timeout = cfg.GRPC.Timeout.Duration
	clientCfg.Logger = newLogger(cfg, "monkey-client", true)

	client, conn, err := server.Dial(clientCfg)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to connect").
			WithCode(mdwerror.CodeNetworkError).
			WithDetail("address", parseRemote)
	}
	defer conn.Close()
	return client.Parse(context.Background(), source)
}

func printParseResult(out, errOut io.Writer, result *service.ParseResult, tree bool) error {
	if !result.OK {
		for _, msg := range result.Messages() {
			fmt.Fprintln(errOut, msg)
		}
		return mdwerror.Newf("%d syntax errors", len(result.Diagnostics)).WithCode(mdwerror.CodeSyntax)
	}

	if tree {
		fmt.Fprint(out, result.Tree)
		if !strings.HasSuffix(result.Tree, "\n") {
			fmt.Fprintln(out)
		}
		return nil
	}
	fmt.Fprintln(out, result.Canonical)
	return nil
}
