package cmd

import (
	"fmt"
	"io"
	"os"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/internal/service"
	"github.com/msto63/monkey/internal/store"
	"github.com/msto63/monkey/pkg/core/config"
	"github.com/msto63/monkey/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "monkey",
	Short: "Monkey tokenizer and Pratt parser",
	Long: `monkey tokenizes and parses Monkey source code.

Surfaces:
  tokens   - print the token stream of a file
  parse    - parse a file and print its canonical form
  repl     - interactive line loop
  tui      - live source explorer
  serve    - gRPC and WebSocket front end
  history  - list recorded requests`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MONKEY_CONFIG or ./configs/monkey.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// loadConfig loads --config when given, otherwise searches the default paths
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

// newLogger creates the command logger. One-shot commands only report
// errors unless --verbose is set.
func newLogger(cfg *config.Config, name string, oneShot bool) *logging.Logger {
	level := cfg.General.LogLevel
	switch {
	case verbose:
		level = "debug"
	case oneShot:
		level = "error"
	}
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: name,
		Level:       level,
		Format:      cfg.General.LogFormat,
		Output:      os.Stderr,
	}), name)
}

// newService creates the front-end service. The returned cleanup releases
// the service caches and the history store.
func newService(cfg *config.Config, logger *logging.Logger) (*service.Service, func(), error) {
	svcCfg := service.Config{
		MaxInputLength: cfg.Frontend.MaxInputLength,
		CacheSize:      cfg.Frontend.CacheSize,
		CacheTTL:       cfg.Frontend.CacheTTL.Duration,
		Logger:         logger,
	}
	closeStore := func() {}

	if cfg.History.Enabled {
		history, err := store.NewSQLiteHistoryStore(store.SQLiteConfig{Path: cfg.History.Path})
		if err != nil {
			return nil, nil, err
		}
		svcCfg.Store = history
		closeStore = func() {
			if err := history.Close(); err != nil {
				logger.Warn("failed to close history store", "error", err)
			}
		}
	}

	svc, err := service.NewService(svcCfg)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return svc, func() {
		svc.Close()
		closeStore()
	}, nil
}

// readSource reads the file named by args[0], or stdin for "-" or no argument
func readSource(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", mdwerror.Wrap(err, "failed to read stdin").WithCode(mdwerror.CodeInvalidInput)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		code := mdwerror.CodeInvalidInput
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return "", mdwerror.Wrap(err, "failed to read source").
			WithCode(code).
			WithDetail("path", args[0])
	}
	return string(data), nil
}
