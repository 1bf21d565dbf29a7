// Package repl implements the interactive line loop. In tokens mode every
// line is tokenized and each token is printed in its debug form through
// EOF; in ast mode the line is parsed and rendered canonically.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/msto63/monkey/internal/service"
	"github.com/msto63/monkey/pkg/core/config"
	"github.com/msto63/monkey/pkg/core/logging"
)

const helpText = `Commands:
  :tokens  print the token stream of each line (default)
  :ast     parse each line and print its canonical form
  :tree    parse each line and print the syntax tree
  :help    show this help
  :quit    leave the REPL`

// Config holds REPL settings
type Config struct {
	Prompt      string
	HistoryFile string
	Mode        string
	Logger      *logging.Logger
}

// ConfigFrom derives the REPL settings from the application config
func ConfigFrom(cfg *config.Config, logger *logging.Logger) Config {
	return Config{
		Prompt:      cfg.REPL.Prompt,
		HistoryFile: cfg.REPL.HistoryFile,
		Mode:        cfg.REPL.Mode,
		Logger:      logger,
	}
}

// REPL evaluates lines against the front-end service
type REPL struct {
	service *service.Service
	config  Config
	mode    string
	out     io.Writer
	logger  *logging.Logger
}

// New creates a REPL writing to out
func New(svc *service.Service, cfg Config, out io.Writer) *REPL {
	if cfg.Prompt == "" {
		cfg.Prompt = ">> "
	}
	mode := cfg.Mode
	if mode != config.ModeAST && mode != "tree" {
		mode = config.ModeTokens
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("monkey-repl")
	}
	return &REPL{
		service: svc,
		config:  cfg,
		mode:    mode,
		out:     out,
		logger:  logger,
	}
}

// Mode returns the current evaluation mode
func (r *REPL) Mode() string {
	return r.mode
}

// Eval handles one input line. It reports false once the user asked to quit.
func (r *REPL) Eval(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ":") {
		return r.command(trimmed)
	}
	if trimmed == "" {
		return true
	}

	switch r.mode {
	case config.ModeTokens:
		r.printTokens(ctx, line)
	default:
		r.printProgram(ctx, line)
	}
	return true
}

func (r *REPL) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return false
	case ":tokens":
		r.mode = config.ModeTokens
		fmt.Fprintln(r.out, "mode: tokens")
	case ":ast":
		r.mode = config.ModeAST
		fmt.Fprintln(r.out, "mode: ast")
	case ":tree":
		r.mode = "tree"
		fmt.Fprintln(r.out, "mode: tree")
	case ":help":
		fmt.Fprintln(r.out, helpText)
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return true
}

func (r *REPL) printTokens(ctx context.Context, line string) {
	result, err := r.service.Tokenize(ctx, line)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	for _, tok := range result.Tokens {
		fmt.Fprintln(r.out, tok.Debug)
	}
}

func (r *REPL) printProgram(ctx context.Context, line string) {
	result, err := r.service.Parse(ctx, line)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	if !result.OK {
		for _, msg := range result.Messages() {
			fmt.Fprintf(r.out, "  %s\n", msg)
		}
		return
	}
	if r.mode == "tree" {
		fmt.Fprint(r.out, result.Tree)
		if !strings.HasSuffix(result.Tree, "\n") {
			fmt.Fprintln(r.out)
		}
		return
	}
	fmt.Fprintln(r.out, result.Canonical)
}

// Run reads lines from the terminal until EOF, Ctrl-C or :quit. Line
// history is loaded from and saved to the configured history file.
func (r *REPL) Run(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completeCommand)

	r.loadHistory(ln)
	defer r.saveHistory(ln)

	fmt.Fprintln(r.out, "Monkey front end. Type :help for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := ln.Prompt(r.config.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !r.Eval(ctx, line) {
			return nil
		}
	}
}

func (r *REPL) loadHistory(ln *liner.State) {
	if r.config.HistoryFile == "" {
		return
	}
	f, err := os.Open(r.config.HistoryFile)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := ln.ReadHistory(f); err != nil {
		r.logger.Debug("failed to read REPL history", "path", r.config.HistoryFile, "error", err)
	}
}

func (r *REPL) saveHistory(ln *liner.State) {
	if r.config.HistoryFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.config.HistoryFile), 0755); err != nil {
		r.logger.Warn("failed to create history directory", "error", err)
		return
	}
	f, err := os.Create(r.config.HistoryFile)
	if err != nil {
		r.logger.Warn("failed to save REPL history", "path", r.config.HistoryFile, "error", err)
		return
	}
	defer f.Close()
	_, _ = ln.WriteHistory(f)
}

var commands = []string{":ast", ":help", ":quit", ":tokens", ":tree"}

func completeCommand(line string) []string {
	if !strings.HasPrefix(line, ":") {
		return nil
	}
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}
