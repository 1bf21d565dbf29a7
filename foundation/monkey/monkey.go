// File: monkey.go
// Title: Monkey Front End Engine
// Description: High-level entry point that tokenizes and parses Monkey
//              source with input limits, timing and structured errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial engine implementation

package monkey

import (
	"errors"
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/monkey/ast"
	"github.com/msto63/monkey/foundation/monkey/lexer"
	"github.com/msto63/monkey/foundation/monkey/parser"
	"github.com/msto63/monkey/foundation/monkey/token"
)

// DefaultMaxInputLength is used when Options.MaxInputLength is zero
const DefaultMaxInputLength = 64 * 1024

// Options configures the engine
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *mdwlog.Logger

	// MaxInputLength limits source length in bytes (default: 64 KiB)
	MaxInputLength int
}

// Engine tokenizes and parses Monkey source. It holds no per-run state
// and is safe for concurrent use.
type Engine struct {
	logger  *mdwlog.Logger
	options Options
}

// Result is a successful parse
type Result struct {
	Program   *ast.Program
	Canonical string
	Duration  time.Duration
}

// New creates an engine with the given options
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	return &Engine{
		logger:  opts.Logger.WithField("component", "monkey-engine"),
		options: opts,
	}
}

// MaxInputLength returns the effective input limit
func (e *Engine) MaxInputLength() int {
	return e.options.MaxInputLength
}

// Tokenize returns every token of source through EOF
func (e *Engine) Tokenize(source string) ([]token.Token, error) {
	if err := e.checkLength(source, "monkey.Tokenize"); err != nil {
		return nil, err
	}

	timer := e.logger.StartTimer("tokenize").WithField("input_length", len(source))
	tokens := lexer.New(source).Tokenize()

	illegal := 0
	for _, tok := range tokens {
		if tok.Type == token.ILLEGAL {
			illegal++
		}
	}
	timer.WithField("tokens", len(tokens)).WithField("illegal", illegal).Stop()

	return tokens, nil
}

// Parse parses source into a program. Syntax errors are returned as a
// CodeSyntax error wrapping parser.Errors; use Diagnostics to get them back.
func (e *Engine) Parse(source string) (*Result, error) {
	if err := e.checkLength(source, "monkey.Parse"); err != nil {
		return nil, err
	}

	start := time.Now()
	p := parser.New(lexer.New(source), parser.WithLogger(e.logger))
	program, err := p.ParseProgram()
	elapsed := time.Since(start)

	if err != nil {
		diags := Diagnostics(err)
		e.logger.Warn("parse produced diagnostics", mdwlog.Fields{
			"input_length": len(source),
			"error_count":  len(diags),
			"duration_ms":  float64(elapsed.Nanoseconds()) / 1e6,
		})
		return nil, mdwerror.Wrap(err, "monkey source has syntax errors").
			WithCode(mdwerror.CodeSyntax).
			WithOperation("monkey.Parse").
			WithDetail("error_count", len(diags))
	}

	result := &Result{
		Program:   program,
		Canonical: program.String(),
		Duration:  elapsed,
	}
	e.logger.Debug("parse completed", mdwlog.Fields{
		"input_length": len(source),
		"statements":   len(program.Statements),
		"duration_ms":  float64(elapsed.Nanoseconds()) / 1e6,
	})
	return result, nil
}

// Diagnostics extracts the parser diagnostics from an error returned by
// Parse. It returns nil when err carries none.
func Diagnostics(err error) parser.Errors {
	var errs parser.Errors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}

func (e *Engine) checkLength(source, operation string) error {
	if len(source) <= e.options.MaxInputLength {
		return nil
	}
	return mdwerror.Newf("input exceeds maximum length: %d > %d", len(source), e.options.MaxInputLength).
		WithCode(mdwerror.CodeInputTooLarge).
		WithOperation(operation).
		WithDetail("input_length", len(source)).
		WithDetail("max_length", e.options.MaxInputLength)
}
