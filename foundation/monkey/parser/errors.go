// File: errors.go
// Title: Parser Diagnostics
// Description: Error kinds produced by the parser and the aggregate that
//              carries every diagnostic of a parse run.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial error taxonomy

package parser

import (
	"fmt"
	"strings"

	"github.com/msto63/monkey/foundation/monkey/token"
)

// Kind classifies a parse error
type Kind int

const (
	// ExpectToken means the peek token did not match what the grammar requires
	ExpectToken Kind = iota
	// ExpectExpression means no expression can start with the current token
	ExpectExpression
	// UnableToParseInteger means the digit text does not fit a signed 32-bit integer
	UnableToParseInteger
	// UnableToParseOperator means a non-operator token reached operator mapping
	UnableToParseOperator
)

func (k Kind) String() string {
	switch k {
	case ExpectToken:
		return "ExpectToken"
	case ExpectExpression:
		return "ExpectExpression"
	case UnableToParseInteger:
		return "UnableToParseInteger"
	case UnableToParseOperator:
		return "UnableToParseOperator"
	default:
		return "Unknown"
	}
}

// Error is a single parse diagnostic. Expected is set for ExpectToken,
// Found for ExpectToken and ExpectExpression, Text for the two UnableTo kinds.
type Error struct {
	Kind     Kind
	Expected token.Type
	Found    token.Token
	Text     string
	Pos      token.Position
}

// Message renders the diagnostic without its position
func (e *Error) Message() string {
	switch e.Kind {
	case ExpectToken:
		return fmt.Sprintf("expect token %s, but received %s", describe(e.Expected), e.Found)
	case ExpectExpression:
		return fmt.Sprintf("expect expression, but received %s", e.Found)
	case UnableToParseInteger:
		return fmt.Sprintf("unable to parse integer %s", e.Text)
	case UnableToParseOperator:
		return fmt.Sprintf("unable to parse operator %s", e.Text)
	default:
		return "unknown parse error"
	}
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message()
}

// describe names an expected token type. Payload types have no single
// spelling, so they are named by category.
func describe(t token.Type) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.INT:
		return "integer"
	default:
		return token.New(t).String()
	}
}

// Errors is every diagnostic of one parse run, in the order found
type Errors []*Error

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As
func (es Errors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Count returns the number of diagnostics of kind k
func (es Errors) Count(k Kind) int {
	n := 0
	for _, e := range es {
		if e.Kind == k {
			n++
		}
	}
	return n
}
