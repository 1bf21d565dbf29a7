// File: parser.go
// Title: Monkey Pratt Parser
// Description: Turns a token stream into a syntax tree by precedence
//              climbing. Statement-level failures are collected so one run
//              reports every problem it meets instead of stopping at the first.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial parser implementation

package parser

import (
	"strconv"

	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/monkey/ast"
	"github.com/msto63/monkey/foundation/monkey/lexer"
	"github.com/msto63/monkey/foundation/monkey/token"
)

// Parser holds a one-token lookahead over a lexer
type Parser struct {
	l      *lexer.Lexer
	cur    token.Token
	peek   token.Token
	logger *mdwlog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger used for trace output
func WithLogger(logger *mdwlog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a parser over l and primes the current and peek tokens
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{l: l}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = mdwlog.GetDefault()
	}
	p.logger = p.logger.WithField("component", "monkey-parser")

	p.advance()
	p.advance()
	return p
}

// ParseProgram parses statements until EOF. It returns the program when
// every statement parsed, otherwise nil and an Errors value holding every
// diagnostic in source order.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Statements: []ast.Statement{}}
	var errs Errors

	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			p.logger.Trace("statement failed", mdwlog.Fields{"error": err.Error()})
			errs = append(errs, err)
		} else {
			program.Statements = append(program.Statements, stmt)
		}
		p.advance()
	}

	p.logger.Debug("program parsed", mdwlog.Fields{
		"statements": len(program.Statements),
		"errors":     len(errs),
	})

	if len(errs) > 0 {
		return nil, errs
	}
	return program, nil
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool {
	return p.cur.Type == t
}

// peekIs matches on type alone. Payload types match any payload, and every
// other type has exactly one spelling, so type equality is value equality.
func (p *Parser) peekIs(t token.Type) bool {
	return p.peek.Type == t
}

// expectPeek advances when the peek token has type t. On mismatch it
// reports ExpectToken and leaves the cursor where it was.
func (p *Parser) expectPeek(t token.Type) *Error {
	if !p.peekIs(t) {
		return &Error{Kind: ExpectToken, Expected: t, Found: p.peek, Pos: p.peek.Pos}
	}
	p.advance()
	return nil
}

func (p *Parser) parseStatement() (ast.Statement, *Error) {
	switch p.cur.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() (ast.Statement, *Error) {
	stmt := &ast.LetStatement{Token: p.cur}

	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	stmt.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Literal}

	if err := p.expectPeek(token.ASSIGN); err != nil {
		return nil, err
	}
	p.advance()

	value, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	stmt.Value = value

	p.skipToSemicolon()
	return stmt, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, *Error) {
	stmt := &ast.ReturnStatement{Token: p.cur}
	p.advance()

	value, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	stmt.Value = value

	p.skipToSemicolon()
	return stmt, nil
}

// skipToSemicolon discards tokens up to the next ';' and consumes it.
// It stops at EOF so an unterminated statement ends with the input.
func (p *Parser) skipToSemicolon() {
	for !p.peekIs(token.SEMICOLON) && !p.peekIs(token.EOF) {
		p.advance()
	}
	if p.peekIs(token.SEMICOLON) {
		p.advance()
	}
}

func (p *Parser) parseExpressionStatement() (ast.Statement, *Error) {
	stmt := &ast.ExpressionStatement{Token: p.cur}

	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	stmt.Expression = expr

	if p.peekIs(token.SEMICOLON) {
		p.advance()
	}
	return stmt, nil
}

// parseExpression parses a prefix term and folds infix operators into it
// while they bind tighter than precedence.
func (p *Parser) parseExpression(precedence Precedence) (ast.Expression, *Error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for !p.peekIs(token.SEMICOLON) && precedence < PrecedenceOf(p.peek.Type) {
		if !p.peek.Type.IsInfix() {
			return left, nil
		}
		p.advance()

		left, err = p.parseInfixExpression(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *Parser) parsePrefix() (ast.Expression, *Error) {
	switch p.cur.Type {
	case token.IDENT:
		return &ast.Identifier{Token: p.cur, Value: p.cur.Literal}, nil
	case token.INT:
		return p.parseIntegerLiteral()
	case token.BANG, token.MINUS:
		return p.parsePrefixExpression()
	default:
		return nil, &Error{Kind: ExpectExpression, Found: p.cur, Pos: p.cur.Pos}
	}
}

func (p *Parser) parseIntegerLiteral() (ast.Expression, *Error) {
	value, err := strconv.ParseInt(p.cur.Literal, 10, 32)
	if err != nil {
		return nil, &Error{Kind: UnableToParseInteger, Text: p.cur.Literal, Found: p.cur, Pos: p.cur.Pos}
	}
	return &ast.IntegerLiteral{Token: p.cur, Value: int32(value)}, nil
}

func (p *Parser) parsePrefixExpression() (ast.Expression, *Error) {
	expr := &ast.PrefixExpression{Token: p.cur}

	op, err := parseToOperator(p.cur)
	if err != nil {
		return nil, err
	}
	expr.Operator = op
	p.advance()

	right, err := p.parseExpression(Prefix)
	if err != nil {
		return nil, err
	}
	expr.Right = right
	return expr, nil
}

func (p *Parser) parseInfixExpression(left ast.Expression) (ast.Expression, *Error) {
	expr := &ast.InfixExpression{Token: p.cur, Left: left}

	op, err := parseToOperator(p.cur)
	if err != nil {
		return nil, err
	}
	expr.Operator = op

	precedence := PrecedenceOf(p.cur.Type)
	p.advance()

	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	expr.Right = right
	return expr, nil
}

// parseToOperator is the single mapping from tokens to operators
func parseToOperator(tok token.Token) (ast.Operator, *Error) {
	op, ok := ast.OperatorOf(tok.Type)
	if !ok {
		return 0, &Error{Kind: UnableToParseOperator, Text: tok.String(), Found: tok, Pos: tok.Pos}
	}
	return op, nil
}
