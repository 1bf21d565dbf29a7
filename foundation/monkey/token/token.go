// File: token.go
// Title: Monkey Token Model
// Description: Defines the lexical token types of the Monkey language, the
//              keyword table and the display forms used by diagnostics and
//              the interactive tools.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial token model

package token

import (
	"fmt"
	"strconv"
)

// Type identifies the kind of a lexical token
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF

	// Identifiers and literals
	IDENT // add, foobar, x, y
	INT   // 1343456

	// Operators
	ASSIGN   // =
	PLUS     // +
	MINUS    // -
	BANG     // !
	ASTERISK // *
	SLASH    // /
	LT       // <
	GT       // >
	EQ       // ==
	NOT_EQ   // !=

	// Delimiters
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }

	// Keywords
	FUNCTION // fn
	LET      // let
	TRUE     // true
	FALSE    // false
	IF       // if
	ELSE     // else
	RETURN   // return
)

type typeInfo struct {
	name   string // upper-case type name
	debug  string // structural name
	symbol string // fixed spelling, empty for payload and special tokens
}

var types = [...]typeInfo{
	ILLEGAL:   {"ILLEGAL", "Illegal", ""},
	EOF:       {"EOF", "EOF", ""},
	IDENT:     {"IDENT", "Ident", ""},
	INT:       {"INT", "Int", ""},
	ASSIGN:    {"ASSIGN", "Assign", "="},
	PLUS:      {"PLUS", "Plus", "+"},
	MINUS:     {"MINUS", "Minus", "-"},
	BANG:      {"BANG", "Bang", "!"},
	ASTERISK:  {"ASTERISK", "Asterisk", "*"},
	SLASH:     {"SLASH", "Slash", "/"},
	LT:        {"LT", "Lt", "<"},
	GT:        {"GT", "Gt", ">"},
	EQ:        {"EQ", "Eq", "=="},
	NOT_EQ:    {"NOT_EQ", "Neq", "!="},
	COMMA:     {"COMMA", "Comma", ","},
	SEMICOLON: {"SEMICOLON", "Semicolon", ";"},
	LPAREN:    {"LPAREN", "Lparen", "("},
	RPAREN:    {"RPAREN", "Rparen", ")"},
	LBRACE:    {"LBRACE", "Lbrace", "{"},
	RBRACE:    {"RBRACE", "Rbrace", "}"},
	FUNCTION:  {"FUNCTION", "Function", "fn"},
	LET:       {"LET", "Let", "let"},
	TRUE:      {"TRUE", "True", "true"},
	FALSE:     {"FALSE", "False", "false"},
	IF:        {"IF", "If", "if"},
	ELSE:      {"ELSE", "Else", "else"},
	RETURN:    {"RETURN", "Return", "return"},
}

var keywords = map[string]Type{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// LookupIdent returns the keyword type for ident, or IDENT if it is not a keyword
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

func (t Type) info() typeInfo {
	if t < 0 || int(t) >= len(types) {
		return typeInfo{name: "UNKNOWN", debug: "Unknown"}
	}
	return types[t]
}

// String returns the upper-case name of the token type
func (t Type) String() string {
	return t.info().name
}

// Symbol returns the fixed spelling of the type, or "" for payload and special types
func (t Type) Symbol() string {
	return t.info().symbol
}

// IsKeyword reports whether t is a reserved word
func (t Type) IsKeyword() bool {
	return t >= FUNCTION && t <= RETURN
}

// IsOperator reports whether t belongs to the operator set = + - ! * / < > == !=
func (t Type) IsOperator() bool {
	return t >= ASSIGN && t <= NOT_EQ
}

// IsInfix reports whether t is one of the eight binary operators
func (t Type) IsInfix() bool {
	switch t {
	case PLUS, MINUS, ASTERISK, SLASH, LT, GT, EQ, NOT_EQ:
		return true
	}
	return false
}

// HasPayload reports whether tokens of this type carry source text that
// distinguishes them from other tokens of the same type
func (t Type) HasPayload() bool {
	return t == IDENT || t == INT || t == ILLEGAL
}

// Position locates a token in the source text
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based
}

// String renders the position as line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

// New builds a token whose literal is the fixed spelling of t
func New(t Type) Token {
	return Token{Type: t, Literal: t.Symbol()}
}

// Ident builds an identifier token
func Ident(name string) Token {
	return Token{Type: IDENT, Literal: name}
}

// Int builds an integer token from its digit text
func Int(digits string) Token {
	return Token{Type: INT, Literal: digits}
}

// Equal reports structural equality; source positions are ignored
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Literal == other.Literal
}

// Is reports whether the token has type typ
func (t Token) Is(typ Type) bool {
	return t.Type == typ
}

// String returns the canonical display of the token: identifier text,
// integer digits, operator or delimiter symbols, "fn" for FUNCTION.
// Keywords and special tokens fall back to their structural name.
func (t Token) String() string {
	switch {
	case t.Type == IDENT || t.Type == INT:
		return t.Literal
	case t.Type == FUNCTION:
		return "fn"
	case t.Type.IsKeyword() || t.Type == EOF || t.Type == ILLEGAL:
		return t.Type.info().debug
	default:
		return t.Type.Symbol()
	}
}

// Debug returns the structural form, e.g. Ident("x"), Int(5) or Plus
func (t Token) Debug() string {
	switch t.Type {
	case IDENT:
		return "Ident(" + strconv.Quote(t.Literal) + ")"
	case INT:
		return "Int(" + t.Literal + ")"
	default:
		return t.Type.info().debug
	}
}
