// File: lexer.go
// Title: Monkey Lexical Analyzer
// Description: Converts Monkey source text into a stream of tokens with
//              position information. The lexer never fails: bytes it does
//              not understand become ILLEGAL tokens.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial lexer implementation

package lexer

import (
	"github.com/msto63/monkey/foundation/monkey/token"
)

// Lexer performs lexical analysis of Monkey source.
// After every readChar, readPos == position+1.
type Lexer struct {
	input    string
	position int  // points to ch
	readPos  int  // next byte to read
	ch       byte // 0 at end of input
	line     int
	column   int
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// NextToken returns the next token from the input. Once the input is
// exhausted it returns EOF on every call.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := token.Position{Offset: l.position, Line: l.line, Column: l.column}

	var tok token.Token
	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.New(token.EQ)
		} else {
			tok = token.New(token.ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.New(token.NOT_EQ)
		} else {
			tok = token.New(token.BANG)
		}
	case '+':
		tok = token.New(token.PLUS)
	case '-':
		tok = token.New(token.MINUS)
	case '*':
		tok = token.New(token.ASTERISK)
	case '/':
		tok = token.New(token.SLASH)
	case '<':
		tok = token.New(token.LT)
	case '>':
		tok = token.New(token.GT)
	case ',':
		tok = token.New(token.COMMA)
	case ';':
		tok = token.New(token.SEMICOLON)
	case '(':
		tok = token.New(token.LPAREN)
	case ')':
		tok = token.New(token.RPAREN)
	case '{':
		tok = token.New(token.LBRACE)
	case '}':
		tok = token.New(token.RBRACE)
	case 0:
		// EOF does not advance so repeated calls keep returning it
		tok = token.New(token.EOF)
		tok.Pos = pos
		return tok
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(literal), Literal: literal, Pos: pos}
		}
		if isDigit(l.ch) {
			return token.Token{Type: token.INT, Literal: l.readNumber(), Pos: pos}
		}
		tok = token.Token{Type: token.ILLEGAL, Literal: string([]byte{l.ch})}
	}

	tok.Pos = pos
	l.readChar()
	return tok
}

// Tokenize drains the lexer and returns every token up to and including EOF
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}

	// the byte just consumed decides where the new one sits
	if l.position < len(l.input) && l.readPos > 0 && l.input[l.position] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.position = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// isLetter accepts ASCII letters and underscore only
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
