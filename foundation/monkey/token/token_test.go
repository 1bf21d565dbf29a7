package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  Type
	}{
		{"fn", FUNCTION},
		{"let", LET},
		{"true", TRUE},
		{"false", FALSE},
		{"if", IF},
		{"else", ELSE},
		{"return", RETURN},
		{"lets", IDENT},
		{"Let", IDENT},
		{"foo_bar", IDENT},
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.ident, got, tt.want)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Ident("five"), "five"},
		{Int("993322"), "993322"},
		{New(ASSIGN), "="},
		{New(PLUS), "+"},
		{New(NOT_EQ), "!="},
		{New(LBRACE), "{"},
		{New(RBRACE), "}"},
		{New(SEMICOLON), ";"},
		{New(FUNCTION), "fn"},
		{New(LET), "Let"},
		{New(TRUE), "True"},
		{New(FALSE), "False"},
		{New(IF), "If"},
		{New(ELSE), "Else"},
		{New(RETURN), "Return"},
		{New(EOF), "EOF"},
		{Token{Type: ILLEGAL, Literal: "@"}, "Illegal"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenDebug(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Ident("x"), `Ident("x")`},
		{Int("5"), "Int(5)"},
		{New(PLUS), "Plus"},
		{New(NOT_EQ), "Neq"},
		{New(LPAREN), "Lparen"},
		{New(LET), "Let"},
		{New(FUNCTION), "Function"},
		{New(EOF), "EOF"},
	}

	for _, tt := range tests {
		if got := tt.tok.Debug(); got != tt.want {
			t.Errorf("Debug() = %q, want %q", got, tt.want)
		}
	}
}

func TestTokenEqualIgnoresPosition(t *testing.T) {
	a := Token{Type: IDENT, Literal: "x", Pos: Position{Offset: 0, Line: 1, Column: 1}}
	b := Token{Type: IDENT, Literal: "x", Pos: Position{Offset: 9, Line: 2, Column: 4}}
	if !a.Equal(b) {
		t.Error("tokens with same type and literal should be equal")
	}
	if a.Equal(Ident("y")) {
		t.Error("identifiers with different text should differ")
	}
	if New(EQ).Equal(New(ASSIGN)) {
		t.Error("different types should differ")
	}
}

func TestOperatorSets(t *testing.T) {
	operators := map[Type]bool{
		ASSIGN: true, PLUS: true, MINUS: true, BANG: true, ASTERISK: true,
		SLASH: true, LT: true, GT: true, EQ: true, NOT_EQ: true,
	}
	infix := map[Type]bool{
		PLUS: true, MINUS: true, ASTERISK: true, SLASH: true,
		LT: true, GT: true, EQ: true, NOT_EQ: true,
	}

	for typ := ILLEGAL; typ <= RETURN; typ++ {
		if got := typ.IsOperator(); got != operators[typ] {
			t.Errorf("%s.IsOperator() = %v, want %v", typ, got, operators[typ])
		}
		if got := typ.IsInfix(); got != infix[typ] {
			t.Errorf("%s.IsInfix() = %v, want %v", typ, got, infix[typ])
		}
		if typ.String() == "UNKNOWN" {
			t.Errorf("type %d has no name", int(typ))
		}
	}
	if Type(99).String() != "UNKNOWN" {
		t.Errorf("Type(99).String() = %q", Type(99).String())
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Offset: 12, Line: 3, Column: 7}).String(); got != "3:7" {
		t.Errorf("String() = %q, want 3:7", got)
	}
}
