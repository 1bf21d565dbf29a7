package ast

import (
	"strconv"
	"strings"
	"testing"

	"github.com/msto63/monkey/foundation/monkey/token"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.Ident(name), Value: name}
}

func integer(v int32) *IntegerLiteral {
	return &IntegerLiteral{Token: token.Int(strconv.Itoa(int(v))), Value: v}
}

func prefix(op token.Type, right Expression) *PrefixExpression {
	return &PrefixExpression{Token: token.New(op), Operator: Operator(op), Right: right}
}

func infix(left Expression, op token.Type, right Expression) *InfixExpression {
	return &InfixExpression{Token: token.New(op), Operator: Operator(op), Left: left, Right: right}
}

func TestNodeString(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "let statement",
			node: &LetStatement{Token: token.New(token.LET), Name: ident("myVar"), Value: ident("anotherVar")},
			want: "let myVar = anotherVar;",
		},
		{
			name: "return statement",
			node: &ReturnStatement{Token: token.New(token.RETURN), Value: integer(993322)},
			want: "return 993322;",
		},
		{
			name: "expression statement has no semicolon",
			node: &ExpressionStatement{Expression: ident("x")},
			want: "x",
		},
		{
			name: "prefix",
			node: prefix(token.MINUS, ident("a")),
			want: "(-a)",
		},
		{
			name: "nested prefix",
			node: prefix(token.BANG, prefix(token.MINUS, ident("a"))),
			want: "(!(-a))",
		},
		{
			name: "infix",
			node: infix(ident("a"), token.PLUS, infix(ident("b"), token.ASTERISK, ident("c"))),
			want: "(a + (b * c))",
		},
		{
			name: "negative literal value",
			node: integer(-7),
			want: "-7",
		},
		{
			name: "program concatenates statements",
			node: &Program{Statements: []Statement{
				&ExpressionStatement{Expression: infix(integer(3), token.PLUS, integer(4))},
				&ExpressionStatement{Expression: infix(prefix(token.MINUS, integer(5)), token.ASTERISK, integer(5))},
			}},
			want: "(3 + 4)((-5) * 5)",
		},
		{
			name: "empty program",
			node: &Program{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.node.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if again := tt.node.String(); again != got {
				t.Errorf("second String() = %q, want %q", again, got)
			}
		})
	}
}

func TestOperatorOf(t *testing.T) {
	for _, typ := range []token.Type{token.ASSIGN, token.PLUS, token.BANG, token.NOT_EQ} {
		op, ok := OperatorOf(typ)
		if !ok {
			t.Errorf("OperatorOf(%s) not ok", typ)
			continue
		}
		if op.TokenType() != typ || op.String() != typ.Symbol() {
			t.Errorf("OperatorOf(%s) = %v (%q)", typ, op.TokenType(), op.String())
		}
	}
	for _, typ := range []token.Type{token.IDENT, token.SEMICOLON, token.LET, token.EOF} {
		if _, ok := OperatorOf(typ); ok {
			t.Errorf("OperatorOf(%s) should fail", typ)
		}
	}
}

func TestNodeValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr string
	}{
		{"valid infix", infix(ident("a"), token.EQ, ident("b")), ""},
		{"valid prefix", prefix(token.BANG, ident("a")), ""},
		{
			name:    "operator does not match token",
			node:    &InfixExpression{Token: token.New(token.PLUS), Operator: OpMinus, Left: ident("a"), Right: ident("b")},
			wantErr: "does not match",
		},
		{
			name:    "non operator",
			node:    &InfixExpression{Token: token.New(token.COMMA), Operator: Operator(token.COMMA), Left: ident("a"), Right: ident("b")},
			wantErr: "invalid operator",
		},
		{
			name:    "assign is not infix",
			node:    infix(ident("a"), token.ASSIGN, ident("b")),
			wantErr: "not an infix operator",
		},
		{
			name:    "plus is not prefix",
			node:    prefix(token.PLUS, ident("a")),
			wantErr: "not a prefix operator",
		},
		{
			name:    "let without value",
			node:    &LetStatement{Token: token.New(token.LET), Name: ident("x")},
			wantErr: "without a value",
		},
		{
			name:    "empty identifier",
			node:    &Identifier{},
			wantErr: "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
