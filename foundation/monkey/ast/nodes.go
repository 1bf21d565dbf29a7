// File: nodes.go
// Title: Monkey AST Node Definitions
// Description: Defines the program, statement and expression nodes of the
//              Monkey syntax tree together with their canonical rendering
//              and structural validation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/monkey/foundation/monkey/token"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns the canonical rendering of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the source position of the node's first token
	Position() token.Position

	// Validate checks the node's own invariants, not its children's
	Validate() error
}

// Statement is a node that can appear at program level
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value
type Expression interface {
	Node
	expressionNode()
}

// Operator is a token type restricted to = + - ! * / < > == !=
type Operator token.Type

// Operators, named after their token types
const (
	OpAssign   = Operator(token.ASSIGN)
	OpPlus     = Operator(token.PLUS)
	OpMinus    = Operator(token.MINUS)
	OpBang     = Operator(token.BANG)
	OpAsterisk = Operator(token.ASTERISK)
	OpSlash    = Operator(token.SLASH)
	OpLt       = Operator(token.LT)
	OpGt       = Operator(token.GT)
	OpEq       = Operator(token.EQ)
	OpNotEq    = Operator(token.NOT_EQ)
)

// OperatorOf converts a token type into an Operator. The second result is
// false when t is not in the operator set.
func OperatorOf(t token.Type) (Operator, bool) {
	if !t.IsOperator() {
		return 0, false
	}
	return Operator(t), true
}

// TokenType returns the token type the operator refines
func (o Operator) TokenType() token.Type {
	return token.Type(o)
}

// IsValid reports whether o is in the operator set
func (o Operator) IsValid() bool {
	return token.Type(o).IsOperator()
}

// String returns the operator symbol
func (o Operator) String() string {
	return token.Type(o).Symbol()
}

// Program is the root node: statements in source order
type Program struct {
	Statements []Statement
}

// LetStatement binds Name to Value
type LetStatement struct {
	Token token.Token // the let token
	Name  *Identifier
	Value Expression
}

// ReturnStatement returns Value
type ReturnStatement struct {
	Token token.Token // the return token
	Value Expression
}

// ExpressionStatement wraps a bare expression
type ExpressionStatement struct {
	Token      token.Token // first token of the expression
	Expression Expression
}

// Identifier is a name reference
type Identifier struct {
	Token token.Token
	Value string
}

// IntegerLiteral is a signed 32-bit integer constant
type IntegerLiteral struct {
	Token token.Token
	Value int32
}

// PrefixExpression applies ! or - to Right
type PrefixExpression struct {
	Token    token.Token // the operator token
	Operator Operator
	Right    Expression
}

// InfixExpression combines Left and Right with a binary operator
type InfixExpression struct {
	Token    token.Token // the operator token
	Operator Operator
	Left     Expression
	Right    Expression
}

// Program

func (p *Program) String() string {
	var out strings.Builder
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

func (p *Program) Accept(visitor Visitor) interface{} {
	return visitor.VisitProgram(p)
}

func (p *Program) Position() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Position()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) Validate() error {
	for i, s := range p.Statements {
		if s == nil {
			return fmt.Errorf("statement %d is nil", i)
		}
	}
	return nil
}

// LetStatement

func (ls *LetStatement) String() string {
	var out strings.Builder
	out.WriteString("let ")
	if ls.Name != nil {
		out.WriteString(ls.Name.String())
	}
	out.WriteString(" = ")
	if ls.Value != nil {
		out.WriteString(ls.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

func (ls *LetStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitLetStatement(ls)
}

func (ls *LetStatement) Position() token.Position { return ls.Token.Pos }

func (ls *LetStatement) Validate() error {
	if ls.Name == nil {
		return fmt.Errorf("let statement without a name")
	}
	if ls.Value == nil {
		return fmt.Errorf("let statement for %q without a value", ls.Name.Value)
	}
	return nil
}

func (ls *LetStatement) statementNode() {}

// ReturnStatement

func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return ;"
	}
	return "return " + rs.Value.String() + ";"
}

func (rs *ReturnStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitReturnStatement(rs)
}

func (rs *ReturnStatement) Position() token.Position { return rs.Token.Pos }

func (rs *ReturnStatement) Validate() error {
	if rs.Value == nil {
		return fmt.Errorf("return statement without a value")
	}
	return nil
}

func (rs *ReturnStatement) statementNode() {}

// ExpressionStatement

func (es *ExpressionStatement) String() string {
	if es.Expression == nil {
		return ""
	}
	return es.Expression.String()
}

func (es *ExpressionStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitExpressionStatement(es)
}

func (es *ExpressionStatement) Position() token.Position { return es.Token.Pos }

func (es *ExpressionStatement) Validate() error {
	if es.Expression == nil {
		return fmt.Errorf("expression statement without an expression")
	}
	return nil
}

func (es *ExpressionStatement) statementNode() {}

// Identifier

func (i *Identifier) String() string { return i.Value }

func (i *Identifier) Accept(visitor Visitor) interface{} {
	return visitor.VisitIdentifier(i)
}

func (i *Identifier) Position() token.Position { return i.Token.Pos }

func (i *Identifier) Validate() error {
	if i.Value == "" {
		return fmt.Errorf("identifier name is required")
	}
	return nil
}

func (i *Identifier) expressionNode() {}

// IntegerLiteral

func (il *IntegerLiteral) String() string {
	return strconv.FormatInt(int64(il.Value), 10)
}

func (il *IntegerLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitIntegerLiteral(il)
}

func (il *IntegerLiteral) Position() token.Position { return il.Token.Pos }

func (il *IntegerLiteral) Validate() error { return nil }

func (il *IntegerLiteral) expressionNode() {}

// PrefixExpression

func (pe *PrefixExpression) String() string {
	right := ""
	if pe.Right != nil {
		right = pe.Right.String()
	}
	return "(" + pe.Operator.String() + right + ")"
}

func (pe *PrefixExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitPrefixExpression(pe)
}

func (pe *PrefixExpression) Position() token.Position { return pe.Token.Pos }

func (pe *PrefixExpression) Validate() error {
	if err := validateOperator(pe.Operator, pe.Token); err != nil {
		return err
	}
	if pe.Operator != OpBang && pe.Operator != OpMinus {
		return fmt.Errorf("operator %s is not a prefix operator", pe.Operator)
	}
	if pe.Right == nil {
		return fmt.Errorf("prefix expression %s without operand", pe.Operator)
	}
	return nil
}

func (pe *PrefixExpression) expressionNode() {}

// InfixExpression

func (ie *InfixExpression) String() string {
	left, right := "", ""
	if ie.Left != nil {
		left = ie.Left.String()
	}
	if ie.Right != nil {
		right = ie.Right.String()
	}
	return "(" + left + " " + ie.Operator.String() + " " + right + ")"
}

func (ie *InfixExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitInfixExpression(ie)
}

func (ie *InfixExpression) Position() token.Position { return ie.Token.Pos }

func (ie *InfixExpression) Validate() error {
	if err := validateOperator(ie.Operator, ie.Token); err != nil {
		return err
	}
	if !ie.Operator.TokenType().IsInfix() {
		return fmt.Errorf("operator %s is not an infix operator", ie.Operator)
	}
	if ie.Left == nil || ie.Right == nil {
		return fmt.Errorf("infix expression %s is missing an operand", ie.Operator)
	}
	return nil
}

func (ie *InfixExpression) expressionNode() {}

// validateOperator checks that op is an operator and matches the token that produced it
func validateOperator(op Operator, tok token.Token) error {
	if !op.IsValid() {
		return fmt.Errorf("invalid operator %s", token.Type(op))
	}
	if op.TokenType() != tok.Type {
		return fmt.Errorf("operator %s does not match token %s", op, tok.Type)
	}
	return nil
}
