// File: visitor.go
// Title: Monkey AST Visitor Pattern Implementation
// Description: Visitor interface, a tree walker, and the common visitors for
//              structural dumps, validation and node collection.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial visitor pattern implementation

package ast

import (
	"fmt"
	"strings"
)

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitProgram(program *Program) interface{}

	// Statements
	VisitLetStatement(stmt *LetStatement) interface{}
	VisitReturnStatement(stmt *ReturnStatement) interface{}
	VisitExpressionStatement(stmt *ExpressionStatement) interface{}

	// Expressions
	VisitIdentifier(expr *Identifier) interface{}
	VisitIntegerLiteral(expr *IntegerLiteral) interface{}
	VisitPrefixExpression(expr *PrefixExpression) interface{}
	VisitInfixExpression(expr *InfixExpression) interface{}
}

// BaseVisitor implements every Visit method as a no-op.
// Embed it and override only the methods you need, then drive it with Walk.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(*Program) interface{}                         { return nil }
func (BaseVisitor) VisitLetStatement(*LetStatement) interface{}               { return nil }
func (BaseVisitor) VisitReturnStatement(*ReturnStatement) interface{}         { return nil }
func (BaseVisitor) VisitExpressionStatement(*ExpressionStatement) interface{} { return nil }
func (BaseVisitor) VisitIdentifier(*Identifier) interface{}                   { return nil }
func (BaseVisitor) VisitIntegerLiteral(*IntegerLiteral) interface{}           { return nil }
func (BaseVisitor) VisitPrefixExpression(*PrefixExpression) interface{}       { return nil }
func (BaseVisitor) VisitInfixExpression(*InfixExpression) interface{}         { return nil }

// Children returns the direct children of node in source order. Missing
// children are skipped.
func Children(node Node) []Node {
	var children []Node
	add := func(n Node, present bool) {
		if present {
			children = append(children, n)
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			add(s, s != nil)
		}
	case *LetStatement:
		add(n.Name, n.Name != nil)
		add(n.Value, n.Value != nil)
	case *ReturnStatement:
		add(n.Value, n.Value != nil)
	case *ExpressionStatement:
		add(n.Expression, n.Expression != nil)
	case *PrefixExpression:
		add(n.Right, n.Right != nil)
	case *InfixExpression:
		add(n.Left, n.Left != nil)
		add(n.Right, n.Right != nil)
	}
	return children
}

// Walk visits node and then its descendants depth-first in source order
func Walk(visitor Visitor, node Node) {
	if node == nil {
		return
	}
	node.Accept(visitor)
	for _, child := range Children(node) {
		Walk(visitor, child)
	}
}

// TreeVisitor renders an indented structural dump of the tree
type TreeVisitor struct {
	buffer strings.Builder
	indent int
}

// NewTreeVisitor creates a new tree visitor
func NewTreeVisitor() *TreeVisitor {
	return &TreeVisitor{}
}

// String returns the dump built so far
func (tv *TreeVisitor) String() string {
	return tv.buffer.String()
}

// Reset clears the internal buffer
func (tv *TreeVisitor) Reset() {
	tv.buffer.Reset()
	tv.indent = 0
}

func (tv *TreeVisitor) line(node Node, format string, args ...interface{}) {
	tv.buffer.WriteString(strings.Repeat("  ", tv.indent))
	tv.buffer.WriteString(fmt.Sprintf(format, args...))
	tv.buffer.WriteString(fmt.Sprintf(" @%s\n", node.Position()))
}

func (tv *TreeVisitor) children(node Node) {
	tv.indent++
	for _, child := range Children(node) {
		child.Accept(tv)
	}
	tv.indent--
}

func (tv *TreeVisitor) VisitProgram(program *Program) interface{} {
	tv.buffer.WriteString(fmt.Sprintf("Program (%d statements)\n", len(program.Statements)))
	tv.children(program)
	return nil
}

func (tv *TreeVisitor) VisitLetStatement(stmt *LetStatement) interface{} {
	tv.line(stmt, "LetStatement")
	tv.children(stmt)
	return nil
}

func (tv *TreeVisitor) VisitReturnStatement(stmt *ReturnStatement) interface{} {
	tv.line(stmt, "ReturnStatement")
	tv.children(stmt)
	return nil
}

func (tv *TreeVisitor) VisitExpressionStatement(stmt *ExpressionStatement) interface{} {
	tv.line(stmt, "ExpressionStatement")
	tv.children(stmt)
	return nil
}

func (tv *TreeVisitor) VisitIdentifier(expr *Identifier) interface{} {
	tv.line(expr, "Identifier %s", expr.Value)
	return nil
}

func (tv *TreeVisitor) VisitIntegerLiteral(expr *IntegerLiteral) interface{} {
	tv.line(expr, "IntegerLiteral %d", expr.Value)
	return nil
}

func (tv *TreeVisitor) VisitPrefixExpression(expr *PrefixExpression) interface{} {
	tv.line(expr, "PrefixExpression %s", expr.Operator)
	tv.children(expr)
	return nil
}

func (tv *TreeVisitor) VisitInfixExpression(expr *InfixExpression) interface{} {
	tv.line(expr, "InfixExpression %s", expr.Operator)
	tv.children(expr)
	return nil
}

// ValidationVisitor validates AST nodes and collects errors
type ValidationVisitor struct {
	BaseVisitor
	errors []error
}

// NewValidationVisitor creates a new validation visitor
func NewValidationVisitor() *ValidationVisitor {
	return &ValidationVisitor{errors: make([]error, 0)}
}

// Errors returns all validation errors found
func (vv *ValidationVisitor) Errors() []error {
	return vv.errors
}

// HasErrors returns true if any validation errors were found
func (vv *ValidationVisitor) HasErrors() bool {
	return len(vv.errors) > 0
}

func (vv *ValidationVisitor) check(kind string, node Node) interface{} {
	if err := node.Validate(); err != nil {
		vv.errors = append(vv.errors, fmt.Errorf("%s at %s: %w", kind, node.Position(), err))
	}
	return nil
}

func (vv *ValidationVisitor) VisitProgram(n *Program) interface{} {
	return vv.check("program", n)
}

func (vv *ValidationVisitor) VisitLetStatement(n *LetStatement) interface{} {
	return vv.check("let statement", n)
}

func (vv *ValidationVisitor) VisitReturnStatement(n *ReturnStatement) interface{} {
	return vv.check("return statement", n)
}

func (vv *ValidationVisitor) VisitExpressionStatement(n *ExpressionStatement) interface{} {
	return vv.check("expression statement", n)
}

func (vv *ValidationVisitor) VisitIdentifier(n *Identifier) interface{} {
	return vv.check("identifier", n)
}

func (vv *ValidationVisitor) VisitIntegerLiteral(n *IntegerLiteral) interface{} {
	return vv.check("integer literal", n)
}

func (vv *ValidationVisitor) VisitPrefixExpression(n *PrefixExpression) interface{} {
	return vv.check("prefix expression", n)
}

func (vv *ValidationVisitor) VisitInfixExpression(n *InfixExpression) interface{} {
	return vv.check("infix expression", n)
}

// CollectorVisitor collects identifiers, literals and operator nodes
type CollectorVisitor struct {
	BaseVisitor
	Statements  []Statement
	Identifiers []*Identifier
	Integers    []*IntegerLiteral
	Prefixes    []*PrefixExpression
	Infixes     []*InfixExpression
}

// NewCollectorVisitor creates a new collector visitor
func NewCollectorVisitor() *CollectorVisitor {
	return &CollectorVisitor{}
}

// IdentifierNames returns the distinct identifier names in first-seen order
func (cv *CollectorVisitor) IdentifierNames() []string {
	seen := make(map[string]bool, len(cv.Identifiers))
	names := make([]string, 0, len(cv.Identifiers))
	for _, ident := range cv.Identifiers {
		if !seen[ident.Value] {
			seen[ident.Value] = true
			names = append(names, ident.Value)
		}
	}
	return names
}

func (cv *CollectorVisitor) VisitLetStatement(n *LetStatement) interface{} {
	cv.Statements = append(cv.Statements, n)
	return nil
}

func (cv *CollectorVisitor) VisitReturnStatement(n *ReturnStatement) interface{} {
	cv.Statements = append(cv.Statements, n)
	return nil
}

func (cv *CollectorVisitor) VisitExpressionStatement(n *ExpressionStatement) interface{} {
	cv.Statements = append(cv.Statements, n)
	return nil
}

func (cv *CollectorVisitor) VisitIdentifier(n *Identifier) interface{} {
	cv.Identifiers = append(cv.Identifiers, n)
	return nil
}

func (cv *CollectorVisitor) VisitIntegerLiteral(n *IntegerLiteral) interface{} {
	cv.Integers = append(cv.Integers, n)
	return nil
}

func (cv *CollectorVisitor) VisitPrefixExpression(n *PrefixExpression) interface{} {
	cv.Prefixes = append(cv.Prefixes, n)
	return nil
}

func (cv *CollectorVisitor) VisitInfixExpression(n *InfixExpression) interface{} {
	cv.Infixes = append(cv.Infixes, n)
	return nil
}

// ValidateAST validates node and all of its descendants
func ValidateAST(node Node) []error {
	visitor := NewValidationVisitor()
	Walk(visitor, node)
	return visitor.Errors()
}

// TreeString returns an indented structural dump of node
func TreeString(node Node) string {
	visitor := NewTreeVisitor()
	node.Accept(visitor)
	return visitor.String()
}

// CollectNodes collects the statements, identifiers, literals and operator nodes under node
func CollectNodes(node Node) *CollectorVisitor {
	visitor := NewCollectorVisitor()
	Walk(visitor, node)
	return visitor
}
