// File: doc.go
// Title: Monkey Abstract Syntax Tree Package Documentation
// Description: Node definitions, canonical rendering and visitors for the
//              Monkey syntax tree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial AST implementation

/*
Package ast defines the syntax tree produced by the Monkey parser.

Every node renders a canonical, fully parenthesized form through String:

	let x = 5;       let statement
	return 5;        return statement
	(a + (b * c))    infix expressions
	(-a)             prefix expressions

A Program renders as the concatenation of its statements with no
separator. Rendering is a pure function of the tree.

Visitors walk the tree without type switches. Walk drives a visitor over a
node and its children in source order; TreeString, ValidateAST and
CollectNodes are the common entry points.
*/
package ast
