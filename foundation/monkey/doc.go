// Package monkey is the front end of the Monkey language: a tokenizer and a
// Pratt parser that turn source text into a syntax tree.
//
// Package: monkey
// Title: Monkey Front End
// Description: The Engine type ties the lexer, parser and AST packages
//              together behind input limits, timing and structured errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Usage:
//
//	engine := monkey.New(monkey.Options{})
//	result, err := engine.Parse("let x = 1 + 2 * 3;")
//	if err != nil {
//		for _, d := range monkey.Diagnostics(err) {
//			fmt.Println(d)
//		}
//		return
//	}
//	fmt.Println(result.Canonical) // let x = (1 + (2 * 3));
//
// Subpackages:
//   - token: token types, keyword lookup and display forms
//   - lexer: byte scanner producing tokens with positions
//   - ast: syntax tree, canonical rendering and visitors
//   - parser: precedence table, parser and diagnostics
package monkey
