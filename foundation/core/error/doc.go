// File: doc.go
// Title: Error Package Documentation
// Description: Structured errors with codes, severity and details.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17

/*
Package error provides structured errors for the Monkey front end.

An Error carries a message, an optional cause, a Code, a Severity and a set of
key/value details. Errors are built fluently:

	err := mdwerror.Wrap(parseErrs, "source contains syntax errors").
		WithCode(mdwerror.CodeSyntax).
		WithOperation("monkey.Parse").
		WithDetail("error_count", len(parseErrs))

The package name shadows the builtin, so callers import it as mdwerror.
*/
package error
