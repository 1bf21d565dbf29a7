// Package log provides structured logging for the Monkey toolchain.
//
// Package: log
// Title: Structured Logging Framework
// Description: Structured logger with contextual fields, JSON/text/console/logfmt
//              output, level filtering, performance timers, and integration with
//              the structured error package.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-17 v0.2.0: Trimmed for the Monkey front end
//
// Usage:
//
//	import mdwlog "github.com/msto63/monkey/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatText).
//		WithField("component", "parser")
//
//	logger.Debug("statement parsed", mdwlog.Fields{"kind": "let"})
//
//	timer := logger.StartTimer("parse_program")
//	defer timer.Stop()
package log
