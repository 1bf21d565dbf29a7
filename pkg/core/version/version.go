// ============================================================================
// Monkey - Tokenizer and Pratt parser front end
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and services
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the front end and its surfaces
const (
	// Platform version
	Platform = "0.1.0"

	// Component versions
	Frontend  = "0.1.0"
	REPL      = "0.1.0"
	Explorer  = "0.1.0"
	GRPC      = "0.1.0"
	WebSocket = "0.1.0"
	History   = "0.1.0"
)

// Set at build time via -ldflags "-X"
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ServiceVersion returns the version for a given component name
func ServiceVersion(name string) string {
	switch name {
	case "frontend":
		return Frontend
	case "repl":
		return REPL
	case "explorer", "tui":
		return Explorer
	case "grpc":
		return GRPC
	case "websocket":
		return WebSocket
	case "history":
		return History
	default:
		return Platform
	}
}

// Info returns a one-line build description
func Info() string {
	return fmt.Sprintf("monkey %s (commit %s, built %s, %s %s/%s)",
		Platform, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
