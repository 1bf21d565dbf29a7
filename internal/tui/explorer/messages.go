// ============================================================================
// Monkey - Tokenizer and Pratt parser front end
// ============================================================================
//
// Package:     explorer
// Description: Message types for async analysis in the explorer
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package explorer

import (
	"github.com/msto63/monkey/internal/service"
)

// analysisMsg carries the tokenize and parse results of one editor state.
// seq identifies the edit it belongs to; older results are dropped.
type analysisMsg struct {
	seq    int
	source string
	tokens *service.TokenizeResult
	parse  *service.ParseResult
	err    error
}
