// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error classification
//              across the Monkey front end and the surfaces built on it (CLI,
//              servers, history store).
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Reduced to front-end codes, added syntax codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Source text
	CodeSyntax        Code = "SYNTAX"
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"
	CodeIllegalToken  Code = "ILLEGAL_TOKEN"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Service and network
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeNetworkError       Code = "NETWORK_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeSyntax, CodeInputTooLarge, CodeIllegalToken,
		CodeDatabaseError,
		CodeServiceUnavailable, CodeNetworkError,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeSyntax, CodeInputTooLarge, CodeIllegalToken:
		return "source"
	case CodeDatabaseError:
		return "database"
	case CodeServiceUnavailable, CodeNetworkError:
		return "service"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// GetSeverityFromCode returns the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeSyntax, CodeIllegalToken, CodeInvalidInput, CodeInputTooLarge, CodeNotFound:
		return SeverityLow
	case CodeDatabaseError, CodeInternal:
		return SeverityHigh
	case CodeConfigError, CodeInvalidConfig:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
