// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger creation, contextual fields, level filtering,
//              output formats and structured error logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-17 v0.2.0: Rewritten for the trimmed logger

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: &buf,
		Name:   "test",
	})
	return logger, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &data); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	return data
}

func TestLoggerJSONOutput(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	logger.WithField("component", "parser").
		WithRequestID("req-1").
		Info("program parsed", Fields{"statements": 3})

	data := decodeLine(t, buf)
	expected := map[string]interface{}{
		"message":    "program parsed",
		"level":      "info",
		"logger":     "test",
		"component":  "parser",
		"request_id": "req-1",
		"statements": float64(3),
	}
	for k, want := range expected {
		if data[k] != want {
			t.Errorf("%s = %v, want %v", k, data[k], want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		min     Level
		log     func(*Logger)
		wantOut bool
	}{
		{"debug below info", LevelInfo, func(l *Logger) { l.Debug("x") }, false},
		{"trace below debug", LevelDebug, func(l *Logger) { l.Trace("x") }, false},
		{"warn above info", LevelInfo, func(l *Logger) { l.Warn("x") }, true},
		{"audit always", LevelError, func(l *Logger) { l.Audit("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(tt.min, FormatJSON)
			tt.log(logger)
			if got := buf.Len() > 0; got != tt.wantOut {
				t.Errorf("wrote output = %v, want %v", got, tt.wantOut)
			}
		})
	}
}

func TestLoggerWithIsImmutable(t *testing.T) {
	base, buf := newBufferLogger(LevelInfo, FormatJSON)
	_ = base.WithField("extra", true).WithLevel(LevelError)

	base.Info("base")
	data := decodeLine(t, buf)
	if _, ok := data["extra"]; ok {
		t.Error("WithField() modified the receiver")
	}
	if base.GetLevel() != LevelInfo {
		t.Errorf("GetLevel() = %v, want %v", base.GetLevel(), LevelInfo)
	}
}

func TestLoggerTextFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	logger.ErrorWithErr("lookup failed", errors.New("boom"), Fields{"b": 2, "a": 1})

	line := buf.String()
	for _, want := range []string{"[ERR]", "{test}", "lookup failed", "[a=1 b=2]", `error="boom"`} {
		if !strings.Contains(line, want) {
			t.Errorf("output %q missing %q", line, want)
		}
	}
}

func TestLoggerLogfmtFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatLogfmt)
	logger.Info("tokenized", Fields{"source": "let x", "count": 3})

	line := buf.String()
	if !strings.Contains(line, `message="tokenized"`) {
		t.Errorf("output %q missing message", line)
	}
	if strings.Index(line, "count=3") > strings.Index(line, `source="let x"`) {
		t.Errorf("fields not sorted in %q", line)
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCode  interface{}
	}{
		{
			name:      "syntax error logs at info",
			err:       mdwerror.New("bad input").WithCode(mdwerror.CodeSyntax).WithDetail("error_count", 2),
			wantLevel: "info",
			wantCode:  "SYNTAX",
		},
		{
			name:      "database error logs at error",
			err:       mdwerror.New("disk gone").WithCode(mdwerror.CodeDatabaseError),
			wantLevel: "error",
			wantCode:  "DATABASE_ERROR",
		},
		{
			name:      "plain error logs at error",
			err:       errors.New("plain"),
			wantLevel: "error",
			wantCode:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatJSON)
			logger.LogError(tt.err)

			data := decodeLine(t, buf)
			if data["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", data["level"], tt.wantLevel)
			}
			if data["error_code"] != tt.wantCode {
				t.Errorf("error_code = %v, want %v", data["error_code"], tt.wantCode)
			}
		})
	}
}

func TestLogErrorNil(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace, FormatJSON)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) wrote %q", buf.String())
	}
}

func TestLoggerCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf, EnableCaller: true})
	logger.Info("here")

	data := decodeLine(t, &buf)
	caller, _ := data["caller"].(string)
	if !strings.HasPrefix(caller, "logger_test.go:") {
		t.Errorf("caller = %q, want logger_test.go:<line>", caller)
	}
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	SetDefault(logger)
	Warn("from default")

	if data := decodeLine(t, buf); data["message"] != "from default" {
		t.Errorf("message = %v, want %q", data["message"], "from default")
	}
}
