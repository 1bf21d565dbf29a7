package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "monkey" {
		t.Errorf("General.Name = %v, want monkey", cfg.General.Name)
	}
	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %v, want info", cfg.General.LogLevel)
	}
	if cfg.Frontend.MaxInputLength != 64*1024 {
		t.Errorf("Frontend.MaxInputLength = %v, want 65536", cfg.Frontend.MaxInputLength)
	}
	if cfg.Frontend.CacheSize != 256 || cfg.Frontend.CacheTTL.Duration != 5*time.Minute {
		t.Errorf("Frontend cache = %d/%v, want 256/5m", cfg.Frontend.CacheSize, cfg.Frontend.CacheTTL.Duration)
	}
	if cfg.REPL.Mode != ModeTokens {
		t.Errorf("REPL.Mode = %v, want tokens", cfg.REPL.Mode)
	}
	if cfg.REPL.Prompt != ">> " {
		t.Errorf("REPL.Prompt = %q, want >> ", cfg.REPL.Prompt)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled should default to true")
	}
	if cfg.History.Path != filepath.Join("data", "history.db") {
		t.Errorf("History.Path = %v, want data/history.db", cfg.History.Path)
	}
	if !cfg.GRPC.Reflection {
		t.Error("GRPC.Reflection should default to true")
	}
	if cfg.GRPC.Timeout.Duration != 10*time.Second {
		t.Errorf("GRPC.Timeout = %v, want 10s", cfg.GRPC.Timeout.Duration)
	}
	if cfg.WebSocket.Path != "/ws" {
		t.Errorf("WebSocket.Path = %v, want /ws", cfg.WebSocket.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestAddresses(t *testing.T) {
	cfg := Default()
	if got := cfg.GRPCAddress(); got != "0.0.0.0:9300" {
		t.Errorf("GRPCAddress() = %v, want 0.0.0.0:9300", got)
	}
	if got := cfg.WebSocketAddress(); got != "0.0.0.0:9301" {
		t.Errorf("WebSocketAddress() = %v, want 0.0.0.0:9301", got)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Load() error = %v, want NOT_FOUND", err)
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "monkey.toml", `
[general]
data_dir = "/var/lib/monkey"
log_level = "debug"

[repl]
mode = "ast"

[history]
enabled = false

[grpc]
port = 9999
timeout = "3s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.REPL.Mode != ModeAST {
		t.Errorf("REPL.Mode = %v, want ast", cfg.REPL.Mode)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should be false")
	}
	if cfg.History.Path != "/var/lib/monkey/history.db" {
		t.Errorf("History.Path = %v, want it under data_dir", cfg.History.Path)
	}
	if cfg.GRPC.Port != 9999 {
		t.Errorf("GRPC.Port = %v, want 9999", cfg.GRPC.Port)
	}
	if cfg.GRPC.Timeout.Duration != 3*time.Second {
		t.Errorf("GRPC.Timeout = %v, want 3s", cfg.GRPC.Timeout.Duration)
	}

	// Defaults for missing values
	if !cfg.GRPC.Reflection {
		t.Error("GRPC.Reflection should keep its default")
	}
	if cfg.WebSocket.Port != 9301 {
		t.Errorf("WebSocket.Port = %v, want 9301 (default)", cfg.WebSocket.Port)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "monkey.yaml", `
general:
  log_format: json
frontend:
  max_input_length: 128
websocket:
  path: /monkey
  write_timeout: 2s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.LogFormat != "json" {
		t.Errorf("General.LogFormat = %v, want json", cfg.General.LogFormat)
	}
	if cfg.Frontend.MaxInputLength != 128 {
		t.Errorf("Frontend.MaxInputLength = %v, want 128", cfg.Frontend.MaxInputLength)
	}
	if cfg.WebSocket.Path != "/monkey" {
		t.Errorf("WebSocket.Path = %v, want /monkey", cfg.WebSocket.Path)
	}
	if cfg.WebSocket.WriteTimeout.Duration != 2*time.Second {
		t.Errorf("WebSocket.WriteTimeout = %v, want 2s", cfg.WebSocket.WriteTimeout.Duration)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode mdwerror.Code
	}{
		{"bad toml", "a.toml", "[general\n", mdwerror.CodeConfigError},
		{"bad yaml", "a.yaml", "general: [", mdwerror.CodeConfigError},
		{"unknown extension", "a.ini", "x=1", mdwerror.CodeConfigError},
		{"invalid level", "a.toml", "[general]\nlog_level = \"loud\"\n", mdwerror.CodeInvalidConfig},
		{"invalid mode", "a.toml", "[repl]\nmode = \"eval\"\n", mdwerror.CodeInvalidConfig},
		{"invalid port", "a.toml", "[grpc]\nport = 70000\n", mdwerror.CodeInvalidConfig},
		{"invalid path", "a.toml", "[websocket]\npath = \"ws\"\n", mdwerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if !mdwerror.HasCode(err, tt.wantCode) {
				t.Errorf("Load() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MONKEY_LOG_LEVEL", "warn")
	t.Setenv("MONKEY_GRPC_PORT", "7000")
	t.Setenv("MONKEY_HISTORY_ENABLED", "false")
	t.Setenv("MONKEY_DATA_DIR", "/tmp/monkey")
	t.Setenv("MONKEY_CACHE_SIZE", "-1")

	cfg, err := Load(writeConfig(t, "monkey.toml", "[general]\nlog_level = \"debug\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.GRPC.Port != 7000 {
		t.Errorf("GRPC.Port = %v, want 7000", cfg.GRPC.Port)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should be false")
	}
	if cfg.Frontend.CacheSize != -1 {
		t.Errorf("Frontend.CacheSize = %v, want -1", cfg.Frontend.CacheSize)
	}
	if cfg.History.Path != "/tmp/monkey/history.db" {
		t.Errorf("History.Path = %v, want /tmp/monkey/history.db", cfg.History.Path)
	}
}

func TestEnvOverrides_Invalid(t *testing.T) {
	t.Setenv("MONKEY_WS_PORT", "many")

	_, err := Load(writeConfig(t, "monkey.toml", ""))
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv("MONKEY_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	originalWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(originalWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "monkey" {
		t.Errorf("General.Name = %v, want defaults", cfg.General.Name)
	}
}

func TestLoadFromEnv_ExplicitPath(t *testing.T) {
	t.Setenv("MONKEY_CONFIG", writeConfig(t, "monkey.toml", "[repl]\nprompt = \"> \"\n"))

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.REPL.Prompt != "> " {
		t.Errorf("REPL.Prompt = %q, want %q", cfg.REPL.Prompt, "> ")
	}
}
