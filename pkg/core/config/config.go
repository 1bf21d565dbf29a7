package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	mdwlog "github.com/msto63/monkey/foundation/core/log"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "MONKEY_"

// REPL modes
const (
	ModeTokens = "tokens"
	ModeAST    = "ast"
)

// Config holds the complete application configuration
type Config struct {
	General   GeneralConfig   `toml:"general" yaml:"general"`
	Frontend  FrontendConfig  `toml:"frontend" yaml:"frontend"`
	REPL      REPLConfig      `toml:"repl" yaml:"repl"`
	History   HistoryConfig   `toml:"history" yaml:"history"`
	GRPC      GRPCConfig      `toml:"grpc" yaml:"grpc"`
	WebSocket WebSocketConfig `toml:"websocket" yaml:"websocket"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// FrontendConfig limits what the tokenizer and parser accept
type FrontendConfig struct {
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`

	// CacheSize bounds the result caches; negative disables them
	CacheSize int      `toml:"cache_size" yaml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// REPLConfig holds line REPL settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
	Mode        string `toml:"mode" yaml:"mode"`
}

// HistoryConfig holds the parse history store settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// GRPCConfig holds gRPC server settings
type GRPCConfig struct {
	Host           string   `toml:"host" yaml:"host"`
	Port           int      `toml:"port" yaml:"port"`
	Reflection     bool     `toml:"reflection" yaml:"reflection"`
	MaxRecvMsgSize int      `toml:"max_recv_msg_size" yaml:"max_recv_msg_size"`
	Timeout        Duration `toml:"timeout" yaml:"timeout"`
}

// WebSocketConfig holds WebSocket server settings
type WebSocketConfig struct {
	Enabled      bool     `toml:"enabled" yaml:"enabled"`
	Host         string   `toml:"host" yaml:"host"`
	Port         int      `toml:"port" yaml:"port"`
	Path         string   `toml:"path" yaml:"path"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := base()
	cfg.applyDefaults()
	return cfg
}

// base holds the switches that default to on; a file may turn them off.
func base() *Config {
	return &Config{
		History:   HistoryConfig{Enabled: true},
		GRPC:      GRPCConfig{Reflection: true},
		WebSocket: WebSocketConfig{Enabled: true},
	}
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.Newf("config file not found: %s", path).
				WithCode(mdwerror.CodeNotFound).
				WithOperation("config.Load")
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load")
	}

	cfg := base()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, cfg)
	case ".toml", "":
		_, err = toml.Decode(string(content), cfg)
	default:
		return nil, mdwerror.Newf("unsupported config format: %s", filepath.Ext(path)).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load")
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	return cfg.finish()
}

// finish applies environment overrides and defaults, then validates
func (c *Config) finish() (*Config, error) {
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	c.applyDefaults()
	c.expandEnvVars()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFromEnv loads configuration from the MONKEY_CONFIG environment
// variable or the default locations. Without any file the defaults are
// used, with environment overrides applied.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvPrefix + "CONFIG")
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path != "" {
		return Load(path)
	}

	return base().finish()
}

// DefaultPaths lists the locations LoadFromEnv searches
func DefaultPaths() []string {
	paths := []string{
		"./configs/monkey.toml",
		"./monkey.toml",
		"./monkey.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config/monkey/config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "monkey"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Frontend
	if c.Frontend.MaxInputLength == 0 {
		c.Frontend.MaxInputLength = 64 * 1024
	}
	if c.Frontend.CacheSize == 0 {
		c.Frontend.CacheSize = 256
	}
	if c.Frontend.CacheTTL.Duration == 0 {
		c.Frontend.CacheTTL.Duration = 5 * time.Minute
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = ">> "
	}
	if c.REPL.Mode == "" {
		c.REPL.Mode = ModeTokens
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = filepath.Join(c.General.DataDir, "repl_history")
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}

	// gRPC
	if c.GRPC.Host == "" {
		c.GRPC.Host = "0.0.0.0"
	}
	if c.GRPC.Port == 0 {
		c.GRPC.Port = 9300
	}
	if c.GRPC.MaxRecvMsgSize == 0 {
		c.GRPC.MaxRecvMsgSize = 4 * 1024 * 1024
	}
	if c.GRPC.Timeout.Duration == 0 {
		c.GRPC.Timeout.Duration = 10 * time.Second
	}

	// WebSocket
	if c.WebSocket.Host == "" {
		c.WebSocket.Host = "0.0.0.0"
	}
	if c.WebSocket.Port == 0 {
		c.WebSocket.Port = 9301
	}
	if c.WebSocket.Path == "" {
		c.WebSocket.Path = "/ws"
	}
	if c.WebSocket.WriteTimeout.Duration == 0 {
		c.WebSocket.WriteTimeout.Duration = 10 * time.Second
	}
}

// applyEnv applies MONKEY_* environment overrides
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"LOG_LEVEL":    &c.General.LogLevel,
		"LOG_FORMAT":   &c.General.LogFormat,
		"DATA_DIR":     &c.General.DataDir,
		"REPL_MODE":    &c.REPL.Mode,
		"HISTORY_PATH": &c.History.Path,
		"GRPC_HOST":    &c.GRPC.Host,
		"WS_HOST":      &c.WebSocket.Host,
		"WS_PATH":      &c.WebSocket.Path,
	}
	for key, target := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			*target = v
		}
	}

	ints := map[string]*int{
		"MAX_INPUT_LENGTH": &c.Frontend.MaxInputLength,
		"CACHE_SIZE":       &c.Frontend.CacheSize,
		"GRPC_PORT":        &c.GRPC.Port,
		"WS_PORT":          &c.WebSocket.Port,
	}
	for key, target := range ints {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(key, v, err)
		}
		*target = n
	}

	bools := map[string]*bool{
		"HISTORY_ENABLED":   &c.History.Enabled,
		"GRPC_REFLECTION":   &c.GRPC.Reflection,
		"WEBSOCKET_ENABLED": &c.WebSocket.Enabled,
	}
	for key, target := range bools {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(key, v, err)
		}
		*target = b
	}
	return nil
}

func envError(key, value string, err error) error {
	return mdwerror.Wrap(err, fmt.Sprintf("invalid value for %s%s", EnvPrefix, key)).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.applyEnv").
		WithDetail("value", value)
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.History.Path = os.ExpandEnv(c.History.Path)
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

// Validate checks the configuration for values the application cannot use
func (c *Config) Validate() error {
	var problems []string

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Frontend.MaxInputLength < 0 {
		problems = append(problems, "frontend.max_input_length must not be negative")
	}
	if c.REPL.Mode != ModeTokens && c.REPL.Mode != ModeAST {
		problems = append(problems, fmt.Sprintf("repl.mode must be %q or %q, got %q", ModeTokens, ModeAST, c.REPL.Mode))
	}
	if !validPort(c.GRPC.Port) {
		problems = append(problems, fmt.Sprintf("grpc.port out of range: %d", c.GRPC.Port))
	}
	if !validPort(c.WebSocket.Port) {
		problems = append(problems, fmt.Sprintf("websocket.port out of range: %d", c.WebSocket.Port))
	}
	if !strings.HasPrefix(c.WebSocket.Path, "/") {
		problems = append(problems, fmt.Sprintf("websocket.path must start with /: %q", c.WebSocket.Path))
	}

	if len(problems) == 0 {
		return nil
	}
	return mdwerror.New("invalid configuration: "+strings.Join(problems, "; ")).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("problems", len(problems))
}

func validPort(port int) bool {
	return port > 0 && port <= 65535
}

// GRPCAddress returns the gRPC listen address
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.GRPC.Host, c.GRPC.Port)
}

// WebSocketAddress returns the WebSocket listen address
func (c *Config) WebSocketAddress() string {
	return fmt.Sprintf("%s:%d", c.WebSocket.Host, c.WebSocket.Port)
}
