package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all session-engine configuration.
type Config struct {
	Shell   ShellConfig
	Session SessionConfig
	Scan    ScanConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// ShellConfig holds shell spawn configuration.
type ShellConfig struct {
	Path     string `envconfig:"SHELL" default:"/bin/zsh"`
	Fallback string `envconfig:"TERMBRIDGE_FALLBACK_SHELL" default:"/bin/bash"`
	Term     string `envconfig:"TERMBRIDGE_TERM" default:"xterm-256color"`
}

// SessionConfig holds the multiplexing-loop tuning knobs.
type SessionConfig struct {
	SelectTimeout time.Duration `envconfig:"TERMBRIDGE_SELECT_TIMEOUT" default:"300ms"`
	ReadChunkSize int           `envconfig:"TERMBRIDGE_READ_CHUNK" default:"8192"`
	InjectDelay   time.Duration `envconfig:"TERMBRIDGE_INJECT_DELAY" default:"1s"`
	InjectStagger time.Duration `envconfig:"TERMBRIDGE_INJECT_STAGGER" default:"100ms"`
	StopGrace     time.Duration `envconfig:"TERMBRIDGE_STOP_GRACE" default:"2s"`
}

// ScanConfig holds process-tree scan configuration.
type ScanConfig struct {
	AgentInterval      time.Duration `envconfig:"TERMBRIDGE_AGENT_INTERVAL" default:"3s"`
	ForegroundInterval time.Duration `envconfig:"TERMBRIDGE_FG_INTERVAL" default:"1s"`
	MaxDepth           int           `envconfig:"TERMBRIDGE_SCAN_DEPTH" default:"5"`
	BatchSize          int           `envconfig:"TERMBRIDGE_SCAN_BATCH" default:"50"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds the optional metrics listener configuration.
// An empty address keeps the process a pure stdio relay.
type MetricsConfig struct {
	Addr string `envconfig:"TERMBRIDGE_METRICS_ADDR" default:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Path:     "/bin/zsh",
			Fallback: "/bin/bash",
			Term:     "xterm-256color",
		},
		Session: SessionConfig{
			SelectTimeout: 300 * time.Millisecond,
			ReadChunkSize: 8192,
			InjectDelay:   time.Second,
			InjectStagger: 100 * time.Millisecond,
			StopGrace:     2 * time.Second,
		},
		Scan: ScanConfig{
			AgentInterval:      3 * time.Second,
			ForegroundInterval: time.Second,
			MaxDepth:           5,
			BatchSize:          50,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
	}
}
