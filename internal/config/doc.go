// Package config provides 12-factor configuration management for the
// terminal-session engine.
//
// Configuration is loaded from environment variables with sensible defaults.
// The only file-free exception is positional startup arguments (cols, rows,
// working directory), which the caller passes straight to the session.
//
// Configuration Sections:
//   - Shell: shell binary, fallback binary, TERM value
//   - Session: multiplexing-loop timeouts, chunk sizes, injection delays
//   - Scan: process-tree scan intervals, depth and batch limits
//   - Logging: log level and output format (always stderr)
//   - Metrics: optional Prometheus listener address
//
// Environment Variables:
//   - SHELL, TERMBRIDGE_FALLBACK_SHELL, TERMBRIDGE_TERM
//   - TERMBRIDGE_SELECT_TIMEOUT, TERMBRIDGE_READ_CHUNK
//   - TERMBRIDGE_INJECT_DELAY, TERMBRIDGE_INJECT_STAGGER, TERMBRIDGE_STOP_GRACE
//   - TERMBRIDGE_AGENT_INTERVAL, TERMBRIDGE_FG_INTERVAL
//   - TERMBRIDGE_SCAN_DEPTH, TERMBRIDGE_SCAN_BATCH
//   - LOG_LEVEL, LOG_DEV, TERMBRIDGE_METRICS_ADDR
package config
