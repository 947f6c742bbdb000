package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/termbridge/termbridge/internal/config"
	"github.com/termbridge/termbridge/internal/logging"
	"github.com/termbridge/termbridge/internal/monitoring"
	"github.com/termbridge/termbridge/internal/procscan"
	"github.com/termbridge/termbridge/internal/session"
)

func main() {
	cfg := config.LoadOrDefault()

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		logger = logging.NewDefault()
	}
	defer logger.Sync()

	opts, warn := parseArgs(os.Args[1:])
	if warn != nil {
		// Malformed startup-commands are best-effort: the session still runs.
		logger.Warn("ignoring startup commands", zap.Error(warn))
	}

	var metrics *monitoring.Metrics
	if cfg.Metrics.Addr != "" {
		metrics = monitoring.NewMetrics()
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				logger.Warn("metrics listener failed", zap.Error(err))
			}
		}()
	}

	sup := session.New(cfg, logger, metrics, procscan.NewExecLister(), opts)

	if err := sup.Start(); err != nil {
		if errors.Is(err, session.ErrShellNotFound) {
			logger.Error("no usable shell", zap.Error(err))
			os.Exit(127)
		}
		logger.Fatal("failed to start session", zap.Error(err))
	}

	// Forward termination requests to the shell's process group; the loop
	// itself only ever ends by reaping the child.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		sup.Shutdown()
	}()

	if err := sup.Run(); err != nil {
		logger.Fatal("session loop failed", zap.Error(err))
	}
}

// parseArgs interprets the positional startup arguments:
//
//	termbridge [cols] [rows] [working-dir] [--startup-commands '<json array>']
//
// Unparseable dimensions fall back to 80x24 and a missing working directory
// falls back to the current one. A malformed startup-commands payload is
// returned as a warning, never a failure.
func parseArgs(args []string) (session.Options, error) {
	opts := session.Options{Rows: 24, Cols: 80}
	if wd, err := os.Getwd(); err == nil {
		opts.WorkingDir = wd
	}

	if len(args) > 0 {
		if cols, err := strconv.ParseUint(args[0], 10, 16); err == nil {
			opts.Cols = uint16(cols)
		}
	}
	if len(args) > 1 {
		if rows, err := strconv.ParseUint(args[1], 10, 16); err == nil {
			opts.Rows = uint16(rows)
		}
	}
	if len(args) > 2 {
		opts.WorkingDir = args[2]
	}

	if len(args) > 4 && args[3] == "--startup-commands" {
		var commands []string
		if err := sonic.UnmarshalString(args[4], &commands); err != nil {
			return opts, fmt.Errorf("invalid startup-commands payload: %w", err)
		}
		opts.StartupCommands = commands
	}

	return opts, nil
}
