package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termbridge/termbridge/internal/config"
	"github.com/termbridge/termbridge/internal/logging"
)

func TestNewAppliesDefaultDimensions(t *testing.T) {
	s := New(config.Default(), logging.NewNop(), nil, &fakeLister{}, Options{})

	assert.Equal(t, uint16(24), s.opts.Rows)
	assert.Equal(t, uint16(80), s.opts.Cols)
	assert.NotEmpty(t, s.id)
}

func TestStartShellNotFound(t *testing.T) {
	cfg := config.Default()
	cfg.Shell.Path = "/nonexistent/termbridge-shell-a"
	cfg.Shell.Fallback = "/nonexistent/termbridge-shell-b"

	s := New(cfg, logging.NewNop(), nil, &fakeLister{}, Options{WorkingDir: t.TempDir()})

	err := s.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShellNotFound)
}

func TestStartFallsBackToSecondaryShell(t *testing.T) {
	cfg := config.Default()
	cfg.Shell.Path = "/nonexistent/termbridge-shell-a"
	cfg.Shell.Fallback = "/bin/sh"

	s := New(cfg, logging.NewNop(), nil, &fakeLister{}, Options{WorkingDir: t.TempDir()})

	require.NoError(t, s.Start())
	assert.Greater(t, s.pid, 0)

	s.Shutdown()
	s.dev.Close()
}
