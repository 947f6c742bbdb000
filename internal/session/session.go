package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/termbridge/termbridge/internal/config"
	"github.com/termbridge/termbridge/internal/logging"
	"github.com/termbridge/termbridge/internal/monitoring"
	"github.com/termbridge/termbridge/internal/notify"
	"github.com/termbridge/termbridge/internal/procscan"
	"github.com/termbridge/termbridge/internal/shared/id"
	"github.com/termbridge/termbridge/internal/termdev"
)

// ErrShellNotFound reports that neither the configured shell nor the
// fallback could be started. Callers exit with status 127.
var ErrShellNotFound = errors.New("shell not found")

// Options holds the per-session startup parameters.
type Options struct {
	Rows            uint16
	Cols            uint16
	WorkingDir      string
	StartupCommands []string
}

// device is the slice of the terminal-device capability the loop uses.
// *termdev.Device implements it; tests substitute a scripted fake.
type device interface {
	Fd() int
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Resize(rows, cols uint16) error
	Close() error
}

// Supervisor owns one pty-backed shell session and its multiplexing loop.
type Supervisor struct {
	cfg     *config.Config
	log     *logging.Logger
	metrics *monitoring.Metrics

	id   id.SessionID
	opts Options

	dev device
	pid int

	in   io.Reader
	inFd int
	out  io.Writer

	notifier *notify.Notifier
	scanner  *procscan.Scanner
	resolver *procscan.Resolver

	// ptyMu serializes pty writes between the loop and the injector.
	ptyMu sync.Mutex

	// reaped latches once the child has been collected; Wait4 only
	// succeeds for one caller, so the flag makes the answer sticky.
	reaped atomic.Bool

	// Last-emitted state, owned by the loop goroutine.
	lastAgent      procscan.AgentState
	lastFg         string
	lastAgentCheck time.Time
	lastFgCheck    time.Time
}

// New creates a supervisor relaying between the process's standard streams
// and a shell described by opts. The lister is injectable so scans are
// testable against scripted process trees.
func New(cfg *config.Config, log *logging.Logger, metrics *monitoring.Metrics, lister procscan.Lister, opts Options) *Supervisor {
	if opts.Rows == 0 {
		opts.Rows = 24
	}
	if opts.Cols == 0 {
		opts.Cols = 80
	}

	sessionID := id.NewSessionID()

	return &Supervisor{
		cfg:      cfg,
		log:      log.WithSession(string(sessionID)),
		metrics:  metrics,
		id:       sessionID,
		opts:     opts,
		in:       os.Stdin,
		inFd:     int(os.Stdin.Fd()),
		out:      os.Stdout,
		notifier: notify.NewNotifier(os.Stdout),
		scanner:  procscan.NewScanner(lister, cfg.Scan.MaxDepth, cfg.Scan.BatchSize),
		resolver: procscan.NewResolver(lister),
	}
}

// Start allocates the pty and spawns the shell as an interactive login
// shell, falling back to the configured secondary binary. A pty-allocation
// failure is fatal; both shells failing returns ErrShellNotFound.
func (s *Supervisor) Start() error {
	dev, tty, err := termdev.Open(s.opts.Rows, s.opts.Cols)
	if err != nil {
		return err
	}

	cmd := s.shellCmd(s.cfg.Shell.Path)
	if startErr := termdev.StartChild(cmd, tty); startErr != nil {
		s.log.Warn("shell failed to start, trying fallback",
			zap.String("shell", s.cfg.Shell.Path),
			zap.Error(startErr))

		cmd = s.shellCmd(s.cfg.Shell.Fallback)
		if fallbackErr := termdev.StartChild(cmd, tty); fallbackErr != nil {
			tty.Close()
			dev.Close()
			return fmt.Errorf("%w: %s (%v), %s (%v)", ErrShellNotFound,
				s.cfg.Shell.Path, startErr, s.cfg.Shell.Fallback, fallbackErr)
		}
	}
	tty.Close()

	s.dev = dev
	s.pid = cmd.Process.Pid

	// A stalled peer must never block the loop past one read.
	if err := termdev.SetNonblock(s.inFd); err != nil {
		s.log.Debug("failed to set stdin non-blocking", zap.Error(err))
	}
	if err := termdev.SetNonblock(dev.Fd()); err != nil {
		s.log.Debug("failed to set pty non-blocking", zap.Error(err))
	}

	s.log.Info("session started",
		zap.String("shell", cmd.Path),
		zap.Int("pid", s.pid),
		zap.Uint16("rows", s.opts.Rows),
		zap.Uint16("cols", s.opts.Cols),
		zap.String("dir", s.opts.WorkingDir))

	if len(s.opts.StartupCommands) > 0 {
		go s.injectStartupCommands(s.opts.StartupCommands)
	}

	return nil
}

// shellCmd builds the interactive login-shell command for the session.
func (s *Supervisor) shellCmd(shell string) *exec.Cmd {
	cmd := exec.Command(shell, "-l", "-i")
	cmd.Dir = s.opts.WorkingDir
	cmd.Env = append(os.Environ(),
		"TERM="+s.cfg.Shell.Term,
		"COLUMNS="+strconv.Itoa(int(s.opts.Cols)),
		"LINES="+strconv.Itoa(int(s.opts.Rows)),
	)
	return cmd
}

// childExited reports whether the shell has exited, reaping it on first
// observation.
func (s *Supervisor) childExited() bool {
	if s.reaped.Load() {
		return true
	}
	if s.pid > 0 && termdev.Reaped(s.pid) {
		s.reaped.Store(true)
		return true
	}
	return false
}

// Shutdown terminates the child's process group: SIGTERM, a bounded grace
// wait, then SIGKILL. Used when the controlling process is asked to exit
// while the shell is still alive.
func (s *Supervisor) Shutdown() {
	if s.pid <= 0 || s.childExited() {
		return
	}

	s.log.Info("terminating session", zap.Int("pid", s.pid))
	if err := termdev.TerminateGroup(s.pid); err != nil {
		s.log.Debug("failed to signal process group", zap.Error(err))
	}

	deadline := time.Now().Add(s.cfg.Session.StopGrace)
	for time.Now().Before(deadline) {
		if s.childExited() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}

	if err := termdev.KillGroup(s.pid); err != nil {
		s.log.Debug("failed to kill process group", zap.Error(err))
	}
}
