package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/termbridge/termbridge/internal/escape"
	"github.com/termbridge/termbridge/internal/termdev"
)

// trailer is written to the client exactly once, after the shell is reaped.
const trailer = "\r\n[Shell terminated.]\r\n"

// flusher matches bufio-style buffered writers on the output path.
type flusher interface {
	Flush() error
}

// Run drives the multiplexing loop until the shell exits. Individual
// read/write failures are transient; the only termination condition is a
// successful reap of the child.
func (s *Supervisor) Run() error {
	defer s.dev.Close()

	inBuf := make([]byte, s.cfg.Session.ReadChunkSize)
	ptyBuf := make([]byte, s.cfg.Session.ReadChunkSize)

	for !s.childExited() {
		now := time.Now()
		s.checkAgent(now, false)
		s.checkForeground(now)

		inReady, ptyReady := termdev.WaitReadable(s.inFd, s.dev.Fd(), s.cfg.Session.SelectTimeout)
		if inReady {
			s.handleInput(inBuf)
		}
		if ptyReady {
			s.forwardOutput(ptyBuf)
		}

		if s.metrics != nil {
			s.metrics.UpdateUptime()
		}
	}

	s.writeOut([]byte(trailer))
	s.log.Info("session ended", zap.Int("pid", s.pid))
	return nil
}

// checkAgent scans the descendant tree when the periodic interval has
// elapsed, emitting a notification only when the state changed. A forced
// check bypasses the interval gate, emits unconditionally, and resets the
// periodic timer.
func (s *Supervisor) checkAgent(now time.Time, force bool) {
	if !force && now.Sub(s.lastAgentCheck) < s.cfg.Scan.AgentInterval {
		return
	}
	s.lastAgentCheck = now

	state := s.scanner.Scan(s.pid)
	if s.metrics != nil {
		s.metrics.ScansTotal.WithLabelValues("agent").Inc()
	}

	if force || state != s.lastAgent {
		if err := s.notifier.AgentStatus(state.Active, state.Kind); err != nil {
			s.log.Debug("failed to emit agent status", zap.Error(err))
		} else if s.metrics != nil {
			s.metrics.NotificationsTotal.WithLabelValues("cli_agent_status").Inc()
		}
		s.lastAgent = state
	}
}

// checkForeground resolves the foreground name when its interval has
// elapsed. Only a change to a new non-empty name is announced; a
// transition to "nothing resolvable" is stored but never emitted.
func (s *Supervisor) checkForeground(now time.Time) {
	if now.Sub(s.lastFgCheck) < s.cfg.Scan.ForegroundInterval {
		return
	}
	s.lastFgCheck = now

	name := s.resolver.Foreground(s.pid)
	if s.metrics != nil {
		s.metrics.ScansTotal.WithLabelValues("foreground").Inc()
	}

	if name != s.lastFg {
		if name != "" {
			if err := s.notifier.ForegroundProcess(name); err != nil {
				s.log.Debug("failed to emit foreground process", zap.Error(err))
			} else if s.metrics != nil {
				s.metrics.NotificationsTotal.WithLabelValues("foreground_process").Inc()
			}
		}
		s.lastFg = name
	}
}

// handleInput reads one chunk of client input, applies the in-band
// directives, and forwards the rest to the pty.
func (s *Supervisor) handleInput(buf []byte) {
	n, err := s.in.Read(buf)
	if err != nil || n == 0 {
		return
	}
	chunk := buf[:n]
	if s.metrics != nil {
		s.metrics.BytesIn.Add(float64(n))
	}

	// Embedded NUL is the client's forced-rescan trigger: strip it,
	// rescan immediately, and emit the result regardless of the last
	// state or the periodic timer.
	if filtered, found := escape.StripNUL(chunk); found {
		chunk = filtered
		s.checkAgent(time.Now(), true)
	}

	rest, resize := escape.Intercept(chunk)
	if resize != nil {
		s.applyResize(resize.Rows, resize.Cols)
	}

	if len(rest) == 0 {
		return
	}
	s.ptyMu.Lock()
	_, err = s.dev.Write(rest)
	s.ptyMu.Unlock()
	if err != nil {
		s.log.Debug("failed to write to pty", zap.Error(err))
	}
}

// forwardOutput relays one chunk of pty output to the client verbatim.
func (s *Supervisor) forwardOutput(buf []byte) {
	n, err := s.dev.Read(buf)
	if err != nil || n == 0 {
		return
	}
	s.writeOut(buf[:n])
	if s.metrics != nil {
		s.metrics.BytesOut.Add(float64(n))
	}
}

// applyResize updates the pty dimensions and signals the child's process
// group so the shell and any foreground job redraw.
func (s *Supervisor) applyResize(rows, cols uint16) {
	if err := s.dev.Resize(rows, cols); err != nil {
		s.log.Debug("failed to resize pty", zap.Error(err))
		return
	}
	s.opts.Rows = rows
	s.opts.Cols = cols
	if s.metrics != nil {
		s.metrics.ResizesTotal.Inc()
	}

	if s.pid > 0 {
		if err := termdev.NotifyResize(s.pid); err != nil {
			s.log.Debug("failed to signal resize", zap.Error(err))
		}
	}
}

// writeOut writes to the client stream and flushes immediately. Latency
// beats throughput on this path.
func (s *Supervisor) writeOut(p []byte) {
	if _, err := s.out.Write(p); err != nil {
		s.log.Debug("failed to write output", zap.Error(err))
		return
	}
	if f, ok := s.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			s.log.Debug("failed to flush output", zap.Error(err))
		}
	}
}
