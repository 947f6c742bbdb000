package session

import (
	"time"

	"go.uber.org/zap"
)

// injectStartupCommands writes each configured command to the pty after a
// settle delay, staggering successive commands so they do not interleave
// with the shell's prompt redraw. Runs on its own goroutine; every pty
// write goes through the shared mutex.
func (s *Supervisor) injectStartupCommands(commands []string) {
	time.Sleep(s.cfg.Session.InjectDelay)

	for i, command := range commands {
		time.Sleep(time.Duration(i) * s.cfg.Session.InjectStagger)

		s.ptyMu.Lock()
		_, err := s.dev.Write([]byte(command + "\n"))
		s.ptyMu.Unlock()

		if err != nil {
			s.log.Warn("failed to inject startup command",
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		if s.metrics != nil {
			s.metrics.InjectedCommands.Inc()
		}
		s.log.Debug("injected startup command", zap.Int("index", i))
	}
}
