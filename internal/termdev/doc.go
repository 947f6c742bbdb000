// Package termdev provides the platform terminal-device capability: pty
// allocation, window-size control, process-group signaling, non-blocking
// child reaping, and bounded readability waits.
//
// It is the only package that touches raw descriptors and syscalls; the
// session loop above it speaks in Device handles and time.Durations.
package termdev
