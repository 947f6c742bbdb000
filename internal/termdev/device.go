package termdev

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

// Device owns the controlling end of an allocated pseudo-terminal.
type Device struct {
	ptmx *os.File
}

// Open allocates a pty pair with the given initial size. The returned
// Device is the controlling end; the peer end is handed to the child and
// must be closed by the caller once the child has started.
func Open(rows, cols uint16) (*Device, *os.File, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to allocate pty: %w", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		ptmx.Close()
		tty.Close()
		return nil, nil, fmt.Errorf("failed to size pty: %w", err)
	}
	return &Device{ptmx: ptmx}, tty, nil
}

// File returns the controlling-end file.
func (d *Device) File() *os.File {
	return d.ptmx
}

// Fd returns the controlling-end descriptor for readability waits.
func (d *Device) Fd() int {
	return int(d.ptmx.Fd())
}

// Read reads pending output from the pty.
func (d *Device) Read(p []byte) (int, error) {
	return d.ptmx.Read(p)
}

// Write forwards input bytes to the pty.
func (d *Device) Write(p []byte) (int, error) {
	return d.ptmx.Write(p)
}

// Resize applies new dimensions to the pty window-size attribute.
func (d *Device) Resize(rows, cols uint16) error {
	return pty.Setsize(d.ptmx, &pty.Winsize{Rows: rows, Cols: cols})
}

// Close releases the controlling end.
func (d *Device) Close() error {
	return d.ptmx.Close()
}
