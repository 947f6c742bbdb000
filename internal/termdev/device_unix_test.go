//go:build linux || darwin

package termdev

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitReadable(t *testing.T) {
	r1, w1, err := os.Pipe()
	require.NoError(t, err)
	defer r1.Close()
	defer w1.Close()

	r2, w2, err := os.Pipe()
	require.NoError(t, err)
	defer r2.Close()
	defer w2.Close()

	// Nothing pending: the wait times out with neither readable.
	ready1, ready2 := WaitReadable(int(r1.Fd()), int(r2.Fd()), 20*time.Millisecond)
	assert.False(t, ready1)
	assert.False(t, ready2)

	// Data on the second pipe only.
	_, err = w2.Write([]byte("x"))
	require.NoError(t, err)

	ready1, ready2 = WaitReadable(int(r1.Fd()), int(r2.Fd()), time.Second)
	assert.False(t, ready1)
	assert.True(t, ready2)
}

func TestOpenAndResize(t *testing.T) {
	dev, tty, err := Open(24, 80)
	require.NoError(t, err)
	defer dev.Close()
	defer tty.Close()

	assert.Greater(t, dev.Fd(), 0)
	assert.NoError(t, dev.Resize(40, 120))
}

func TestSetNonblock(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	assert.NoError(t, SetNonblock(int(r.Fd())))
}
