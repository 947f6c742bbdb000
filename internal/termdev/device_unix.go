//go:build linux || darwin

package termdev

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// StartChild starts cmd in a new session with tty as its controlling
// terminal, duplicated onto the child's standard streams.
func StartChild(cmd *exec.Cmd, tty *os.File) error {
	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}
	return cmd.Start()
}

// NotifyResize delivers SIGWINCH to the child's process group so the shell
// and any foreground job can react to the new dimensions.
func NotifyResize(pid int) error {
	return SignalGroup(pid, unix.SIGWINCH)
}

// TerminateGroup asks the child's process group to exit.
func TerminateGroup(pid int) error {
	return SignalGroup(pid, unix.SIGTERM)
}

// KillGroup forcibly kills the child's process group.
func KillGroup(pid int) error {
	return SignalGroup(pid, unix.SIGKILL)
}

// SignalGroup delivers sig to the entire process group led by pid, so the
// shell and any foreground job both receive it.
func SignalGroup(pid int, sig unix.Signal) error {
	return unix.Kill(-pid, sig)
}

// Reaped performs a non-blocking wait on pid and reports whether the child
// has exited and been collected.
func Reaped(pid int) bool {
	var status unix.WaitStatus
	wpid, err := unix.Wait4(pid, &status, unix.WNOHANG, nil)
	return err == nil && wpid == pid
}

// SetNonblock switches a descriptor to non-blocking mode so a spurious
// readability report can never stall the loop.
func SetNonblock(fd int) error {
	return unix.SetNonblock(fd, true)
}

// WaitReadable blocks until one of the two descriptors is readable or the
// timeout elapses. An interrupted or failed wait reports neither readable;
// the caller's next iteration retries.
func WaitReadable(fd1, fd2 int, timeout time.Duration) (r1, r2 bool) {
	var fds unix.FdSet
	fds.Zero()
	fds.Set(fd1)
	fds.Set(fd2)

	nfds := fd1
	if fd2 > nfds {
		nfds = fd2
	}

	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(nfds+1, &fds, nil, nil, &tv)
	if err != nil || n <= 0 {
		return false, false
	}
	return fds.IsSet(fd1), fds.IsSet(fd2)
}
