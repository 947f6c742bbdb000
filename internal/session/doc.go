// Package session owns the pty/shell lifecycle and the multiplexing loop.
//
// One Supervisor runs one session: it allocates the pty, spawns the login
// shell, and then single-threadedly interleaves four duties until the child
// is reaped — forwarding client input to the pty, forwarding pty output to
// the client, polling the descendant process tree for agent activity, and
// resolving the foreground process name. Scans and notifications execute
// synchronously between bounded readability waits; a slow process query
// stalls forwarding for its duration, which is accepted because scans are
// rate-limited to once per few seconds.
//
// The only concurrent writer is the startup-command injector, whose pty
// writes serialize against the loop's through a shared mutex.
package session
