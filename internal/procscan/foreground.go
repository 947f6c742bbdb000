package procscan

import "path/filepath"

// Resolver names the process most likely occupying the shell's foreground.
//
// The heuristic prefers the most recently spawned direct child of the shell;
// process groups and tty ownership are never queried. The underlying lister
// gives no ordering guarantee across platforms, so this is a best-effort
// approximation, not a correctness guarantee.
type Resolver struct {
	lister Lister
}

// NewResolver creates a resolver over the given lister.
func NewResolver(lister Lister) *Resolver {
	return &Resolver{lister: lister}
}

// Foreground returns the display name (path basename) of the newest direct
// child of shellPID, falling back to the shell's own command name when the
// shell has no children. Returns "" only when every lookup fails.
func (r *Resolver) Foreground(shellPID int) string {
	children := r.lister.Children(shellPID)
	for i := len(children) - 1; i >= 0; i-- {
		if name := r.lister.Comm(children[i]); name != "" {
			return filepath.Base(name)
		}
	}

	if name := r.lister.Comm(shellPID); name != "" {
		return filepath.Base(name)
	}
	return ""
}
