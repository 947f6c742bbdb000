package procscan

import (
	"os/exec"
	"strconv"
	"strings"
)

// ProcInfo describes one process returned from a batched info query.
type ProcInfo struct {
	Comm string
	Args string
}

// Lister enumerates processes. Implementations are best-effort: a failed
// query returns an empty result, never an error.
type Lister interface {
	// Children returns the direct child pids of pid.
	Children(pid int) []int

	// Info returns comm and args for the given pids, preserving the query
	// facility's output order. Pids that could not be queried are omitted.
	Info(pids []int) []ProcInfo

	// Comm returns the command name of a single pid, or "" on failure.
	Comm(pid int) string
}

// ExecLister queries processes through pgrep and ps.
type ExecLister struct{}

// NewExecLister returns the standard pgrep/ps-backed lister.
func NewExecLister() *ExecLister {
	return &ExecLister{}
}

// Children returns the direct children of pid via pgrep -P.
func (l *ExecLister) Children(pid int) []int {
	out, err := exec.Command("pgrep", "-P", strconv.Itoa(pid)).Output()
	if err != nil {
		return nil
	}

	var pids []int
	for _, line := range strings.Split(string(out), "\n") {
		child, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		pids = append(pids, child)
	}
	return pids
}

// Info returns comm and args for the given pids via a single ps invocation.
// The caller batches pid lists to respect argv length limits.
func (l *ExecLister) Info(pids []int) []ProcInfo {
	if len(pids) == 0 {
		return nil
	}

	args := make([]string, len(pids))
	for i, pid := range pids {
		args[i] = strconv.Itoa(pid)
	}

	out, err := exec.Command("ps", "-o", "comm=,args=", "-p", strings.Join(args, ",")).Output()
	if err != nil {
		return nil
	}

	var infos []ProcInfo
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		infos = append(infos, ProcInfo{
			Comm: fields[0],
			Args: strings.Join(fields[1:], " "),
		})
	}
	return infos
}

// Comm returns the command name of pid via ps -o comm=.
func (l *ExecLister) Comm(pid int) string {
	out, err := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "comm=").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
