package procscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeLister serves scripted process trees and records info queries.
type fakeLister struct {
	children  map[int][]int
	info      map[int]ProcInfo
	comms     map[int]string
	infoCalls [][]int
}

func (f *fakeLister) Children(pid int) []int {
	return f.children[pid]
}

func (f *fakeLister) Info(pids []int) []ProcInfo {
	f.infoCalls = append(f.infoCalls, append([]int(nil), pids...))

	var infos []ProcInfo
	for _, pid := range pids {
		if info, ok := f.info[pid]; ok {
			infos = append(infos, info)
		}
	}
	return infos
}

func (f *fakeLister) Comm(pid int) string {
	return f.comms[pid]
}

func TestScanNoDescendants(t *testing.T) {
	lister := &fakeLister{children: map[int][]int{}}
	scanner := NewScanner(lister, 5, 50)

	state := scanner.Scan(100)

	assert.Equal(t, AgentState{}, state)
	assert.Empty(t, lister.infoCalls, "empty tree must not issue an info query")
}

func TestScanFindsClaude(t *testing.T) {
	lister := &fakeLister{
		children: map[int][]int{
			100: {101},
			101: {102},
		},
		info: map[int]ProcInfo{
			101: {Comm: "node", Args: "node server.js"},
			102: {Comm: "claude", Args: "claude --resume"},
		},
	}
	scanner := NewScanner(lister, 5, 50)

	state := scanner.Scan(100)

	assert.Equal(t, AgentState{Active: true, Kind: "claude"}, state)
}

func TestScanCaseInsensitive(t *testing.T) {
	lister := &fakeLister{
		children: map[int][]int{100: {101}},
		info:     map[int]ProcInfo{101: {Comm: "Claude", Args: ""}},
	}
	scanner := NewScanner(lister, 5, 50)

	state := scanner.Scan(100)

	assert.True(t, state.Active)
	assert.Equal(t, "claude", state.Kind)
}

func TestScanGeminiByArgs(t *testing.T) {
	lister := &fakeLister{
		children: map[int][]int{100: {101}},
		info: map[int]ProcInfo{
			101: {Comm: "node", Args: "/usr/local/bin/gemini chat"},
		},
	}
	scanner := NewScanner(lister, 5, 50)

	state := scanner.Scan(100)

	assert.Equal(t, AgentState{Active: true, Kind: "gemini"}, state)
}

func TestScanCodex(t *testing.T) {
	lister := &fakeLister{
		children: map[int][]int{100: {101}},
		info:     map[int]ProcInfo{101: {Comm: "codex", Args: "codex exec"}},
	}
	scanner := NewScanner(lister, 5, 50)

	state := scanner.Scan(100)

	assert.Equal(t, AgentState{Active: true, Kind: "codex"}, state)
}

func TestScanFirstMatchWinsInDiscoveryOrder(t *testing.T) {
	// codex sits at depth 1, claude at depth 2; the earlier-discovered
	// process wins regardless of which signature ranks first.
	lister := &fakeLister{
		children: map[int][]int{
			100: {101},
			101: {102},
		},
		info: map[int]ProcInfo{
			101: {Comm: "codex", Args: ""},
			102: {Comm: "claude", Args: ""},
		},
	}
	scanner := NewScanner(lister, 5, 50)

	state := scanner.Scan(100)

	assert.Equal(t, "codex", state.Kind)
}

func TestScanDepthBound(t *testing.T) {
	// Chain 100 -> 101 -> ... -> 106; the agent at depth 6 is out of range.
	lister := &fakeLister{
		children: map[int][]int{
			100: {101}, 101: {102}, 102: {103},
			103: {104}, 104: {105}, 105: {106},
		},
		info: map[int]ProcInfo{106: {Comm: "claude", Args: ""}},
	}
	scanner := NewScanner(lister, 5, 50)

	state := scanner.Scan(100)

	assert.False(t, state.Active)
}

func TestScanCycleGuard(t *testing.T) {
	lister := &fakeLister{
		children: map[int][]int{
			100: {101},
			101: {102},
			102: {100, 101}, // scripted cycle
		},
		info: map[int]ProcInfo{},
	}
	scanner := NewScanner(lister, 5, 50)

	state := scanner.Scan(100)

	assert.False(t, state.Active)
}

func TestScanBatching(t *testing.T) {
	children := map[int][]int{}
	var kids []int
	for pid := 101; pid <= 175; pid++ {
		kids = append(kids, pid)
	}
	children[100] = kids

	lister := &fakeLister{children: children, info: map[int]ProcInfo{}}
	scanner := NewScanner(lister, 5, 50)

	scanner.Scan(100)

	assert.Len(t, lister.infoCalls, 2)
	assert.Len(t, lister.infoCalls[0], 50)
	assert.Len(t, lister.infoCalls[1], 25)
}

func TestScanSkipsFailedQueries(t *testing.T) {
	// 101 is unqueryable (omitted from info); the scan still reaches 102.
	lister := &fakeLister{
		children: map[int][]int{100: {101, 102}},
		info:     map[int]ProcInfo{102: {Comm: "claude", Args: ""}},
	}
	scanner := NewScanner(lister, 5, 50)

	state := scanner.Scan(100)

	assert.True(t, state.Active)
}
