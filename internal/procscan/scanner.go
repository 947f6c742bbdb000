package procscan

import "strings"

// AgentState is the result of a process-tree scan: either no agent, or the
// kind of the first agent discovered.
type AgentState struct {
	Active bool
	Kind   string
}

// Signature classifies a descendant process as a known interactive agent.
// Match receives pre-lowercased comm and args.
type Signature struct {
	Kind  string
	Match func(comm, args string) bool
}

// DefaultSignatures covers the agents the engine knows how to announce.
// Evaluated in order per process; first match wins.
var DefaultSignatures = []Signature{
	{
		Kind: "claude",
		Match: func(comm, _ string) bool {
			return strings.Contains(comm, "claude")
		},
	},
	{
		Kind: "gemini",
		Match: func(comm, args string) bool {
			return strings.Contains(args, "/bin/gemini") ||
				strings.Contains(" "+args+" ", " gemini ") ||
				comm == "gemini"
		},
	},
	{
		Kind: "codex",
		Match: func(comm, args string) bool {
			return strings.Contains(comm, "codex") || strings.Contains(args, "/bin/codex")
		},
	},
}

// Scanner walks a process tree looking for agent signatures.
type Scanner struct {
	lister     Lister
	maxDepth   int
	batchSize  int
	signatures []Signature
}

// NewScanner creates a scanner over the given lister.
func NewScanner(lister Lister, maxDepth, batchSize int) *Scanner {
	if maxDepth <= 0 {
		maxDepth = 5
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Scanner{
		lister:     lister,
		maxDepth:   maxDepth,
		batchSize:  batchSize,
		signatures: DefaultSignatures,
	}
}

// node is transient BFS state; nothing survives a scan.
type node struct {
	pid   int
	depth int
}

// Scan walks descendants of root breadth-first, bounded by maxDepth, and
// returns the state of the first process matching an agent signature.
// Ties break on BFS discovery order, not recency. A tree with no
// descendants returns inactive without issuing any info query.
func (s *Scanner) Scan(root int) AgentState {
	var descendants []int
	seen := map[int]bool{root: true}
	queue := []node{{pid: root, depth: 0}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.depth >= s.maxDepth {
			continue
		}
		for _, child := range s.lister.Children(n.pid) {
			if seen[child] {
				continue
			}
			seen[child] = true
			descendants = append(descendants, child)
			queue = append(queue, node{pid: child, depth: n.depth + 1})
		}
	}

	if len(descendants) == 0 {
		return AgentState{}
	}

	// Batched queries keep each ps invocation under argv length limits.
	for start := 0; start < len(descendants); start += s.batchSize {
		end := start + s.batchSize
		if end > len(descendants) {
			end = len(descendants)
		}
		for _, info := range s.lister.Info(descendants[start:end]) {
			comm := strings.ToLower(info.Comm)
			args := strings.ToLower(info.Args)
			for _, sig := range s.signatures {
				if sig.Match(comm, args) {
					return AgentState{Active: true, Kind: sig.Kind}
				}
			}
		}
	}

	return AgentState{}
}
