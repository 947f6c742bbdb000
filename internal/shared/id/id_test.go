package id

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestNewSessionID(t *testing.T) {
	sid := NewSessionID()

	if !strings.HasPrefix(string(sid), SessionPrefix+"_") {
		t.Errorf("Session ID should start with '%s_', got: %s", SessionPrefix, sid)
	}

	parts := strings.Split(string(sid), "_")
	if len(parts) != 2 || len(parts[1]) != 26 {
		t.Errorf("Session ID should have format 'sess_<26-char ulid>', got: %s", sid)
	}
}

func TestGenerateConcurrent(t *testing.T) {
	gen := NewGenerator()

	const n = 64
	ids := make([]string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = gen.Generate().String()
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
