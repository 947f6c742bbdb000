// Package procscan inspects the shell's descendant process tree.
//
// Two heuristics live here: the agent scanner, which walks descendants
// breadth-first looking for known interactive CLI agents (claude, gemini,
// codex), and the foreground resolver, which names the process most likely
// occupying the shell's foreground.
//
// Everything is best-effort. Process enumeration races against the tree it
// observes; failed queries are skipped and an unscannable tree reads as
// "no agent" rather than an error. Periodic re-polling is the retry policy.
package procscan
