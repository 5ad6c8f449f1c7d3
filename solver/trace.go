package solver

import (
	"sort"
	"strconv"
	"strings"
)

// Trace is an optional diagnostic artifact: a flat map from move-index
// path prefixes to a small per-node record. It exists for offline
// analysis of a run and is not part of the solving contract. Interior
// nodes keep the zero outcome; only terminal and pruned nodes carry a
// meaningful classification.
type Trace struct {
	nodes map[string]*TraceNode
}

// TraceNode is the per-path record.
type TraceNode struct {
	Branches  int
	MoveCount int
	Outcome   Outcome
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{nodes: make(map[string]*TraceNode)}
}

// record upserts a node. It is nil-safe so the solver can call it
// unconditionally.
func (t *Trace) record(path []int, branches, moveCount int, outcome Outcome) {
	if t == nil {
		return
	}
	t.nodes[PathKey(path)] = &TraceNode{
		Branches:  branches,
		MoveCount: moveCount,
		Outcome:   outcome,
	}
}

// Node looks up the record for a path, or nil.
func (t *Trace) Node(path []int) *TraceNode {
	if t == nil {
		return nil
	}
	return t.nodes[PathKey(path)]
}

// Len is the number of recorded nodes.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Keys returns every recorded path key in sorted order.
func (t *Trace) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.nodes))
	for k := range t.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PathKey renders a move-index path as the flat map key, e.g. "1/3/2".
// The root path is the empty string.
func PathKey(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "/")
}
