// Package callgraph implements the Call-Graph Constructor (spec.md §4.6):
// a single FIFO-worklist-driven fixpoint shared by the CHA and RTA
// dispatch variants.
package callgraph

import (
	"github.com/cherrygraph/cherry/hierarchy"
	"github.com/cherrygraph/cherry/model"
)

// Build runs the worklist fixpoint from entryPoints and returns the
// resulting edges in first-seen order, deduplicated.
func Build(h *hierarchy.Hierarchy, algorithm Algorithm, entryPoints []model.MethodRef) []model.CallEdge {
	d := newDispatcher(h, algorithm)

	reachable := make(map[string]bool)
	var worklist []model.MethodRef
	push := func(m model.MethodRef) {
		key := m.Key()
		if reachable[key] {
			return
		}
		reachable[key] = true
		worklist = append(worklist, m)
	}

	edgeSeen := make(map[string]bool)
	var edges []model.CallEdge
	insert := func(src, dst model.MethodRef) {
		key := src.Key() + ">" + dst.Key()
		if edgeSeen[key] {
			return
		}
		edgeSeen[key] = true
		edges = append(edges, model.CallEdge{Source: src, Target: dst})
	}

	for _, e := range entryPoints {
		push(e)
	}

	for len(worklist) > 0 {
		m := worklist[0]
		worklist = worklist[1:]

		decl, ok := h.Get(m.OwnerFQN)
		if !ok {
			continue
		}
		method := decl.Method(m.Name, m.Descriptor)
		if method == nil {
			continue
		}

		for _, cs := range method.CallSites {
			for _, t := range d.dispatch(m, cs) {
				insert(m, t)
				push(t)
			}
		}

		for _, unlocked := range d.observe(m, method) {
			insert(unlocked.caller, unlocked.target)
			push(unlocked.target)
		}
	}

	return edges
}
