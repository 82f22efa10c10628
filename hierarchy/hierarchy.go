// Package hierarchy implements the Type Hierarchy (spec.md §4.3): the
// repository of loaded ClassDecls plus the memoized supertype/subtype/
// implementor closures and the three dispatch-resolution queries the
// Call-Graph Constructor relies on.
package hierarchy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cherrygraph/cherry/model"
)

// CycleError is returned by Freeze when the supertype/implements graph
// contains a cycle; spec.md §7 marks this the one fatal error in the
// taxonomy.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("hierarchy cycle detected: %v", e.Cycle)
}

// Hierarchy stores every loaded ClassDecl and answers supertype/subtype/
// resolution queries against it. Add may only be called before Freeze;
// every query may only be called after.
type Hierarchy struct {
	classes map[string]*model.ClassDecl
	order   []string // insertion order, for building subtypes deterministically
	frozen  bool

	mu              sync.Mutex
	allSupertypes   map[string][]string
	subtypesCache   map[string][]string
	subtypesBuilt   bool
	implementors    map[string][]string
}

// New returns an empty Hierarchy.
func New() *Hierarchy {
	return &Hierarchy{
		classes: make(map[string]*model.ClassDecl),
	}
}

// Add registers decl. It is a no-op (first-wins) if a class with the same
// FQN is already present; the caller is expected to report that as a
// DuplicateType warning. Add panics if called after Freeze.
func (h *Hierarchy) Add(decl *model.ClassDecl) (added bool) {
	if h.frozen {
		panic("hierarchy: Add called after Freeze")
	}
	if _, exists := h.classes[decl.FQN]; exists {
		return false
	}
	h.classes[decl.FQN] = decl
	h.order = append(h.order, decl.FQN)
	return true
}

// Freeze disables further mutation and validates the supertype graph is
// acyclic. It must be called before any query method.
func (h *Hierarchy) Freeze() error {
	if cycle := h.findCycle(); cycle != nil {
		return &CycleError{Cycle: cycle}
	}
	h.frozen = true
	return nil
}

func (h *Hierarchy) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(h.classes))
	var path []string

	var visit func(fqn string) []string
	visit = func(fqn string) []string {
		color[fqn] = gray
		path = append(path, fqn)
		for _, super := range h.directSupertypesOf(fqn) {
			if _, ok := h.classes[super]; !ok {
				continue // unresolved supertype, tolerated
			}
			switch color[super] {
			case gray:
				return append(append([]string{}, path...), super)
			case white:
				if cyc := visit(super); cyc != nil {
					return cyc
				}
			}
		}
		path = path[:len(path)-1]
		color[fqn] = black
		return nil
	}

	for _, fqn := range h.order {
		if color[fqn] == white {
			if cyc := visit(fqn); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

// Get returns the ClassDecl for fqn, if loaded.
func (h *Hierarchy) Get(fqn string) (*model.ClassDecl, bool) {
	decl, ok := h.classes[fqn]
	return decl, ok
}

// FQNs returns every loaded class's FQN in lexicographic order.
func (h *Hierarchy) FQNs() []string {
	out := make([]string, 0, len(h.classes))
	for fqn := range h.classes {
		out = append(out, fqn)
	}
	sort.Strings(out)
	return out
}

func (h *Hierarchy) directSupertypesOf(fqn string) []string {
	decl, ok := h.classes[fqn]
	if !ok {
		return nil
	}
	out := make([]string, 0, 1+len(decl.DirectlyImplemented))
	if decl.SuperFQN != "" {
		out = append(out, decl.SuperFQN)
	}
	out = append(out, decl.DirectlyImplemented...)
	return out
}

// DirectSupertypes returns the union of super_fqn and directly_implemented
// for fqn.
func (h *Hierarchy) DirectSupertypes(fqn string) []string {
	return h.directSupertypesOf(fqn)
}

// AllSupertypes returns the transitive closure of DirectSupertypes,
// memoized per fqn.
func (h *Hierarchy) AllSupertypes(fqn string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.allSupertypes == nil {
		h.allSupertypes = make(map[string][]string)
	}
	if cached, ok := h.allSupertypes[fqn]; ok {
		return cached
	}
	seen := map[string]bool{}
	var order []string
	var walk func(string)
	walk = func(cur string) {
		for _, s := range h.directSupertypesOf(cur) {
			if seen[s] {
				continue
			}
			seen[s] = true
			order = append(order, s)
			walk(s)
		}
	}
	walk(fqn)
	h.allSupertypes[fqn] = order
	return order
}

// Subtypes returns the transitive closure of the reverse direction of
// DirectSupertypes, built lazily on first call by one full forward sweep.
func (h *Hierarchy) Subtypes(fqn string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureSubtypesBuilt()
	return h.subtypesCache[fqn]
}

// ensureSubtypesBuilt must be called with h.mu held.
func (h *Hierarchy) ensureSubtypesBuilt() {
	if h.subtypesBuilt {
		return
	}
	direct := make(map[string][]string) // super -> immediate children
	for _, fqn := range h.order {
		for _, super := range h.directSupertypesOf(fqn) {
			direct[super] = append(direct[super], fqn)
		}
	}

	h.subtypesCache = make(map[string][]string, len(h.classes))
	var collect func(root string) []string
	memo := make(map[string][]string)
	var visiting map[string]bool = map[string]bool{}
	collect = func(root string) []string {
		if cached, ok := memo[root]; ok {
			return cached
		}
		if visiting[root] {
			return nil // cycle already rejected at Freeze time; defensive only
		}
		visiting[root] = true
		seen := map[string]bool{}
		var order []string
		for _, child := range direct[root] {
			if !seen[child] {
				seen[child] = true
				order = append(order, child)
			}
			for _, grandchild := range collect(child) {
				if !seen[grandchild] {
					seen[grandchild] = true
					order = append(order, grandchild)
				}
			}
		}
		visiting[root] = false
		memo[root] = order
		return order
	}

	for _, fqn := range h.order {
		h.subtypesCache[fqn] = collect(fqn)
	}
	h.subtypesBuilt = true
}

// Implementors returns Subtypes(fqn) restricted to concrete, non-abstract
// classes.
func (h *Hierarchy) Implementors(fqn string) []string {
	h.mu.Lock()
	h.ensureSubtypesBuilt()
	subs := h.subtypesCache[fqn]
	h.mu.Unlock()

	out := make([]string, 0, len(subs))
	for _, s := range subs {
		decl, ok := h.classes[s]
		if !ok {
			continue
		}
		if decl.IsConcrete() {
			out = append(out, s)
		}
	}
	return out
}

// ResolveVirtual walks from receiverFQN up through SuperFQN looking for a
// declared (name, descriptor) match; if none is found, it falls back to a
// breadth-first search of receiverFQN's supertypes for a matching method
// declared on an interface (a default method), whatever the receiver's kind.
func (h *Hierarchy) ResolveVirtual(receiverFQN, name, descriptor string) (model.MethodRef, bool) {
	for fqn := receiverFQN; fqn != ""; {
		decl, ok := h.classes[fqn]
		if !ok {
			break
		}
		if m := decl.Method(name, descriptor); m != nil {
			return m.Ref(), true
		}
		fqn = decl.SuperFQN
	}

	// breadth-first search over implemented interfaces' default methods.
	visited := map[string]bool{}
	queue := h.directSupertypesOf(receiverFQN)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		decl, ok := h.classes[cur]
		if !ok {
			continue
		}
		if decl.Kind == model.Interface {
			if m := decl.Method(name, descriptor); m != nil {
				return m.Ref(), true
			}
		}
		queue = append(queue, h.directSupertypesOf(cur)...)
	}
	return model.MethodRef{}, false
}

// ResolveStatic looks up (name, descriptor) on ownerFQN only.
func (h *Hierarchy) ResolveStatic(ownerFQN, name, descriptor string) (model.MethodRef, bool) {
	decl, ok := h.classes[ownerFQN]
	if !ok {
		return model.MethodRef{}, false
	}
	m := decl.Method(name, descriptor)
	if m == nil {
		return model.MethodRef{}, false
	}
	return m.Ref(), true
}

// ResolveSpecial is identical to ResolveStatic for this core: SPECIAL
// dispatches directly to the named owner (spec.md §4.3).
func (h *Hierarchy) ResolveSpecial(ownerFQN, name, descriptor string) (model.MethodRef, bool) {
	return h.ResolveStatic(ownerFQN, name, descriptor)
}
