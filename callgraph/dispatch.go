package callgraph

import (
	"github.com/cherrygraph/cherry/hierarchy"
	"github.com/cherrygraph/cherry/model"
)

// Algorithm selects the dispatch variant. Per spec.md §9, CHA and RTA are
// a tagged sum sharing one driver, not a type hierarchy: dispatcher below
// branches on Algorithm rather than dispatching to separate
// implementations, so the only behavioral difference between the two
// lives in resolveAcrossCandidates' instantiated-type filter and in
// whether pending call sites are tracked at all.
type Algorithm string

const (
	CHA Algorithm = "CHA"
	RTA Algorithm = "RTA"
)

type pendingCall struct {
	caller model.MethodRef
	site   model.CallSite
}

type pendingResolution struct {
	caller model.MethodRef
	target model.MethodRef
}

// dispatcher resolves call sites to concrete targets for one analysis run
// and, for RTA, tracks which concrete types have been observed
// instantiated so it can re-resolve call sites pending on a type that
// wasn't instantiated yet when first visited.
type dispatcher struct {
	h         *hierarchy.Hierarchy
	algorithm Algorithm

	instantiated map[string]bool
	pending      map[string][]pendingCall
}

func newDispatcher(h *hierarchy.Hierarchy, algorithm Algorithm) *dispatcher {
	return &dispatcher{
		h:            h,
		algorithm:    algorithm,
		instantiated: make(map[string]bool),
		pending:      make(map[string][]pendingCall),
	}
}

// dispatch resolves cs (raised from within caller) to its targets under
// the active algorithm. For RTA, VIRTUAL/INTERFACE sites are additionally
// registered so a later instantiation discovery can re-trigger them.
func (d *dispatcher) dispatch(caller model.MethodRef, cs model.CallSite) []model.MethodRef {
	switch cs.Kind {
	case model.Static:
		ref, ok := d.h.ResolveStatic(cs.DeclaredTarget.OwnerFQN, cs.DeclaredTarget.Name, cs.DeclaredTarget.Descriptor)
		return singleOrNil(ref, ok)
	case model.Special:
		ref, ok := d.h.ResolveSpecial(cs.DeclaredTarget.OwnerFQN, cs.DeclaredTarget.Name, cs.DeclaredTarget.Descriptor)
		return singleOrNil(ref, ok)
	case model.Virtual:
		if d.algorithm == RTA {
			d.registerPending(caller, cs)
		}
		return d.dispatchVirtual(cs)
	case model.Interface:
		if d.algorithm == RTA {
			d.registerPending(caller, cs)
		}
		return d.dispatchInterface(cs)
	default:
		return nil
	}
}

func singleOrNil(ref model.MethodRef, ok bool) []model.MethodRef {
	if !ok {
		return nil
	}
	return []model.MethodRef{ref}
}

// dispatchVirtual yields resolve_virtual on the declared owner and on
// every transitive subtype declaring a matching method (spec.md §4.6
// CHA rule); RTA additionally filters candidates to instantiated types.
func (d *dispatcher) dispatchVirtual(cs model.CallSite) []model.MethodRef {
	owner := cs.DeclaredTarget.OwnerFQN
	candidates := append([]string{owner}, d.h.Subtypes(owner)...)
	return d.resolveAcrossCandidates(candidates, cs.DeclaredTarget)
}

// dispatchInterface yields resolve_virtual over every concrete
// implementor of the declared interface; RTA additionally filters to
// instantiated types.
func (d *dispatcher) dispatchInterface(cs model.CallSite) []model.MethodRef {
	candidates := d.h.Implementors(cs.DeclaredTarget.OwnerFQN)
	return d.resolveAcrossCandidates(candidates, cs.DeclaredTarget)
}

func (d *dispatcher) resolveAcrossCandidates(candidates []string, target model.MethodRef) []model.MethodRef {
	seen := make(map[string]bool, len(candidates))
	var out []model.MethodRef
	for _, c := range candidates {
		if d.algorithm == RTA && !d.instantiated[c] {
			continue
		}
		ref, ok := d.h.ResolveVirtual(c, target.Name, target.Descriptor)
		if !ok || seen[ref.Key()] {
			continue
		}
		seen[ref.Key()] = true
		out = append(out, ref)
	}
	return out
}

func (d *dispatcher) registerPending(caller model.MethodRef, cs model.CallSite) {
	owner := cs.DeclaredTarget.OwnerFQN
	d.pending[owner] = append(d.pending[owner], pendingCall{caller: caller, site: cs})
}

// observe implements RTA's state.observe(m): if the method just processed
// is a constructor, its owner becomes instantiated, and every call site
// pending on that owner or one of its ancestors is re-resolved. Returns
// the newly unlocked (caller, target) pairs; a no-op under CHA.
func (d *dispatcher) observe(caller model.MethodRef, decl *model.MethodDecl) []pendingResolution {
	if d.algorithm != RTA || decl == nil || !decl.IsConstructor() {
		return nil
	}
	owner := decl.OwnerFQN
	if d.instantiated[owner] {
		return nil
	}
	d.instantiated[owner] = true

	var unlocked []pendingResolution
	keys := append([]string{owner}, d.h.AllSupertypes(owner)...)
	for _, k := range keys {
		for _, pc := range d.pending[k] {
			var targets []model.MethodRef
			switch pc.site.Kind {
			case model.Virtual:
				targets = d.dispatchVirtual(pc.site)
			case model.Interface:
				targets = d.dispatchInterface(pc.site)
			}
			for _, t := range targets {
				unlocked = append(unlocked, pendingResolution{caller: pc.caller, target: t})
			}
		}
	}
	return unlocked
}
