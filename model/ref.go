package model

import "fmt"

// MethodRef is a symbolic (owner, name, descriptor) triple. It does not
// necessarily point at a loaded MethodDecl: a declared_target named by an
// invocation instruction may reference a class the loader never saw.
type MethodRef struct {
	OwnerFQN   string
	Name       string
	Descriptor string
}

// String renders the canonical "owner.name" form used by every export
// format; the descriptor is deliberately omitted since none of the §6
// output formats surface it (edges are keyed on owner.name alone there).
func (r MethodRef) String() string {
	return r.OwnerFQN + "." + r.Name
}

// Key is the fully disambiguated identity used for map keys and set
// membership, where overloads on the same name must stay distinct.
func (r MethodRef) Key() string {
	return fmt.Sprintf("%s|%s|%s", r.OwnerFQN, r.Name, r.Descriptor)
}

// CallSite is one invocation instruction extracted from a method body.
type CallSite struct {
	Kind           DispatchKind
	DeclaredTarget MethodRef
	BytecodeOffset int
}

// CallEdge is the externally observable unit the Result Collector and
// exporters operate on.
type CallEdge struct {
	Source MethodRef
	Target MethodRef
}
