// Package fixture builds synthetic model.ClassDecl graphs for tests,
// the way inspector/coder.Coder assembles graph.Package/graph.File trees
// programmatically instead of parsing them from source. Only this
// package's own tests use it; the hierarchy, callgraph, entrypoint, and
// result test suites write model.ClassDecl struct literals by hand.
package fixture

import "github.com/cherrygraph/cherry/model"

// ClassBuilder assembles one model.ClassDecl by chained calls.
type ClassBuilder struct {
	decl *model.ClassDecl
}

// Class starts a new builder for a concrete class named fqn.
func Class(fqn string) *ClassBuilder {
	return &ClassBuilder{decl: &model.ClassDecl{FQN: fqn, Kind: model.Class}}
}

// Interface starts a new builder for an interface named fqn.
func Interface(fqn string) *ClassBuilder {
	return &ClassBuilder{decl: &model.ClassDecl{FQN: fqn, Kind: model.Interface}}
}

// Abstract starts a new builder for an abstract class named fqn.
func Abstract(fqn string) *ClassBuilder {
	return &ClassBuilder{decl: &model.ClassDecl{FQN: fqn, Kind: model.AbstractClass}}
}

// Extends sets the superclass.
func (b *ClassBuilder) Extends(superFQN string) *ClassBuilder {
	b.decl.SuperFQN = superFQN
	return b
}

// Implements adds directly implemented interfaces.
func (b *ClassBuilder) Implements(ifaces ...string) *ClassBuilder {
	b.decl.DirectlyImplemented = append(b.decl.DirectlyImplemented, ifaces...)
	return b
}

// Method appends a public instance method with no call sites.
func (b *ClassBuilder) Method(name, descriptor string) *ClassBuilder {
	b.decl.Methods = append(b.decl.Methods, model.MethodDecl{
		OwnerFQN: b.decl.FQN, Name: name, Descriptor: descriptor, Visibility: model.Public,
	})
	return b
}

// StaticMethod appends a public static method with no call sites.
func (b *ClassBuilder) StaticMethod(name, descriptor string) *ClassBuilder {
	b.decl.Methods = append(b.decl.Methods, model.MethodDecl{
		OwnerFQN: b.decl.FQN, Name: name, Descriptor: descriptor, Visibility: model.Public, IsStatic: true,
	})
	return b
}

// Main appends a public static main(String[]) method with no call sites.
func (b *ClassBuilder) Main() *ClassBuilder {
	return b.StaticMethod("main", "([Ljava/lang/String;)V")
}

// Constructor appends a public <init>()V with no call sites.
func (b *ClassBuilder) Constructor() *ClassBuilder {
	return b.Method("<init>", "()V")
}

// Calling attaches a VIRTUAL call site targeting ownerFQN.name(descriptor)
// to the most recently added method.
func (b *ClassBuilder) Calling(ownerFQN, name, descriptor string) *ClassBuilder {
	return b.callSite(model.Virtual, ownerFQN, name, descriptor)
}

// CallingStatic attaches a STATIC call site to the most recently added
// method.
func (b *ClassBuilder) CallingStatic(ownerFQN, name, descriptor string) *ClassBuilder {
	return b.callSite(model.Static, ownerFQN, name, descriptor)
}

// CallingSpecial attaches a SPECIAL call site (constructors, super-calls,
// private calls) to the most recently added method.
func (b *ClassBuilder) CallingSpecial(ownerFQN, name, descriptor string) *ClassBuilder {
	return b.callSite(model.Special, ownerFQN, name, descriptor)
}

// CallingInterface attaches an INTERFACE call site to the most recently
// added method.
func (b *ClassBuilder) CallingInterface(ownerFQN, name, descriptor string) *ClassBuilder {
	return b.callSite(model.Interface, ownerFQN, name, descriptor)
}

func (b *ClassBuilder) callSite(kind model.DispatchKind, ownerFQN, name, descriptor string) *ClassBuilder {
	i := len(b.decl.Methods) - 1
	cs := model.CallSite{
		Kind:           kind,
		DeclaredTarget: model.MethodRef{OwnerFQN: ownerFQN, Name: name, Descriptor: descriptor},
		BytecodeOffset: len(b.decl.Methods[i].CallSites),
	}
	b.decl.Methods[i].CallSites = append(b.decl.Methods[i].CallSites, cs)
	return b
}

// Build returns the assembled ClassDecl.
func (b *ClassBuilder) Build() *model.ClassDecl {
	return b.decl
}
