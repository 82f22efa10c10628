package model

// MethodDecl is one declared method (including constructors "<init>" and
// class initializers "<clinit>"). Call sites are empty for abstract and
// native methods.
type MethodDecl struct {
	OwnerFQN   string
	Name       string
	Descriptor string
	Visibility Visibility
	IsStatic   bool
	IsAbstract bool
	IsSynthetic bool
	CallSites  []CallSite
}

// Ref returns the symbolic reference identifying this declaration.
func (m *MethodDecl) Ref() MethodRef {
	return MethodRef{OwnerFQN: m.OwnerFQN, Name: m.Name, Descriptor: m.Descriptor}
}

// IsConstructor reports whether this is a JVM instance initializer.
func (m *MethodDecl) IsConstructor() bool {
	return m.Name == "<init>"
}

// IsMain reports whether this method is eligible as a default-mode entry
// point: public, static, non-abstract, with a descriptor indicating exactly
// one parameter (the string-array), per spec.md §4.5.
func (m *MethodDecl) IsMain() bool {
	if m.Name != "main" || !m.IsStatic || m.IsAbstract || m.Visibility != Public {
		return false
	}
	params, _ := SplitDescriptor(m.Descriptor)
	return len(params) == 1 && params[0] == "[Ljava/lang/String;"
}

// ClassDecl is one loaded type: its identity, shape, and the methods
// declared directly on it. Immutable once returned by the Bytecode Loader.
type ClassDecl struct {
	FQN                 string
	Kind                ClassKind
	SuperFQN            string // empty for java.lang.Object and superclass-less interfaces
	DirectlyImplemented []string
	Methods             []MethodDecl
}

// IsConcrete reports whether this class can be directly instantiated:
// a CLASS that is not also flagged abstract.
func (c *ClassDecl) IsConcrete() bool {
	return c.Kind == Class
}

// Method looks up a declared method by (name, descriptor) on this class
// only (no supertype walk). Returns nil if absent.
func (c *ClassDecl) Method(name, descriptor string) *MethodDecl {
	for i := range c.Methods {
		if c.Methods[i].Name == name && c.Methods[i].Descriptor == descriptor {
			return &c.Methods[i]
		}
	}
	return nil
}

// MethodsNamed returns every declared method (across overloads) whose name
// matches, in declaration order.
func (c *ClassDecl) MethodsNamed(name string) []*MethodDecl {
	var out []*MethodDecl
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			out = append(out, &c.Methods[i])
		}
	}
	return out
}

// PackageOf returns the package portion of an FQN: everything before the
// last dot, or the empty string when there is no dot.
func PackageOf(fqn string) string {
	idx := lastDot(fqn)
	if idx < 0 {
		return ""
	}
	return fqn[:idx]
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
