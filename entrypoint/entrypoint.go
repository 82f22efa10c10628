// Package entrypoint implements the Entry-Point Resolver (spec.md §4.5):
// it produces the initial reachable-method set for the Call-Graph
// Constructor, either by discovering public static main(String[])
// methods or by matching user-supplied ClassName.methodName specs.
package entrypoint

import (
	"strings"

	"github.com/cherrygraph/cherry/filter"
	"github.com/cherrygraph/cherry/hierarchy"
	"github.com/cherrygraph/cherry/model"
)

// Resolve returns the entry-point method set. specs empty selects default
// mode; otherwise each entry is parsed per spec.md §4.5's three spec
// shapes. An empty result is not an error (spec.md §4.5); callers proceed
// to an empty call graph.
func Resolve(h *hierarchy.Hierarchy, f *filter.Filter, specs []string) []model.MethodRef {
	if len(specs) == 0 {
		return defaultMode(h, f)
	}
	return explicitMode(h, f, specs)
}

func defaultMode(h *hierarchy.Hierarchy, f *filter.Filter) []model.MethodRef {
	var refs []model.MethodRef
	for _, fqn := range h.FQNs() {
		if !f.Admits(fqn) {
			continue
		}
		decl, ok := h.Get(fqn)
		if !ok {
			continue
		}
		for _, m := range decl.Methods {
			if m.IsMain() {
				refs = append(refs, m.Ref())
			}
		}
	}
	return refs
}

func explicitMode(h *hierarchy.Hierarchy, f *filter.Filter, specs []string) []model.MethodRef {
	var refs []model.MethodRef
	for _, spec := range specs {
		className, methodName := splitSpec(spec)
		for _, fqn := range h.FQNs() {
			if !f.Admits(fqn) {
				continue
			}
			if !classMatches(fqn, className) {
				continue
			}
			decl, ok := h.Get(fqn)
			if !ok {
				continue
			}
			for _, m := range decl.MethodsNamed(methodName) {
				refs = append(refs, m.Ref())
			}
		}
	}
	return refs
}

// splitSpec separates a spec into its class-name portion (empty when the
// spec is a bare method name) and its method-name portion.
func splitSpec(spec string) (className, methodName string) {
	i := strings.LastIndexByte(spec, '.')
	if i < 0 {
		return "", spec
	}
	return spec[:i], spec[i+1:]
}

// classMatches implements the three spec.md §4.5 spec shapes:
//   - no class name (bare methodName): matches any admitted class.
//   - simpleName: matches a class whose fqn is exactly simpleName or ends
//     with ".simpleName".
//   - fully.qualified.ClassName: exact fqn match.
func classMatches(fqn, className string) bool {
	if className == "" {
		return true
	}
	if !strings.Contains(className, ".") {
		return fqn == className || strings.HasSuffix(fqn, "."+className)
	}
	return fqn == className
}
