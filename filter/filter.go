// Package filter implements the Name Filter (spec.md §4.4): a pure
// predicate over fully qualified class names.
package filter

import "strings"

// jdkPrefixes are excluded when Config.ExcludeJDK is set.
var jdkPrefixes = []string{
	"java.", "javax.", "sun.", "com.sun.", "jdk.", "com.oracle.", "org.w3c.", "org.xml.", "org.ietf.",
}

// Config holds the Name Filter's parameters.
type Config struct {
	IncludePrefixes []string
	ExcludePrefixes []string
	ExcludeJDK      bool
}

// Filter is the compiled, immutable predicate built from a Config.
type Filter struct {
	cfg Config
}

// New compiles cfg into a Filter. Filter is safe for concurrent use: it
// holds only its immutable configuration.
func New(cfg Config) *Filter {
	return &Filter{cfg: cfg}
}

// Admits reports whether fqn passes the filter, per spec.md §4.4's
// precedence: exclude_jdk, then exclude_prefixes, then include_prefixes
// (which also checks the package portion of fqn).
func (f *Filter) Admits(fqn string) bool {
	if f.cfg.ExcludeJDK && hasAnyPrefix(fqn, jdkPrefixes) {
		return false
	}
	if hasAnyPrefix(fqn, f.cfg.ExcludePrefixes) {
		return false
	}
	if len(f.cfg.IncludePrefixes) == 0 {
		return true
	}
	pkg := packageOf(fqn)
	return hasAnyPrefix(fqn, f.cfg.IncludePrefixes) || hasAnyPrefix(pkg, f.cfg.IncludePrefixes)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func packageOf(fqn string) string {
	if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
		return fqn[:i]
	}
	return ""
}
