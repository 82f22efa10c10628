package classfile

import "errors"

// ErrMalformed wraps any structural problem found while parsing a class
// file: bad magic, truncated pool, out-of-range index, and so on. The
// Bytecode Loader (analysis.Facade.Analyze) turns this into a MalformedUnit warning
// and skips the unit, per spec.md §4.2/§7.
var ErrMalformed = errors.New("classfile: malformed class file")

// malformed wraps ErrMalformed with additional context, keeping errors.Is
// working for callers that only care about the category.
func malformed(reason string) error {
	return &malformedError{reason: reason}
}

type malformedError struct {
	reason string
}

func (e *malformedError) Error() string { return "classfile: " + e.reason }

func (e *malformedError) Unwrap() error { return ErrMalformed }
