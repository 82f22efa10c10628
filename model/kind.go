package model

// ClassKind distinguishes the three declaration shapes the analyzer cares
// about. Enums load as CLASS (or ABSTRACT_CLASS when flagged abstract);
// annotation types carry the interface flag and load as INTERFACE.
type ClassKind string

const (
	Class         ClassKind = "CLASS"
	Interface     ClassKind = "INTERFACE"
	AbstractClass ClassKind = "ABSTRACT_CLASS"
)

// Visibility mirrors the four JVM access levels derivable from a member's
// access_flags, in the absence of an explicit "package" keyword.
type Visibility string

const (
	Public    Visibility = "PUBLIC"
	Protected Visibility = "PROTECTED"
	Package   Visibility = "PACKAGE"
	Private   Visibility = "PRIVATE"
)

// DispatchKind is one of the four JVM invocation instruction flavors.
type DispatchKind string

const (
	Static    DispatchKind = "STATIC"
	Virtual   DispatchKind = "VIRTUAL"
	Interface DispatchKind = "INTERFACE"
	Special   DispatchKind = "SPECIAL"
)
