package ir

// Visibility controls who can reference a declaration.
type Visibility uint8

const (
	Private Visibility = iota
	Internal
	Protected
	Public
)

func (v Visibility) String() string {
	switch v {
	case Private:
		return "private"
	case Internal:
		return "internal"
	case Protected:
		return "protected"
	case Public:
		return "public"
	default:
		return "invalid"
	}
}

// Modality controls how a declaration may be refined.
type Modality uint8

const (
	Final Modality = iota
	Open
	Abstract
	Sealed
)

func (m Modality) String() string {
	switch m {
	case Final:
		return "final"
	case Open:
		return "open"
	case Abstract:
		return "abstract"
	case Sealed:
		return "sealed"
	default:
		return "invalid"
	}
}

// DeclFlags represents declaration modifiers as a bitmask.
type DeclFlags uint32

const (
	// FlagHasAnnotations indicates the declaration carries annotations.
	FlagHasAnnotations DeclFlags = 1 << iota
	// FlagOperator indicates an operator function.
	FlagOperator
	// FlagInfix indicates an infix function.
	FlagInfix
	// FlagInline indicates an inline function.
	FlagInline
	// FlagTailrec indicates a tail-recursive function.
	FlagTailrec
	// FlagExternal indicates an externally implemented declaration.
	FlagExternal
	// FlagSuspend indicates a suspendable function.
	FlagSuspend
	// FlagExpect indicates an expect (platform-provided) declaration.
	FlagExpect
	// FlagStatic indicates a static field.
	FlagStatic
	// FlagSynthetic indicates a compiler-synthesized declaration.
	FlagSynthetic
)

// HasFlag returns true if the given flag is set.
func (f DeclFlags) HasFlag(flag DeclFlags) bool {
	return f&flag != 0
}

// String returns a human-readable representation of flags.
func (f DeclFlags) String() string {
	s := ""
	if f.HasFlag(FlagOperator) {
		s += "operator "
	}
	if f.HasFlag(FlagInfix) {
		s += "infix "
	}
	if f.HasFlag(FlagInline) {
		s += "inline "
	}
	if f.HasFlag(FlagTailrec) {
		s += "tailrec "
	}
	if f.HasFlag(FlagExternal) {
		s += "external "
	}
	if f.HasFlag(FlagSuspend) {
		s += "suspend "
	}
	if f.HasFlag(FlagExpect) {
		s += "expect "
	}
	if f.HasFlag(FlagStatic) {
		s += "static "
	}
	if f.HasFlag(FlagSynthetic) {
		s += "synthetic "
	}
	return s
}
