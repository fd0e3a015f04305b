package metadata

import "fmt"

// VersionKind says which toolchain component a requirement gates on.
type VersionKind uint8

const (
	// RequireLanguageVersion gates on the language version.
	RequireLanguageVersion VersionKind = iota
	// RequireCompilerVersion gates on the compiler version.
	RequireCompilerVersion
	// RequireAPIVersion gates on the standard library API version.
	RequireAPIVersion
)

// VersionLevel says how a reader that fails the requirement must react.
type VersionLevel uint8

const (
	// LevelError makes older readers reject the declaration.
	LevelError VersionLevel = iota
	// LevelWarning makes older readers warn and continue.
	LevelWarning
)

// VersionRequirement marks the minimum toolchain capability needed to
// correctly interpret a declaration. Requirements are interned into a table
// and referenced by id from declaration records.
type VersionRequirement struct {
	Major uint16
	Minor uint16
	Patch uint16
	Kind  VersionKind
	Level VersionLevel
}

func (v VersionRequirement) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// CoroutinesRequirement is the synthesized requirement attached to every
// function whose signature contains a suspend marker anywhere. Readers older
// than this language version would misinterpret such signatures, so the
// requirement is added unconditionally whenever the condition holds.
var CoroutinesRequirement = VersionRequirement{
	Major: 1,
	Minor: 3,
	Kind:  RequireLanguageVersion,
	Level: LevelError,
}
