package metadata

import "lumen/internal/ir"

// Packed flag layout shared by all declaration records:
//
//	bit 0      has-annotations
//	bits 1-3   visibility
//	bits 4-5   modality
//	bits 6-7   member kind (0 declaration, 1 synthesized)
//	bit 8+     per-kind modifier bits (operator, infix, inline, tailrec,
//	           external, suspend, expect, static, delegated)
const (
	flagHasAnnotations uint32 = 1 << 0
	visibilityShift           = 1
	visibilityMask     uint32 = 0x7 << visibilityShift
	modalityShift             = 4
	modalityMask       uint32 = 0x3 << modalityShift
	memberKindShift           = 6
	memberKindMask     uint32 = 0x3 << memberKindShift

	flagOperator uint32 = 1 << 8
	flagInfix    uint32 = 1 << 9
	flagInline   uint32 = 1 << 10
	flagTailrec  uint32 = 1 << 11
	flagExternal uint32 = 1 << 12
	flagSuspend  uint32 = 1 << 13
	flagExpect   uint32 = 1 << 14
	flagStatic   uint32 = 1 << 15
)

// Member kinds.
const (
	memberDeclaration uint32 = 0
	memberSynthesized uint32 = 1
)

func packCommon(hasAnnotations bool, vis ir.Visibility, mod ir.Modality, synthetic bool) uint32 {
	var out uint32
	if hasAnnotations {
		out |= flagHasAnnotations
	}
	out |= (uint32(vis) << visibilityShift) & visibilityMask
	out |= (uint32(mod) << modalityShift) & modalityMask
	kind := memberDeclaration
	if synthetic {
		kind = memberSynthesized
	}
	out |= (kind << memberKindShift) & memberKindMask
	return out
}

func packModifiers(f ir.DeclFlags) uint32 {
	var out uint32
	if f.HasFlag(ir.FlagOperator) {
		out |= flagOperator
	}
	if f.HasFlag(ir.FlagInfix) {
		out |= flagInfix
	}
	if f.HasFlag(ir.FlagInline) {
		out |= flagInline
	}
	if f.HasFlag(ir.FlagTailrec) {
		out |= flagTailrec
	}
	if f.HasFlag(ir.FlagExternal) {
		out |= flagExternal
	}
	if f.HasFlag(ir.FlagSuspend) {
		out |= flagSuspend
	}
	if f.HasFlag(ir.FlagExpect) {
		out |= flagExpect
	}
	if f.HasFlag(ir.FlagStatic) {
		out |= flagStatic
	}
	return out
}

// PackFunctionFlags packs a function's modifiers into a flag word.
func PackFunctionFlags(f *ir.Func) uint32 {
	return packCommon(f.Flags.HasFlag(ir.FlagHasAnnotations), f.Visibility, f.Modality, f.Flags.HasFlag(ir.FlagSynthetic)) |
		packModifiers(f.Flags)
}

// PackClassFlags packs a class's modifiers into a flag word.
func PackClassFlags(c *ir.Class) uint32 {
	return packCommon(c.Flags.HasFlag(ir.FlagHasAnnotations), c.Visibility, c.Modality, c.Flags.HasFlag(ir.FlagSynthetic)) |
		packModifiers(c.Flags)
}

// PackPropertyFlags packs a property's modifiers into a flag word.
func PackPropertyFlags(p *ir.Property) uint32 {
	return packCommon(p.Flags.HasFlag(ir.FlagHasAnnotations), p.Visibility, p.Modality, p.Flags.HasFlag(ir.FlagSynthetic)) |
		packModifiers(p.Flags)
}

// PackConstructorFlags packs a constructor's modifiers into a flag word.
func PackConstructorFlags(k *ir.Constructor) uint32 {
	return packCommon(k.Flags.HasFlag(ir.FlagHasAnnotations), k.Visibility, ir.Final, k.Flags.HasFlag(ir.FlagSynthetic)) |
		packModifiers(k.Flags)
}

// FlagsVisibility extracts the visibility from a packed flag word.
func FlagsVisibility(flags uint32) ir.Visibility {
	return ir.Visibility((flags & visibilityMask) >> visibilityShift)
}

// FlagsModality extracts the modality from a packed flag word.
func FlagsModality(flags uint32) ir.Modality {
	return ir.Modality((flags & modalityMask) >> modalityShift)
}

// FlagsSuspend reports whether the packed word carries the suspend modifier.
func FlagsSuspend(flags uint32) bool {
	return flags&flagSuspend != 0
}

// FlagsInline reports whether the packed word carries the inline modifier.
func FlagsInline(flags uint32) bool {
	return flags&flagInline != 0
}

// FlagsSynthesized reports whether the member kind is "synthesized".
func FlagsSynthesized(flags uint32) bool {
	return (flags&memberKindMask)>>memberKindShift == memberSynthesized
}
