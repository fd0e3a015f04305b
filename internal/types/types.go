package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindUnit
	KindBool
	KindInt
	KindString
	KindArray
	KindClass
	KindTypeParam
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindClass:
		return "class"
	case KindTypeParam:
		return "typeparam"
	case KindFunc:
		return "func"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type. Variable-size payloads
// (classes, type parameters, function signatures) live in side tables indexed
// by Payload.
type Type struct {
	Kind    Kind
	Elem    TypeID // for arrays
	Payload uint32 // slot into a per-kind side table
}

// MakeArray describes an array of the given element type.
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}
