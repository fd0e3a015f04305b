// Package ir provides the backend declaration tree for Lumen.
//
// The frontend hands the backend a fully resolved tree of classes,
// functions, properties, constructors and fields. Nodes are constructed with
// all identity fields fixed up front and are parented exactly once: a
// declaration has one owning scope, assigned at adoption or first insertion
// and never reassigned. Lowering passes extend the tree with synthetic
// declarations; the metadata serializer walks the finished tree.
package ir

import "fmt"

// DeclKind classifies a declaration node.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclClass
	DeclFunc
	DeclProperty
	DeclConstructor
	DeclField
	DeclEnumEntry
)

func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclFunc:
		return "func"
	case DeclProperty:
		return "property"
	case DeclConstructor:
		return "constructor"
	case DeclField:
		return "field"
	case DeclEnumEntry:
		return "enum entry"
	default:
		return fmt.Sprintf("DeclKind(%d)", k)
	}
}
