package ir

import (
	"lumen/internal/source"
	"lumen/internal/types"
)

// Decl is a declaration node owned by at most one scope.
type Decl interface {
	DeclName() source.StringID
	DeclKind() DeclKind
	Parent() *Class

	bindParent(*Class)
}

// declBase carries the fields shared by every declaration node.
type declBase struct {
	name   source.StringID
	parent *Class
}

// DeclName returns the declaration's interned name.
func (d *declBase) DeclName() source.StringID { return d.name }

// Parent returns the owning scope, or nil for unparented declarations.
func (d *declBase) Parent() *Class { return d.parent }

// bindParent enforces the bind-once ownership invariant: a declaration's
// owning scope is assigned exactly once and never rebound.
func (d *declBase) bindParent(p *Class) {
	if d.parent != nil {
		panic("ir: declaration already owned by a scope")
	}
	d.parent = p
}

// ClassKind distinguishes class-like declarations.
type ClassKind uint8

const (
	ClassOrdinary ClassKind = iota
	ClassObject
	ClassEnum
)

func (k ClassKind) String() string {
	switch k {
	case ClassOrdinary:
		return "class"
	case ClassObject:
		return "object"
	case ClassEnum:
		return "enum class"
	default:
		return "invalid"
	}
}

// Class represents a class, object or enum class declaration.
type Class struct {
	declBase
	Kind       ClassKind
	Visibility Visibility
	Modality   Modality
	Flags      DeclFlags
	Type       types.TypeID
	Supertypes []types.TypeID
	TypeParams []*TypeParam
	Members    []Decl
}

// NewClass constructs a class with its identity fixed at creation time.
func NewClass(name source.StringID, kind ClassKind, vis Visibility, mod Modality, typ types.TypeID) *Class {
	return &Class{
		declBase:   declBase{name: name},
		Kind:       kind,
		Visibility: vis,
		Modality:   mod,
		Type:       typ,
	}
}

// DeclKind implements Decl.
func (c *Class) DeclKind() DeclKind { return DeclClass }

// Adopt binds d's owning scope to c without inserting it into Members.
// Lowering uses this to parent synthetic subtrees whose insertion point is
// decided by the caller.
func (c *Class) Adopt(d Decl) {
	d.bindParent(c)
}

// AddMember inserts d into c's member list, binding the parent if d is not
// yet owned. Inserting a declaration owned by another scope panics.
func (c *Class) AddMember(d Decl) {
	if p := d.Parent(); p == nil {
		d.bindParent(c)
	} else if p != c {
		panic("ir: declaration already owned by another scope")
	}
	c.Members = append(c.Members, d)
}

// AddSupertype appends a supertype. Override synthesis is a separate,
// explicit step; attaching a supertype has no side effects.
func (c *Class) AddSupertype(t types.TypeID) {
	c.Supertypes = append(c.Supertypes, t)
}

// EnumEntries returns the enum entry members in declaration order.
func (c *Class) EnumEntries() []*EnumEntry {
	var entries []*EnumEntry
	for _, m := range c.Members {
		if e, ok := m.(*EnumEntry); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// FindFunc returns the first member function with the given name, or nil.
func (c *Class) FindFunc(name source.StringID) *Func {
	for _, m := range c.Members {
		if f, ok := m.(*Func); ok && f.DeclName() == name {
			return f
		}
	}
	return nil
}

// FindConstructor returns the first constructor with the given arity, or nil.
func (c *Class) FindConstructor(arity int) *Constructor {
	for _, m := range c.Members {
		if k, ok := m.(*Constructor); ok && len(k.Params) == arity {
			return k
		}
	}
	return nil
}

// TypeParam represents a declared generic type parameter. Type parameters
// belong to their declaring class or function through the TypeParams slice,
// not through scope ownership.
type TypeParam struct {
	Name  source.StringID
	Type  types.TypeID // interned type-parameter type
	Index uint32
}

// ValueParam represents a function or constructor value parameter.
type ValueParam struct {
	Name source.StringID
	Type types.TypeID
}

// Func represents a function or property accessor.
type Func struct {
	declBase
	Visibility Visibility
	Modality   Modality
	Flags      DeclFlags
	TypeParams []*TypeParam
	Receiver   *ValueParam
	Params     []*ValueParam
	Result     types.TypeID
	Body       *Body
	Contract   *Contract
}

// NewFunc constructs a function with its identity fixed at creation time.
func NewFunc(name source.StringID, vis Visibility, mod Modality, flags DeclFlags, result types.TypeID) *Func {
	return &Func{
		declBase:   declBase{name: name},
		Visibility: vis,
		Modality:   mod,
		Flags:      flags,
		Result:     result,
	}
}

// DeclKind implements Decl.
func (f *Func) DeclKind() DeclKind { return DeclFunc }

// IsSuspend returns true if this function carries the suspend modifier.
func (f *Func) IsSuspend() bool { return f.Flags.HasFlag(FlagSuspend) }

// Property represents a property with optional accessors and backing field.
type Property struct {
	declBase
	Visibility Visibility
	Modality   Modality
	Flags      DeclFlags
	Type       types.TypeID
	Getter     *Func
	Setter     *Func
	Backing    *Field
}

// NewProperty constructs a property with its identity fixed at creation time.
func NewProperty(name source.StringID, vis Visibility, mod Modality, flags DeclFlags, typ types.TypeID) *Property {
	return &Property{
		declBase:   declBase{name: name},
		Visibility: vis,
		Modality:   mod,
		Flags:      flags,
		Type:       typ,
	}
}

// DeclKind implements Decl.
func (p *Property) DeclKind() DeclKind { return DeclProperty }

// Field represents a backing storage field.
type Field struct {
	declBase
	Visibility Visibility
	Flags      DeclFlags
	Type       types.TypeID
}

// NewField constructs a field with its identity fixed at creation time.
func NewField(name source.StringID, vis Visibility, flags DeclFlags, typ types.TypeID) *Field {
	return &Field{
		declBase:   declBase{name: name},
		Visibility: vis,
		Flags:      flags,
		Type:       typ,
	}
}

// DeclKind implements Decl.
func (f *Field) DeclKind() DeclKind { return DeclField }

// Constructor represents a class constructor. A delegating constructor
// forwards to Delegate before running its own body.
type Constructor struct {
	declBase
	Visibility Visibility
	Flags      DeclFlags
	Params     []*ValueParam
	Delegate   *Constructor
	Body       *Body
	Primary    bool
}

// NewConstructor constructs a constructor with its identity fixed at
// creation time.
func NewConstructor(name source.StringID, vis Visibility, primary bool) *Constructor {
	return &Constructor{
		declBase:   declBase{name: name},
		Visibility: vis,
		Primary:    primary,
	}
}

// DeclKind implements Decl.
func (k *Constructor) DeclKind() DeclKind { return DeclConstructor }

// EnumEntry represents a single enum entry declaration.
type EnumEntry struct {
	declBase
	Type types.TypeID // the enum class type
}

// NewEnumEntry constructs an enum entry with its identity fixed at creation
// time.
func NewEnumEntry(name source.StringID, typ types.TypeID) *EnumEntry {
	return &EnumEntry{
		declBase: declBase{name: name},
		Type:     typ,
	}
}

// DeclKind implements Decl.
func (e *EnumEntry) DeclKind() DeclKind { return DeclEnumEntry }
