// Package metadata encodes finished declaration trees into the portable,
// versioned binary metadata format other compilation units link against.
//
// A Serializer instance lives for exactly one encode pass over its subtree.
// Three deduplicating tables back the encoding: a type-parameter interner
// shared across the whole containing chain (outer scopes assign ids strictly
// before inner ones), and a type table plus a version-requirement table
// created fresh per scope that owns the literal embedding. Every encoding
// step may intern new entries, so records are reproducible only within one
// committed top-to-bottom pass per module; within a module the pass is
// single-threaded and strictly ordered.
package metadata

import (
	"fmt"

	"lumen/internal/ir"
	"lumen/internal/source"
	"lumen/internal/types"
)

// Context is the compilation context a serialization pass reads from.
type Context struct {
	Strings *source.Interner
	Types   *types.Interner

	// SyntheticProperties maps a class to lowered, frontend-invisible
	// properties (delegated backing fields produced by lowering) that the
	// default member enumeration would silently drop.
	SyntheticProperties map[*ir.Class][]*ir.Property
}

// Serializer encodes one declaration subtree.
type Serializer struct {
	ctx        *Context
	containing *ir.Class
	ext        Extension

	typeParams  *Table[*ir.TypeParam]
	paramByType map[types.TypeID]*ir.TypeParam

	typeTable *Table[types.TypeID]
	versions  *Table[VersionRequirement]

	// useTypeTable switches typeRef between table indices and literal
	// records; ownsTypeTable marks the scope that embeds the literal
	// tables into its record.
	useTypeTable  bool
	ownsTypeTable bool
}

// NewTopLevel creates a serializer with fresh tables and no containing
// declaration. Literal type-table embedding is disabled by default; enable
// it with WithLiteralTypeTable when serializing a root that must carry its
// own table.
func NewTopLevel(ctx *Context, ext Extension) *Serializer {
	return &Serializer{
		ctx:         ctx,
		ext:         ext,
		typeParams:  NewTable[*ir.TypeParam](),
		paramByType: make(map[types.TypeID]*ir.TypeParam, 8),
		typeTable:   NewTable[types.TypeID](),
		versions:    NewTable[VersionRequirement](),
	}
}

// WithLiteralTypeTable makes this serializer reference types through its
// table and embed the literal table into the record it produces.
func (s *Serializer) WithLiteralTypeTable() *Serializer {
	s.useTypeTable = true
	s.ownsTypeTable = true
	return s
}

// WithIndexedTypes makes this serializer reference types through its table
// without embedding the table into any record it produces. The caller must
// carry the table alongside the records; the module envelope does this for
// its top-level functions and properties.
func (s *Serializer) WithIndexedTypes() *Serializer {
	s.useTypeTable = true
	return s
}

// New creates the serializer for a class scope. The containing declaration's
// serializer is resolved first (top-level when there is none), producing an
// outer-to-inner chain; the class's own type parameters are then interned
// into the chain's shared interner, so outer ids are assigned strictly
// before any inner parameter requests one. The type table and the
// version-requirement table are fresh per class scope; only the
// type-parameter interner is shared.
func New(ctx *Context, cls *ir.Class, ext Extension) *Serializer {
	var outer *Serializer
	if p := cls.Parent(); p != nil {
		outer = New(ctx, p, ext)
	} else {
		outer = NewTopLevel(ctx, ext)
	}
	return outer.childForClass(cls)
}

// childForClass derives the serializer for a nested class scope.
func (s *Serializer) childForClass(cls *ir.Class) *Serializer {
	child := &Serializer{
		ctx:           s.ctx,
		containing:    cls,
		ext:           s.ext,
		typeParams:    s.typeParams,
		paramByType:   s.paramByType,
		typeTable:     NewTable[types.TypeID](),
		versions:      NewTable[VersionRequirement](),
		useTypeTable:  true,
		ownsTypeTable: true,
	}
	child.internTypeParams(cls.TypeParams)
	return child
}

// childForFunction derives the scope for a member function, constructor or
// accessor: same tables, but never the owner of the literal embedding.
func (s *Serializer) childForFunction() *Serializer {
	return &Serializer{
		ctx:          s.ctx,
		containing:   s.containing,
		ext:          s.ext,
		typeParams:   s.typeParams,
		paramByType:  s.paramByType,
		typeTable:    s.typeTable,
		versions:     s.versions,
		useTypeTable: s.useTypeTable,
	}
}

// bodySerializer derives the self-contained scope an embedded IR body is
// encoded in: shared type-parameter interner, fresh tables, literal types.
func (s *Serializer) bodySerializer() *Serializer {
	return &Serializer{
		ctx:         s.ctx,
		containing:  s.containing,
		ext:         s.ext,
		typeParams:  s.typeParams,
		paramByType: s.paramByType,
		typeTable:   NewTable[types.TypeID](),
		versions:    NewTable[VersionRequirement](),
	}
}

func (s *Serializer) internTypeParams(params []*ir.TypeParam) {
	for _, tp := range params {
		s.typeParams.Intern(tp)
		s.paramByType[tp.Type] = tp
	}
}

// Strings exposes the pass's string interner to extensions.
func (s *Serializer) Strings() *source.Interner { return s.ctx.Strings }

// TypeParameterID returns the shared interner's id for a type parameter.
func (s *Serializer) TypeParameterID(tp *ir.TypeParam) uint32 {
	return s.typeParams.Intern(tp)
}

// ClassProto encodes a class declaration. The receiver must be the
// serializer created for exactly this class's scope.
//
// Beyond the base member enumeration, the record picks up one property per
// entry of the context's synthesized-properties map: those backing
// declarations exist only in lowered form and would otherwise be dropped.
func (s *Serializer) ClassProto(c *ir.Class) *ClassRecord {
	if s.containing != c {
		panic("metadata: class serialized outside its own scope")
	}
	rec := &ClassRecord{
		Name:  uint32(c.DeclName()),
		Flags: PackClassFlags(c),
		Kind:  uint8(c.Kind),
	}
	for _, tp := range c.TypeParams {
		rec.TypeParams = append(rec.TypeParams, s.typeParamRecord(tp))
	}
	for _, sup := range c.Supertypes {
		rec.Supertypes = append(rec.Supertypes, s.typeRef(sup))
	}
	for _, m := range c.Members {
		switch m := m.(type) {
		case *ir.EnumEntry:
			rec.EnumEntries = append(rec.EnumEntries, uint32(m.DeclName()))
		case *ir.Constructor:
			rec.Constructors = append(rec.Constructors, s.ConstructorProto(m))
		case *ir.Func:
			rec.Functions = append(rec.Functions, s.FunctionProto(m))
		case *ir.Property:
			rec.Properties = append(rec.Properties, s.PropertyProto(m))
		case *ir.Class:
			rec.NestedClasses = append(rec.NestedClasses, s.childForClass(m).ClassProto(m))
		case *ir.Field:
			// Bare fields travel through their owning property or the
			// synthesized-properties map.
		default:
			panic(fmt.Sprintf("metadata: unexpected %s member in class scope", m.DeclKind()))
		}
	}
	for _, p := range s.ctx.SyntheticProperties[c] {
		rec.Properties = append(rec.Properties, s.PropertyProto(p))
	}
	if s.ownsTypeTable {
		rec.TypeTable = s.literalTypeTable()
		rec.VersionRequirementTable = s.literalVersionTable()
	}
	return rec
}

// FunctionProto encodes a function declaration.
func (s *Serializer) FunctionProto(f *ir.Func) *FunctionRecord {
	fs := s.childForFunction()
	fs.internTypeParams(f.TypeParams)

	rec := &FunctionRecord{
		Name:  uint32(f.DeclName()),
		Flags: PackFunctionFlags(f),
	}
	for _, tp := range f.TypeParams {
		rec.TypeParams = append(rec.TypeParams, fs.typeParamRecord(tp))
	}
	if f.Receiver != nil {
		ref := fs.typeRef(f.Receiver.Type)
		rec.Receiver = &ref
	}
	for _, p := range f.Params {
		rec.ValueParams = append(rec.ValueParams, ValueParamRecord{
			Name: uint32(p.Name),
			Type: fs.typeRef(p.Type),
		})
	}
	rec.ReturnType = fs.typeRef(f.Result)

	// A suspend marker anywhere in the signature makes older readers
	// misinterpret the encoding, so the synthesized requirement is added
	// unconditionally whenever the condition holds.
	if fs.signatureContainsSuspend(f) {
		rec.VersionRequirements = append(rec.VersionRequirements, fs.versions.Intern(CoroutinesRequirement))
	}
	if f.Contract != nil {
		rec.Contract = contractRecord(f.Contract)
	}
	if s.ownsTypeTable && s.containing == nil {
		rec.TypeTable = s.literalTypeTable()
		rec.VersionRequirementTable = s.literalVersionTable()
	}
	s.ext.ExtendFunction(rec, f)
	if irExt, ok := s.ext.(IrAwareExtension); ok && irExt.NeedsSerializedIr(f) {
		irExt.AddFunctionIr(rec, irExt.SerializeInlineBody(f.Body, s.bodySerializer()))
	}
	return rec
}

// PropertyProto encodes a property declaration. Getter and setter are
// considered independently: one may embed a serialized body while the other
// does not.
func (s *Serializer) PropertyProto(p *ir.Property) *PropertyRecord {
	rec := &PropertyRecord{
		Name:  uint32(p.DeclName()),
		Flags: PackPropertyFlags(p),
		Type:  s.typeRef(p.Type),
	}
	irExt, irAware := s.ext.(IrAwareExtension)
	if p.Getter != nil {
		rec.HasGetter = true
		rec.GetterFlags = PackFunctionFlags(p.Getter)
		if irAware && irExt.NeedsSerializedIr(p.Getter) {
			irExt.AddGetterIr(rec, irExt.SerializeInlineBody(p.Getter.Body, s.bodySerializer()))
		}
	}
	if p.Setter != nil {
		rec.HasSetter = true
		rec.SetterFlags = PackFunctionFlags(p.Setter)
		if irAware && irExt.NeedsSerializedIr(p.Setter) {
			irExt.AddSetterIr(rec, irExt.SerializeInlineBody(p.Setter.Body, s.bodySerializer()))
		}
	}
	return rec
}

// ConstructorProto encodes a constructor declaration.
func (s *Serializer) ConstructorProto(k *ir.Constructor) *ConstructorRecord {
	rec := &ConstructorRecord{
		Name:      uint32(k.DeclName()),
		Flags:     PackConstructorFlags(k),
		Delegated: k.Delegate != nil,
	}
	for _, p := range k.Params {
		rec.ValueParams = append(rec.ValueParams, ValueParamRecord{
			Name: uint32(p.Name),
			Type: s.typeRef(p.Type),
		})
	}
	if irExt, ok := s.ext.(IrAwareExtension); ok && irExt.NeedsSerializedIr(k) {
		irExt.AddConstructorIr(rec, irExt.SerializeInlineBody(k.Body, s.bodySerializer()))
	}
	return rec
}

func (s *Serializer) signatureContainsSuspend(f *ir.Func) bool {
	if f.IsSuspend() {
		return true
	}
	if s.ctx.Types.ContainsSuspend(f.Result) {
		return true
	}
	if f.Receiver != nil && s.ctx.Types.ContainsSuspend(f.Receiver.Type) {
		return true
	}
	for _, p := range f.Params {
		if s.ctx.Types.ContainsSuspend(p.Type) {
			return true
		}
	}
	return false
}

func (s *Serializer) typeParamRecord(tp *ir.TypeParam) TypeParamRecord {
	return TypeParamRecord{
		ID:    s.typeParams.Intern(tp),
		Name:  uint32(tp.Name),
		Index: tp.Index,
	}
}

// typeRef encodes a type reference in the serializer's current mode.
func (s *Serializer) typeRef(id types.TypeID) TypeRef {
	if id == types.NoTypeID {
		panic("metadata: declaration missing a type")
	}
	if s.useTypeTable {
		return TypeRef{Indexed: true, Index: s.typeTable.Intern(id)}
	}
	return TypeRef{Inline: s.typeRecord(id)}
}

// typeRecord builds the literal structural record for a type. Nested types
// are expanded in place; only top-level references go through the table.
func (s *Serializer) typeRecord(id types.TypeID) *TypeRecord {
	tt := s.ctx.Types.MustLookup(id)
	switch tt.Kind {
	case types.KindAny:
		return &TypeRecord{Kind: TypeAny}
	case types.KindUnit:
		return &TypeRecord{Kind: TypeUnit}
	case types.KindBool:
		return &TypeRecord{Kind: TypeBool}
	case types.KindInt:
		return &TypeRecord{Kind: TypeInt}
	case types.KindString:
		return &TypeRecord{Kind: TypeString}
	case types.KindArray:
		return &TypeRecord{Kind: TypeArray, Elem: s.typeRecord(tt.Elem)}
	case types.KindClass:
		info, ok := s.ctx.Types.ClassInfo(id)
		if !ok {
			panic("metadata: class type without class info")
		}
		rec := &TypeRecord{Kind: TypeClass, Name: uint32(info.Name)}
		for _, arg := range info.TypeArgs {
			rec.TypeArgs = append(rec.TypeArgs, s.typeRecord(arg))
		}
		return rec
	case types.KindTypeParam:
		tp := s.paramByType[id]
		if tp == nil {
			panic("metadata: reference to a type parameter outside its declaring chain")
		}
		return &TypeRecord{Kind: TypeParamRef, Param: s.typeParams.Intern(tp)}
	case types.KindFunc:
		info, ok := s.ctx.Types.FuncInfo(id)
		if !ok {
			panic("metadata: func type without func info")
		}
		rec := &TypeRecord{Kind: TypeFunc, Suspend: info.Suspend}
		for _, p := range info.Params {
			rec.Params = append(rec.Params, s.typeRecord(p))
		}
		rec.Result = s.typeRecord(info.Result)
		return rec
	default:
		panic(fmt.Sprintf("metadata: cannot encode %s type", tt.Kind))
	}
}

// literalTypeTable expands the scope's type table in id order.
func (s *Serializer) literalTypeTable() []*TypeRecord {
	keys := s.typeTable.Keys()
	if len(keys) == 0 {
		return nil
	}
	out := make([]*TypeRecord, 0, len(keys))
	for _, id := range keys {
		out = append(out, s.typeRecord(id))
	}
	return out
}

// literalVersionTable expands the scope's version-requirement table in id
// order.
func (s *Serializer) literalVersionTable() []VersionRequirementRecord {
	keys := s.versions.Keys()
	if len(keys) == 0 {
		return nil
	}
	out := make([]VersionRequirementRecord, 0, len(keys))
	for _, v := range keys {
		out = append(out, VersionRequirementRecord{
			Major: v.Major,
			Minor: v.Minor,
			Patch: v.Patch,
			Kind:  uint8(v.Kind),
			Level: uint8(v.Level),
		})
	}
	return out
}

func contractRecord(c *ir.Contract) *ContractRecord {
	rec := &ContractRecord{Effects: make([]uint8, 0, len(c.Effects))}
	for _, e := range c.Effects {
		rec.Effects = append(rec.Effects, uint8(e))
	}
	return rec
}
