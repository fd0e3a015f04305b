package metadata

// Encoded declaration records. These are the units written into a module
// envelope; msgpack is the wire codec. Name fields are indices into the
// envelope's string table.

// TypeKind tags an encoded type record.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeAny
	TypeUnit
	TypeBool
	TypeInt
	TypeString
	TypeArray
	TypeClass
	TypeParamRef
	TypeFunc
)

// TypeRecord is a fully expanded structural type description.
type TypeRecord struct {
	Kind     TypeKind
	Name     uint32 // class name, string table index
	Elem     *TypeRecord
	TypeArgs []*TypeRecord
	Params   []*TypeRecord
	Result   *TypeRecord
	Suspend  bool
	Param    uint32 // type-parameter id in the shared interner
}

// TypeRef encodes a type either literally or as an index into the owning
// scope's type table, depending on the serializer's mode.
type TypeRef struct {
	Indexed bool
	Index   uint32
	Inline  *TypeRecord
}

// TypeParamRecord encodes a declared type parameter. ID is the parameter's
// id in the interner shared across the containing declaration chain, so
// nested declarations can reference outer parameters by the same id.
type TypeParamRecord struct {
	ID    uint32
	Name  uint32
	Index uint32
}

// ValueParamRecord encodes a function or constructor value parameter.
type ValueParamRecord struct {
	Name uint32
	Type TypeRef
}

// VersionRequirementRecord encodes one interned version requirement.
type VersionRequirementRecord struct {
	Major uint16
	Minor uint16
	Patch uint16
	Kind  uint8
	Level uint8
}

// ContractRecord encodes a function's contract information.
type ContractRecord struct {
	Effects []uint8
}

// FunctionRecord encodes one function declaration.
type FunctionRecord struct {
	Name                    uint32
	Flags                   uint32
	TypeParams              []TypeParamRecord
	Receiver                *TypeRef
	ValueParams             []ValueParamRecord
	ReturnType              TypeRef
	Contract                *ContractRecord
	VersionRequirements     []uint32
	TypeTable               []*TypeRecord              // only when this record owns the literal table
	VersionRequirementTable []VersionRequirementRecord // only when this record owns the table
	Ir                      []byte                     // optional serialized body
}

// PropertyRecord encodes one property declaration.
type PropertyRecord struct {
	Name        uint32
	Flags       uint32
	Type        TypeRef
	HasGetter   bool
	HasSetter   bool
	GetterFlags uint32
	SetterFlags uint32
	GetterIr    []byte
	SetterIr    []byte
}

// ConstructorRecord encodes one constructor declaration.
type ConstructorRecord struct {
	Name        uint32
	Flags       uint32
	ValueParams []ValueParamRecord
	Delegated   bool
	Ir          []byte
}

// ClassRecord encodes one class declaration together with its members and
// the tables its scope owns.
type ClassRecord struct {
	Name                    uint32
	Flags                   uint32
	Kind                    uint8
	TypeParams              []TypeParamRecord
	Supertypes              []TypeRef
	Constructors            []*ConstructorRecord
	Functions               []*FunctionRecord
	Properties              []*PropertyRecord
	EnumEntries             []uint32
	NestedClasses           []*ClassRecord
	VersionRequirements     []uint32
	TypeTable               []*TypeRecord
	VersionRequirementTable []VersionRequirementRecord
}
