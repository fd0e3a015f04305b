package metadata

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"lumen/internal/ir"
)

// Extension is the hook the serializer offers for base-protocol fields it
// does not own itself.
type Extension interface {
	// ExtendFunction may add further fields to a freshly built function
	// record. Called after all fields this package owns are in place.
	ExtendFunction(rec *FunctionRecord, f *ir.Func)
}

// IrAwareExtension additionally embeds lowered bodies into records so other
// compilation units can inline across module boundaries. The need predicate
// is evaluated independently per function, constructor and accessor.
type IrAwareExtension interface {
	Extension

	// NeedsSerializedIr reports whether this specific declaration's body
	// must travel with the metadata.
	NeedsSerializedIr(d ir.Decl) bool

	// SerializeInlineBody encodes a body using a child serializer scoped
	// to the body's declaration.
	SerializeInlineBody(b *ir.Body, child *Serializer) []byte

	AddFunctionIr(rec *FunctionRecord, body []byte)
	AddGetterIr(rec *PropertyRecord, body []byte)
	AddSetterIr(rec *PropertyRecord, body []byte)
	AddConstructorIr(rec *ConstructorRecord, body []byte)
}

// NopExtension produces metadata-only output: no extra fields, no embedded
// bodies.
type NopExtension struct{}

// ExtendFunction implements Extension.
func (NopExtension) ExtendFunction(*FunctionRecord, *ir.Func) {}

// InlineBodyExtension embeds the bodies of inline declarations. This is the
// production policy: only declarations other units may inline need their IR
// shipped.
type InlineBodyExtension struct{}

// ExtendFunction implements Extension.
func (InlineBodyExtension) ExtendFunction(*FunctionRecord, *ir.Func) {}

// NeedsSerializedIr implements IrAwareExtension: inline declarations with a
// body need their IR serialized.
func (InlineBodyExtension) NeedsSerializedIr(d ir.Decl) bool {
	switch d := d.(type) {
	case *ir.Func:
		return d.Flags.HasFlag(ir.FlagInline) && d.Body != nil
	case *ir.Constructor:
		return d.Flags.HasFlag(ir.FlagInline) && d.Body != nil
	default:
		return false
	}
}

// bodyRecord is the wire form of an embedded body expression tree.
type bodyRecord struct {
	Kind  uint8
	Name  uint32 // field or callee name, string table index
	Value int64
	Args  []*bodyRecord
}

// SerializeInlineBody implements IrAwareExtension.
func (e InlineBodyExtension) SerializeInlineBody(b *ir.Body, child *Serializer) []byte {
	if b == nil || b.Expr == nil {
		panic("metadata: inline body requested for a declaration without a body")
	}
	out, err := msgpack.Marshal(e.bodyRecord(b.Expr, child))
	if err != nil {
		panic(fmt.Errorf("metadata: encoding inline body: %w", err))
	}
	return out
}

func (e InlineBodyExtension) bodyRecord(x *ir.Expr, child *Serializer) *bodyRecord {
	rec := &bodyRecord{Kind: uint8(x.Kind), Value: x.Value}
	switch x.Kind {
	case ir.ExprGetField:
		rec.Name = uint32(x.Field.DeclName())
	case ir.ExprCall, ir.ExprDelegatingCall:
		rec.Name = uint32(x.Callee.DeclName())
	}
	for _, arg := range x.Args {
		rec.Args = append(rec.Args, e.bodyRecord(arg, child))
	}
	return rec
}

// AddFunctionIr implements IrAwareExtension.
func (InlineBodyExtension) AddFunctionIr(rec *FunctionRecord, body []byte) {
	rec.Ir = body
}

// AddGetterIr implements IrAwareExtension.
func (InlineBodyExtension) AddGetterIr(rec *PropertyRecord, body []byte) {
	rec.GetterIr = body
}

// AddSetterIr implements IrAwareExtension.
func (InlineBodyExtension) AddSetterIr(rec *PropertyRecord, body []byte) {
	rec.SetterIr = body
}

// AddConstructorIr implements IrAwareExtension.
func (InlineBodyExtension) AddConstructorIr(rec *ConstructorRecord, body []byte) {
	rec.Ir = body
}
