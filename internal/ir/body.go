package ir

// ExprKind enumerates the expression forms the backend synthesizes.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprConst is a literal constant.
	ExprConst
	// ExprGetField reads a backing field.
	ExprGetField
	// ExprCall invokes a function.
	ExprCall
	// ExprDelegatingCall forwards from one constructor to another.
	ExprDelegatingCall
)

// Expr is a synthesized expression node. Bodies built by lowering are small
// single-expression trees; the serializer treats them as opaque and hands
// them to the IR-aware extension for encoding.
type Expr struct {
	Kind   ExprKind
	Field  *Field // for ExprGetField
	Callee Decl   // for ExprCall / ExprDelegatingCall
	Args   []*Expr
	Value  int64 // for ExprConst
}

// Body wraps a function or constructor body.
type Body struct {
	Expr *Expr
}

// GetFieldBody returns a body that reads the given field.
func GetFieldBody(f *Field) *Body {
	return &Body{Expr: &Expr{Kind: ExprGetField, Field: f}}
}

// DelegatingCallBody returns a body that forwards to another constructor.
func DelegatingCallBody(target *Constructor) *Body {
	return &Body{Expr: &Expr{Kind: ExprDelegatingCall, Callee: target}}
}

// EffectKind enumerates contract effect categories.
type EffectKind uint8

const (
	EffectReturns EffectKind = iota
	EffectCalls
	EffectConditional
)

// Contract carries a function's declared contract information.
type Contract struct {
	Effects []EffectKind
}
