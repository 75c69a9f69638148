package types

import "github.com/ferrite-lang/ferritec/internal/ast"

// Value is the common interface every constant-value variant implements
// (spec §3). A Value never appears alone: every use site pairs it with
// its Type in a TypedValue (spec §3 invariant 1).
type Value interface {
	valueNode()
}

// TypedValue is the (Type, Value) pair spec §3 invariant 1 requires at
// every expression result.
type TypedValue struct {
	Type  Type
	Value Value
}

// IntegerValue holds a u64 bit pattern; its signedness and width are
// supplied by the paired Type, not stored here.
type IntegerValue struct {
	Bits uint64
}

func (IntegerValue) valueNode() {}

// FloatValue holds an f64; narrowing to f32 happens at the representation
// boundary (store/serialize), not in the constant value itself.
type FloatValue struct {
	Bits float64
}

func (FloatValue) valueNode() {}

type BoolValue struct {
	V bool
}

func (BoolValue) valueNode() {}

type VoidValue struct{}

func (VoidValue) valueNode() {}

// PointerValue is an absolute address, represented as u64.
type PointerValue struct {
	Addr uint64
}

func (PointerValue) valueNode() {}

// ArrayValue is a slice constant: {pointer, length}, both u64.
type ArrayValue struct {
	Ptr uint64
	Len uint64
}

func (ArrayValue) valueNode() {}

// StaticArrayValue is an inline vector of element constants.
type StaticArrayValue struct {
	Elems []TypedValue
}

func (StaticArrayValue) valueNode() {}

// StructValue is a vector of member constants in declaration order.
type StructValue struct {
	Fields []TypedValue
}

func (StructValue) valueNode() {}

// FunctionRefValue names a concrete, already-typed runtime function.
// EnclosingScopeAny is a *scope.Scope stored as `any` — see the note on
// PolymorphicStructType for why.
type FunctionRefValue struct {
	MangledName       string
	Decl              *ast.FunctionDecl
	EnclosingScopeAny any
}

func (FunctionRefValue) valueNode() {}

// PolymorphicFunctionRefValue names a not-yet-instantiated function
// declaration plus the scope its body must be resolved in once bound.
type PolymorphicFunctionRefValue struct {
	Decl              *ast.FunctionDecl
	EnclosingScopeAny any
}

func (PolymorphicFunctionRefValue) valueNode() {}

// BuiltinRefValue names one of the two compiler intrinsics.
type BuiltinRefValue struct {
	Name string
}

func (BuiltinRefValue) valueNode() {}

// FileModuleRefValue is the value an `import`/`using` expression
// evaluates to: the absolute path (for parsed-file-table dedup) plus the
// already-parsed statement list.
type FileModuleRefValue struct {
	AbsolutePath string
	Statements   []ast.Statement
}

func (FileModuleRefValue) valueNode() {}

// TypeConstantValue embeds a Type as a value of type TypeOfType — how a
// type expression like `i32` or a polymorphic `$T` argument is carried
// around as an ordinary constant.
type TypeConstantValue struct {
	T Type
}

func (TypeConstantValue) valueNode() {}
