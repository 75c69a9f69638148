package ast

import "github.com/ferrite-lang/ferritec/internal/source"

// Identifier is a bare name: a variable, a function, a type, a constant
// parameter, or a primitive/builtin from the ambient global table. It is
// the "NamedReference" expression of spec §4.1/§4.2.
type Identifier struct {
	base
	Name string
}

func (*Identifier) expressionNode() {}

// IntegerLiteral is an integer literal; its type is UndeterminedInteger
// until the default-type rule or a coercion target fixes its size.
type IntegerLiteral struct {
	base
	Value uint64
}

func (*IntegerLiteral) expressionNode() {}

// FloatLiteral is a floating-point literal (UndeterminedFloat).
type FloatLiteral struct {
	base
	Value float64
}

func (*FloatLiteral) expressionNode() {}

// StringLiteral folds to a StaticArray of u8 (spec §4.2).
type StringLiteral struct {
	base
	Value string
}

func (*StringLiteral) expressionNode() {}

// BoolLiteral is `true` or `false`. These are also reachable through the
// ambient global table (spec §4.1 step 5) but the parser may emit a
// dedicated literal node for them too.
type BoolLiteral struct {
	base
	Value bool
}

func (*BoolLiteral) expressionNode() {}

// ArrayLiteralExpr is an array literal; each element is an expression
// carrying its own source range.
type ArrayLiteralExpr struct {
	base
	Elements []Expression
}

func (*ArrayLiteralExpr) expressionNode() {}

// StructLiteralField is one `name = value` pair inside a `.{ ... }`
// struct literal.
type StructLiteralField struct {
	Name  string
	NameRange source.Range
	Value Expression
}

// StructLiteralExpr produces an UndeterminedStruct until coerced to a
// concrete (possibly union) struct type (spec §4.2, §4.5 rule 7).
type StructLiteralExpr struct {
	base
	Fields []StructLiteralField
}

func (*StructLiteralExpr) expressionNode() {}

// MemberExpr is `Object.Member`: array `.length`/`.pointer`, struct field
// access, or file-module member access (spec §4.2 MemberReference).
type MemberExpr struct {
	base
	Object      Expression
	Member      string
	MemberRange source.Range
}

func (*MemberExpr) expressionNode() {}

// IndexExpr is `Object[Index]` (spec §4.2 IndexReference).
type IndexExpr struct {
	base
	Object Expression
	Index  Expression
}

func (*IndexExpr) expressionNode() {}

// BinaryOp names the infix operators the binary-operation ladder (spec
// §4.4) understands.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpAnd BinaryOp = "&"
	OpOr  BinaryOp = "|"
	OpLAnd BinaryOp = "&&"
	OpLOr  BinaryOp = "||"
	OpLt  BinaryOp = "<"
	OpGt  BinaryOp = ">"
	OpLe  BinaryOp = "<="
	OpGe  BinaryOp = ">="
	OpEq  BinaryOp = "=="
	OpNe  BinaryOp = "!="
)

// BinaryExpr is a two-operand operation (spec §4.4).
type BinaryExpr struct {
	base
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (*BinaryExpr) expressionNode() {}

// UnaryOp names the prefix operators spec §4.2 describes.
type UnaryOp string

const (
	// OpDeref ("*T") produces Pointer(T) at constant time.
	OpDeref UnaryOp = "*"
	OpNot   UnaryOp = "!"
	OpNeg   UnaryOp = "-"
	// OpAddr ("&x") is address-of; forbidden in a constant context.
	OpAddr UnaryOp = "&"
)

// UnaryExpr is a one-operand prefix operation.
type UnaryExpr struct {
	base
	Op      UnaryOp
	Operand Expression
}

func (*UnaryExpr) expressionNode() {}

// CastExpr is `cast(Expr, Type)` / `Expr as Type` — first tries implicit
// coercion, then falls back to the explicit conversions of spec §4.2.
type CastExpr struct {
	base
	Operand Expression
	Target  Expression
}

func (*CastExpr) expressionNode() {}

// CallExpr is a function call, a polymorphic-struct instantiation call,
// or a call to a builtin (`size_of`, `type_of`).
type CallExpr struct {
	base
	Callee Expression
	Args   []Expression
}

func (*CallExpr) expressionNode() {}

// ArrayTypeExpr is `[]T` (Length == nil, produces ArraySlice(T)) or
// `[N]T` (Length != nil, produces StaticArray{N,T}).
type ArrayTypeExpr struct {
	base
	Length  Expression // nil for a slice type
	Element Expression
}

func (*ArrayTypeExpr) expressionNode() {}

// FunctionTypeExpr is `(P1, P2) -> R`, used for function-pointer typed
// parameters and return types; polymorphic parameters are rejected here.
type FunctionTypeExpr struct {
	base
	Params []Expression
	Return Expression // nil means Void
}

func (*FunctionTypeExpr) expressionNode() {}

// ImportExpr is the literal form `"path/to/file.fe"` used directly as a
// `using` target (spec §8 scenario S6). A named import binding
// (`a :: import "a.fe";`) instead goes through ImportDecl and is later
// referenced as a NamedReference (*Identifier).
type ImportExpr struct {
	base
	PathLiteral string
}

func (*ImportExpr) expressionNode() {}
