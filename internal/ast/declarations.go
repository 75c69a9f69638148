package ast

import "github.com/ferrite-lang/ferritec/internal/source"

// Param is one formal parameter of a function or one parameter of a
// polymorphic struct declaration.
//
// IsPolymorphic marks a "type determiner" parameter (`$T: type`): its
// TypeExpr is absent, and the resolver binds a fresh constant parameter
// named Name at each call site instead of evaluating a fixed type.
// IsConstant marks an explicit `constant` parameter: its value must be a
// compile-time constant at every call site and also becomes a bound
// constant parameter in the callee's scope.
type Param struct {
	Name          string
	NameRange     source.Range
	TypeExpr      Expression // nil when IsPolymorphic
	IsPolymorphic bool
	IsConstant    bool
}

// FunctionDecl declares a function. If any Param IsPolymorphic or
// IsConstant, the declaration's type is PolymorphicFunction and it is
// instantiated per call site (spec §4.3, §4.6 "Function-call lowering").
type FunctionDecl struct {
	base
	Name       string
	Params     []Param
	ReturnType Expression // nil means Void
	Body       []Statement
	External   bool // external functions use their source name verbatim
}

func (*FunctionDecl) statementNode() {}

// ConstDecl is `name :: expr;` — a compile-time constant definition
// (spec §4.3 "Constant definition").
type ConstDecl struct {
	base
	Name  string
	Value Expression
}

func (*ConstDecl) statementNode() {}

// StructMember is one `name: Type;` member of a (possibly polymorphic)
// struct declaration.
type StructMember struct {
	Name      string
	NameRange source.Range
	TypeExpr  Expression
}

// StructDecl declares a struct. With zero Params it is a concrete
// Struct; with one or more it is a PolymorphicStruct, instantiated on
// each distinct constant-argument call (spec §4.3, §4.6).
type StructDecl struct {
	base
	Name    string
	Params  []Param
	Members []StructMember
	IsUnion bool
}

func (*StructDecl) statementNode() {}

// ImportDecl binds Name to the FileModuleRef produced by resolving
// PathLiteral relative to the importing file (spec §4.3 "Import").
type ImportDecl struct {
	base
	Name        string
	PathLiteral string
}

func (*ImportDecl) statementNode() {}
