package types

import (
	"fmt"
	"strings"

	"github.com/ferrite-lang/ferritec/internal/ast"
)

// Type is the common interface every type variant implements. Equals
// implements the structural/nominal equality rules of spec §3
// invariants 3 and 4: pointee identity for pointers, definition-handle
// plus member list for structs.
type Type interface {
	Kind() Kind
	String() string
	Equals(other Type) bool
}

// IsRuntimeType reports whether values of t can be laid out in memory at
// run time (spec glossary "Runtime type"): integer, float, bool,
// pointer, slice, static array, struct. Undetermined types, TypeOfType,
// Void, and the three function/module kinds are not runtime types.
func IsRuntimeType(t Type) bool {
	switch t.Kind() {
	case KindInteger, KindFloat, KindBool, KindPointer, KindArraySlice, KindStaticArray, KindStruct:
		return true
	default:
		return false
	}
}

// IsScalar reports whether a runtime value of t fits in a single
// register, as opposed to needing to be addressed (spec §4.6
// "Representation").
func IsScalar(t Type) bool {
	switch t.Kind() {
	case KindInteger, KindFloat, KindBool, KindPointer:
		return true
	default:
		return false
	}
}

// ---- Integer / Float ----

// IntegerType is a concrete sized integer.
type IntegerType struct {
	Size   int // 8, 16, 32, or 64
	Signed bool
}

func (t *IntegerType) Kind() Kind { return KindInteger }
func (t *IntegerType) String() string {
	if t.Signed {
		return fmt.Sprintf("i%d", t.Size)
	}
	return fmt.Sprintf("u%d", t.Size)
}
func (t *IntegerType) Equals(other Type) bool {
	o, ok := other.(*IntegerType)
	return ok && o.Size == t.Size && o.Signed == t.Signed
}

// UndeterminedIntegerType is the type of an integer literal before
// context fixes its size (spec glossary "Undetermined type").
type UndeterminedIntegerType struct{}

func (t *UndeterminedIntegerType) Kind() Kind     { return KindUndeterminedInteger }
func (t *UndeterminedIntegerType) String() string { return "{integer}" }
func (t *UndeterminedIntegerType) Equals(other Type) bool {
	_, ok := other.(*UndeterminedIntegerType)
	return ok
}

// FloatType is a concrete sized float.
type FloatType struct {
	Size int // 32 or 64
}

func (t *FloatType) Kind() Kind     { return KindFloat }
func (t *FloatType) String() string { return fmt.Sprintf("f%d", t.Size) }
func (t *FloatType) Equals(other Type) bool {
	o, ok := other.(*FloatType)
	return ok && o.Size == t.Size
}

// UndeterminedFloatType is the type of a float literal before context
// fixes its size.
type UndeterminedFloatType struct{}

func (t *UndeterminedFloatType) Kind() Kind     { return KindUndeterminedFloat }
func (t *UndeterminedFloatType) String() string { return "{float}" }
func (t *UndeterminedFloatType) Equals(other Type) bool {
	_, ok := other.(*UndeterminedFloatType)
	return ok
}

// ---- Singletons ----

type BoolType struct{}

func (t *BoolType) Kind() Kind     { return KindBool }
func (t *BoolType) String() string { return "bool" }
func (t *BoolType) Equals(other Type) bool {
	_, ok := other.(*BoolType)
	return ok
}

type VoidType struct{}

func (t *VoidType) Kind() Kind     { return KindVoid }
func (t *VoidType) String() string { return "void" }
func (t *VoidType) Equals(other Type) bool {
	_, ok := other.(*VoidType)
	return ok
}

// TypeOfTypeType is the type of a type used as a value, e.g. the
// expression `i32` itself or the `T` of a polymorphic parameter.
type TypeOfTypeType struct{}

func (t *TypeOfTypeType) Kind() Kind     { return KindTypeOfType }
func (t *TypeOfTypeType) String() string { return "type" }
func (t *TypeOfTypeType) Equals(other Type) bool {
	_, ok := other.(*TypeOfTypeType)
	return ok
}

// ---- Pointer / Array ----

// PointerType preserves pointee identity: Pointer(A) == Pointer(B) iff
// A == B (spec §3 invariant 3).
type PointerType struct {
	Elem Type
}

func (t *PointerType) Kind() Kind     { return KindPointer }
func (t *PointerType) String() string { return "*" + t.Elem.String() }
func (t *PointerType) Equals(other Type) bool {
	o, ok := other.(*PointerType)
	return ok && o.Elem.Equals(t.Elem)
}

// ArraySliceType is the two-word {pointer, length} slice.
type ArraySliceType struct {
	Elem Type
}

func (t *ArraySliceType) Kind() Kind     { return KindArraySlice }
func (t *ArraySliceType) String() string { return "[]" + t.Elem.String() }
func (t *ArraySliceType) Equals(other Type) bool {
	o, ok := other.(*ArraySliceType)
	return ok && o.Elem.Equals(t.Elem)
}

// StaticArrayType is the inline, fixed-length array.
type StaticArrayType struct {
	Length uint64
	Elem   Type
}

func (t *StaticArrayType) Kind() Kind { return KindStaticArray }
func (t *StaticArrayType) String() string {
	return fmt.Sprintf("[%d]%s", t.Length, t.Elem.String())
}
func (t *StaticArrayType) Equals(other Type) bool {
	o, ok := other.(*StaticArrayType)
	return ok && o.Length == t.Length && o.Elem.Equals(t.Elem)
}

// ---- Struct ----

// Member is one named, typed struct field, kept in declaration order.
type Member struct {
	Name string
	Type Type
}

// StructType is a nominal struct: equality requires both an identical
// definition handle and an identical member list (spec §3 invariant 4 —
// two instantiations of the same PolymorphicStruct handle with
// different constant arguments produce distinct member lists and so
// remain distinct types even though Handle is shared).
type StructType struct {
	Handle  *ast.StructDecl
	Members []Member
	IsUnion bool
}

func (t *StructType) Kind() Kind { return KindStruct }
func (t *StructType) String() string {
	if t.Handle != nil && t.Handle.Name != "" {
		return t.Handle.Name
	}
	return "struct{...}"
}
func (t *StructType) Equals(other Type) bool {
	o, ok := other.(*StructType)
	if !ok || o.Handle != t.Handle || len(o.Members) != len(t.Members) {
		return false
	}
	for i, m := range t.Members {
		om := o.Members[i]
		if m.Name != om.Name || !m.Type.Equals(om.Type) {
			return false
		}
	}
	return true
}

// PolymorphicStructType is a struct declaration with one or more
// parameters, not yet instantiated. Enclosing is a *scope.Scope stored
// as `any` to avoid an import cycle: internal/scope already depends on
// internal/types for ConstantParameter.Type/Value.
type PolymorphicStructType struct {
	Handle      *ast.StructDecl
	ParamTypes  []Type
	EnclosingAny any
}

func (t *PolymorphicStructType) Kind() Kind     { return KindPolymorphicStruct }
func (t *PolymorphicStructType) String() string { return t.Handle.Name + "(...)" }
func (t *PolymorphicStructType) Equals(other Type) bool {
	o, ok := other.(*PolymorphicStructType)
	return ok && o.Handle == t.Handle
}

// UndeterminedStructType is the structural type of a struct literal
// before it is coerced to a concrete (nominal or union) struct.
type UndeterminedStructType struct {
	Members []Member
}

func (t *UndeterminedStructType) Kind() Kind { return KindUndeterminedStruct }
func (t *UndeterminedStructType) String() string {
	names := make([]string, len(t.Members))
	for i, m := range t.Members {
		names[i] = m.Name + ": " + m.Type.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}
func (t *UndeterminedStructType) Equals(other Type) bool {
	o, ok := other.(*UndeterminedStructType)
	if !ok || len(o.Members) != len(t.Members) {
		return false
	}
	for i, m := range t.Members {
		om := o.Members[i]
		if m.Name != om.Name || !m.Type.Equals(om.Type) {
			return false
		}
	}
	return true
}

// ---- Functions / modules ----

// FunctionType is a concrete, non-polymorphic function signature.
type FunctionType struct {
	Params []Type
	Return Type
}

func (t *FunctionType) Kind() Kind { return KindFunction }
func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	ret := "void"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + ret
}
func (t *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(o.Params) != len(t.Params) {
		return false
	}
	for i, p := range t.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	if t.Return == nil || o.Return == nil {
		return t.Return == o.Return
	}
	return t.Return.Equals(o.Return)
}

// PolymorphicFunctionType is the type of a function declaration with at
// least one polymorphic-determiner or constant parameter.
type PolymorphicFunctionType struct{}

func (t *PolymorphicFunctionType) Kind() Kind     { return KindPolymorphicFunction }
func (t *PolymorphicFunctionType) String() string { return "<polymorphic function>" }
func (t *PolymorphicFunctionType) Equals(other Type) bool {
	_, ok := other.(*PolymorphicFunctionType)
	return ok
}

// BuiltinFunctionType is the type of `size_of`/`type_of`.
type BuiltinFunctionType struct {
	Name string
}

func (t *BuiltinFunctionType) Kind() Kind     { return KindBuiltinFunction }
func (t *BuiltinFunctionType) String() string { return "<builtin " + t.Name + ">" }
func (t *BuiltinFunctionType) Equals(other Type) bool {
	o, ok := other.(*BuiltinFunctionType)
	return ok && o.Name == t.Name
}

// FileModuleType is the type of an imported module value.
type FileModuleType struct{}

func (t *FileModuleType) Kind() Kind     { return KindFileModule }
func (t *FileModuleType) String() string { return "<module>" }
func (t *FileModuleType) Equals(other Type) bool {
	_, ok := other.(*FileModuleType)
	return ok
}
