package eval

import (
	"github.com/ferrite-lang/ferritec/internal/types"
)

// valueKind discriminates the four shapes a runtime Value can take
// (spec §4.6 "Values").
type valueKind int

const (
	// kindConstant defers to an already-known compile-time value;
	// coercion/generation may still have to materialise it into a
	// register or local when it meets a runtime sink.
	kindConstant valueKind = iota
	// kindRegister is a scalar sitting in a register, or an aggregate
	// whose register already holds its address (interchangeable with
	// kindAddress at that point).
	kindRegister
	// kindAddress is a register holding the address of the actual
	// value — the L-value form assignment targets must produce.
	kindAddress
	// kindUndeterminedStruct is a struct literal not yet coerced to a
	// concrete layout.
	kindUndeterminedStruct
)

// namedValue pairs a struct-literal field name with its evaluated value.
type namedValue struct {
	Name  string
	Value Value
}

// Value is the runtime counterpart of types.TypedValue used throughout
// constant evaluation and IR generation (spec §4.6 "Values"). Most code
// paths only care about Type and, in constant contexts, Const; register
// fields are meaningful only when Emit != nil produced them.
type Value struct {
	Type types.Type
	Kind valueKind

	Const types.Value // kindConstant
	Reg   int          // kindRegister / kindAddress

	Members []namedValue // kindUndeterminedStruct
}

func constVal(t types.Type, v types.Value) Value {
	return Value{Type: t, Kind: kindConstant, Const: v}
}

func registerVal(t types.Type, reg int) Value {
	return Value{Type: t, Kind: kindRegister, Reg: reg}
}

func addressVal(t types.Type, reg int) Value {
	return Value{Type: t, Kind: kindAddress, Reg: reg}
}

func undeterminedStructVal(t types.Type, members []namedValue) Value {
	return Value{Type: t, Kind: kindUndeterminedStruct, Members: members}
}

// IsConstant reports whether v already carries a fully-known compile
// time value.
func (v Value) IsConstant() bool { return v.Kind == kindConstant }

// typed projects a constant Value back to the (Type, Value) pair the
// constant evaluator's contract (spec §4.2) returns.
func (v Value) typed() types.TypedValue {
	return types.TypedValue{Type: v.Type, Value: v.Const}
}
