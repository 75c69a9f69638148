package eval

import (
	"github.com/ferrite-lang/ferritec/internal/types"
)

// lookupGlobal is step 5 of name resolution (spec §4.1): the ambient
// table of primitive type names, the two boolean literals, and the two
// compiler intrinsics, none of which are declared by any source file.
func lookupGlobal(ctx Context, name string) (Value, bool) {
	typeConst := func(t types.Type) Value {
		return constVal(&types.TypeOfTypeType{}, types.TypeConstantValue{T: t})
	}
	switch name {
	case "bool":
		return typeConst(&types.BoolType{}), true
	case "void":
		return typeConst(&types.VoidType{}), true
	case "type":
		return typeConst(&types.TypeOfTypeType{}), true
	case "f32":
		return typeConst(&types.FloatType{Size: 32}), true
	case "f64":
		return typeConst(&types.FloatType{Size: 64}), true
	case "usize":
		return typeConst(&types.IntegerType{Size: ctx.Config.AddressSize, Signed: false}), true
	case "isize":
		return typeConst(&types.IntegerType{Size: ctx.Config.AddressSize, Signed: true}), true
	case "u8":
		return typeConst(&types.IntegerType{Size: 8, Signed: false}), true
	case "u16":
		return typeConst(&types.IntegerType{Size: 16, Signed: false}), true
	case "u32":
		return typeConst(&types.IntegerType{Size: 32, Signed: false}), true
	case "u64":
		return typeConst(&types.IntegerType{Size: 64, Signed: false}), true
	case "i8":
		return typeConst(&types.IntegerType{Size: 8, Signed: true}), true
	case "i16":
		return typeConst(&types.IntegerType{Size: 16, Signed: true}), true
	case "i32":
		return typeConst(&types.IntegerType{Size: 32, Signed: true}), true
	case "i64":
		return typeConst(&types.IntegerType{Size: 64, Signed: true}), true
	case "true":
		return constVal(&types.BoolType{}, types.BoolValue{V: true}), true
	case "false":
		return constVal(&types.BoolType{}, types.BoolValue{V: false}), true
	case "size_of":
		return constVal(&types.BuiltinFunctionType{Name: "size_of"}, types.BuiltinRefValue{Name: "size_of"}), true
	case "type_of":
		return constVal(&types.BuiltinFunctionType{Name: "type_of"}, types.BuiltinRefValue{Name: "type_of"}), true
	default:
		return Value{}, false
	}
}

// defaultIntType is the type an UndeterminedInteger collapses to under
// the "default-type rule" (spec §4.2) when nothing coerces it first.
func defaultIntType(ctx Context) *types.IntegerType {
	return &types.IntegerType{Size: ctx.Config.DefaultIntSize, Signed: true}
}

// defaultFloatType is the analogous default for UndeterminedFloat. The
// spec leaves the default float width unspecified beyond "f{defaultSize}";
// ferritec fixes it at f64, matching the width constant literals like
// `3.14` are parsed with (see DESIGN.md).
func defaultFloatType() *types.FloatType {
	return &types.FloatType{Size: 64}
}
