package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// foldBinary constant-folds a binary operation once both operands are
// known (spec §4.4 "Constant-fold if both operands are constant
// values").
func foldBinary(ctx Context, e *ast.BinaryExpr, class binOpClass, kind ir.ArithKind, direct bool, opType, resultType types.Type, l, r Value) (Value, error) {
	isFloat := opType.Kind() == types.KindFloat || opType.Kind() == types.KindUndeterminedFloat

	var resultBits uint64
	var resultFloat float64
	var resultBool bool
	var isBoolResult bool

	switch class {
	case classArith:
		if isFloat {
			lf, rf := asFloat(l), asFloat(r)
			resultFloat = foldFloatArith(kind, lf, rf)
		} else {
			li, ri := asInt(l), asInt(r)
			signed := integerSigned(opType)
			v, err := foldIntArith(ctx, e, kind, li, ri, signed)
			if err != nil {
				return Value{}, err
			}
			resultBits = v
		}
	case classBitwise:
		li, ri := asInt(l), asInt(r)
		if kind == ir.ArithAnd {
			resultBits = li & ri
		} else {
			resultBits = li | ri
		}
	case classLogical:
		lb, rb := asBool(l), asBool(r)
		isBoolResult = true
		if kind == ir.ArithAnd {
			resultBool = lb && rb
		} else {
			resultBool = lb || rb
		}
	case classRelational:
		isBoolResult = true
		if isFloat {
			lf, rf := asFloat(l), asFloat(r)
			resultBool = foldFloatCompare(kind, lf, rf)
		} else {
			li, ri := asInt(l), asInt(r)
			resultBool = foldIntCompare(kind, li, ri, integerSigned(opType))
		}
		if !direct {
			resultBool = !resultBool
		}
	case classEquality:
		isBoolResult = true
		resultBool = foldEquals(opType, l, r)
		if !direct {
			resultBool = !resultBool
		}
	}

	if isBoolResult {
		return constVal(resultType, types.BoolValue{V: resultBool}), nil
	}
	if isFloat {
		return constVal(resultType, types.FloatValue{Bits: resultFloat}), nil
	}
	return constVal(resultType, types.IntegerValue{Bits: resultBits}), nil
}

func asInt(v Value) uint64    { return v.Const.(types.IntegerValue).Bits }
func asFloat(v Value) float64 { return v.Const.(types.FloatValue).Bits }
func asBool(v Value) bool     { return v.Const.(types.BoolValue).V }

func integerSigned(t types.Type) bool {
	if it, ok := t.(*types.IntegerType); ok {
		return it.Signed
	}
	return true
}

func foldIntArith(ctx Context, e *ast.BinaryExpr, kind ir.ArithKind, l, r uint64, signed bool) (uint64, error) {
	switch kind {
	case ir.ArithAdd:
		return l + r, nil
	case ir.ArithSub:
		return l - r, nil
	case ir.ArithMul:
		return l * r, nil
	case ir.ArithDiv:
		if r == 0 {
			return 0, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "division by zero")
		}
		if signed {
			return uint64(int64(l) / int64(r)), nil
		}
		return l / r, nil
	case ir.ArithMod:
		if r == 0 {
			return 0, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "division by zero")
		}
		if signed {
			return uint64(int64(l) % int64(r)), nil
		}
		return l % r, nil
	}
	return 0, ctx.errorf(diagnostics.CategoryType, e.Range(), "unsupported arithmetic operator")
}

func foldFloatArith(kind ir.ArithKind, l, r float64) float64 {
	switch kind {
	case ir.ArithAdd:
		return l + r
	case ir.ArithSub:
		return l - r
	case ir.ArithMul:
		return l * r
	case ir.ArithDiv:
		return l / r
	}
	return 0
}

func foldIntCompare(kind ir.ArithKind, l, r uint64, signed bool) bool {
	if signed {
		sl, sr := int64(l), int64(r)
		if kind == ir.ArithLt {
			return sl < sr
		}
		return sl > sr
	}
	if kind == ir.ArithLt {
		return l < r
	}
	return l > r
}

func foldFloatCompare(kind ir.ArithKind, l, r float64) bool {
	if kind == ir.ArithLt {
		return l < r
	}
	return l > r
}

func foldEquals(opType types.Type, l, r Value) bool {
	switch opType.Kind() {
	case types.KindFloat, types.KindUndeterminedFloat:
		return asFloat(l) == asFloat(r)
	case types.KindBool:
		return asBool(l) == asBool(r)
	default:
		return asInt(l) == asInt(r)
	}
}

// emitBinary is the IR-emitting counterpart of foldBinary, used
// whenever at least one operand is not a compile-time constant.
func emitBinary(ctx Context, class binOpClass, kind ir.ArithKind, direct bool, opType, resultType types.Type, l, r Value) (Value, error) {
	lReg, err := materializeScalar(ctx, l)
	if err != nil {
		return Value{}, err
	}
	rReg, err := materializeScalar(ctx, r)
	if err != nil {
		return Value{}, err
	}
	isFloat := opType.Kind() == types.KindFloat || opType.Kind() == types.KindUndeterminedFloat
	size := int(types.SizeOf(opType, ctx.Config) * 8)
	if size == 0 {
		size = ctx.Config.DefaultIntSize
	}
	signed := integerSigned(opType)

	dst := ctx.Emit.Builder.NewRegister()
	switch class {
	case classArith, classBitwise:
		if isFloat {
			ctx.Emit.Builder.Emit(ir.Float(ir.OpFloatBinary, kind, size, dst, lReg, rReg))
		} else {
			ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, kind, size, signed, dst, lReg, rReg))
		}
		return registerVal(resultType, dst), nil
	case classLogical:
		ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, kind, ctx.Config.DefaultIntSize, false, dst, lReg, rReg))
		return registerVal(resultType, dst), nil
	case classRelational:
		if isFloat {
			ctx.Emit.Builder.Emit(ir.Float(ir.OpFloatCompare, kind, size, dst, lReg, rReg))
		} else {
			ctx.Emit.Builder.Emit(ir.Int(ir.OpIntCompare, kind, size, signed, dst, lReg, rReg))
		}
		return invertIfNeeded(ctx, direct, resultType, dst)
	case classEquality:
		if isFloat {
			ctx.Emit.Builder.Emit(ir.Float(ir.OpFloatCompare, ir.ArithEq, size, dst, lReg, rReg))
		} else {
			ctx.Emit.Builder.Emit(ir.Int(ir.OpIntCompare, ir.ArithEq, size, signed, dst, lReg, rReg))
		}
		return invertIfNeeded(ctx, direct, resultType, dst)
	}
	return Value{}, nil
}

// invertIfNeeded synthesises `!=` as `==` followed by a boolean
// inversion, and `<=`/`>=` as the negation of `>`/`<` (spec §4.4: "!=
// is synthesised as == followed by a boolean inversion").
func invertIfNeeded(ctx Context, direct bool, resultType types.Type, reg int) (Value, error) {
	if direct {
		return registerVal(resultType, reg), nil
	}
	zero := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntConstInstr(zero, ctx.Config.DefaultIntSize, false, 0))
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Int(ir.OpIntCompare, ir.ArithEq, ctx.Config.DefaultIntSize, false, dst, reg, zero))
	return registerVal(resultType, dst), nil
}
