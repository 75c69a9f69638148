package eval

import (
	"errors"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// evalCast implements spec §4.2's Cast(expr, targetType): coercion
// first, then the narrower set of explicit conversions coercion
// refuses (wrap-on-size integer↔integer, integer↔float, float↔float,
// pointer↔usize).
func evalCast(ctx Context, e *ast.CastExpr) (Value, error) {
	target, err := evaluateTypeExpr(ctx, e.Target)
	if err != nil {
		return Value{}, err
	}
	operand, err := evalExpr(ctx, e.Operand)
	if err != nil {
		return Value{}, err
	}
	operand, err = rvalue(ctx, operand)
	if err != nil {
		return Value{}, err
	}

	probeCtx := ctx
	probeCtx.Probing = true
	if v, cerr := Coerce(probeCtx, operand, target, e.Range()); cerr == nil {
		return v, nil
	} else if !errors.Is(cerr, errProbeFailed) {
		return Value{}, cerr
	}

	if v, ok, err := explicitConvert(ctx, operand, target); err != nil {
		return Value{}, err
	} else if ok {
		return v, nil
	}

	return Value{}, ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot implicitly convert '%s' to '%s'", operand.Type.String(), target.String())
}

func explicitConvert(ctx Context, v Value, target types.Type) (Value, bool, error) {
	switch t := target.(type) {
	case *types.IntegerType:
		switch v.Type.(type) {
		case *types.IntegerType, *types.UndeterminedIntegerType:
			r, err := explicitIntToInt(ctx, v, t)
			return r, true, err
		case *types.FloatType, *types.UndeterminedFloatType:
			r, err := explicitFloatToInt(ctx, v, t)
			return r, true, err
		case *types.PointerType:
			if t.Size == ctx.Config.AddressSize && !t.Signed {
				r, err := explicitPointerToInt(ctx, v, t)
				return r, true, err
			}
		}
	case *types.FloatType:
		switch v.Type.(type) {
		case *types.FloatType, *types.UndeterminedFloatType:
			r, err := explicitFloatToFloat(ctx, v, t)
			return r, true, err
		case *types.IntegerType, *types.UndeterminedIntegerType:
			r, err := promoteIntToFloat(ctx, v, t)
			return r, true, err
		}
	case *types.PointerType:
		switch st := v.Type.(type) {
		case *types.IntegerType:
			if st.Size == ctx.Config.AddressSize && !st.Signed {
				r, err := explicitIntToPointer(ctx, v, t)
				return r, true, err
			}
		case *types.UndeterminedIntegerType:
			r, err := explicitIntToPointer(ctx, v, t)
			return r, true, err
		}
	}
	return Value{}, false, nil
}

func explicitIntToInt(ctx Context, v Value, t *types.IntegerType) (Value, error) {
	if v.IsConstant() {
		bits := v.Const.(types.IntegerValue).Bits
		return constVal(t, types.IntegerValue{Bits: truncateBits(bits, t.Size)}), nil
	}
	if ctx.Emit == nil {
		return Value{}, errNoRuntimeContext(ctx)
	}
	srcReg, err := materializeScalar(ctx, v)
	if err != nil {
		return Value{}, err
	}
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntUpcast(dst, srcReg, t.Size, t.Signed))
	return registerVal(t, dst), nil
}

func explicitFloatToInt(ctx Context, v Value, t *types.IntegerType) (Value, error) {
	if v.IsConstant() {
		f := v.Const.(types.FloatValue).Bits
		var bits uint64
		if t.Signed {
			bits = uint64(int64(f))
		} else {
			bits = uint64(f)
		}
		return constVal(t, types.IntegerValue{Bits: truncateBits(bits, t.Size)}), nil
	}
	if ctx.Emit == nil {
		return Value{}, errNoRuntimeContext(ctx)
	}
	srcReg, err := materializeScalar(ctx, v)
	if err != nil {
		return Value{}, err
	}
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.FloatTruncate(dst, srcReg, t.Size, t.Signed))
	return registerVal(t, dst), nil
}

func explicitFloatToFloat(ctx Context, v Value, t *types.FloatType) (Value, error) {
	if v.IsConstant() {
		f := v.Const.(types.FloatValue).Bits
		if t.Size == 32 {
			f = float64(float32(f))
		}
		return constVal(t, types.FloatValue{Bits: f}), nil
	}
	if ctx.Emit == nil {
		return Value{}, errNoRuntimeContext(ctx)
	}
	srcReg, err := materializeScalar(ctx, v)
	if err != nil {
		return Value{}, err
	}
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.FloatConvert(dst, srcReg, t.Size))
	return registerVal(t, dst), nil
}

func explicitPointerToInt(ctx Context, v Value, t *types.IntegerType) (Value, error) {
	if v.IsConstant() {
		addr := v.Const.(types.PointerValue).Addr
		return constVal(t, types.IntegerValue{Bits: addr}), nil
	}
	return retypeScalar(v, t), nil
}

func explicitIntToPointer(ctx Context, v Value, t *types.PointerType) (Value, error) {
	if v.IsConstant() {
		bits := v.Const.(types.IntegerValue).Bits
		return constVal(t, types.PointerValue{Addr: bits}), nil
	}
	return retypeScalar(v, t), nil
}

func errNoRuntimeContext(ctx Context) error {
	return ctx.errorf(diagnostics.CategoryStructural, source.Range{}, "cannot cast outside a function body")
}
