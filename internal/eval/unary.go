package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// evalUnary implements spec §4.2's UnaryOperation: `*T` at constant
// time produces Pointer(T); `!` inverts booleans; unary `-` negates
// integers/floats; address-of is rejected in a constant context.
func evalUnary(ctx Context, e *ast.UnaryExpr) (Value, error) {
	switch e.Op {
	case ast.OpDeref:
		t, err := evaluateTypeExpr(ctx, e.Operand)
		if err != nil {
			return Value{}, err
		}
		return constVal(&types.TypeOfTypeType{}, types.TypeConstantValue{T: &types.PointerType{Elem: t}}), nil
	case ast.OpAddr:
		return evalAddrOf(ctx, e)
	}

	operand, err := evalExpr(ctx, e.Operand)
	if err != nil {
		return Value{}, err
	}
	operand, err = rvalue(ctx, operand)
	if err != nil {
		return Value{}, err
	}

	switch e.Op {
	case ast.OpNot:
		if _, ok := operand.Type.(*types.BoolType); !ok {
			return Value{}, ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot apply ! to %s", operand.Type.String())
		}
		if operand.IsConstant() {
			b := operand.Const.(types.BoolValue).V
			return constVal(operand.Type, types.BoolValue{V: !b}), nil
		}
		return emitUnaryNot(ctx, operand)
	case ast.OpNeg:
		return evalNegate(ctx, e, operand)
	default:
		return Value{}, ctx.errorf(diagnostics.CategoryType, e.Range(), "unknown unary operator %q", string(e.Op))
	}
}

func evalNegate(ctx Context, e *ast.UnaryExpr, operand Value) (Value, error) {
	switch operand.Type.(type) {
	case *types.IntegerType, *types.UndeterminedIntegerType:
		if operand.IsConstant() {
			bits := operand.Const.(types.IntegerValue).Bits
			return constVal(operand.Type, types.IntegerValue{Bits: uint64(-int64(bits))}), nil
		}
		return emitIntNegate(ctx, operand)
	case *types.FloatType, *types.UndeterminedFloatType:
		if operand.IsConstant() {
			f := operand.Const.(types.FloatValue).Bits
			return constVal(operand.Type, types.FloatValue{Bits: -f}), nil
		}
		return emitFloatNegate(ctx, operand)
	default:
		return Value{}, ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot negate %s", operand.Type.String())
	}
}

func emitUnaryNot(ctx Context, operand Value) (Value, error) {
	reg, err := materializeScalar(ctx, operand)
	if err != nil {
		return Value{}, err
	}
	zero := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntConstInstr(zero, ctx.Config.DefaultIntSize, false, 0))
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Int(ir.OpIntCompare, ir.ArithEq, ctx.Config.DefaultIntSize, false, dst, reg, zero))
	return registerVal(operand.Type, dst), nil
}

func emitIntNegate(ctx Context, operand Value) (Value, error) {
	it, _ := operand.Type.(*types.IntegerType)
	size, signed := ctx.Config.DefaultIntSize, true
	if it != nil {
		size, signed = it.Size, it.Signed
	}
	reg, err := materializeScalar(ctx, operand)
	if err != nil {
		return Value{}, err
	}
	zero := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntConstInstr(zero, size, signed, 0))
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, ir.ArithSub, size, signed, dst, zero, reg))
	return registerVal(operand.Type, dst), nil
}

func emitFloatNegate(ctx Context, operand Value) (Value, error) {
	ft, _ := operand.Type.(*types.FloatType)
	size := 64
	if ft != nil {
		size = ft.Size
	}
	reg, err := materializeScalar(ctx, operand)
	if err != nil {
		return Value{}, err
	}
	zero := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.FloatConstInstr(zero, size, 0))
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Float(ir.OpFloatBinary, ir.ArithSub, size, dst, zero, reg))
	return registerVal(operand.Type, dst), nil
}

// evalAddrOf implements `&x`: forbidden in a constant context (spec
// §4.2 "Address-of is not permitted in a constant context"), otherwise
// yields a Pointer to whatever address the operand already evaluates
// to.
func evalAddrOf(ctx Context, e *ast.UnaryExpr) (Value, error) {
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "address-of is not permitted in a constant context")
	}
	operand, err := evalExpr(ctx, e.Operand)
	if err != nil {
		return Value{}, err
	}
	addr, err := addressOf(ctx, operand)
	if err != nil {
		return Value{}, err
	}
	return registerVal(&types.PointerType{Elem: operand.Type}, addr), nil
}
