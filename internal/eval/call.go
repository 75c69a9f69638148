package eval

import (
	"fmt"
	"strings"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/scope"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// asFunctionRef unwraps a Value known to hold a concrete FunctionRef.
func asFunctionRef(v Value) (types.FunctionRefValue, bool) {
	fr, ok := v.Const.(types.FunctionRefValue)
	return fr, ok
}

// evalCall implements spec §4.2's FunctionCall: builtins are handled
// inline, calls on a polymorphic-struct type instantiate a Struct,
// and calls on a (possibly polymorphic) function lower per §4.6.
func evalCall(ctx Context, e *ast.CallExpr) (Value, error) {
	callee, err := evalExpr(ctx, e.Callee)
	if err != nil {
		return Value{}, err
	}

	switch c := callee.Type.(type) {
	case *types.BuiltinFunctionType:
		return evalBuiltinCall(ctx, e, c)
	case *types.PolymorphicStructType:
		return instantiatePolymorphicStruct(ctx, e, c)
	case *types.PolymorphicFunctionType:
		return instantiatePolymorphicFunctionCall(ctx, e, callee)
	case *types.FunctionType:
		return callConcreteFunction(ctx, e, callee, c)
	default:
		return Value{}, ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot call a value of type %s", callee.Type.String())
	}
}

func evalBuiltinCall(ctx Context, e *ast.CallExpr, b *types.BuiltinFunctionType) (Value, error) {
	if len(e.Args) != 1 {
		return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "%s expects exactly one argument", b.Name)
	}
	switch b.Name {
	case "size_of":
		t, err := evaluateTypeExpr(ctx, e.Args[0])
		if err != nil {
			return Value{}, err
		}
		usize := &types.IntegerType{Size: ctx.Config.AddressSize, Signed: false}
		return constVal(usize, types.IntegerValue{Bits: types.SizeOf(t, ctx.Config)}), nil
	case "type_of":
		v, err := evalExpr(ctx, e.Args[0])
		if err != nil {
			return Value{}, err
		}
		return constVal(&types.TypeOfTypeType{}, types.TypeConstantValue{T: v.Type}), nil
	default:
		return Value{}, ctx.errorf(diagnostics.CategoryStructural, e.Range(), "unknown builtin %q", b.Name)
	}
}

// instantiatePolymorphicStruct implements the PolymorphicStruct half of
// spec §4.2's FunctionCall rule: arguments are evaluated as constants,
// coerced to the declared parameter-type list, and bound as the new
// scope's constant parameters before the member list is resolved.
func instantiatePolymorphicStruct(ctx Context, e *ast.CallExpr, pst *types.PolymorphicStructType) (Value, error) {
	if len(e.Args) != len(pst.Handle.Params) {
		return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "expected %d arguments, got %d", len(pst.Handle.Params), len(e.Args))
	}
	enclosing, _ := pst.EnclosingAny.(*scope.Scope)
	constParams := make([]scope.ConstantParameter, len(e.Args))
	for i, argExpr := range e.Args {
		p := pst.Handle.Params[i]
		v, err := evaluateConstant(ctx, argExpr)
		if err != nil {
			return Value{}, err
		}
		if p.IsPolymorphic {
			if _, ok := v.Const.(types.TypeConstantValue); !ok {
				return Value{}, ctx.errorf(diagnostics.CategoryType, argExpr.Range(), "argument %q must be a type", p.Name)
			}
			constParams[i] = scope.ConstantParameter{Name: p.Name, Type: &types.TypeOfTypeType{}, Value: v.Const}
			continue
		}
		v, err = Coerce(ctx, v, pst.ParamTypes[i], argExpr.Range())
		if err != nil {
			return Value{}, err
		}
		constParams[i] = scope.ConstantParameter{Name: p.Name, Type: pst.ParamTypes[i], Value: v.Const}
	}

	nested := scope.NewNested(&scope.DeterminedDeclaration{
		Decl:           pst.Handle,
		ConstantParams: constParams,
		Enclosing:      enclosing,
	})
	members, err := resolveStructMembers(ctx.WithScope(nested), pst.Handle.Members)
	if err != nil {
		return Value{}, err
	}
	structType := &types.StructType{Handle: pst.Handle, Members: members, IsUnion: pst.Handle.IsUnion}
	return constVal(&types.TypeOfTypeType{}, types.TypeConstantValue{T: structType}), nil
}

// callConcreteFunction implements spec §4.6's "Function-call lowering"
// for an already-monomorphic callee.
func callConcreteFunction(ctx Context, e *ast.CallExpr, callee Value, ft *types.FunctionType) (Value, error) {
	fr, ok := asFunctionRef(callee)
	if !ok {
		return Value{}, ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot call a value of type %s", callee.Type.String())
	}
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "cannot call a runtime function in a constant context")
	}
	if len(e.Args) != len(ft.Params) {
		return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "expected %d arguments, got %d", len(ft.Params), len(e.Args))
	}

	argRegs := make([]ir.Register, 0, len(e.Args)+1)
	for i, argExpr := range e.Args {
		av, err := lowerArgument(ctx, argExpr, ft.Params[i])
		if err != nil {
			return Value{}, err
		}
		argRegs = append(argRegs, av)
	}

	enclosing, _ := fr.EnclosingScopeAny.(*scope.Scope)
	ctx.Driver.Enqueue(&pendingFunction{
		MangledName: fr.MangledName,
		Decl:        fr.Decl,
		Enclosing:   enclosing,
	})

	return emitCallWithArgs(ctx, fr.MangledName, argRegs, ft.Return)
}

// instantiatePolymorphicFunctionCall implements spec §4.6 point 4: bind
// a fresh constant-parameter set, synthesize a mangled name (reused via
// the de-dup cache when the same declaration/argument tuple repeats —
// spec §9 OQ3), type the remaining runtime parameters under the new
// scope, and register.
func instantiatePolymorphicFunctionCall(ctx Context, e *ast.CallExpr, callee Value) (Value, error) {
	pf := callee.Const.(types.PolymorphicFunctionRefValue)
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "cannot call a runtime function in a constant context")
	}
	if len(e.Args) != len(pf.Decl.Params) {
		return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "expected %d arguments, got %d", len(pf.Decl.Params), len(e.Args))
	}
	enclosing, _ := pf.EnclosingScopeAny.(*scope.Scope)

	type runtimeArg struct {
		idx  int
		expr ast.Expression
	}
	constParams := make([]scope.ConstantParameter, 0, len(pf.Decl.Params))
	var runtimeArgs []runtimeArg

	for i, p := range pf.Decl.Params {
		if !p.IsPolymorphic && !p.IsConstant {
			runtimeArgs = append(runtimeArgs, runtimeArg{idx: i, expr: e.Args[i]})
			continue
		}
		v, err := evaluateConstant(ctx, e.Args[i])
		if err != nil {
			return Value{}, err
		}
		if p.IsPolymorphic {
			if _, ok := v.Const.(types.TypeConstantValue); !ok {
				return Value{}, ctx.errorf(diagnostics.CategoryType, e.Args[i].Range(), "argument %q must be a type", p.Name)
			}
			constParams = append(constParams, scope.ConstantParameter{Name: p.Name, Type: &types.TypeOfTypeType{}, Value: v.Const})
			continue
		}
		pt, err := evaluateTypeExpr(ctx, p.TypeExpr)
		if err != nil {
			return Value{}, err
		}
		v, err = Coerce(ctx, v, pt, e.Args[i].Range())
		if err != nil {
			return Value{}, err
		}
		constParams = append(constParams, scope.ConstantParameter{Name: p.Name, Type: pt, Value: v.Const})
	}

	key := instantiationKey{Decl: pf.Decl, Args: encodeConstArgs(constParams)}
	mangled, cached := ctx.Driver.lookupInstantiation(key)
	if !cached {
		mangled = ctx.Driver.recordInstantiation(key)
	}

	nested := scope.NewNested(&scope.DeterminedDeclaration{
		Decl:           pf.Decl,
		ConstantParams: constParams,
		Enclosing:      enclosing,
	})
	nestedCtx := ctx.WithScope(nested)

	runtimeParamTypes := make([]types.Type, len(runtimeArgs))
	for j, ra := range runtimeArgs {
		p := pf.Decl.Params[ra.idx]
		pt, err := evaluateTypeExpr(nestedCtx, p.TypeExpr)
		if err != nil {
			return Value{}, err
		}
		if !types.IsRuntimeType(pt) {
			return Value{}, ctx.errorf(diagnostics.CategoryType, p.NameRange, "parameter %q is not a runtime type", p.Name)
		}
		runtimeParamTypes[j] = pt
	}

	var ret types.Type = &types.VoidType{}
	if pf.Decl.ReturnType != nil {
		rt, err := evaluateTypeExpr(nestedCtx, pf.Decl.ReturnType)
		if err != nil {
			return Value{}, err
		}
		if !types.IsRuntimeType(rt) {
			return Value{}, ctx.errorf(diagnostics.CategoryType, pf.Decl.ReturnType.Range(), "return type is not a runtime type")
		}
		ret = rt
	}

	argRegs := make([]ir.Register, 0, len(runtimeArgs)+1)
	for j, ra := range runtimeArgs {
		reg, err := lowerArgument(ctx, ra.expr, runtimeParamTypes[j])
		if err != nil {
			return Value{}, err
		}
		argRegs = append(argRegs, reg)
	}

	ctx.Driver.Enqueue(&pendingFunction{
		MangledName:    mangled,
		Decl:           pf.Decl,
		Enclosing:      enclosing,
		ConstantParams: constParams,
	})

	return emitCallWithArgs(ctx, mangled, argRegs, ret)
}

// lowerArgument evaluates, loads, and coerces one call argument to its
// formal parameter type, returning the register that carries it (an
// address for aggregates, a value register for scalars).
func lowerArgument(ctx Context, argExpr ast.Expression, paramType types.Type) (ir.Register, error) {
	av, err := evalExpr(ctx, argExpr)
	if err != nil {
		return ir.NoRegister, err
	}
	av, err = rvalue(ctx, av)
	if err != nil {
		return ir.NoRegister, err
	}
	av, err = Coerce(ctx, av, paramType, argExpr.Range())
	if err != nil {
		return ir.NoRegister, err
	}
	if types.IsScalar(paramType) {
		return materializeScalar(ctx, av)
	}
	return addressOf(ctx, av)
}

// emitCallWithArgs appends the by-reference return slot to argRegs when
// needed and emits the OpCall instruction, returning the caller's view
// of the result.
func emitCallWithArgs(ctx Context, name string, argRegs []ir.Register, ret types.Type) (Value, error) {
	byRef := ret.Kind() != types.KindVoid && !types.IsScalar(ret)
	if byRef {
		size := types.SizeOf(ret, ctx.Config)
		align := types.AlignOf(ret, ctx.Config)
		retAddr := ctx.Emit.Builder.NewRegister()
		ctx.Emit.Builder.Emit(ir.AllocLocal(retAddr, size, align))
		argRegs = append(argRegs, retAddr)
		ctx.Emit.Builder.Emit(ir.Call(name, argRegs, ir.NoRegister))
		return addressVal(ret, retAddr), nil
	}
	if ret.Kind() == types.KindVoid {
		ctx.Emit.Builder.Emit(ir.Call(name, argRegs, ir.NoRegister))
		return constVal(&types.VoidType{}, types.VoidValue{}), nil
	}
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Call(name, argRegs, dst))
	return registerVal(ret, dst), nil
}

// encodeConstArgs builds a stable string key from a bound
// constant-parameter tuple for the instantiation de-dup cache.
func encodeConstArgs(params []scope.ConstantParameter) string {
	var sb strings.Builder
	for _, p := range params {
		sb.WriteString(p.Type.String())
		sb.WriteByte(':')
		fmt.Fprintf(&sb, "%#v", p.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}
