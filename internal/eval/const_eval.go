package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// evaluateConstant implements spec §4.2's contract exactly: pure, no IR
// emission, no side effects beyond lazily parsing imported files. It is
// a thin wrapper over the unified evalExpr that forces constant mode
// and rejects a result that isn't fully known at compile time.
func evaluateConstant(ctx Context, expr ast.Expression) (Value, error) {
	constCtx := ctx
	constCtx.Emit = nil
	v, err := evalExpr(constCtx, expr)
	if err != nil {
		return Value{}, err
	}
	if !v.IsConstant() {
		return Value{}, ctx.errorf(diagnostics.CategoryType, expr.Range(), "expression is not a compile-time constant")
	}
	return v, nil
}

// evaluateTypeExpr evaluates expr and unwraps the resulting TypeOfType
// constant, as every type-annotation position in the grammar requires.
func evaluateTypeExpr(ctx Context, expr ast.Expression) (types.Type, error) {
	v, err := evaluateConstant(ctx, expr)
	if err != nil {
		return nil, err
	}
	tc, ok := v.Const.(types.TypeConstantValue)
	if !ok {
		return nil, ctx.errorf(diagnostics.CategoryType, expr.Range(), "expected a type")
	}
	return tc.T, nil
}

// evalExpr is the unified constant/runtime evaluator spec §9 calls the
// "hard part": one recursive walk over the expression grammar that
// either folds to a constant or emits IR, depending on whether its
// operands are constant and whether ctx.Emit is present.
func evalExpr(ctx Context, expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return constVal(&types.UndeterminedIntegerType{}, types.IntegerValue{Bits: e.Value}), nil
	case *ast.FloatLiteral:
		return constVal(&types.UndeterminedFloatType{}, types.FloatValue{Bits: e.Value}), nil
	case *ast.BoolLiteral:
		return constVal(&types.BoolType{}, types.BoolValue{V: e.Value}), nil
	case *ast.StringLiteral:
		return evalStringLiteral(ctx, e)
	case *ast.Identifier:
		return evalIdentifier(ctx, e)
	case *ast.ArrayLiteralExpr:
		return evalArrayLiteral(ctx, e)
	case *ast.StructLiteralExpr:
		return evalStructLiteral(ctx, e)
	case *ast.MemberExpr:
		return evalMember(ctx, e)
	case *ast.IndexExpr:
		return evalIndex(ctx, e)
	case *ast.BinaryExpr:
		return evalBinary(ctx, e)
	case *ast.UnaryExpr:
		return evalUnary(ctx, e)
	case *ast.CastExpr:
		return evalCast(ctx, e)
	case *ast.CallExpr:
		return evalCall(ctx, e)
	case *ast.ArrayTypeExpr:
		return evalArrayTypeExpr(ctx, e)
	case *ast.FunctionTypeExpr:
		return evalFunctionTypeExpr(ctx, e)
	case *ast.ImportExpr:
		return evalImportExpr(ctx, e)
	default:
		return Value{}, ctx.errorf(diagnostics.CategoryStructural, expr.Range(), "unsupported expression form")
	}
}

// evalStringLiteral folds a string literal to StaticArray of u8, spec
// §4.2 "string ... literals -> ... StaticArray of u8 for strings".
func evalStringLiteral(ctx Context, e *ast.StringLiteral) (Value, error) {
	bytes := []byte(e.Value)
	elemType := &types.IntegerType{Size: 8, Signed: false}
	elems := make([]types.TypedValue, len(bytes))
	for i, b := range bytes {
		elems[i] = types.TypedValue{Type: elemType, Value: types.IntegerValue{Bits: uint64(b)}}
	}
	arrType := &types.StaticArrayType{Length: uint64(len(bytes)), Elem: elemType}
	return constVal(arrType, types.StaticArrayValue{Elems: elems}), nil
}

// evalIdentifier resolves a NamedReference (spec §4.1/§4.2): first
// against the runtime variable stack when generating IR for a function
// body, then through ResolveName for declarations, constant
// parameters, and the ambient global table.
func evalIdentifier(ctx Context, id *ast.Identifier) (Value, error) {
	if ctx.Emit != nil {
		if v := ctx.Emit.Vars.Lookup(id.Name); v != nil {
			return addressVal(v.Type, v.AddressRegister), nil
		}
	}
	return ResolveName(ctx, id.Name, id.Range())
}

func evalImportExpr(ctx Context, e *ast.ImportExpr) (Value, error) {
	synthetic := &ast.ImportDecl{Name: "", PathLiteral: e.PathLiteral}
	return resolveImportDecl(ctx, synthetic)
}

// evalArrayLiteral implements spec §4.2 "ArrayLiteral": all elements
// evaluated; the first element's type is defaulted and becomes the
// element type; subsequent elements are coerced to it.
func evalArrayLiteral(ctx Context, e *ast.ArrayLiteralExpr) (Value, error) {
	if len(e.Elements) == 0 {
		return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, e.Range(), "array literal must have at least one element")
	}
	first, err := evalExpr(ctx, e.Elements[0])
	if err != nil {
		return Value{}, err
	}
	elemType := defaultType(ctx, first.Type)
	first, err = Coerce(ctx, first, elemType, e.Elements[0].Range())
	if err != nil {
		return Value{}, err
	}
	elems := []types.TypedValue{first.typed()}
	allConst := first.IsConstant()
	for _, elExpr := range e.Elements[1:] {
		v, err := evalExpr(ctx, elExpr)
		if err != nil {
			return Value{}, err
		}
		v, err = Coerce(ctx, v, elemType, elExpr.Range())
		if err != nil {
			return Value{}, err
		}
		allConst = allConst && v.IsConstant()
		elems = append(elems, v.typed())
	}
	arrType := &types.StaticArrayType{Length: uint64(len(elems)), Elem: elemType}
	if allConst {
		return constVal(arrType, types.StaticArrayValue{Elems: elems}), nil
	}
	return materializeStaticArray(ctx, arrType, elems, e.Range())
}

// evalStructLiteral implements spec §4.2 "StructLiteral": members
// evaluated in order; result is UndeterminedStruct (structural).
// Duplicate names diagnosed.
func evalStructLiteral(ctx Context, e *ast.StructLiteralExpr) (Value, error) {
	seen := make(map[string]bool, len(e.Fields))
	members := make([]types.Member, 0, len(e.Fields))
	named := make([]namedValue, 0, len(e.Fields))
	allConst := true
	for _, f := range e.Fields {
		if seen[f.Name] {
			return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, f.NameRange, "duplicate member %q", f.Name)
		}
		seen[f.Name] = true
		v, err := evalExpr(ctx, f.Value)
		if err != nil {
			return Value{}, err
		}
		allConst = allConst && v.IsConstant()
		members = append(members, types.Member{Name: f.Name, Type: v.Type})
		named = append(named, namedValue{Name: f.Name, Value: v})
	}
	undetType := &types.UndeterminedStructType{Members: members}
	if allConst {
		fields := make([]types.TypedValue, len(named))
		for i, n := range named {
			fields[i] = n.Value.typed()
		}
		return constVal(undetType, types.StructValue{Fields: fields}), nil
	}
	return undeterminedStructVal(undetType, named), nil
}

// evalArrayTypeExpr implements spec §4.2 "ArrayType(T) and
// ArrayType[N]T": Length == nil produces ArraySlice(T); otherwise N is
// evaluated and coerced to usize and produces StaticArray{N,T}.
func evalArrayTypeExpr(ctx Context, e *ast.ArrayTypeExpr) (Value, error) {
	elemType, err := evaluateTypeExpr(ctx, e.Element)
	if err != nil {
		return Value{}, err
	}
	if e.Length == nil {
		t := &types.ArraySliceType{Elem: elemType}
		return constVal(&types.TypeOfTypeType{}, types.TypeConstantValue{T: t}), nil
	}
	lenVal, err := evaluateConstant(ctx, e.Length)
	if err != nil {
		return Value{}, err
	}
	usize := &types.IntegerType{Size: ctx.Config.AddressSize, Signed: false}
	lenVal, err = Coerce(ctx, lenVal, usize, e.Length.Range())
	if err != nil {
		return Value{}, err
	}
	n := lenVal.Const.(types.IntegerValue).Bits
	t := &types.StaticArrayType{Length: n, Elem: elemType}
	return constVal(&types.TypeOfTypeType{}, types.TypeConstantValue{T: t}), nil
}

// evalFunctionTypeExpr implements spec §4.2 "FunctionType": evaluates
// parameter and return type subexpressions; rejects polymorphic
// parameters (they have no place in a function-pointer type).
func evalFunctionTypeExpr(ctx Context, e *ast.FunctionTypeExpr) (Value, error) {
	params := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		pt, err := evaluateTypeExpr(ctx, p)
		if err != nil {
			return Value{}, err
		}
		params[i] = pt
	}
	var ret types.Type = &types.VoidType{}
	if e.Return != nil {
		rt, err := evaluateTypeExpr(ctx, e.Return)
		if err != nil {
			return Value{}, err
		}
		ret = rt
	}
	t := &types.FunctionType{Params: params, Return: ret}
	return constVal(&types.TypeOfTypeType{}, types.TypeConstantValue{T: t}), nil
}

// defaultType implements the "default-type rule" (spec §4.2): collapses
// an undetermined type to its concrete default, or returns t unchanged
// if it is already concrete.
func defaultType(ctx Context, t types.Type) types.Type {
	switch t.(type) {
	case *types.UndeterminedIntegerType:
		return defaultIntType(ctx)
	case *types.UndeterminedFloatType:
		return defaultFloatType()
	default:
		return t
	}
}
