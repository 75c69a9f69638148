package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// evalMember implements spec §4.2's MemberReference dispatch: arrays
// expose .length (constant-folded) and .pointer; static arrays expose
// .length only; structs and undetermined structs expose their members;
// file modules expose public declarations (triggering §4.3 resolution).
func evalMember(ctx Context, e *ast.MemberExpr) (Value, error) {
	obj, err := evalExpr(ctx, e.Object)
	if err != nil {
		return Value{}, err
	}

	switch t := obj.Type.(type) {
	case *types.ArraySliceType:
		return evalArraySliceMember(ctx, e, obj, t)
	case *types.StaticArrayType:
		if e.Member != "length" {
			return Value{}, ctx.errorf(diagnostics.CategoryType, e.MemberRange, "static arrays only expose .length in a constant context")
		}
		return constVal(&types.IntegerType{Size: ctx.Config.AddressSize, Signed: false}, types.IntegerValue{Bits: t.Length}), nil
	case *types.StructType:
		return evalStructMember(ctx, e, obj, t.Members)
	case *types.UndeterminedStructType:
		return evalUndeterminedStructMember(ctx, e, obj, t.Members)
	case *types.FileModuleType:
		return evalModuleMember(ctx, e, obj)
	default:
		return Value{}, ctx.errorf(diagnostics.CategoryType, e.MemberRange, "cannot access member %q of %s", e.Member, obj.Type.String())
	}
}

func evalArraySliceMember(ctx Context, e *ast.MemberExpr, obj Value, t *types.ArraySliceType) (Value, error) {
	usize := &types.IntegerType{Size: ctx.Config.AddressSize, Signed: false}
	switch e.Member {
	case "length":
		if obj.IsConstant() {
			return constVal(usize, types.IntegerValue{Bits: obj.Const.(types.ArrayValue).Len}), nil
		}
		return loadAggregateField(ctx, obj, usize, 1, e.MemberRange)
	case "pointer":
		ptrType := &types.PointerType{Elem: t.Elem}
		if obj.IsConstant() {
			return constVal(ptrType, types.PointerValue{Addr: obj.Const.(types.ArrayValue).Ptr}), nil
		}
		return loadAggregateField(ctx, obj, ptrType, 0, e.MemberRange)
	default:
		return Value{}, ctx.errorf(diagnostics.CategoryType, e.MemberRange, "slices only expose .length and .pointer")
	}
}

// loadAggregateField reads word index (0 or 1, each address-sized) out
// of the two-word slice aggregate obj refers to.
func loadAggregateField(ctx Context, obj Value, fieldType types.Type, wordIndex uint64, rng source.Range) (Value, error) {
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryType, rng, "slice member access requires a runtime context")
	}
	addrReg, err := addressOf(ctx, obj)
	if err != nil {
		return Value{}, err
	}
	wordSize := uint64(ctx.Config.AddressSize / 8)
	fieldAddr := ctx.Emit.Builder.NewRegister()
	off := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntConstInstr(off, ctx.Config.AddressSize, false, wordIndex*wordSize))
	ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, ir.ArithAdd, ctx.Config.AddressSize, false, fieldAddr, addrReg, off))
	return addressVal(fieldType, fieldAddr), nil
}

func evalStructMember(ctx Context, e *ast.MemberExpr, obj Value, members []types.Member) (Value, error) {
	idx, fieldType := findMember(members, e.Member)
	if fieldType == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryResolution, e.MemberRange, "cannot find member %q", e.Member)
	}
	if obj.IsConstant() {
		return constVal(fieldType, obj.Const.(types.StructValue).Fields[idx].Value), nil
	}
	return fieldAtOffset(ctx, obj, fieldType, idx, structTypeOf(obj))
}

func evalUndeterminedStructMember(ctx Context, e *ast.MemberExpr, obj Value, members []types.Member) (Value, error) {
	if obj.IsConstant() {
		idx, fieldType := findMember(members, e.Member)
		if fieldType == nil {
			return Value{}, ctx.errorf(diagnostics.CategoryResolution, e.MemberRange, "cannot find member %q", e.Member)
		}
		return constVal(fieldType, obj.Const.(types.StructValue).Fields[idx].Value), nil
	}
	for _, nv := range obj.Members {
		if nv.Name == e.Member {
			return nv.Value, nil
		}
	}
	return Value{}, ctx.errorf(diagnostics.CategoryResolution, e.MemberRange, "cannot find member %q", e.Member)
}

func evalModuleMember(ctx Context, e *ast.MemberExpr, obj Value) (Value, error) {
	mod := obj.Const.(types.FileModuleRefValue)
	decl := findDecl(mod.Statements, e.Member)
	if decl == nil || !isPublic(decl) {
		return Value{}, ctx.errorf(diagnostics.CategoryResolution, e.MemberRange, "module has no public member %q", e.Member)
	}
	return resolveDeclaration(ctx, decl)
}

func findMember(members []types.Member, name string) (int, types.Type) {
	for i, m := range members {
		if m.Name == name {
			return i, m.Type
		}
	}
	return -1, nil
}

func structTypeOf(v Value) *types.StructType {
	st, _ := v.Type.(*types.StructType)
	return st
}

// evalIndex implements spec §4.2's IndexReference: the index is coerced
// to usize; for static arrays the element is selected at constant time
// or addressed at runtime; out-of-bounds is a diagnostic.
func evalIndex(ctx Context, e *ast.IndexExpr) (Value, error) {
	obj, err := evalExpr(ctx, e.Object)
	if err != nil {
		return Value{}, err
	}
	idxVal, err := evalExpr(ctx, e.Index)
	if err != nil {
		return Value{}, err
	}
	usize := &types.IntegerType{Size: ctx.Config.AddressSize, Signed: false}
	idxVal, err = Coerce(ctx, idxVal, usize, e.Index.Range())
	if err != nil {
		return Value{}, err
	}

	switch t := obj.Type.(type) {
	case *types.StaticArrayType:
		if obj.IsConstant() && idxVal.IsConstant() {
			idx := idxVal.Const.(types.IntegerValue).Bits
			elems := obj.Const.(types.StaticArrayValue).Elems
			if idx >= uint64(len(elems)) {
				return Value{}, ctx.errorf(diagnostics.CategoryEvaluation, e.Index.Range(), "index %d out of bounds for array of length %d", idx, len(elems))
			}
			el := elems[idx]
			return constVal(el.Type, el.Value), nil
		}
		return indexStaticArray(ctx, obj, idxVal, t)
	case *types.ArraySliceType:
		return indexSlice(ctx, obj, idxVal, t)
	default:
		return Value{}, ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot index %s", obj.Type.String())
	}
}
