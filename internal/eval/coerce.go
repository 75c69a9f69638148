package eval

import (
	"errors"

	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// errProbeFailed is returned instead of a diagnostic when ctx.Probing
// is set, so a speculative caller (the cast operator, structural
// slice/struct detection) can treat coercion as a boolean predicate.
var errProbeFailed = errors.New("coercion failed")

// Coerce implements spec §4.5's ordered rule list, in both constant and
// runtime modes. Earlier rules take priority; the first rule whose
// source shape matches wins.
func Coerce(ctx Context, v Value, target types.Type, rng source.Range) (Value, error) {
	if target.Equals(v.Type) {
		return v, nil
	}

	switch t := target.(type) {
	case *types.IntegerType:
		return coerceToInteger(ctx, v, t, rng)
	case *types.UndeterminedIntegerType:
		return coerceToUndeterminedInteger(ctx, v, rng)
	case *types.FloatType:
		return coerceToFloat(ctx, v, t, rng)
	case *types.PointerType:
		return coerceToPointer(ctx, v, t, rng)
	case *types.ArraySliceType:
		return coerceToSlice(ctx, v, t, rng)
	case *types.StaticArrayType:
		return failCoerce(ctx, v, t, rng)
	case *types.StructType:
		return coerceToStruct(ctx, v, t, rng)
	default:
		return failCoerce(ctx, v, target, rng)
	}
}

func failCoerce(ctx Context, v Value, target types.Type, rng source.Range) (Value, error) {
	if ctx.Probing {
		return Value{}, errProbeFailed
	}
	return Value{}, ctx.errorf(diagnostics.CategoryType, rng, "cannot implicitly convert '%s' to '%s'", v.Type.String(), target.String())
}

// retypeScalar relabels v's Type without touching its representation —
// used when the source already holds the right bits/register and only
// the static type needs to change.
func retypeScalar(v Value, t types.Type) Value {
	switch v.Kind {
	case kindConstant:
		return constVal(t, v.Const)
	case kindRegister:
		return registerVal(t, v.Reg)
	case kindAddress:
		return addressVal(t, v.Reg)
	default:
		return v
	}
}

func truncateBits(bits uint64, size int) uint64 {
	if size >= 64 {
		return bits
	}
	mask := uint64(1)<<uint(size) - 1
	return bits & mask
}

// coerceToInteger implements rule 1: identical size/signedness, or any
// UndeterminedInteger truncated to the target width ("accepts any
// source width but truncates silently", spec §7 open-question 4).
func coerceToInteger(ctx Context, v Value, t *types.IntegerType, rng source.Range) (Value, error) {
	switch st := v.Type.(type) {
	case *types.IntegerType:
		if st.Size == t.Size && st.Signed == t.Signed {
			return retypeScalar(v, t), nil
		}
	case *types.UndeterminedIntegerType:
		if v.IsConstant() {
			bits := v.Const.(types.IntegerValue).Bits
			return constVal(t, types.IntegerValue{Bits: truncateBits(bits, t.Size)}), nil
		}
		return retypeScalar(v, t), nil
	}
	return failCoerce(ctx, v, t, rng)
}

// coerceToUndeterminedInteger implements rule 2: a concrete Integer
// source is preserved exactly as-is; the "undetermined" target is
// purely contextual and never forces truncation.
func coerceToUndeterminedInteger(ctx Context, v Value, rng source.Range) (Value, error) {
	if _, ok := v.Type.(*types.IntegerType); ok {
		return v, nil
	}
	return failCoerce(ctx, v, &types.UndeterminedIntegerType{}, rng)
}

// coerceToFloat implements rule 3: matching Float, UndeterminedFloat
// (collapses), or UndeterminedInteger (promotes).
func coerceToFloat(ctx Context, v Value, t *types.FloatType, rng source.Range) (Value, error) {
	switch st := v.Type.(type) {
	case *types.FloatType:
		if st.Size == t.Size {
			return retypeScalar(v, t), nil
		}
	case *types.UndeterminedFloatType:
		return retypeScalar(v, t), nil
	case *types.UndeterminedIntegerType:
		return promoteIntToFloat(ctx, v, t)
	}
	return failCoerce(ctx, v, t, rng)
}

func promoteIntToFloat(ctx Context, v Value, t *types.FloatType) (Value, error) {
	if v.IsConstant() {
		bits := v.Const.(types.IntegerValue).Bits
		return constVal(t, types.FloatValue{Bits: float64(int64(bits))}), nil
	}
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryStructural, source.Range{}, "cannot promote to float outside a function body")
	}
	srcReg, err := materializeScalar(ctx, v)
	if err != nil {
		return Value{}, err
	}
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.FloatFromInt(dst, srcReg, t.Size, true))
	return registerVal(t, dst), nil
}

// coerceToPointer implements rule 4: an UndeterminedInteger address
// literal, or a Pointer with an identical pointee.
func coerceToPointer(ctx Context, v Value, t *types.PointerType, rng source.Range) (Value, error) {
	switch st := v.Type.(type) {
	case *types.PointerType:
		if st.Elem.Equals(t.Elem) {
			return retypeScalar(v, t), nil
		}
	case *types.UndeterminedIntegerType:
		if v.IsConstant() {
			bits := v.Const.(types.IntegerValue).Bits
			return constVal(t, types.PointerValue{Addr: bits}), nil
		}
		return retypeScalar(v, t), nil
	}
	return failCoerce(ctx, v, t, rng)
}

// coerceToSlice implements rule 5: a matching ArraySlice, an
// auto-wrapped StaticArray, or a two-member {pointer, length}
// UndeterminedStruct.
func coerceToSlice(ctx Context, v Value, t *types.ArraySliceType, rng source.Range) (Value, error) {
	switch st := v.Type.(type) {
	case *types.ArraySliceType:
		if st.Elem.Equals(t.Elem) {
			return retypeScalar(v, t), nil
		}
	case *types.StaticArrayType:
		if st.Elem.Equals(t.Elem) {
			return wrapStaticArrayAsSlice(ctx, v, st, t, rng)
		}
	case *types.UndeterminedStructType:
		if len(st.Members) == 2 && st.Members[0].Name == "pointer" && st.Members[1].Name == "length" {
			return coerceStructToSlice(ctx, v, t, rng)
		}
	}
	return failCoerce(ctx, v, t, rng)
}

func wrapStaticArrayAsSlice(ctx Context, v Value, st *types.StaticArrayType, t *types.ArraySliceType, rng source.Range) (Value, error) {
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryStructural, rng, "cannot wrap a static array as a slice in a constant context")
	}
	var dataAddr ir.Register
	var err error
	if v.IsConstant() {
		elems := v.Const.(types.StaticArrayValue).Elems
		var wrapped Value
		wrapped, err = materializeStaticArray(ctx, st, elems, rng)
		if err != nil {
			return Value{}, err
		}
		dataAddr, err = addressOf(ctx, wrapped)
	} else {
		dataAddr, err = addressOf(ctx, v)
	}
	if err != nil {
		return Value{}, err
	}

	wordSize := uint64(ctx.Config.AddressSize / 8)
	sliceAddr := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.AllocLocal(sliceAddr, wordSize*2, wordSize))
	ctx.Emit.Builder.Emit(ir.Store(sliceAddr, dataAddr, ctx.Config.AddressSize, false))

	lenReg := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntConstInstr(lenReg, ctx.Config.AddressSize, false, st.Length))
	offReg := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntConstInstr(offReg, ctx.Config.AddressSize, false, wordSize))
	lenAddr := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, ir.ArithAdd, ctx.Config.AddressSize, false, lenAddr, sliceAddr, offReg))
	ctx.Emit.Builder.Emit(ir.Store(lenAddr, lenReg, ctx.Config.AddressSize, false))

	return addressVal(t, sliceAddr), nil
}

func coerceStructToSlice(ctx Context, v Value, t *types.ArraySliceType, rng source.Range) (Value, error) {
	ptrField := fieldValueAt(v, 0)
	lenField := fieldValueAt(v, 1)
	ptrCoerced, err := Coerce(ctx, ptrField, &types.PointerType{Elem: t.Elem}, rng)
	if err != nil {
		return Value{}, err
	}
	usize := &types.IntegerType{Size: ctx.Config.AddressSize, Signed: false}
	lenCoerced, err := Coerce(ctx, lenField, usize, rng)
	if err != nil {
		return Value{}, err
	}
	if ptrCoerced.IsConstant() && lenCoerced.IsConstant() {
		return constVal(t, types.ArrayValue{
			Ptr: ptrCoerced.Const.(types.PointerValue).Addr,
			Len: lenCoerced.Const.(types.IntegerValue).Bits,
		}), nil
	}
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryStructural, rng, "cannot build a runtime slice in a constant context")
	}
	wordSize := uint64(ctx.Config.AddressSize / 8)
	addr := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.AllocLocal(addr, wordSize*2, wordSize))
	ptrReg, err := materializeScalar(ctx, ptrCoerced)
	if err != nil {
		return Value{}, err
	}
	ctx.Emit.Builder.Emit(ir.Store(addr, ptrReg, ctx.Config.AddressSize, false))
	lenReg, err := materializeScalar(ctx, lenCoerced)
	if err != nil {
		return Value{}, err
	}
	offReg := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntConstInstr(offReg, ctx.Config.AddressSize, false, wordSize))
	lenAddr := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, ir.ArithAdd, ctx.Config.AddressSize, false, lenAddr, addr, offReg))
	ctx.Emit.Builder.Emit(ir.Store(lenAddr, lenReg, ctx.Config.AddressSize, false))
	return addressVal(t, addr), nil
}

// fieldValueAt pulls member i out of a constant StructValue or a
// non-constant UndeterminedStructValue's Members list; both preserve
// declaration order, so index i always names the same field.
func fieldValueAt(v Value, i int) Value {
	if v.IsConstant() {
		sv := v.Const.(types.StructValue)
		return constVal(sv.Fields[i].Type, sv.Fields[i].Value)
	}
	return v.Members[i].Value
}

// coerceToStruct implements rule 7: an identical nominal struct (caught
// by the identity check in Coerce), a structurally matching
// UndeterminedStruct, or for union structs a single-member
// UndeterminedStruct naming one declared member.
func coerceToStruct(ctx Context, v Value, t *types.StructType, rng source.Range) (Value, error) {
	ust, ok := v.Type.(*types.UndeterminedStructType)
	if !ok {
		return failCoerce(ctx, v, t, rng)
	}
	if t.IsUnion {
		return coerceUnionFromUndetermined(ctx, v, ust, t, rng)
	}
	if len(ust.Members) != len(t.Members) {
		return failCoerce(ctx, v, t, rng)
	}
	for i, m := range ust.Members {
		if m.Name != t.Members[i].Name {
			return failCoerce(ctx, v, t, rng)
		}
	}
	return coerceStructFields(ctx, v, t, rng)
}

func coerceStructFields(ctx Context, v Value, t *types.StructType, rng source.Range) (Value, error) {
	coerced := make([]Value, len(t.Members))
	allConst := true
	for i, m := range t.Members {
		cv, err := Coerce(ctx, fieldValueAt(v, i), m.Type, rng)
		if err != nil {
			return Value{}, err
		}
		coerced[i] = cv
		allConst = allConst && cv.IsConstant()
	}
	if allConst {
		fields := make([]types.TypedValue, len(coerced))
		for i, cv := range coerced {
			fields[i] = cv.typed()
		}
		return constVal(t, types.StructValue{Fields: fields}), nil
	}
	return materializeStructInto(ctx, t, t.Members, coerced, rng)
}

func coerceUnionFromUndetermined(ctx Context, v Value, ust *types.UndeterminedStructType, t *types.StructType, rng source.Range) (Value, error) {
	if len(ust.Members) != 1 {
		return failCoerce(ctx, v, t, rng)
	}
	idx, fieldType := findMember(t.Members, ust.Members[0].Name)
	if fieldType == nil {
		return failCoerce(ctx, v, t, rng)
	}
	cv, err := Coerce(ctx, fieldValueAt(v, 0), fieldType, rng)
	if err != nil {
		return Value{}, err
	}
	if cv.IsConstant() {
		fields := make([]types.TypedValue, len(t.Members))
		fields[idx] = cv.typed()
		return constVal(t, types.StructValue{Fields: fields}), nil
	}
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryStructural, rng, "cannot build a runtime union in a constant context")
	}
	size := types.SizeOf(t, ctx.Config)
	align := types.AlignOf(t, ctx.Config)
	addr := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.AllocLocal(addr, size, align))
	if err := writeValueTo(ctx, addr, cv, fieldType); err != nil {
		return Value{}, err
	}
	return addressVal(t, addr), nil
}

func materializeStructInto(ctx Context, t *types.StructType, members []types.Member, fields []Value, rng source.Range) (Value, error) {
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryStructural, rng, "cannot build a runtime struct in a constant context")
	}
	size := types.SizeOf(t, ctx.Config)
	align := types.AlignOf(t, ctx.Config)
	addr := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.AllocLocal(addr, size, align))
	offsets := types.Offsets(t, ctx.Config)
	for i, fv := range fields {
		fieldAddr := addr
		if offsets[i] != 0 {
			offReg := ctx.Emit.Builder.NewRegister()
			ctx.Emit.Builder.Emit(ir.IntConstInstr(offReg, ctx.Config.AddressSize, false, offsets[i]))
			na := ctx.Emit.Builder.NewRegister()
			ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, ir.ArithAdd, ctx.Config.AddressSize, false, na, addr, offReg))
			fieldAddr = na
		}
		if err := writeValueTo(ctx, fieldAddr, fv, members[i].Type); err != nil {
			return Value{}, err
		}
	}
	return addressVal(t, addr), nil
}
