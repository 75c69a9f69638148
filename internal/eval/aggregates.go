package eval

import (
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// addressOf returns the register holding v's address. v must already be
// an AddressValue (or a RegisterValue whose representation is itself an
// address, i.e. an aggregate) — asking for the address of a bare
// scalar register is a caller bug.
func addressOf(ctx Context, v Value) (ir.Register, error) {
	switch v.Kind {
	case kindAddress, kindRegister:
		return v.Reg, nil
	default:
		return ir.NoRegister, ctx.errorf(diagnostics.CategoryType, source.Range{}, "value has no address")
	}
}

// rvalue loads a scalar AddressValue into a fresh register ("on a
// scalar field it loads ... with the field's representation", spec
// §4.6). Aggregates and already-constant/register values pass through
// unchanged.
func rvalue(ctx Context, v Value) (Value, error) {
	if v.Kind != kindAddress || !types.IsScalar(v.Type) {
		return v, nil
	}
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryStructural, source.Range{}, "cannot load a runtime value outside a function body")
	}
	dst := ctx.Emit.Builder.NewRegister()
	size := int(types.SizeOf(v.Type, ctx.Config) * 8)
	_, isFloat := v.Type.(*types.FloatType)
	ctx.Emit.Builder.Emit(ir.Load(dst, v.Reg, size, isFloat))
	return registerVal(v.Type, dst), nil
}

// fieldAtOffset computes the address of struct member idx inside obj,
// which must address a value of type st.
func fieldAtOffset(ctx Context, obj Value, fieldType types.Type, idx int, st *types.StructType) (Value, error) {
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryType, source.Range{}, "struct member access requires a runtime context")
	}
	base, err := addressOf(ctx, obj)
	if err != nil {
		return Value{}, err
	}
	offset := types.Offsets(st, ctx.Config)[idx]
	if offset == 0 {
		return addressVal(fieldType, base), nil
	}
	addrSize := ctx.Config.AddressSize
	offReg := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntConstInstr(offReg, addrSize, false, offset))
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, ir.ArithAdd, addrSize, false, dst, base, offReg))
	return addressVal(fieldType, dst), nil
}

// indexStaticArray computes base + index*elementSize for a runtime
// static-array index (spec §4.6 "Index computations use address = base
// + index × elementSize").
func indexStaticArray(ctx Context, obj Value, idx Value, t *types.StaticArrayType) (Value, error) {
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryType, source.Range{}, "array index requires a runtime context")
	}
	base, err := addressOf(ctx, obj)
	if err != nil {
		return Value{}, err
	}
	idxReg, err := materializeScalar(ctx, idx)
	if err != nil {
		return Value{}, err
	}
	addrSize := ctx.Config.AddressSize
	elemSize := types.SizeOf(t.Elem, ctx.Config)
	sizeReg := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.IntConstInstr(sizeReg, addrSize, false, elemSize))
	byteOff := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, ir.ArithMul, addrSize, false, byteOff, idxReg, sizeReg))
	dst := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, ir.ArithAdd, addrSize, false, dst, base, byteOff))
	return addressVal(t.Elem, dst), nil
}

// indexSlice loads the slice's pointer word and applies the same
// base+index*elementSize computation atop it.
func indexSlice(ctx Context, obj Value, idx Value, t *types.ArraySliceType) (Value, error) {
	usize := &types.IntegerType{Size: ctx.Config.AddressSize, Signed: false}
	ptrVal, err := loadAggregateField(ctx, obj, &types.PointerType{Elem: t.Elem}, 0, source.Range{})
	if err != nil {
		return Value{}, err
	}
	ptrVal, err = rvalue(ctx, ptrVal)
	if err != nil {
		return Value{}, err
	}
	_ = usize
	return indexStaticArray(ctx, addressVal(t.Elem, ptrVal.Reg), idx, &types.StaticArrayType{Length: 0, Elem: t.Elem})
}

// materializeScalar forces v into a plain register, emitting a constant
// load if v is a compile-time constant.
func materializeScalar(ctx Context, v Value) (ir.Register, error) {
	v, err := rvalue(ctx, v)
	if err != nil {
		return ir.NoRegister, err
	}
	if v.Kind == kindConstant {
		return materializeConstScalar(ctx, v)
	}
	return v.Reg, nil
}

func materializeConstScalar(ctx Context, v Value) (ir.Register, error) {
	dst := ctx.Emit.Builder.NewRegister()
	switch c := v.Const.(type) {
	case types.IntegerValue:
		it, _ := v.Type.(*types.IntegerType)
		size, signed := 64, true
		if it != nil {
			size, signed = it.Size, it.Signed
		}
		ctx.Emit.Builder.Emit(ir.IntConstInstr(dst, size, signed, c.Bits))
	case types.FloatValue:
		ft, _ := v.Type.(*types.FloatType)
		size := 64
		if ft != nil {
			size = ft.Size
		}
		ctx.Emit.Builder.Emit(ir.FloatConstInstr(dst, size, c.Bits))
	case types.BoolValue:
		bits := uint64(0)
		if c.V {
			bits = 1
		}
		ctx.Emit.Builder.Emit(ir.IntConstInstr(dst, ctx.Config.DefaultIntSize, false, bits))
	case types.PointerValue:
		ctx.Emit.Builder.Emit(ir.IntConstInstr(dst, ctx.Config.AddressSize, false, c.Addr))
	default:
		return ir.NoRegister, ctx.errorf(diagnostics.CategoryType, source.Range{}, "cannot materialise constant of type %s into a register", v.Type.String())
	}
	return dst, nil
}

// materializeStaticArray lays down a local holding a non-constant array
// literal's elements, writing each one at its computed stride.
func materializeStaticArray(ctx Context, t *types.StaticArrayType, elems []types.TypedValue, rng source.Range) (Value, error) {
	if ctx.Emit == nil {
		return Value{}, ctx.errorf(diagnostics.CategoryType, rng, "non-constant array literal requires a runtime context")
	}
	size := types.SizeOf(t, ctx.Config)
	align := types.AlignOf(t, ctx.Config)
	addr := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.AllocLocal(addr, size, align))
	elemSize := types.SizeOf(t.Elem, ctx.Config)
	for i, el := range elems {
		elemAddr := addr
		if i > 0 {
			offReg := ctx.Emit.Builder.NewRegister()
			ctx.Emit.Builder.Emit(ir.IntConstInstr(offReg, ctx.Config.AddressSize, false, uint64(i)*elemSize))
			elemAddr = ctx.Emit.Builder.NewRegister()
			ctx.Emit.Builder.Emit(ir.Int(ir.OpIntBinary, ir.ArithAdd, ctx.Config.AddressSize, false, elemAddr, addr, offReg))
		}
		if err := writeValueTo(ctx, elemAddr, constVal(el.Type, el.Value), t.Elem); err != nil {
			return Value{}, err
		}
	}
	return addressVal(t, addr), nil
}

// writeValueTo coerces v to targetType and writes it to the address in
// addrReg, either as a scalar store or a recursive aggregate copy.
func writeValueTo(ctx Context, addrReg ir.Register, v Value, targetType types.Type) error {
	coerced, err := Coerce(ctx, v, targetType, source.Range{})
	if err != nil {
		return err
	}
	if types.IsScalar(targetType) {
		reg, err := materializeScalar(ctx, coerced)
		if err != nil {
			return err
		}
		size := int(types.SizeOf(targetType, ctx.Config) * 8)
		_, isFloat := targetType.(*types.FloatType)
		ctx.Emit.Builder.Emit(ir.Store(addrReg, reg, size, isFloat))
		return nil
	}
	srcAddr, err := addressOf(ctx, coerced)
	if err != nil {
		return err
	}
	ctx.Emit.Builder.Emit(ir.CopyMemory(addrReg, srcAddr, types.SizeOf(targetType, ctx.Config)))
	return nil
}
