package types

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerTypeStringAndEquals(t *testing.T) {
	tests := []struct {
		name string
		t    *IntegerType
		want string
	}{
		{"i8", &IntegerType{Size: 8, Signed: true}, "i8"},
		{"u8", &IntegerType{Size: 8, Signed: false}, "u8"},
		{"i32", &IntegerType{Size: 32, Signed: true}, "i32"},
		{"u64", &IntegerType{Size: 64, Signed: false}, "u64"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.t.String())
		})
	}

	assert.True(t, (&IntegerType{Size: 32, Signed: true}).Equals(&IntegerType{Size: 32, Signed: true}))
	assert.False(t, (&IntegerType{Size: 32, Signed: true}).Equals(&IntegerType{Size: 32, Signed: false}))
	assert.False(t, (&IntegerType{Size: 32, Signed: true}).Equals(&IntegerType{Size: 64, Signed: true}))
	assert.False(t, (&IntegerType{Size: 32, Signed: true}).Equals(&BoolType{}))
}

func TestPointerTypeEqualsFollowsPointeeIdentity(t *testing.T) {
	i32 := &IntegerType{Size: 32, Signed: true}
	u32 := &IntegerType{Size: 32, Signed: false}

	a := &PointerType{Elem: i32}
	b := &PointerType{Elem: &IntegerType{Size: 32, Signed: true}}
	c := &PointerType{Elem: u32}

	assert.True(t, a.Equals(b), "pointers to structurally equal elements compare equal")
	assert.False(t, a.Equals(c), "pointers to different elements must not compare equal")
	assert.Equal(t, "*i32", a.String())
}

func TestStaticArrayAndSliceTypes(t *testing.T) {
	u8 := &IntegerType{Size: 8, Signed: false}
	arr := &StaticArrayType{Length: 4, Elem: u8}
	slice := &ArraySliceType{Elem: u8}

	assert.Equal(t, "[4]u8", arr.String())
	assert.Equal(t, "[]u8", slice.String())
	assert.True(t, arr.Equals(&StaticArrayType{Length: 4, Elem: &IntegerType{Size: 8, Signed: false}}))
	assert.False(t, arr.Equals(&StaticArrayType{Length: 5, Elem: u8}))
	assert.False(t, arr.Equals(slice))
}

func TestStructTypeEqualsRequiresSameHandleAndMembers(t *testing.T) {
	handle := &ast.StructDecl{Name: "Point"}
	i32 := &IntegerType{Size: 32, Signed: true}

	a := &StructType{Handle: handle, Members: []Member{{Name: "x", Type: i32}, {Name: "y", Type: i32}}}
	b := &StructType{Handle: handle, Members: []Member{{Name: "x", Type: i32}, {Name: "y", Type: i32}}}
	otherHandle := &StructType{Handle: &ast.StructDecl{Name: "Point"}, Members: a.Members}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(otherHandle), "distinct declaration handles must not compare equal even with identical members")
	assert.Equal(t, "Point", a.String())
}

func TestPolymorphicStructTypeEqualsIgnoresParamTypes(t *testing.T) {
	handle := &ast.StructDecl{Name: "Box"}
	a := &PolymorphicStructType{Handle: handle, ParamTypes: []Type{&IntegerType{Size: 32, Signed: true}}}
	b := &PolymorphicStructType{Handle: handle, ParamTypes: []Type{&FloatType{Size: 64}}}
	assert.True(t, a.Equals(b), "spec ties PolymorphicStructType identity to the declaration handle alone")
}

func TestFunctionTypeStringAndEquals(t *testing.T) {
	i32 := &IntegerType{Size: 32, Signed: true}
	voidFn := &FunctionType{Params: []Type{i32}, Return: nil}
	retFn := &FunctionType{Params: []Type{i32}, Return: i32}

	assert.Equal(t, "(i32) -> void", voidFn.String())
	assert.Equal(t, "(i32) -> i32", retFn.String())
	assert.False(t, voidFn.Equals(retFn))
	assert.True(t, voidFn.Equals(&FunctionType{Params: []Type{&IntegerType{Size: 32, Signed: true}}, Return: nil}))
}

func TestIsRuntimeTypeAndIsScalar(t *testing.T) {
	runtime := []Type{
		&IntegerType{Size: 32, Signed: true},
		&FloatType{Size: 64},
		&BoolType{},
		&PointerType{Elem: &IntegerType{Size: 8}},
		&ArraySliceType{Elem: &IntegerType{Size: 8}},
		&StaticArrayType{Length: 3, Elem: &IntegerType{Size: 8}},
		&StructType{Handle: &ast.StructDecl{Name: "S"}},
	}
	for _, ty := range runtime {
		assert.True(t, IsRuntimeType(ty), "%s should be a runtime type", ty.String())
	}

	notRuntime := []Type{&VoidType{}, &TypeOfTypeType{}, &UndeterminedIntegerType{}, &PolymorphicFunctionType{}}
	for _, ty := range notRuntime {
		assert.False(t, IsRuntimeType(ty), "%s should not be a runtime type", ty.String())
	}

	scalar := []Type{&IntegerType{Size: 32}, &FloatType{Size: 32}, &BoolType{}, &PointerType{Elem: &BoolType{}}}
	for _, ty := range scalar {
		assert.True(t, IsScalar(ty))
	}
	assert.False(t, IsScalar(&ArraySliceType{Elem: &IntegerType{Size: 8}}))
	assert.False(t, IsScalar(&StructType{Handle: &ast.StructDecl{Name: "S"}}))
}

func TestSizeOfAndAlignOfPrimitives(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, uint64(4), SizeOf(&IntegerType{Size: 32}, cfg))
	assert.Equal(t, uint64(8), SizeOf(&FloatType{Size: 64}, cfg))
	assert.Equal(t, uint64(cfg.AddressSize/8), SizeOf(&PointerType{Elem: &BoolType{}}, cfg))
	assert.Equal(t, uint64(2*cfg.AddressSize/8), SizeOf(&ArraySliceType{Elem: &BoolType{}}, cfg))
}

func TestSizeOfStaticArrayUsesSizeNotAlignment(t *testing.T) {
	// Regression for the corrected OQ1 layout rule: a [3]struct{u8,u8,u8}
	// (size 3, align 1) must occupy 3*3=9 bytes, not 3*1 if the
	// (incorrect) alignment-based formula were used instead.
	cfg := config.Default()
	handle := &ast.StructDecl{Name: "Triple"}
	u8 := &IntegerType{Size: 8, Signed: false}
	small := &StructType{Handle: handle, Members: []Member{
		{Name: "a", Type: u8}, {Name: "b", Type: u8}, {Name: "c", Type: u8},
	}}
	require.Equal(t, uint64(1), AlignOf(small, cfg))
	require.Equal(t, uint64(3), SizeOf(small, cfg))

	arr := &StaticArrayType{Length: 3, Elem: small}
	assert.Equal(t, uint64(9), SizeOf(arr, cfg))
}

func TestStructLayoutInsertsPadding(t *testing.T) {
	cfg := config.Default()
	handle := &ast.StructDecl{Name: "Padded"}
	st := &StructType{Handle: handle, Members: []Member{
		{Name: "flag", Type: &BoolType{}},
		{Name: "value", Type: &IntegerType{Size: 64, Signed: true}},
	}}

	offsets := Offsets(st, cfg)
	require.Len(t, offsets, 2)
	assert.Equal(t, uint64(0), offsets[0])
	assert.Equal(t, AlignOf(&IntegerType{Size: 64}, cfg), offsets[1], "i64 member must start on an 8-byte boundary")
	assert.Equal(t, uint64(8), AlignOf(st, cfg))
}

func TestUnionLayoutSharesOffsetZero(t *testing.T) {
	cfg := config.Default()
	handle := &ast.StructDecl{Name: "Variant"}
	union := &StructType{Handle: handle, IsUnion: true, Members: []Member{
		{Name: "asByte", Type: &IntegerType{Size: 8}},
		{Name: "asWord", Type: &IntegerType{Size: 64}},
	}}

	assert.Equal(t, uint64(8), SizeOf(union, cfg), "union size is the widest member")
	for _, off := range Offsets(union, cfg) {
		assert.Equal(t, uint64(0), off, "every union member starts at offset 0")
	}
}

func TestUndeterminedStructTypeEquals(t *testing.T) {
	i32 := &IntegerType{Size: 32, Signed: true}
	a := &UndeterminedStructType{Members: []Member{{Name: "x", Type: i32}}}
	b := &UndeterminedStructType{Members: []Member{{Name: "x", Type: &IntegerType{Size: 32, Signed: true}}}}
	c := &UndeterminedStructType{Members: []Member{{Name: "y", Type: i32}}}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Equal(t, "{x: i32}", a.String())
}

func TestKindStringAndIsNumeric(t *testing.T) {
	assert.Equal(t, "Integer", KindInteger.String())
	assert.Equal(t, "PolymorphicStruct", KindPolymorphicStruct.String())
	assert.True(t, KindInteger.IsNumeric())
	assert.True(t, KindUndeterminedFloat.IsNumeric())
	assert.False(t, KindBool.IsNumeric())
}
