package types_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/ferrite-lang/ferritec/internal/types"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestStaticArraySizeIsLengthTimesElementSize pins down the corrected
// layout rule (spec §9 OQ1): a static array's size is its length times
// its element's size, never its element's alignment, for every length
// and every primitive integer width gopter throws at it.
func TestStaticArraySizeIsLengthTimesElementSize(t *testing.T) {
	cfg := config.Default()
	sizes := []int{8, 16, 32, 64}

	properties := gopter.NewProperties(nil)
	properties.Property("SizeOf(array) == length * SizeOf(elem)", prop.ForAll(
		func(length int, sizeIdx int) bool {
			elem := &types.IntegerType{Size: sizes[sizeIdx%len(sizes)], Signed: true}
			arr := &types.StaticArrayType{Length: uint64(length), Elem: elem}
			return types.SizeOf(arr, cfg) == uint64(length)*types.SizeOf(elem, cfg)
		},
		gen.IntRange(0, 64),
		gen.IntRange(0, 3),
	))
	properties.TestingRun(t)
}

// TestStructSizeIsAlignedAndNeverShrinks checks two invariants the
// padding walk in SizeOf/Offsets must always uphold, for any number of
// differently-sized integer members: the overall size is a multiple of
// the struct's own alignment, and every member's offset plus its size
// fits inside the total.
func TestStructSizeIsAlignedAndNeverShrinks(t *testing.T) {
	cfg := config.Default()
	sizes := []int{8, 16, 32, 64}

	properties := gopter.NewProperties(nil)
	properties.Property("struct size respects alignment and member bounds", prop.ForAll(
		func(widths []int) bool {
			if len(widths) == 0 {
				return true
			}
			st := &ast.StructDecl{Name: "S"}
			members := make([]types.Member, len(widths))
			for i, w := range widths {
				members[i] = types.Member{Name: memberName(i), Type: &types.IntegerType{Size: sizes[w%len(sizes)], Signed: false}}
			}
			structType := &types.StructType{Handle: st, Members: members}

			total := types.SizeOf(structType, cfg)
			align := types.AlignOf(structType, cfg)
			if total%align != 0 {
				return false
			}
			offsets := types.Offsets(structType, cfg)
			for i, off := range offsets {
				if off+types.SizeOf(members[i].Type, cfg) > total {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))
	properties.TestingRun(t)
}

func memberName(i int) string {
	return string(rune('a' + i%26))
}
