package ir_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
)

// TestFunctionInstructionSnapshot snapshots the flat instruction listing
// for a hand-assembled function, the same way the teacher snapshots its
// interpreter/bytecode output against golden files (see
// internal/interp/fixture_test.go's use of snaps.MatchSnapshot).
func TestFunctionInstructionSnapshot(t *testing.T) {
	fn := &ir.Function{
		Name:      "function_add",
		Params:    []ir.ParamSlot{{SizeInBytes: 4}, {SizeInBytes: 4}},
		Return:    ir.ReturnSlot{SizeInBytes: 4},
		HasReturn: true,
		Instructions: []ir.Instruction{
			ir.Int(ir.OpIntBinary, ir.ArithAdd, 32, true, 2, 0, 1),
			ir.Return(2),
		},
	}
	snaps.MatchSnapshot(t, fn)
}

func TestRegisterAllocationMonotonic(t *testing.T) {
	b := ir.NewBuilder("f.fe", 1)
	a := b.NewRegister()
	c := b.NewRegister()
	assert.NotEqual(t, a, c, "registers must never be reused within a function")
	assert.Equal(t, a+1, c, "the builder allocates registers monotonically")
}
