package scope

import (
	"fmt"

	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// Variable is a runtime local or parameter (spec §3).
type Variable struct {
	Name            string
	Type            types.Type
	TypeRange       source.Range
	AddressRegister int
}

// VariableStack is "a stack of lists (one list per lexical block)"
// (spec §3) tracking the runtime variables currently in scope inside a
// function body. Each if/else/while arm pushes a fresh block and pops
// it on exit (spec §4.6).
type VariableStack struct {
	blocks [][]*Variable
}

// NewVariableStack starts with a single outermost block for the
// function's own parameters and top-level locals.
func NewVariableStack() *VariableStack {
	return &VariableStack{blocks: [][]*Variable{nil}}
}

// PushBlock opens a new lexical block (entering an if/while arm).
func (vs *VariableStack) PushBlock() {
	vs.blocks = append(vs.blocks, nil)
}

// PopBlock closes the innermost lexical block.
func (vs *VariableStack) PopBlock() {
	if len(vs.blocks) == 0 {
		return
	}
	vs.blocks = vs.blocks[:len(vs.blocks)-1]
}

// Declare adds v to the innermost block. It reports an error if a
// variable of the same name is already declared in that same block
// (spec §4.6 "duplicate name in the same scope is an error"); shadowing
// an outer block's variable is allowed.
func (vs *VariableStack) Declare(v *Variable) error {
	top := len(vs.blocks) - 1
	for _, existing := range vs.blocks[top] {
		if existing.Name == v.Name {
			return fmt.Errorf("duplicate variable %q in the same scope", v.Name)
		}
	}
	vs.blocks[top] = append(vs.blocks[top], v)
	return nil
}

// Lookup searches from the innermost block outward and returns the
// first match, or nil.
func (vs *VariableStack) Lookup(name string) *Variable {
	for i := len(vs.blocks) - 1; i >= 0; i-- {
		block := vs.blocks[i]
		for j := len(block) - 1; j >= 0; j-- {
			if block[j].Name == name {
				return block[j]
			}
		}
	}
	return nil
}
