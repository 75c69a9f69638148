package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/scope"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// loopContext records the back-patch points a break/continue inside the
// innermost while loop needs (spec §4.6 "While").
type loopContext struct {
	headIndex  int   // jump target for `continue`
	breakJumps []int // OpJump indices to patch to the loop's exit once known
}

// Emitter is the "emitter capability" spec §9 calls for: present and
// accumulating instructions in runtime mode, nil (via a nil *Emitter on
// Context) in constant mode. One Emitter is scoped to a single function
// body; the register counter inside Builder resets between functions
// (spec §3 "Lifecycle").
type Emitter struct {
	Builder *ir.Builder
	Vars    *scope.VariableStack

	// ReturnByReference is set when the function's return is an
	// aggregate written through a trailing address parameter rather
	// than a register (spec §4.6 "Return").
	ReturnByReference bool
	ReturnAddrReg     ir.Register
	// ReturnType is the function's declared return type, consulted by
	// `return` to coerce its operand (or, for a bare `return;`, to
	// confirm the function is Void).
	ReturnType types.Type

	loops []loopContext
}

// NewEmitter starts IR generation for a function declared in file
// starting at firstLine.
func NewEmitter(file string, firstLine int) *Emitter {
	return &Emitter{
		Builder: ir.NewBuilder(file, firstLine),
		Vars:    scope.NewVariableStack(),
	}
}

func (e *Emitter) pushLoop(headIndex int) {
	e.loops = append(e.loops, loopContext{headIndex: headIndex})
}

func (e *Emitter) popLoop() loopContext {
	top := e.loops[len(e.loops)-1]
	e.loops = e.loops[:len(e.loops)-1]
	return top
}

func (e *Emitter) currentLoop() *loopContext {
	if len(e.loops) == 0 {
		return nil
	}
	return &e.loops[len(e.loops)-1]
}
