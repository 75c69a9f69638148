package ir

// Builder assembles one Function's instruction list: it hands out
// monotonically increasing registers and lets the caller back-patch
// jump targets once they're known, the same two mechanical jobs the
// teacher's bytecode compiler performs inline in compiler.go without a
// separate type. Builder carries no evaluation logic of its own —
// internal/eval decides what to emit and in what order.
type Builder struct {
	nextRegister int
	instructions []Instruction
	file         string
	firstLine    int
}

// NewBuilder starts a fresh instruction stream for a function declared
// in file starting at firstLine.
func NewBuilder(file string, firstLine int) *Builder {
	return &Builder{file: file, firstLine: firstLine}
}

// NewRegister allocates and returns the next unused register.
func (b *Builder) NewRegister() Register {
	r := b.nextRegister
	b.nextRegister++
	return r
}

// Emit appends inst to the instruction stream and returns its index,
// which a caller can later pass to PatchJump as a branch/jump target.
func (b *Builder) Emit(inst Instruction) int {
	b.instructions = append(b.instructions, inst)
	return len(b.instructions) - 1
}

// Len returns the number of instructions emitted so far; useful as a
// prospective jump target before the instruction that lands there has
// been emitted.
func (b *Builder) Len() int {
	return len(b.instructions)
}

// PatchJump rewrites the Target of the OpBranch/OpJump instruction at
// index to target. It is a no-op if index is out of range or the
// instruction at index isn't a branch or jump, which would indicate a
// caller bug rather than something worth a panic.
func (b *Builder) PatchJump(index, target int) {
	if index < 0 || index >= len(b.instructions) {
		return
	}
	inst := &b.instructions[index]
	if inst.Op != OpBranch && inst.Op != OpJump {
		return
	}
	inst.Target = target
}

// PatchJumpHere patches the instruction at index to target the next
// instruction that will be emitted.
func (b *Builder) PatchJumpHere(index int) {
	b.PatchJump(index, b.Len())
}

// Finish produces the completed Function. Params and ret describe the
// signature; name is the (already mangled, if applicable) function
// name.
func (b *Builder) Finish(name string, external bool, params []ParamSlot, ret ReturnSlot, hasReturn bool) *Function {
	return &Function{
		Name:         name,
		External:     external,
		Params:       params,
		Return:       ret,
		HasReturn:    hasReturn,
		SourceFile:   b.file,
		FirstLine:    b.firstLine,
		Instructions: b.instructions,
	}
}
