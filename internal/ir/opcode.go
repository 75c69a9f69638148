// Package ir is the downstream data model spec §4.6 and §6 describe: a
// flat list of instructions over virtual registers, and the
// RuntimeStatic entries a backend consumes. It holds no evaluation
// logic — internal/eval populates it — the same separation the teacher
// draws between internal/bytecode's instruction.go (format) and its
// compiler*.go files (logic), except here both happen to live in one
// teacher package; ir is kept standalone because, unlike the compiler,
// nothing in it recurses back into the evaluator.
package ir

// OpCode names one virtual-register instruction (spec §4.6 "IR model").
// Unlike the teacher's 32-bit packed stack-machine opcodes, each op here
// carries its operands as ordinary struct fields on Instruction, since a
// three-address register IR has more operand shapes than a stack
// machine's fixed byte/short pair.
type OpCode int

const (
	// OpIntBinary performs one integer arithmetic/bitwise operation
	// (Kind) of the given Size and Signed-ness: Dst = SrcA Kind SrcB.
	OpIntBinary OpCode = iota
	// OpFloatBinary is OpIntBinary's floating-point counterpart.
	OpFloatBinary
	// OpIntCompare performs an integer comparison: Dst (bool) = SrcA Kind SrcB.
	OpIntCompare
	// OpFloatCompare is OpIntCompare's floating-point counterpart.
	OpFloatCompare
	// OpIntUpcast widens SrcA from its current width to Size into Dst.
	OpIntUpcast
	// OpFloatConvert changes float width (Size) from SrcA into Dst.
	OpFloatConvert
	// OpFloatTruncate converts a float SrcA to an integer Dst of Size/Signed.
	OpFloatTruncate
	// OpFloatFromInt converts an integer SrcA to a float Dst of Size.
	OpFloatFromInt
	// OpIntConst loads the literal IntConst (Size bits) into Dst.
	OpIntConst
	// OpFloatConst loads the literal FloatConst (Size bits) into Dst.
	OpFloatConst
	// OpLoad reads Size bits from address register SrcA into Dst.
	OpLoad
	// OpStore writes Size bits from SrcA into the address register Dst.
	OpStore
	// OpAllocLocal reserves Length bytes aligned to Alignment and leaves
	// its address in Dst.
	OpAllocLocal
	// OpCopyMemory copies Length bytes from address SrcA to address Dst.
	OpCopyMemory
	// OpBranch jumps to Target if SrcA (bool) is true; falls through otherwise.
	OpBranch
	// OpJump jumps unconditionally to Target.
	OpJump
	// OpCall invokes the function named Name with Args registers; if
	// HasReturn, the result lands in Dst.
	OpCall
	// OpReturn returns from the current function; if HasReturn, SrcA
	// holds the value register.
	OpReturn
	// OpReferenceStatic loads the address of the static named Name into Dst.
	OpReferenceStatic
)

func (op OpCode) String() string {
	switch op {
	case OpIntBinary:
		return "int_binary"
	case OpFloatBinary:
		return "float_binary"
	case OpIntCompare:
		return "int_compare"
	case OpFloatCompare:
		return "float_compare"
	case OpIntUpcast:
		return "int_upcast"
	case OpFloatConvert:
		return "float_convert"
	case OpFloatTruncate:
		return "float_truncate"
	case OpFloatFromInt:
		return "float_from_int"
	case OpIntConst:
		return "int_const"
	case OpFloatConst:
		return "float_const"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpAllocLocal:
		return "alloc_local"
	case OpCopyMemory:
		return "copy_memory"
	case OpBranch:
		return "branch"
	case OpJump:
		return "jump"
	case OpCall:
		return "call"
	case OpReturn:
		return "return"
	case OpReferenceStatic:
		return "reference_static"
	default:
		return "unknown"
	}
}

// ArithKind names the operation an OpIntBinary/OpFloatBinary/
// OpIntCompare/OpFloatCompare instruction performs.
type ArithKind int

const (
	ArithAdd ArithKind = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
	ArithAnd
	ArithOr
	ArithEq
	ArithLt
	ArithGt
)

func (k ArithKind) String() string {
	switch k {
	case ArithAdd:
		return "add"
	case ArithSub:
		return "sub"
	case ArithMul:
		return "mul"
	case ArithDiv:
		return "div"
	case ArithMod:
		return "mod"
	case ArithAnd:
		return "and"
	case ArithOr:
		return "or"
	case ArithEq:
		return "eq"
	case ArithLt:
		return "lt"
	case ArithGt:
		return "gt"
	default:
		return "unknown"
	}
}
