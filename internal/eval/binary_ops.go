package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// decideOperationType implements spec §4.4's priority ladder for
// deciding the type both operands of a binary operation are coerced to
// before the operator is applied.
func decideOperationType(ctx Context, e *ast.BinaryExpr, l, r types.Type) (types.Type, error) {
	_, lBool := l.(*types.BoolType)
	_, rBool := r.(*types.BoolType)
	if lBool || rBool {
		return &types.BoolType{}, nil
	}
	if lp, ok := l.(*types.PointerType); ok {
		return lp, nil
	}
	if rp, ok := r.(*types.PointerType); ok {
		return rp, nil
	}
	li, lIsInt := l.(*types.IntegerType)
	ri, rIsInt := r.(*types.IntegerType)
	if lIsInt && rIsInt {
		size := li.Size
		if ri.Size > size {
			size = ri.Size
		}
		return &types.IntegerType{Size: size, Signed: li.Signed || ri.Signed}, nil
	}
	lf, lIsFloat := l.(*types.FloatType)
	rf, rIsFloat := r.(*types.FloatType)
	if lIsFloat && rIsFloat {
		size := lf.Size
		if rf.Size > size {
			size = rf.Size
		}
		return &types.FloatType{Size: size}, nil
	}
	if lIsFloat {
		return lf, nil
	}
	if rIsFloat {
		return rf, nil
	}
	_, lUndetFloat := l.(*types.UndeterminedFloatType)
	_, rUndetFloat := r.(*types.UndeterminedFloatType)
	if lUndetFloat || rUndetFloat {
		return &types.UndeterminedFloatType{}, nil
	}
	if lIsInt {
		return li, nil
	}
	if rIsInt {
		return ri, nil
	}
	_, lUndetInt := l.(*types.UndeterminedIntegerType)
	_, rUndetInt := r.(*types.UndeterminedIntegerType)
	if lUndetInt || rUndetInt {
		return &types.UndeterminedIntegerType{}, nil
	}
	return nil, ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot combine %s and %s", l.String(), r.String())
}

// binOpClass tells the arithmetic-kind dispatcher which family op
// belongs to, since the legal operand types and folding logic differ
// per family (spec §4.4).
type binOpClass int

const (
	classArith binOpClass = iota
	classBitwise
	classLogical
	classRelational
	classEquality
)

func classify(op ast.BinaryOp) (binOpClass, ir.ArithKind, bool) {
	switch op {
	case ast.OpAdd:
		return classArith, ir.ArithAdd, true
	case ast.OpSub:
		return classArith, ir.ArithSub, true
	case ast.OpMul:
		return classArith, ir.ArithMul, true
	case ast.OpDiv:
		return classArith, ir.ArithDiv, true
	case ast.OpMod:
		return classArith, ir.ArithMod, true
	case ast.OpAnd:
		return classBitwise, ir.ArithAnd, true
	case ast.OpOr:
		return classBitwise, ir.ArithOr, true
	case ast.OpLAnd:
		return classLogical, ir.ArithAnd, true
	case ast.OpLOr:
		return classLogical, ir.ArithOr, true
	case ast.OpLt:
		return classRelational, ir.ArithLt, true
	case ast.OpGt:
		return classRelational, ir.ArithGt, true
	case ast.OpLe:
		return classRelational, ir.ArithGt, false // `<=` is the negation of `>`
	case ast.OpGe:
		return classRelational, ir.ArithLt, false // `>=` is the negation of `<`
	case ast.OpEq:
		return classEquality, ir.ArithEq, true
	case ast.OpNe:
		return classEquality, ir.ArithEq, false // synthesised as `==` + invert, spec §4.4
	}
	return classArith, ir.ArithAdd, true
}

// evalBinary implements spec §4.4: both operands evaluated, the
// operation type decided by the priority ladder, both operands coerced
// to it, then constant-folded or emitted as IR.
func evalBinary(ctx Context, e *ast.BinaryExpr) (Value, error) {
	l, err := evalExpr(ctx, e.Left)
	if err != nil {
		return Value{}, err
	}
	r, err := evalExpr(ctx, e.Right)
	if err != nil {
		return Value{}, err
	}
	l, err = rvalue(ctx, l)
	if err != nil {
		return Value{}, err
	}
	r, err = rvalue(ctx, r)
	if err != nil {
		return Value{}, err
	}

	opType, err := decideOperationType(ctx, e, l.Type, r.Type)
	if err != nil {
		return Value{}, err
	}
	l, err = Coerce(ctx, l, opType, e.Left.Range())
	if err != nil {
		return Value{}, err
	}
	r, err = Coerce(ctx, r, opType, e.Right.Range())
	if err != nil {
		return Value{}, err
	}

	class, kind, direct := classify(e.Op)
	if err := checkOperandClass(ctx, e, class, opType); err != nil {
		return Value{}, err
	}

	resultType := opType
	if class == classRelational || class == classEquality {
		resultType = &types.BoolType{}
	}

	if l.IsConstant() && r.IsConstant() {
		return foldBinary(ctx, e, class, kind, direct, opType, resultType, l, r)
	}
	return emitBinary(ctx, class, kind, direct, opType, resultType, l, r)
}

func checkOperandClass(ctx Context, e *ast.BinaryExpr, class binOpClass, opType types.Type) error {
	switch class {
	case classArith:
		if !opType.Kind().IsNumeric() {
			return ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot perform that operation on %s", opType.String())
		}
	case classBitwise:
		switch opType.(type) {
		case *types.IntegerType, *types.UndeterminedIntegerType:
		default:
			return ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot perform that operation on %s", opType.String())
		}
	case classLogical:
		if _, ok := opType.(*types.BoolType); !ok {
			return ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot perform that operation on %s", opType.String())
		}
	case classRelational:
		if !opType.Kind().IsNumeric() {
			return ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot perform that operation on %s", opType.String())
		}
	case classEquality:
		if !types.IsScalar(opType) && opType.Kind() != types.KindUndeterminedInteger && opType.Kind() != types.KindUndeterminedFloat {
			return ctx.errorf(diagnostics.CategoryType, e.Range(), "cannot perform that operation on %s", opType.String())
		}
	}
	return nil
}
