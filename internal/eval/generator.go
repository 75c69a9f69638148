package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/scope"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// GenerateFunction implements spec §4.6's function-body lowering: bind
// fn's constant parameters into a fresh nested scope, declare its
// runtime parameters as addressable locals, lower every body statement,
// and hand the finished instruction stream to the Driver as a
// RuntimeStatic. Driver.Run calls this once per worklist entry.
func GenerateFunction(ctx Context, fn *pendingFunction) (ir.RuntimeStatic, error) {
	nested := scope.NewNested(&scope.DeterminedDeclaration{
		Decl:           fn.Decl,
		ConstantParams: fn.ConstantParams,
		Enclosing:      fn.Enclosing,
	})

	emitter := NewEmitter(topLevelFilePath(nested), fn.Decl.Range().Start.Line)
	fctx := ctx.WithScope(nested)
	fctx.Emit = emitter

	// Runtime parameters occupy the callee's first registers in
	// declaration order (the calling convention positionally matches a
	// call site's lowered argument list to these). That register is
	// reserved for every runtime parameter before any AllocLocal/Store
	// housekeeping instructions are emitted, so the reservation stays
	// contiguous regardless of how many extra registers a given
	// parameter's housekeeping needs.
	type runtimeParam struct {
		decl     ast.Param
		typ      types.Type
		incoming ir.Register
	}
	runtimeParams := make([]runtimeParam, 0, len(fn.Decl.Params))
	paramSlots := make([]ir.ParamSlot, 0, len(fn.Decl.Params))
	for _, p := range fn.Decl.Params {
		if p.IsPolymorphic || p.IsConstant {
			continue
		}
		pt, err := evaluateTypeExpr(fctx, p.TypeExpr)
		if err != nil {
			return ir.RuntimeStatic{}, err
		}
		if !types.IsRuntimeType(pt) {
			return ir.RuntimeStatic{}, fctx.errorf(diagnostics.CategoryType, p.NameRange, "parameter %q is not a runtime type", p.Name)
		}

		scalar := types.IsScalar(pt)
		_, isFloat := pt.(*types.FloatType)
		slotSize := int(types.SizeOf(pt, ctx.Config))
		if !scalar {
			slotSize = ctx.Config.AddressSize / 8
		}
		paramSlots = append(paramSlots, ir.ParamSlot{SizeInBytes: slotSize, IsFloat: isFloat})
		runtimeParams = append(runtimeParams, runtimeParam{decl: p, typ: pt, incoming: emitter.Builder.NewRegister()})
	}

	for _, rp := range runtimeParams {
		addrReg := rp.incoming
		if types.IsScalar(rp.typ) {
			_, isFloat := rp.typ.(*types.FloatType)
			addrReg = emitter.Builder.NewRegister()
			emitter.Builder.Emit(ir.AllocLocal(addrReg, types.SizeOf(rp.typ, ctx.Config), types.AlignOf(rp.typ, ctx.Config)))
			emitter.Builder.Emit(ir.Store(addrReg, rp.incoming, int(types.SizeOf(rp.typ, ctx.Config)*8), isFloat))
		}
		if err := emitter.Vars.Declare(&scope.Variable{Name: rp.decl.Name, Type: rp.typ, TypeRange: rp.decl.TypeExpr.Range(), AddressRegister: addrReg}); err != nil {
			return ir.RuntimeStatic{}, fctx.errorf(diagnostics.CategoryEvaluation, rp.decl.NameRange, "%s", err.Error())
		}
	}

	var ret types.Type = &types.VoidType{}
	if fn.Decl.ReturnType != nil {
		rt, err := evaluateTypeExpr(fctx, fn.Decl.ReturnType)
		if err != nil {
			return ir.RuntimeStatic{}, err
		}
		if !types.IsRuntimeType(rt) {
			return ir.RuntimeStatic{}, fctx.errorf(diagnostics.CategoryType, fn.Decl.ReturnType.Range(), "return type is not a runtime type")
		}
		ret = rt
	}
	emitter.ReturnType = ret

	_, isVoid := ret.(*types.VoidType)
	returnSlot := ir.ReturnSlot{}
	if !isVoid {
		if types.IsScalar(ret) {
			_, isFloat := ret.(*types.FloatType)
			returnSlot = ir.ReturnSlot{SizeInBytes: int(types.SizeOf(ret, ctx.Config)), IsFloat: isFloat}
		} else {
			emitter.ReturnByReference = true
			emitter.ReturnAddrReg = emitter.Builder.NewRegister()
			paramSlots = append(paramSlots, ir.ParamSlot{SizeInBytes: ctx.Config.AddressSize / 8})
			returnSlot = ir.ReturnSlot{SizeInBytes: ctx.Config.AddressSize / 8, ByReference: true}
		}
	}

	if !fn.Decl.External {
		for _, stmt := range fn.Decl.Body {
			if err := genStmt(fctx, stmt); err != nil {
				return ir.RuntimeStatic{}, err
			}
		}
		if isVoid {
			emitter.Builder.Emit(ir.Return(ir.NoRegister))
		}
	}

	fnIR := emitter.Builder.Finish(fn.MangledName, fn.Decl.External, paramSlots, returnSlot, !isVoid)
	return ir.RuntimeStatic{Func: fnIR}, nil
}

// genBlock lowers a lexical block of statements inside its own variable
// scope (spec §4.6: "each if/while arm pushes a fresh block and pops it
// on exit").
func genBlock(ctx Context, stmts []ast.Statement) error {
	ctx.Emit.Vars.PushBlock()
	defer ctx.Emit.Vars.PopBlock()
	for _, stmt := range stmts {
		if err := genStmt(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func genStmt(ctx Context, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VarDeclStmt:
		return genVarDecl(ctx, s)
	case *ast.AssignStmt:
		return genAssign(ctx, s)
	case *ast.CompoundAssignStmt:
		return genCompoundAssign(ctx, s)
	case *ast.IfStmt:
		return genIf(ctx, s)
	case *ast.WhileStmt:
		return genWhile(ctx, s)
	case *ast.BreakStmt:
		return genBreak(ctx, s)
	case *ast.ContinueStmt:
		return genContinue(ctx, s)
	case *ast.ReturnStmt:
		return genReturn(ctx, s)
	case *ast.ExprStmt:
		return genExprStmt(ctx, s)
	case *ast.UsingStmt:
		// ResolveName's searchUsings already walks this statement list
		// looking for a using whenever a name fails to resolve any
		// other way, so a `using` appearing as a body statement needs
		// no generation-time effect of its own.
		return nil
	default:
		return ctx.errorf(diagnostics.CategoryStructural, stmt.Range(), "statement not valid inside a function body")
	}
}

// genVarDecl implements spec §4.6's "Variable declaration": the
// declared type (from the annotation and/or the defaulted initializer
// type) gets a fresh local; the initializer, if any, is coerced and
// written into it.
func genVarDecl(ctx Context, s *ast.VarDeclStmt) error {
	var declaredType types.Type
	if s.TypeExpr != nil {
		t, err := evaluateTypeExpr(ctx, s.TypeExpr)
		if err != nil {
			return err
		}
		declaredType = t
	}

	var init Value
	haveInit := s.Init != nil
	if haveInit {
		v, err := evalExpr(ctx, s.Init)
		if err != nil {
			return err
		}
		v, err = rvalue(ctx, v)
		if err != nil {
			return err
		}
		init = v
	}

	varType := declaredType
	if varType == nil {
		varType = defaultType(ctx, init.Type)
	}
	if !types.IsRuntimeType(varType) {
		return ctx.errorf(diagnostics.CategoryType, s.Range(), "variable %q does not have a runtime type", s.Name)
	}

	addr := ctx.Emit.Builder.NewRegister()
	ctx.Emit.Builder.Emit(ir.AllocLocal(addr, types.SizeOf(varType, ctx.Config), types.AlignOf(varType, ctx.Config)))
	if haveInit {
		if err := writeValueTo(ctx, addr, init, varType); err != nil {
			return err
		}
	}

	if err := ctx.Emit.Vars.Declare(&scope.Variable{Name: s.Name, Type: varType, TypeRange: s.Range(), AddressRegister: addr}); err != nil {
		return ctx.errorf(diagnostics.CategoryEvaluation, s.Range(), "%s", err.Error())
	}
	return nil
}

// genAssign implements spec §4.6's "Assignment": Target must evaluate
// to an address; Value is coerced to the target's type and written.
func genAssign(ctx Context, s *ast.AssignStmt) error {
	target, err := evalExpr(ctx, s.Target)
	if err != nil {
		return err
	}
	if target.Kind != kindAddress {
		return ctx.errorf(diagnostics.CategoryType, s.Target.Range(), "left-hand side of an assignment must be an address")
	}
	value, err := evalExpr(ctx, s.Value)
	if err != nil {
		return err
	}
	value, err = rvalue(ctx, value)
	if err != nil {
		return err
	}
	return writeValueTo(ctx, target.Reg, value, target.Type)
}

// genCompoundAssign lowers `Target Op= Value` to an ordinary
// BinaryExpr + AssignStmt pair, per CompoundAssignStmt's own doc
// comment.
func genCompoundAssign(ctx Context, s *ast.CompoundAssignStmt) error {
	target, err := evalExpr(ctx, s.Target)
	if err != nil {
		return err
	}
	if target.Kind != kindAddress {
		return ctx.errorf(diagnostics.CategoryType, s.Target.Range(), "left-hand side of an assignment must be an address")
	}
	synthetic := &ast.BinaryExpr{Op: s.Op, Left: s.Target, Right: s.Value}
	result, err := evalBinary(ctx, synthetic)
	if err != nil {
		return err
	}
	return writeValueTo(ctx, target.Reg, result, target.Type)
}

// genIf implements spec §4.6's "If": each arm (the initial `if`, every
// `else if`, and a trailing `else`) is lowered as a branch-if-true over
// its condition followed by an unconditional jump past the remaining
// arms to the join point, patched once the join point is known.
func genIf(ctx Context, s *ast.IfStmt) error {
	type arm struct {
		cond ast.Expression
		body []ast.Statement
	}
	arms := make([]arm, 0, 1+len(s.ElseIfs))
	arms = append(arms, arm{s.Cond, s.Then})
	for _, ei := range s.ElseIfs {
		arms = append(arms, arm{ei.Cond, ei.Body})
	}

	var joinJumps []int
	for _, a := range arms {
		condReg, err := genBoolCond(ctx, a.cond)
		if err != nil {
			return err
		}
		takeBranch := ctx.Emit.Builder.Emit(ir.Branch(condReg, -1))
		skipJump := ctx.Emit.Builder.Emit(ir.Jump(-1))
		ctx.Emit.Builder.PatchJumpHere(takeBranch)

		if err := genBlock(ctx, a.body); err != nil {
			return err
		}
		joinJumps = append(joinJumps, ctx.Emit.Builder.Emit(ir.Jump(-1)))
		ctx.Emit.Builder.PatchJumpHere(skipJump)
	}

	if s.Else != nil {
		if err := genBlock(ctx, s.Else); err != nil {
			return err
		}
	}

	for _, j := range joinJumps {
		ctx.Emit.Builder.PatchJumpHere(j)
	}
	return nil
}

// genWhile implements spec §4.6's "While": the condition is
// re-evaluated at the loop head, `continue` jumps back to it, and
// `break` jumps to the exit, both back-patched through the Emitter's
// loop stack.
func genWhile(ctx Context, s *ast.WhileStmt) error {
	head := ctx.Emit.Builder.Len()
	condReg, err := genBoolCond(ctx, s.Cond)
	if err != nil {
		return err
	}
	takeBranch := ctx.Emit.Builder.Emit(ir.Branch(condReg, -1))
	exitJump := ctx.Emit.Builder.Emit(ir.Jump(-1))
	ctx.Emit.Builder.PatchJumpHere(takeBranch)

	ctx.Emit.pushLoop(head)
	if err := genBlock(ctx, s.Body); err != nil {
		return err
	}
	loop := ctx.Emit.popLoop()

	ctx.Emit.Builder.Emit(ir.Jump(head))
	ctx.Emit.Builder.PatchJumpHere(exitJump)
	for _, bj := range loop.breakJumps {
		ctx.Emit.Builder.PatchJumpHere(bj)
	}
	return nil
}

func genBoolCond(ctx Context, expr ast.Expression) (ir.Register, error) {
	v, err := evalExpr(ctx, expr)
	if err != nil {
		return ir.NoRegister, err
	}
	v, err = rvalue(ctx, v)
	if err != nil {
		return ir.NoRegister, err
	}
	if _, ok := v.Type.(*types.BoolType); !ok {
		return ir.NoRegister, ctx.errorf(diagnostics.CategoryType, expr.Range(), "condition must be of type bool, got %s", v.Type.String())
	}
	return materializeScalar(ctx, v)
}

func genBreak(ctx Context, s *ast.BreakStmt) error {
	loop := ctx.Emit.currentLoop()
	if loop == nil {
		return ctx.errorf(diagnostics.CategoryStructural, s.Range(), "break outside a loop")
	}
	idx := ctx.Emit.Builder.Emit(ir.Jump(-1))
	loop.breakJumps = append(loop.breakJumps, idx)
	return nil
}

func genContinue(ctx Context, s *ast.ContinueStmt) error {
	loop := ctx.Emit.currentLoop()
	if loop == nil {
		return ctx.errorf(diagnostics.CategoryStructural, s.Range(), "continue outside a loop")
	}
	ctx.Emit.Builder.Emit(ir.Jump(loop.headIndex))
	return nil
}

// genReturn implements spec §4.6's "Return": a scalar result lands in a
// fresh register; an aggregate result is written through the
// function's trailing address parameter; a bare `return;` requires a
// Void return type.
func genReturn(ctx Context, s *ast.ReturnStmt) error {
	if s.Value == nil {
		if _, ok := ctx.Emit.ReturnType.(*types.VoidType); !ok {
			return ctx.errorf(diagnostics.CategoryType, s.Range(), "missing return value")
		}
		ctx.Emit.Builder.Emit(ir.Return(ir.NoRegister))
		return nil
	}

	v, err := evalExpr(ctx, s.Value)
	if err != nil {
		return err
	}
	v, err = rvalue(ctx, v)
	if err != nil {
		return err
	}

	if ctx.Emit.ReturnByReference {
		if err := writeValueTo(ctx, ctx.Emit.ReturnAddrReg, v, ctx.Emit.ReturnType); err != nil {
			return err
		}
		ctx.Emit.Builder.Emit(ir.Return(ir.NoRegister))
		return nil
	}

	v, err = Coerce(ctx, v, ctx.Emit.ReturnType, s.Value.Range())
	if err != nil {
		return err
	}
	reg, err := materializeScalar(ctx, v)
	if err != nil {
		return err
	}
	ctx.Emit.Builder.Emit(ir.Return(reg))
	return nil
}

// genExprStmt implements spec §4.6's "Expression statement": evaluate
// for effect, discard the result.
func genExprStmt(ctx Context, s *ast.ExprStmt) error {
	_, err := evalExpr(ctx, s.Expr)
	return err
}
