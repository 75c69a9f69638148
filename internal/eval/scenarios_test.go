package eval_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/ferrite-lang/ferritec/internal/eval"
	"github.com/ferrite-lang/ferritec/internal/scope"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLit(v uint64) *ast.IntegerLiteral { return &ast.IntegerLiteral{Value: v} }

// newConstantContext builds a bare top-level Context over a single-statement
// file, enough to drive the constant evaluator directly without going
// through a Driver/Compile pass.
func newConstantContext(stmts []ast.Statement) eval.Context {
	return eval.Context{
		Config: config.Default(),
		Files:  source.NewParsedFileTable(),
		Driver: eval.NewDriver(),
		Scope:  scope.NewTopLevel("s1.fe", stmts),
	}
}

// TestConstantFolding exercises scenario S1 (spec §8): x :: 2 + 3 * 4;
// must fold to the constant 14 with no IR emitted.
func TestConstantFolding(t *testing.T) {
	expr := &ast.BinaryExpr{
		Op:   ast.OpAdd,
		Left: intLit(2),
		Right: &ast.BinaryExpr{
			Op:    ast.OpMul,
			Left:  intLit(3),
			Right: intLit(4),
		},
	}
	x := &ast.ConstDecl{Name: "x", Value: expr}
	ctx := newConstantContext([]ast.Statement{x})

	v, err := eval.ResolveDeclaration(ctx, x)
	require.NoError(t, err)
	assert.True(t, v.IsConstant())
	iv, ok := v.Const.(types.IntegerValue)
	require.True(t, ok, "expected an IntegerValue, got %T", v.Const)
	assert.Equal(t, uint64(14), iv.Bits)
}

// TestConstantFoldingRejectsRuntimeExpression confirms evalExpr's
// constant-mode contract (spec §4.2): a non-constant reference used where
// a constant is required is diagnosed rather than silently deferred.
func TestConstantFoldingRejectsRuntimeExpression(t *testing.T) {
	main := &ast.FunctionDecl{
		Name: "main",
		Body: []ast.Statement{
			&ast.VarDeclStmt{Name: "y", TypeExpr: &ast.Identifier{Name: "i32"}, Init: intLit(1)},
		},
	}
	badConst := &ast.ConstDecl{Name: "z", Value: &ast.Identifier{Name: "y"}}
	ctx := newConstantContext([]ast.Statement{main, badConst})

	_, err := eval.ResolveDeclaration(ctx, badConst)
	assert.Error(t, err)
}
