package scope_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/scope"
	"github.com/stretchr/testify/assert"
)

func TestTopLevelScope(t *testing.T) {
	stmts := []ast.Statement{&ast.FunctionDecl{Name: "main"}}
	s := scope.NewTopLevel("main.fe", stmts)

	assert.True(t, s.IsTopLevel())
	assert.Nil(t, s.Parent())
	assert.Equal(t, stmts, s.OwnStatements())
	assert.Nil(t, s.ConstantParams())
}

func TestNestedFunctionScopeOwnStatementsIsBody(t *testing.T) {
	top := scope.NewTopLevel("main.fe", nil)
	fn := &ast.FunctionDecl{Name: "f", Body: []ast.Statement{&ast.ReturnStmt{}}}
	params := []scope.ConstantParameter{{Name: "T"}}
	decl := &scope.DeterminedDeclaration{Decl: fn, ConstantParams: params, Enclosing: top}
	nested := scope.NewNested(decl)

	assert.False(t, nested.IsTopLevel())
	assert.Same(t, top, nested.Parent())
	assert.Equal(t, fn.Body, nested.OwnStatements())
	assert.Equal(t, params, nested.ConstantParams())
}

func TestNestedStructScopeHasNoOwnStatements(t *testing.T) {
	top := scope.NewTopLevel("main.fe", nil)
	st := &ast.StructDecl{Name: "S"}
	nested := scope.NewNested(&scope.DeterminedDeclaration{Decl: st, Enclosing: top})
	assert.Nil(t, nested.OwnStatements())
}
