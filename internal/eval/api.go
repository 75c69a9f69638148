package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/scope"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// ResolveDeclaration is the exported entry point into declaration
// resolution (spec §4.3) for callers outside this package, such as
// `pkg/ferritec`'s --keep-going mode, that need to check one top-level
// declaration in isolation rather than driving a whole Compile.
func ResolveDeclaration(ctx Context, stmt ast.Statement) (Value, error) {
	return resolveDeclaration(ctx, stmt)
}

// AsFunctionRef unwraps a Value known to hold a concrete function
// reference, or reports false for a polymorphic/non-function Value.
func AsFunctionRef(v Value) (types.FunctionRefValue, bool) {
	return asFunctionRef(v)
}

// EnqueueFunction registers an already-resolved concrete function
// reference on the worklist, for callers that obtained it through
// ResolveDeclaration rather than through a call expression.
func (d *Driver) EnqueueFunction(ref types.FunctionRefValue) {
	enclosing, _ := ref.EnclosingScopeAny.(*scope.Scope)
	d.Enqueue(&pendingFunction{
		MangledName: ref.MangledName,
		Decl:        ref.Decl,
		Enclosing:   enclosing,
	})
}
