package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/scope"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// findDecl returns the declaration statement named name in stmts, or
// nil. Imports are named declarations too (spec §4.1 step 2: "function,
// constant, struct, or import").
func findDecl(stmts []ast.Statement, name string) ast.Statement {
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.FunctionDecl:
			if d.Name == name {
				return d
			}
		case *ast.ConstDecl:
			if d.Name == name {
				return d
			}
		case *ast.StructDecl:
			if d.Name == name {
				return d
			}
		case *ast.ImportDecl:
			if d.Name == name {
				return d
			}
		}
	}
	return nil
}

// isPublic reports whether a declaration is exported through `using`
// (spec §4.1 step 3: "module M's public declarations (everything except
// imports themselves)").
func isPublic(stmt ast.Statement) bool {
	_, isImport := stmt.(*ast.ImportDecl)
	return !isImport
}

// searchUsings scans stmts for `using` statements and, for each,
// resolves its target to a FileModule and searches that module's public
// declarations for name.
func searchUsings(ctx Context, stmts []ast.Statement, name string) (Value, bool, error) {
	for _, s := range stmts {
		using, ok := s.(*ast.UsingStmt)
		if !ok {
			continue
		}
		modVal, err := evaluateConstant(ctx, using.Target)
		if err != nil {
			return Value{}, false, err
		}
		module, ok := modVal.Const.(types.FileModuleRefValue)
		if !ok {
			return Value{}, false, ctx.errorf(diagnostics.CategoryResolution, using.Range(), "expected a module")
		}
		decl := findDecl(module.Statements, name)
		if decl == nil || !isPublic(decl) {
			continue
		}
		moduleScope := scope.NewTopLevel(module.AbsolutePath, module.Statements)
		v, err := resolveDeclaration(ctx.WithScope(moduleScope), decl)
		if err != nil {
			return Value{}, false, err
		}
		return v, true, nil
	}
	return Value{}, false, nil
}

// ResolveName implements spec §4.1's search order: the innermost
// declaration's constant parameters, then each enclosing declaration's
// own statement list, constant parameters, and `using` imports, ending
// at the root file's top-level statements and finally the ambient
// global table.
//
// The spec's step 2 names "enclosing declarations" as distinct from the
// innermost one; ferritec additionally searches the innermost scope's
// own statement list (nested function/struct/const declarations sharing
// a body can reference each other), which only widens what resolves and
// never narrows spec-mandated behavior — recorded in DESIGN.md.
func ResolveName(ctx Context, name string, rng source.Range) (Value, error) {
	for s := ctx.Scope; s != nil; s = s.Parent() {
		innermost := s == ctx.Scope
		if innermost {
			for _, cp := range s.ConstantParams() {
				if cp.Name == name {
					return constVal(cp.Type, cp.Value), nil
				}
			}
		}
		if decl := findDecl(s.OwnStatements(), name); decl != nil {
			return resolveDeclaration(ctx.WithScope(s), decl)
		}
		if !innermost {
			for _, cp := range s.ConstantParams() {
				if cp.Name == name {
					return constVal(cp.Type, cp.Value), nil
				}
			}
		}
		if v, found, err := searchUsings(ctx.WithScope(s), s.OwnStatements(), name); err != nil {
			return Value{}, err
		} else if found {
			return v, nil
		}
	}
	if v, ok := lookupGlobal(ctx, name); ok {
		return v, nil
	}
	return Value{}, ctx.errorf(diagnostics.CategoryResolution, rng, "cannot find named reference %q", name)
}
