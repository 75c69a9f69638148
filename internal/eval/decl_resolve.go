package eval

import (
	"path/filepath"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// resolveDeclaration implements spec §4.3: dispatch on declaration kind
// and produce its (Type, Value). Results are cached on the Driver keyed
// by the declaration's own AST identity so re-visiting the same
// declaration through a different reference is idempotent (spec §3
// invariant 5), exactly as the teacher memoises symbol lookups in its
// SymbolTable rather than re-walking the AST.
func resolveDeclaration(ctx Context, stmt ast.Statement) (Value, error) {
	if v, ok := ctx.Driver.declCache[stmt]; ok {
		return v, nil
	}
	var (
		v   Value
		err error
	)
	switch d := stmt.(type) {
	case *ast.FunctionDecl:
		v, err = resolveFunctionDecl(ctx, d)
	case *ast.ConstDecl:
		v, err = evaluateConstant(ctx, d.Value)
	case *ast.StructDecl:
		v, err = resolveStructDecl(ctx, d)
	case *ast.ImportDecl:
		v, err = resolveImportDecl(ctx, d)
	default:
		return Value{}, ctx.errorf(diagnostics.CategoryStructural, stmt.Range(), "not a declaration")
	}
	if err != nil {
		return Value{}, err
	}
	ctx.Driver.declCache[stmt] = v
	return v, nil
}

// isPolymorphicSignature reports whether any parameter marks the
// declaration as needing per-call-site instantiation.
func isPolymorphicSignature(params []ast.Param) bool {
	for _, p := range params {
		if p.IsPolymorphic || p.IsConstant {
			return true
		}
	}
	return false
}

func resolveFunctionDecl(ctx Context, fn *ast.FunctionDecl) (Value, error) {
	if isPolymorphicSignature(fn.Params) {
		return constVal(&types.PolymorphicFunctionType{}, types.PolymorphicFunctionRefValue{
			Decl:              fn,
			EnclosingScopeAny: ctx.Scope,
		}), nil
	}

	paramTypes := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		pt, err := evaluateTypeExpr(ctx, p.TypeExpr)
		if err != nil {
			return Value{}, err
		}
		if !types.IsRuntimeType(pt) {
			return Value{}, ctx.errorf(diagnostics.CategoryType, p.NameRange, "parameter %q is not a runtime type", p.Name)
		}
		paramTypes[i] = pt
	}

	var ret types.Type = &types.VoidType{}
	if fn.ReturnType != nil {
		rt, err := evaluateTypeExpr(ctx, fn.ReturnType)
		if err != nil {
			return Value{}, err
		}
		if !types.IsRuntimeType(rt) {
			return Value{}, ctx.errorf(diagnostics.CategoryType, fn.ReturnType.Range(), "return type is not a runtime type")
		}
		ret = rt
	}

	name := fn.Name
	if !fn.External {
		name = mangleName(fn.Name, ctx.Scope)
	}
	return constVal(&types.FunctionType{Params: paramTypes, Return: ret}, types.FunctionRefValue{
		MangledName:       name,
		Decl:              fn,
		EnclosingScopeAny: ctx.Scope,
	}), nil
}

func resolveStructDecl(ctx Context, st *ast.StructDecl) (Value, error) {
	if len(st.Params) > 0 {
		paramTypes := make([]types.Type, len(st.Params))
		for i, p := range st.Params {
			if p.IsPolymorphic {
				paramTypes[i] = &types.TypeOfTypeType{}
				continue
			}
			pt, err := evaluateTypeExpr(ctx, p.TypeExpr)
			if err != nil {
				return Value{}, err
			}
			paramTypes[i] = pt
		}
		return constVal(&types.PolymorphicStructType{
			Handle:       st,
			ParamTypes:   paramTypes,
			EnclosingAny: ctx.Scope,
		}, types.TypeConstantValue{T: &types.PolymorphicStructType{Handle: st, ParamTypes: paramTypes, EnclosingAny: ctx.Scope}}), nil
	}

	members, err := resolveStructMembers(ctx, st.Members)
	if err != nil {
		return Value{}, err
	}
	structType := &types.StructType{Handle: st, Members: members, IsUnion: st.IsUnion}
	return constVal(&types.TypeOfTypeType{}, types.TypeConstantValue{T: structType}), nil
}

func resolveStructMembers(ctx Context, decls []ast.StructMember) ([]types.Member, error) {
	members := make([]types.Member, 0, len(decls))
	seen := make(map[string]bool, len(decls))
	for _, m := range decls {
		if seen[m.Name] {
			return nil, ctx.errorf(diagnostics.CategoryEvaluation, m.NameRange, "duplicate member %q", m.Name)
		}
		seen[m.Name] = true
		mt, err := evaluateTypeExpr(ctx, m.TypeExpr)
		if err != nil {
			return nil, err
		}
		if !types.IsRuntimeType(mt) {
			return nil, ctx.errorf(diagnostics.CategoryType, m.NameRange, "member %q is not a runtime type", m.Name)
		}
		members = append(members, types.Member{Name: m.Name, Type: mt})
	}
	return members, nil
}

// resolveImportDecl implements spec §4.3's import rule: resolve the
// target path relative to the importing file, consult the
// already-parsed-files table for idempotence, otherwise invoke the
// external importer and record the result.
func resolveImportDecl(ctx Context, imp *ast.ImportDecl) (Value, error) {
	fromPath := topLevelFilePath(ctx.Scope)
	absPath := filepath.Clean(filepath.Join(filepath.Dir(fromPath), imp.PathLiteral))

	if stmts, ok := ctx.Driver.parsedStatements[absPath]; ok {
		return constVal(&types.FileModuleType{}, types.FileModuleRefValue{AbsolutePath: absPath, Statements: stmts}), nil
	}

	file, err := ctx.Importer.Import(fromPath, imp.PathLiteral)
	if err != nil {
		return Value{}, ctx.errorf(diagnostics.CategoryResolution, imp.Range(), "module not found: %s", imp.PathLiteral)
	}
	ctx.Driver.parsedStatements[file.Path] = file.Statements
	return constVal(&types.FileModuleType{}, types.FileModuleRefValue{AbsolutePath: file.Path, Statements: file.Statements}), nil
}
