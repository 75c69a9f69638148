// Package scope implements the lexical/module scope chain of spec §3
// ("Scopes") and §4.1: a DeclarationScope is either top-level (a file
// path plus that file's statements) or nested inside a
// DeterminedDeclaration, which in turn owns a reference to its own
// enclosing scope. Spec §9 explicitly calls for this to be an immutable
// parent-owning chain rather than the source's child-to-parent
// back-pointers.
package scope

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// ConstantParameter is a compile-time value bound to a name inside a
// declaration scope (spec §3, glossary "Constant parameter").
type ConstantParameter struct {
	Name  string
	Type  types.Type
	Value types.Value
}

// DeterminedDeclaration is a declaration (function or struct) plus the
// constant parameters bound to it (its polymorphic arguments, if any)
// and its own enclosing scope (spec §3).
type DeterminedDeclaration struct {
	Decl           ast.Statement
	ConstantParams []ConstantParameter
	Enclosing      *Scope
	// InstantiationID is an optional opaque tag. Nothing in this module
	// sets or reads it, and it plays no part in the mangled-name
	// algorithm.
	InstantiationID string
}

// Scope is either a top-level file scope (Declaration == nil) or a
// scope nested inside a DeterminedDeclaration.
type Scope struct {
	// Top-level fields.
	FilePath   string
	Statements []ast.Statement

	// Nested-scope field; nil at top level.
	Declaration *DeterminedDeclaration
}

// NewTopLevel creates the scope owning a root or imported file's
// top-level statement list.
func NewTopLevel(path string, statements []ast.Statement) *Scope {
	return &Scope{FilePath: path, Statements: statements}
}

// NewNested creates the scope introduced by resolving into decl.
func NewNested(decl *DeterminedDeclaration) *Scope {
	return &Scope{Declaration: decl}
}

// IsTopLevel reports whether s is a root/imported-file scope rather
// than one nested inside a declaration.
func (s *Scope) IsTopLevel() bool {
	return s != nil && s.Declaration == nil
}

// Parent returns the enclosing scope, or nil at the top level.
func (s *Scope) Parent() *Scope {
	if s == nil || s.Declaration == nil {
		return nil
	}
	return s.Declaration.Enclosing
}

// OwnStatements returns the statement list this scope level should be
// searched against: the file's statements at top level, or the
// function body at a nested function scope. Struct declarations do not
// introduce a statement list of their own.
func (s *Scope) OwnStatements() []ast.Statement {
	if s == nil {
		return nil
	}
	if s.IsTopLevel() {
		return s.Statements
	}
	if fn, ok := s.Declaration.Decl.(*ast.FunctionDecl); ok {
		return fn.Body
	}
	return nil
}

// ConstantParams returns the constant parameters bound at this scope
// level, or nil at the top level.
func (s *Scope) ConstantParams() []ConstantParameter {
	if s == nil || s.Declaration == nil {
		return nil
	}
	return s.Declaration.ConstantParams
}
