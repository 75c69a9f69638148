// Package eval is the unified constant/runtime evaluator: name
// resolution, constant evaluation, declaration resolution, binary-op
// typing, coercion, and IR generation all call back into each other
// during the single recursive walk described by the core's design
// notes, so they live as separate files inside one package instead of
// as import-cycling packages — the same shape as the teacher's
// internal/semantic (one package, analyze_*.go per concern) and
// internal/interp/evaluator (one package, visitor_*.go per concern).
package eval

import (
	"fmt"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/scope"
	"github.com/ferrite-lang/ferritec/internal/source"
)

// Importer resolves a `using`/import path literal, relative to the
// importing file, to a freshly parsed file. It is the seam spec §1
// leaves for an external lexer+parser pair; ferritec's core never
// invokes one directly.
type Importer interface {
	Import(fromPath, pathLiteral string) (*ast.File, error)
}

// Context carries the evaluation state threaded through every
// recursive call. Per spec §9's "stateful scope in a pure evaluator"
// design note, Context is passed and returned by value rather than
// mutated-and-restored: descending into a nested scope is done by
// taking a copy with a new Scope field, and the caller's own copy is
// untouched once the recursive call returns — an immutable-value chain
// standing in for the save/restore triple the source code mutates.
type Context struct {
	Config   *config.Config
	Files    *source.ParsedFileTable
	Importer Importer
	Driver   *Driver
	Scope    *scope.Scope

	// Probing suppresses coercion diagnostics so the coercion engine can
	// be used as a speculative predicate (spec §7, §4.5).
	Probing bool

	// Emit is nil in constant-evaluation mode. When non-nil the walk is
	// generating IR into Emit.Builder for the function whose locals live
	// in Emit.Vars.
	Emit *Emitter
}

// WithScope returns a copy of ctx descended into s.
func (ctx Context) WithScope(s *scope.Scope) Context {
	ctx.Scope = s
	return ctx
}

// WithProbing returns a copy of ctx with Probing set.
func (ctx Context) WithProbing(probing bool) Context {
	ctx.Probing = probing
	return ctx
}

// File returns the absolute path of the file that owns ctx's current
// scope, walking up to the top-level scope if ctx is nested.
func (ctx Context) File() string {
	s := ctx.Scope
	for s != nil && s.Parent() != nil {
		s = s.Parent()
	}
	if s == nil {
		return ""
	}
	return s.FilePath
}

func (ctx Context) errorf(category diagnostics.Category, rng source.Range, format string, args ...any) error {
	return diagnostics.NewRange(category, ctx.File(), rng, fmt.Sprintf(format, args...))
}
