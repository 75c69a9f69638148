// Package ferritec is the thin public façade over internal/eval, the
// same shape as the teacher's pkg/dwscript sits over its internal
// semantic/interp packages: a handful of entry points an embedder or a
// CLI can call without reaching into internal/ at all.
package ferritec

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/eval"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/scope"
	"github.com/ferrite-lang/ferritec/internal/source"
)

// Importer resolves a `using`/import path literal to a parsed file.
// Lexing and parsing are out of scope for this module (spec §1); a real
// frontend implements this interface and is handed to Compile, exactly
// like the teacher's pkg/dwscript accepts a caller-supplied FFI registry
// without needing to know how the script text reached it.
type Importer = eval.Importer

// Result is everything one compilation produced: the finished runtime
// statics (empty on failure) and whatever diagnostics were raised.
type Result struct {
	Statics     []ir.RuntimeStatic
	Diagnostics diagnostics.List
}

// Ok reports whether the compilation produced no diagnostics.
func (r Result) Ok() bool { return !r.Diagnostics.HasErrors() }

// Compile runs the full core (spec §2 "Data flow") over an
// already-parsed root file: it seeds a fresh Driver and Context,
// registers `main` as the entry point (spec §2, §5), and runs the
// termination loop until every transitively reachable runtime function
// has been lowered to IR. The core is first-error-fatal (spec §7), so a
// single failure here always yields a one-element Diagnostics list.
//
// The ParsedFileTable placed on the Context is created empty and root.Path
// is not recorded in it; imports are de-duplicated by the Driver's own
// table of imported files, which does not contain the root file either.
func Compile(root *ast.File, importer Importer, cfg *config.Config) Result {
	files := source.NewParsedFileTable()
	driver := eval.NewDriver()
	ctx := eval.Context{
		Config:   cfg,
		Files:    files,
		Importer: importer,
		Driver:   driver,
		Scope:    scope.NewTopLevel(root.Path, root.Statements),
	}

	if err := eval.RegisterMain(ctx); err != nil {
		return Result{Diagnostics: diagnostics.Of(err)}
	}
	if err := driver.Run(ctx); err != nil {
		return Result{Diagnostics: diagnostics.Of(err)}
	}
	return Result{Statics: driver.Statics()}
}

// CheckAll type-checks every non-polymorphic top-level function
// independently and collects diagnostics from all of them, instead of
// stopping at the first (spec §12 "Multiple diagnostics per run for
// check"). A polymorphic function is only checked once instantiated by
// an actual call, exactly as Compile would check it; CheckAll does not
// change that — it only widens the "which top-level declarations get a
// chance to run" policy. This is presentation-layer only: the core
// evaluator underneath each individual check is still the same
// single-pass, first-error-fatal walk spec §7 requires.
func CheckAll(root *ast.File, importer Importer, cfg *config.Config) diagnostics.List {
	topScope := scope.NewTopLevel(root.Path, root.Statements)
	var all diagnostics.List

	for _, stmt := range root.Statements {
		fn, ok := stmt.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		driver := eval.NewDriver()
		ctx := eval.Context{
			Config:   cfg,
			Files:    source.NewParsedFileTable(),
			Importer: importer,
			Driver:   driver,
			Scope:    topScope,
		}

		v, err := eval.ResolveDeclaration(ctx, fn)
		if err != nil {
			all = append(all, diagnostics.Of(err)...)
			continue
		}
		ref, ok := eval.AsFunctionRef(v)
		if !ok {
			// Polymorphic signature: nothing to check until a call site
			// instantiates it.
			continue
		}
		driver.EnqueueFunction(ref)
		if err := driver.Run(ctx); err != nil {
			all = append(all, diagnostics.Of(err)...)
		}
	}
	return all
}
