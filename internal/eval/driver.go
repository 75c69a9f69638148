package eval

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/internal/scope"
	lru "github.com/hashicorp/golang-lru/v2"
)

// pendingFunction is one entry on the runtime-function worklist (spec
// §5 "Termination"): a concrete, already-typed function declaration
// plus the scope its body must be generated in.
type pendingFunction struct {
	MangledName string
	Decl        *ast.FunctionDecl
	Enclosing   *scope.Scope
	// ConstantParams carries the bound polymorphic/constant arguments for
	// an instantiation; nil for a non-polymorphic function.
	ConstantParams []scope.ConstantParameter
}

// instantiationKey identifies one polymorphic instantiation for the
// de-duplication cache spec §9 (OQ3) recommends: the declaration handle
// plus the tuple of bound constant arguments.
type instantiationKey struct {
	Decl *ast.FunctionDecl
	Args string // stable encoding of the constant-argument tuple
}

// Driver owns every piece of state shared across the whole compilation
// (spec §5 "Shared resources"): the declaration-resolution cache, the
// parsed-file statement table, the runtime-function worklist, the
// finished statics, and the polymorphic-instantiation de-dup cache.
// Nothing here is safe for concurrent use — the core is single-threaded
// by design (spec §5).
type Driver struct {
	declCache        map[ast.Statement]Value
	parsedStatements map[string][]ast.Statement

	pending   []*pendingFunction
	done      map[string]bool
	statics   []ir.RuntimeStatic
	instCache *lru.Cache[instantiationKey, string]

	nextInstantiation int
}

// NewDriver creates an empty driver. The polymorphic-instantiation
// de-dup cache (spec §9 OQ3) is bounded at 4096 entries, which comfortably
// covers any realistic single-pass build while still capping memory on
// a pathological program with many distinct instantiations.
func NewDriver() *Driver {
	cache, _ := lru.New[instantiationKey, string](4096)
	return &Driver{
		declCache:        make(map[ast.Statement]Value),
		parsedStatements: make(map[string][]ast.Statement),
		done:             make(map[string]bool),
		instCache:        cache,
	}
}

// Enqueue adds fn to the worklist unless a static of the same mangled
// name is already registered or pending (spec §3 invariant 5:
// "runtime-function registration is idempotent on mangled name").
func (d *Driver) Enqueue(fn *pendingFunction) {
	if d.done[fn.MangledName] {
		return
	}
	for _, p := range d.pending {
		if p.MangledName == fn.MangledName {
			return
		}
	}
	d.pending = append(d.pending, fn)
}

// lookupInstantiation returns the mangled name already assigned to key,
// if any.
func (d *Driver) lookupInstantiation(key instantiationKey) (string, bool) {
	return d.instCache.Get(key)
}

func (d *Driver) recordInstantiation(key instantiationKey) string {
	name := freshInstantiationName(d.nextInstantiation)
	d.nextInstantiation++
	d.instCache.Add(key, name)
	return name
}

// Run implements spec §5's termination loop: repeatedly pick any
// registered runtime function whose static has not yet been produced,
// generate it (which may enqueue more functions or append statics),
// and stop once the pending set is empty. Progress is guaranteed
// because each iteration of the loop removes exactly one entry from
// pending.
func (d *Driver) Run(ctx Context) error {
	for len(d.pending) > 0 {
		fn := d.pending[0]
		d.pending = d.pending[1:]
		if d.done[fn.MangledName] {
			continue
		}
		static, err := GenerateFunction(ctx, fn)
		if err != nil {
			return err
		}
		d.done[fn.MangledName] = true
		d.statics = append(d.statics, static)
	}
	return nil
}

// Statics returns every runtime static produced so far.
func (d *Driver) Statics() []ir.RuntimeStatic { return d.statics }

// RegisterMain seeds the worklist with the program's entry point (spec
// §2 "Data flow": "the driver ... finds the main declaration, and
// enqueues it as a runtime function").
func RegisterMain(ctx Context) error {
	decl := findDecl(ctx.Scope.OwnStatements(), "main")
	if decl == nil {
		return ctx.errorf(diagnostics.CategoryStructural, ctx.Scope.Statements[0].Range(), "main is missing")
	}
	fn, ok := decl.(*ast.FunctionDecl)
	if !ok {
		return ctx.errorf(diagnostics.CategoryStructural, decl.Range(), "main is not a function")
	}
	v, err := resolveDeclaration(ctx, fn)
	if err != nil {
		return err
	}
	fnRef, ok := asFunctionRef(v)
	if !ok {
		return ctx.errorf(diagnostics.CategoryStructural, decl.Range(), "main is polymorphic or not a function")
	}
	ctx.Driver.Enqueue(&pendingFunction{
		MangledName: fnRef.MangledName,
		Decl:        fnRef.Decl,
		Enclosing:   ctx.Scope,
	})
	return nil
}
