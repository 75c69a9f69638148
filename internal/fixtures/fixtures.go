// Package fixtures hand-builds the ASTs spec §8's worked end-to-end
// scenarios describe, standing in for whatever an external lexer and
// parser would have produced (spec §1 Non-goals exclude lexing and
// parsing from this module). `cmd/ferritec`'s `--fixture` flag selects
// one of these by name; `pkg/ferritec`'s own tests use them directly.
package fixtures

import (
	"fmt"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/eval"
)

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func intLit(v uint64) *ast.IntegerLiteral { return &ast.IntegerLiteral{Value: v} }

func floatLit(v float64) *ast.FloatLiteral { return &ast.FloatLiteral{Value: v} }

// Scenario is one named fixture: a root file plus the importer it needs
// (nil unless the scenario exercises `using`).
type Scenario struct {
	Name        string
	Description string
	Root        *ast.File
	Importer    eval.Importer
}

// Names lists every registered scenario, in spec §8 order.
func Names() []string { return []string{"s1", "s2", "s3", "s4", "s5", "s6"} }

// Get returns the named scenario, or false if name isn't registered.
func Get(name string) (Scenario, bool) {
	switch name {
	case "s1":
		return s1ConstantFolding(), true
	case "s2":
		return s2IntegerCoercion(), true
	case "s3":
		return s3Polymorphism(), true
	case "s4":
		return s4SliceAutoWrap(), true
	case "s5":
		return s5UnionLiteral(), true
	case "s6":
		return s6Import(), true
	default:
		return Scenario{}, false
	}
}

// s1ConstantFolding is `x :: 2 + 3 * 4;` (spec §8 S1): a pure constant
// definition, never enqueued as a runtime function, so Compile over this
// file alone fails ("main is missing"). internal/eval's own
// constant-evaluator tests build the same expression directly rather
// than going through this fixture.
func s1ConstantFolding() Scenario {
	x := &ast.ConstDecl{
		Name: "x",
		Value: &ast.BinaryExpr{
			Op:   ast.OpAdd,
			Left: intLit(2),
			Right: &ast.BinaryExpr{
				Op:    ast.OpMul,
				Left:  intLit(3),
				Right: intLit(4),
			},
		},
	}
	return Scenario{
		Name:        "s1",
		Description: "constant folding: x :: 2 + 3 * 4;",
		Root:        &ast.File{Path: "s1.fe", Statements: []ast.Statement{x}},
	}
}

// s2IntegerCoercion is `main :: () { x: i32 = 1 + 2; }` (spec §8 S2).
func s2IntegerCoercion() Scenario {
	main := &ast.FunctionDecl{
		Name: "main",
		Body: []ast.Statement{
			&ast.VarDeclStmt{
				Name:     "x",
				TypeExpr: id("i32"),
				Init: &ast.BinaryExpr{
					Op:    ast.OpAdd,
					Left:  intLit(1),
					Right: intLit(2),
				},
			},
		},
	}
	return Scenario{
		Name:        "s2",
		Description: "integer coercion: main :: () { x: i32 = 1 + 2; }",
		Root:        &ast.File{Path: "s2.fe", Statements: []ast.Statement{main}},
	}
}

// s3Polymorphism is `id :: ($T: type, x: T) -> T { return x; }` called
// twice with identical constant arguments (spec §8 S3 / OQ3): the driver
// must register exactly one runtime instantiation.
func s3Polymorphism() Scenario {
	idFn := &ast.FunctionDecl{
		Name: "id",
		Params: []ast.Param{
			{Name: "T", IsPolymorphic: true},
			{Name: "x", TypeExpr: id("T")},
		},
		ReturnType: id("T"),
		Body:       []ast.Statement{&ast.ReturnStmt{Value: id("x")}},
	}
	main := &ast.FunctionDecl{
		Name: "main",
		Body: []ast.Statement{
			&ast.ExprStmt{Expr: &ast.CallExpr{Callee: id("id"), Args: []ast.Expression{id("i32"), intLit(7)}}},
			&ast.ExprStmt{Expr: &ast.CallExpr{Callee: id("id"), Args: []ast.Expression{id("i32"), intLit(8)}}},
		},
	}
	return Scenario{
		Name:        "s3",
		Description: "polymorphism: id(i32, 7); id(i32, 8); dedups to one instantiation",
		Root:        &ast.File{Path: "s3.fe", Statements: []ast.Statement{idFn, main}},
	}
}

// s4SliceAutoWrap is `main :: () { a: [3]i32 = .[1,2,3]; b: []i32 = a; }`
// (spec §8 S4).
func s4SliceAutoWrap() Scenario {
	main := &ast.FunctionDecl{
		Name: "main",
		Body: []ast.Statement{
			&ast.VarDeclStmt{
				Name:     "a",
				TypeExpr: &ast.ArrayTypeExpr{Length: intLit(3), Element: id("i32")},
				Init:     &ast.ArrayLiteralExpr{Elements: []ast.Expression{intLit(1), intLit(2), intLit(3)}},
			},
			&ast.VarDeclStmt{
				Name:     "b",
				TypeExpr: &ast.ArrayTypeExpr{Element: id("i32")},
				Init:     id("a"),
			},
		},
	}
	return Scenario{
		Name:        "s4",
		Description: "slice auto-wrap: b: []i32 = a; where a: [3]i32",
		Root:        &ast.File{Path: "s4.fe", Statements: []ast.Statement{main}},
	}
}

// s5UnionLiteral is `U :: union { i: i32; f: f32; }` with
// `u: U = .{ f = 1.5 };` (spec §8 S5).
func s5UnionLiteral() Scenario {
	u := &ast.StructDecl{
		Name:    "U",
		IsUnion: true,
		Members: []ast.StructMember{
			{Name: "i", TypeExpr: id("i32")},
			{Name: "f", TypeExpr: id("f32")},
		},
	}
	main := &ast.FunctionDecl{
		Name: "main",
		Body: []ast.Statement{
			&ast.VarDeclStmt{
				Name:     "u",
				TypeExpr: id("U"),
				Init: &ast.StructLiteralExpr{
					Fields: []ast.StructLiteralField{{Name: "f", Value: floatLit(1.5)}},
				},
			},
		},
	}
	return Scenario{
		Name:        "s5",
		Description: "union literal: u: U = .{ f = 1.5 }; where U :: union { i: i32; f: f32; }",
		Root:        &ast.File{Path: "s5.fe", Statements: []ast.Statement{u, main}},
	}
}

// s6Import is `a.fe` containing `pi :: 3.14;` `using`-ed from `main.fe`'s
// `main :: () -> f64 { return pi; }` (spec §8 S6). The returned importer
// is a fixed single-entry lookup, standing in for a real filesystem
// resolver.
func s6Import() Scenario {
	piDecl := &ast.ConstDecl{Name: "pi", Value: floatLit(3.14)}
	aFile := &ast.File{Path: "a.fe", Statements: []ast.Statement{piDecl}}

	main := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: id("f64"),
		Body: []ast.Statement{
			&ast.UsingStmt{Target: &ast.ImportExpr{PathLiteral: "a.fe"}},
			&ast.ReturnStmt{Value: id("pi")},
		},
	}
	root := &ast.File{Path: "main.fe", Statements: []ast.Statement{main}}

	return Scenario{
		Name:        "s6",
		Description: `import: using "a.fe"; main resolves pi from the imported module`,
		Root:        root,
		Importer:    fixedImporter{files: map[string]*ast.File{"a.fe": aFile}},
	}
}

// fixedImporter resolves exactly the path literals it was built with,
// regardless of the importing file, matching how s6's single-level
// `using` never needs relative-path resolution.
type fixedImporter struct {
	files map[string]*ast.File
}

func (f fixedImporter) Import(fromPath, pathLiteral string) (*ast.File, error) {
	file, ok := f.files[pathLiteral]
	if !ok {
		return nil, fmt.Errorf("fixtures: no import registered for %q (from %q)", pathLiteral, fromPath)
	}
	return file, nil
}
