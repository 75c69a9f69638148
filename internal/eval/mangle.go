package eval

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/scope"
)

// declName returns the source name of the declaration a nested scope
// was created for.
func declName(stmt ast.Statement) string {
	switch d := stmt.(type) {
	case *ast.FunctionDecl:
		return d.Name
	case *ast.StructDecl:
		return d.Name
	default:
		return ""
	}
}

// topLevelFilePath walks to the root of the scope chain and returns its
// file path.
func topLevelFilePath(s *scope.Scope) string {
	for s != nil && s.Parent() != nil {
		s = s.Parent()
	}
	if s == nil {
		return ""
	}
	return s.FilePath
}

// mangleName implements spec §4.3's mangled-name rule: the declaration's
// own name, followed by an underscore-separated chain of enclosing
// declaration names, terminated with the basename of the owning file.
func mangleName(declarationName string, enclosing *scope.Scope) string {
	parts := []string{declarationName}
	for s := enclosing; s != nil && !s.IsTopLevel(); s = s.Parent() {
		if n := declName(s.Declaration.Decl); n != "" {
			parts = append(parts, n)
		}
	}
	parts = append(parts, filepath.Base(topLevelFilePath(enclosing)))
	return strings.Join(parts, "_")
}

// freshInstantiationName synthesises the `function_<N>` name given to a
// polymorphic instantiation. N is the ordinal Driver.recordInstantiation
// passes in: the number of instantiations recorded earlier in the same
// compilation, so the first one is function_0. It is not the count of
// registered runtime functions.
func freshInstantiationName(ordinal int) string {
	return "function_" + strconv.Itoa(ordinal)
}
