// Package ast defines the node types a parser hands to the semantic core.
// Lexing and parsing are external collaborators (spec §1 Non-goals); this
// package is the contract between them and everything under internal/eval.
package ast

import "github.com/ferrite-lang/ferritec/internal/source"

// Node is the base interface every AST node implements.
type Node interface {
	Range() source.Range
}

// Expression is any node that produces a value when evaluated, either at
// compile time or at runtime.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that appears in a declaration scope's statement
// list: declarations, control flow, and expression statements.
type Statement interface {
	Node
	statementNode()
}

// base carries the source range shared by every concrete node so each
// node type only has to embed it instead of repeating the accessor.
type base struct {
	Rng source.Range
}

func (b base) Range() source.Range { return b.Rng }

// File is the root of a parsed source file: its absolute path and its
// top-level statement list (spec §3, "DeclarationScope ... owning a
// file path and that file's statements").
type File struct {
	Path       string
	Statements []Statement
}
