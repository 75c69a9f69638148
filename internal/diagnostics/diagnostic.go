// Package diagnostics implements the error-reporting design of spec §7:
// every fallible operation returns a boolean status plus an optional
// payload, the first error is fatal to the compilation, and the
// diagnostic is formatted with a source excerpt before the core returns
// failure (spec §6). It mirrors the teacher's internal/errors package
// (CompilerError.Format) and internal/semantic/errors.go (SemanticError
// categories), merged into one small package.
package diagnostics

import "github.com/ferrite-lang/ferritec/internal/source"

// Category classifies a diagnostic without adding a second error type
// per kind (spec §7 "Error categories (kinds, not types)").
type Category string

const (
	CategoryResolution   Category = "resolution"
	CategoryType         Category = "type"
	CategoryPolymorphism Category = "polymorphism"
	CategoryEvaluation   Category = "evaluation"
	CategoryStructural   Category = "structural"
)

// Diagnostic is a single fatal compile error.
type Diagnostic struct {
	Category Category
	Message  string
	File     string
	Pos      source.Range
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// New builds a Diagnostic at a point position (Start == End).
func New(category Category, file string, pos source.Position, message string) *Diagnostic {
	return &Diagnostic{Category: category, Message: message, File: file, Pos: source.Single(pos)}
}

// NewRange builds a Diagnostic spanning a range.
func NewRange(category Category, file string, rng source.Range, message string) *Diagnostic {
	return &Diagnostic{Category: category, Message: message, File: file, Pos: rng}
}
