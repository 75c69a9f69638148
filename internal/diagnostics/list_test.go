package diagnostics_test

import (
	"errors"
	"testing"

	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/stretchr/testify/assert"
)

func zeroPos() source.Position { return source.Position{Line: 1, Column: 1} }

func TestOfNilErrorIsEmpty(t *testing.T) {
	l := diagnostics.Of(nil)
	assert.False(t, l.HasErrors())
	assert.Empty(t, l.Error())
}

func TestOfDiagnosticWrapsSingleEntry(t *testing.T) {
	d := diagnostics.New(diagnostics.CategoryResolution, "main.fe", zeroPos(), "undefined identifier")
	l := diagnostics.Of(d)
	assert.True(t, l.HasErrors())
	assert.Len(t, l, 1)
	assert.Equal(t, "undefined identifier", l.Error())
}

func TestOfPlainErrorWrapsAsStructuralDiagnostic(t *testing.T) {
	l := diagnostics.Of(errors.New("boom"))
	assert.True(t, l.HasErrors())
	assert.Equal(t, diagnostics.CategoryStructural, l[0].Category)
	assert.Equal(t, "boom", l[0].Message)
}

func TestListErrorSummarizesMultipleEntries(t *testing.T) {
	var l diagnostics.List
	l = append(l, diagnostics.New(diagnostics.CategoryType, "a.fe", zeroPos(), "first"))
	l = append(l, diagnostics.New(diagnostics.CategoryType, "b.fe", zeroPos(), "second"))
	assert.Equal(t, "first (+more)", l.Error())
}
