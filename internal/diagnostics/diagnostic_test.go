package diagnostics_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithoutSourceFileOmitsExcerpt(t *testing.T) {
	d := diagnostics.New(diagnostics.CategoryType, "main.fe", source.Position{Line: 3, Column: 5}, "type mismatch")
	got := diagnostics.Format(d, nil)
	assert.Equal(t, "Error: main.fe(3,5): type mismatch", got)
}

func TestFormatWithSourceFileAddsCaret(t *testing.T) {
	f := &source.File{Path: "main.fe", Content: "x: i32 = 1.5;\n"}
	d := diagnostics.New(diagnostics.CategoryType, "main.fe", source.Position{Line: 1, Column: 10}, "cannot coerce f32 to i32")
	got := diagnostics.Format(d, f)
	assert.Contains(t, got, "x: i32 = 1.5;")
	assert.Contains(t, got, "^")
}

func TestNewRangeProducesDashSpan(t *testing.T) {
	f := &source.File{Path: "main.fe", Content: "a + b;\n"}
	d := diagnostics.NewRange(diagnostics.CategoryEvaluation, "main.fe", source.Range{
		Start: source.Position{Line: 1, Column: 1},
		End:   source.Position{Line: 1, Column: 6},
	}, "bad expression")
	got := diagnostics.Format(d, f)
	assert.Contains(t, got, "-----")
}
