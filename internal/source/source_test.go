package source_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/stretchr/testify/assert"
)

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:7", source.Position{Line: 3, Column: 7}.String())
}

func TestSingleRangeHasEqualEndpoints(t *testing.T) {
	p := source.Position{Line: 2, Column: 4}
	r := source.Single(p)
	assert.Equal(t, p, r.Start)
	assert.Equal(t, p, r.End)
}

func TestFileLineOutOfRangeReturnsEmpty(t *testing.T) {
	f := &source.File{Path: "main.fe", Content: "a;\nb;\n"}
	assert.Equal(t, "", f.Line(0))
	assert.Equal(t, "", f.Line(5))
}

func TestFileLineReturnsEachLine(t *testing.T) {
	f := &source.File{Path: "main.fe", Content: "a;\nb;\nc;"}
	assert.Equal(t, "a;", f.Line(1))
	assert.Equal(t, "b;", f.Line(2))
	assert.Equal(t, "c;", f.Line(3))
}

func TestFileLineNilReceiverIsEmpty(t *testing.T) {
	var f *source.File
	assert.Equal(t, "", f.Line(1))
}

func TestParsedFileTableAddIsIdempotent(t *testing.T) {
	table := source.NewParsedFileTable()
	first := &source.File{Path: "a.fe", Content: "one"}
	second := &source.File{Path: "a.fe", Content: "two"}
	table.Add(first)
	table.Add(second)

	got, ok := table.Get("a.fe")
	assert.True(t, ok)
	assert.Equal(t, "one", got.Content, "second Add for the same path must be a no-op")
}

func TestParsedFileTableFilesIsSorted(t *testing.T) {
	table := source.NewParsedFileTable()
	table.Add(&source.File{Path: "b.fe"})
	table.Add(&source.File{Path: "a.fe"})
	assert.Equal(t, []string{"a.fe", "b.fe"}, table.Files())
}
