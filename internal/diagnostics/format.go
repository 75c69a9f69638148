package diagnostics

import (
	"fmt"
	"strings"

	"github.com/ferrite-lang/ferritec/internal/source"
	"golang.org/x/text/width"
)

// Format renders a diagnostic the way spec §6 requires:
//
//	Error: <file>(<line>,<col>): <message>
//	<source line>
//	<caret or dash-range>
//
// file is read on demand for the excerpt; a nil file silently omits it,
// exactly as spec §6 specifies ("if reading fails the excerpt is
// silently omitted").
func Format(d *Diagnostic, f *source.File) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s(%d,%d): %s", d.File, d.Pos.Start.Line, d.Pos.Start.Column, d.Message)

	line := f.Line(d.Pos.Start.Line)
	if line == "" {
		return b.String()
	}
	b.WriteByte('\n')
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(marker(line, d.Pos))
	return b.String()
}

// marker builds the caret/dash-range line under the offending source
// line, advancing a fullwidth-aware column count via golang.org/x/text/
// width so carets still line up under East-Asian wide characters.
func marker(line string, rng source.Range) string {
	col := displayColumn(line, rng.Start.Column)
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", col))
	if rng.End.Column <= rng.Start.Column {
		b.WriteByte('^')
		return b.String()
	}
	span := rng.End.Column - rng.Start.Column
	b.WriteString(strings.Repeat("-", span))
	return b.String()
}

func displayColumn(line string, column int) int {
	runes := []rune(line)
	limit := column - 1
	if limit > len(runes) {
		limit = len(runes)
	}
	cols := 0
	for i := 0; i < limit; i++ {
		switch width.LookupRune(runes[i]).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			cols += 2
		default:
			cols++
		}
	}
	return cols
}
