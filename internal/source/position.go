// Package source holds the position and file bookkeeping shared by every
// layer of the core. It has no dependents inside this module other than
// the ones that need to print or locate a diagnostic.
package source

import "fmt"

// Position is a single point in a source file, 1-indexed for Line and
// Column to match the diagnostic format in spec §6.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range spans from Start to End, both inclusive of the token they bound.
// A zero-width range (Start == End) is a single point and is rendered
// with a caret; a wider range is rendered with a dash.
type Range struct {
	Start Position
	End   Position
}

// Single returns a Range covering just p.
func Single(p Position) Range {
	return Range{Start: p, End: p}
}
