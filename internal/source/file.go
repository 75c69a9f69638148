package source

import "sort"

// File is a single source file as read from disk (or supplied in-memory
// by a test) paired with the absolute path that names it in diagnostics
// and in the parsed-file table.
type File struct {
	Path    string
	Content string
}

// Line returns the 1-indexed source line, or "" if out of range. Used to
// build the caret excerpt in diagnostics.Format.
func (f *File) Line(n int) string {
	if f == nil || n < 1 {
		return ""
	}
	line := 1
	start := 0
	for i := 0; i < len(f.Content); i++ {
		if line == n {
			start = i
			for j := i; j < len(f.Content); j++ {
				if f.Content[j] == '\n' {
					return f.Content[start:j]
				}
			}
			return f.Content[start:]
		}
		if f.Content[i] == '\n' {
			line++
		}
	}
	if line == n {
		return f.Content[start:]
	}
	return ""
}

// ParsedFileTable is a table of parsed files keyed by absolute path.
// Import resolution in internal/eval does not consult it: the Driver
// keeps its own per-compilation table of imported statements, keyed by
// resolved path, which is what makes a repeated import reuse the first
// parse.
type ParsedFileTable struct {
	files map[string]*File
}

// NewParsedFileTable creates an empty table.
func NewParsedFileTable() *ParsedFileTable {
	return &ParsedFileTable{files: make(map[string]*File)}
}

// Get returns the file at absPath and whether it has already been parsed.
func (t *ParsedFileTable) Get(absPath string) (*File, bool) {
	f, ok := t.files[absPath]
	return f, ok
}

// Add records a newly parsed file under its absolute path. Calling Add
// twice for the same path is a no-op on the second call, which is what
// makes repeated `using` of the same module idempotent.
func (t *ParsedFileTable) Add(f *File) {
	if _, ok := t.files[f.Path]; ok {
		return
	}
	t.files[f.Path] = f
}

// Files returns every absolute path recorded so far, sorted, for tooling
// and tests (mirrors the teacher's AllClasses()-style introspection
// helpers on its registries).
func (t *ParsedFileTable) Files() []string {
	paths := make([]string, 0, len(t.files))
	for p := range t.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
