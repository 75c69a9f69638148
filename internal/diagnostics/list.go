package diagnostics

// List collects zero or more diagnostics from a single run. The core
// evaluator itself is first-error-fatal (spec §7: "the first error
// causes the core to return failure") and never builds one of these;
// List exists for the presentation layer — `pkg/ferritec.Compile`
// wraps a single failure into a one-element List, and the CLI's
// `check --keep-going` mode (spec §12) accumulates independent
// top-level declaration errors into a longer one — mirroring the
// teacher's AnalysisError{Errors []string} aggregate.
type List []*Diagnostic

// Of wraps a single error into a one-element List, or an empty List if
// err is nil. Errors that are not already a *Diagnostic are wrapped
// with CategoryStructural so callers never have to type-switch.
func Of(err error) List {
	if err == nil {
		return nil
	}
	if d, ok := err.(*Diagnostic); ok {
		return List{d}
	}
	return List{{Category: CategoryStructural, Message: err.Error()}}
}

// HasErrors reports whether l carries at least one diagnostic.
func (l List) HasErrors() bool { return len(l) > 0 }

// Error implements the error interface so a List can be returned
// wherever a single error is expected; it renders the first diagnostic's
// message, followed by " (+more)" when there are others.
func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	if len(l) == 1 {
		return l[0].Message
	}
	return l[0].Message + " (+more)"
}
