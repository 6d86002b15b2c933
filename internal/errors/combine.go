package errors

import "go.uber.org/multierr"

// Combine folds a diagnostic list into a single error, or nil when the
// list is empty. Callers that only care about pass/fail use the result
// directly; the individual diagnostics remain reachable through
// multierr.Errors.
func Combine(errs []*CompileError) error {
	var out error
	for _, e := range errs {
		out = multierr.Append(out, e)
	}
	return out
}
