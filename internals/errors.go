package internals

import "fmt"

// InvariantError marks a violation of one of the engine's documented
// invariants (spec.md §8) — a bug in clonecore itself, not a bad input.
// The pipeline driver never recovers from one; it is meant to propagate
// all the way out and abort the run (spec.md §7).
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internals: invariant violated (%s): %s", e.Invariant, e.Detail)
}

func panicInvariant(invariant, format string, args ...interface{}) {
	panic(&InvariantError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)})
}
