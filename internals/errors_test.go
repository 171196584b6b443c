package internals

import (
	"strings"
	"testing"
)

func TestInvariantErrorMessageIncludesNameAndDetail(t *testing.T) {
	err := &InvariantError{Invariant: "some.invariant", Detail: "something went wrong"}
	msg := err.Error()
	if !strings.Contains(msg, "some.invariant") || !strings.Contains(msg, "something went wrong") {
		t.Errorf(`expected error message to include both invariant name and detail, got %q`, msg)
	}
}

func TestPanicInvariantPanicsWithInvariantError(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf(`expected panicInvariant to panic`)
		}
		if _, ok := r.(*InvariantError); !ok {
			t.Errorf(`expected panic value to be *InvariantError, got %T`, r)
		}
	}()
	panicInvariant("test.invariant", "detail %d", 42)
}
