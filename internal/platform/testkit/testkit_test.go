package testkit

import (
	"fmt"
	"testing"
)

type codeErr struct{ code int }

func (e *codeErr) Error() string { return fmt.Sprintf("code %d", e.code) }

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, "alpha beta gamma", "beta")
}

func TestMustErrAs(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("page 2: %w", &codeErr{code: 500})
	got := MustErrAs[*codeErr](t, err)
	if got.code != 500 {
		t.Fatalf("code = %d, want 500", got.code)
	}
}

func TestMustNoErr(t *testing.T) {
	t.Parallel()
	MustNoErr(t, nil)
}
