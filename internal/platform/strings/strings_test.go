package strings

import (
	"reflect"
	"testing"

	"logzq/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET"}
	if got := IfEmpty([]string(nil), def); !reflect.DeepEqual(got, def) {
		t.Fatalf("nil input: got %v", got)
	}
	in := []string{"POST"}
	if got := IfEmpty(in, def); !reflect.DeepEqual(got, in) {
		t.Fatalf("non empty input: got %v", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "flag", "env"); got != "flag" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonEmpty(" ", ""); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"api":      "/api",
		"/api/":    "/api",
		" /v1 ":    "/v1",
		"api/v1//": "/api/v1",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	testkit.MustPanic(t, func() { MustPrefix(" / ") })
}

func TestMustString(t *testing.T) {
	if got := MustString("query", "module name"); got != "query" {
		t.Fatalf("got %q", got)
	}
	testkit.MustPanic(t, func() { MustString("  ", "module name") })
}
