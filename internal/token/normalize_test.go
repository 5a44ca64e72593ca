package token

import (
	"reflect"
	"testing"
)

func TestNormalizeFoldsCaseExceptEmoticons(t *testing.T) {
	got := Normalize([]string{":)", "HELLO"}, true)
	want := []string{":)", "hello"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeNoFold(t *testing.T) {
	in := []string{"Mixed", ":D", "CAPS"}
	got := Normalize(in, false)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("got %q, want input unchanged %q", got, in)
	}
}

func TestFilterInvalid(t *testing.T) {
	got := FilterInvalid([]string{"hello", "world!", ":)"})
	want := []string{"hello", ":)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Adjacent invalid tokens must all be removed. The reference behavior
// skipped every second one because it removed elements from the slice it
// was iterating.
func TestFilterInvalidAdjacent(t *testing.T) {
	got := FilterInvalid([]string{"a!", "b?", "c.", "ok"})
	want := []string{"ok"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterInvalidDoesNotMutateInput(t *testing.T) {
	in := []string{"keep", "drop!", "keep2"}
	_ = FilterInvalid(in)
	if !reflect.DeepEqual(in, []string{"keep", "drop!", "keep2"}) {
		t.Fatalf("input mutated: %q", in)
	}
}
