package text

import (
	"strings"
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"
)

func TestPropertyWrapRespectsBudget(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z ]{0,80}`).Draw(t, "text")
		budget := rapid.Float64Range(1, 300).Draw(t, "budget")

		mt := NewMeter(perRune)
		lines, err := Wrap(mt, text, 14, budget)
		if err != nil {
			t.Fatalf("Wrap() error = %v", err)
		}
		if len(lines) == 0 {
			t.Fatalf("Wrap() returned no lines")
		}
		for _, line := range lines {
			w, _ := mt.Width(line, 14)
			if w > budget && utf8.RuneCountInString(line) != 1 {
				t.Fatalf("line %q width %v exceeds budget %v", line, w, budget)
			}
		}

		// Wrapping only moves whitespace; it never drops or reorders characters.
		strip := func(s string) string { return strings.Join(strings.Fields(s), "") }
		if got, want := strip(strings.Join(lines, " ")), strip(text); got != want {
			t.Fatalf("content changed: got %q, want %q", got, want)
		}
	})
}
