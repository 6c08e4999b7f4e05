// Package textx contains tests for the text utilities.
package textx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	in := "he\x00llo\nwo\x7frld\t!"
	got := SanitizeText(in)
	if got != "hello\nworld\t!" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestSanitizeText_TrimsSpaces(t *testing.T) {
	assert.Equal(t, "maths", SanitizeText("  maths  "))
}

func TestSanitizeAll(t *testing.T) {
	got := SanitizeAll([]string{" Maths ", "\x00", "Biology"})
	assert.Equal(t, []string{"Maths", "Biology"}, got)
}

func TestSanitizeAll_Empty(t *testing.T) {
	assert.Nil(t, SanitizeAll(nil))
}
