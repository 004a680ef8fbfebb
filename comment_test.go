package latex_test

import (
	"strings"
	"testing"

	"github.com/eolymp/go-latextools"
)

func TestStripComments(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output string
	}{
		{name: "no comments", input: "one\ntwo", output: "one\ntwo"},
		{name: "inline comment", input: "one % comment\ntwo", output: "one \ntwo"},
		{name: "whole line comment", input: "% comment\ntext", output: "\ntext"},
		{name: "comment at the end of text", input: "text % comment", output: "text "},
		{name: "escaped percent", input: "50\\% of cases % really\n", output: "50\\% of cases \n"},
		{name: "line break before percent", input: "one\\\\% comment\ntwo", output: "one\\\\\ntwo"},
		{name: "several comments", input: "%a\nb%c\n%d\ne", output: "\nb\n\ne"},
		{name: "percent inside comment", input: "a % b % c\nd", output: "a \nd"},
		{name: "empty comment", input: "a%\nb", output: "a\nb"},
		{name: "crlf line endings", input: "a %x\r\nb", output: "a \nb"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := latex.StripComments(tc.input)
			if got != tc.output {
				t.Errorf("Stripped text does not match: want %q, got %q", tc.output, got)
			}

			if again := latex.StripComments(got); again != got {
				t.Errorf("Stripping is not idempotent: %q became %q", got, again)
			}
		})
	}
}

func TestMaskComments(t *testing.T) {
	input := "\\ref{a} % \\ref{b}\n\\% kept"
	want := "\\ref{a} " + strings.Repeat(" ", len("% \\ref{b}")) + "\n\\% kept"

	got := latex.MaskComments(input)
	if got != want {
		t.Errorf("Masked text does not match: want %q, got %q", want, got)
	}

	if len(got) != len(input) {
		t.Errorf("Masked text length %d does not match input length %d", len(got), len(input))
	}
}
