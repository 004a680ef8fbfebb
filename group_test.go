package latex_test

import (
	"errors"
	"testing"

	"github.com/eolymp/go-latextools"
	"github.com/google/go-cmp/cmp"
)

func TestMatchGroup(t *testing.T) {
	tt := []struct {
		name       string
		input      string
		start      int
		delimiters latex.Delimiters
		output     latex.Group
	}{
		{
			name:       "simple group",
			input:      "{abc}",
			delimiters: latex.Braces,
			output:     latex.Group{Content: "abc", Offset: 0, Length: 5},
		},
		{
			name:       "text before group",
			input:      "\\ref{fig:1} and more",
			delimiters: latex.Braces,
			output:     latex.Group{Content: "fig:1", Offset: 4, Length: 7},
		},
		{
			name:       "nested groups",
			input:      "{a{b{c}}d}{e}",
			delimiters: latex.Braces,
			output:     latex.Group{Content: "a{b{c}}d", Offset: 0, Length: 10},
		},
		{
			name:       "start position",
			input:      "{a}{b}",
			start:      1,
			delimiters: latex.Braces,
			output:     latex.Group{Content: "b", Offset: 3, Length: 3},
		},
		{
			name:       "empty group",
			input:      "x{}",
			delimiters: latex.Braces,
			output:     latex.Group{Content: "", Offset: 1, Length: 2},
		},
		{
			name:       "escaped braces are text",
			input:      "{a\\}b\\{c}",
			delimiters: latex.Braces,
			output:     latex.Group{Content: "a\\}b\\{c", Offset: 0, Length: 9},
		},
		{
			name:       "escaped backslash before brace",
			input:      "{a\\\\}b}",
			delimiters: latex.Braces,
			output:     latex.Group{Content: "a\\\\", Offset: 0, Length: 5},
		},
		{
			name:       "brackets",
			input:      "\\includegraphics[width=[1]]{a.png}",
			delimiters: latex.Brackets,
			output:     latex.Group{Content: "width=[1]", Offset: 16, Length: 11},
		},
		{
			name:       "closing delimiter before opening one is ignored",
			input:      "}{a}",
			delimiters: latex.Braces,
			output:     latex.Group{Content: "a", Offset: 1, Length: 3},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := latex.MatchGroup(tc.input, tc.start, tc.delimiters)
			if err != nil {
				t.Fatal(err)
			}

			if !cmp.Equal(got, tc.output) {
				t.Errorf("Group does not match:\n%s", cmp.Diff(tc.output, got))
			}

			// consumed characters are exactly the delimiters and the content
			want := string(tc.delimiters.Open) + got.Content + string(tc.delimiters.Close)
			if span := tc.input[got.Offset:got.End()]; span != want {
				t.Errorf("Consumed span does not match: want %q, got %q", want, span)
			}
		})
	}
}

func TestMatchGroup_Errors(t *testing.T) {
	tt := []struct {
		name  string
		input string
		err   error
	}{
		{name: "unterminated", input: "{abc", err: latex.ErrUnbalancedDelimiter},
		{name: "unterminated nested", input: "{a{b}c", err: latex.ErrUnbalancedDelimiter},
		{name: "escaped closing", input: "{abc\\}", err: latex.ErrUnbalancedDelimiter},
		{name: "no group", input: "abc", err: latex.ErrNoGroup},
		{name: "empty", input: "", err: latex.ErrNoGroup},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := latex.MatchGroup(tc.input, 0, latex.Braces)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Expected error %v, got %v", tc.err, err)
			}

			if got != (latex.Group{}) {
				t.Errorf("Expected empty group on error, got %#v", got)
			}

			var se *latex.SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("Expected *SyntaxError, got %T", err)
			}
		})
	}
}

func TestMatchGroup_DeepNesting(t *testing.T) {
	input := ""
	for i := 0; i < 500; i++ {
		input = "{" + input + "}"
	}

	got, err := latex.MatchGroup(input, 0, latex.Braces)
	if err != nil {
		t.Fatal(err)
	}

	if got.Length != len(input) {
		t.Errorf("Expected whole input to be consumed, got %d of %d", got.Length, len(input))
	}
}
