package latex_test

import (
	"errors"
	"testing"

	"github.com/eolymp/go-latextools"
	"github.com/google/go-cmp/cmp"
)

func TestDecompose(t *testing.T) {
	text := func(t string) *latex.Node {
		return &latex.Node{Kind: latex.TextKind, Data: t}
	}

	group := func(data string, children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.GroupKind, Data: data, Children: children}
	}

	tt := []struct {
		name   string
		input  string
		output *latex.Node
	}{
		{
			name:   "plain text",
			input:  "no groups here",
			output: text("no groups here"),
		},
		{
			name:   "command arguments are not groups",
			input:  "\\chem{NO_2} VCD \\textbf{x}",
			output: text("\\chem{NO_2} VCD \\textbf{x}"),
		},
		{
			name:   "three groups in order",
			input:  "{a} {b}{c}",
			output: group("{a} {b}{c}", text("a"), text("b"), text("c")),
		},
		{
			name:   "text outside groups is dropped",
			input:  "x{a}y",
			output: group("x{a}y", text("a")),
		},
		{
			name:  "nested groups",
			input: "{lbl}{{1}{2}}",
			output: group("{lbl}{{1}{2}}",
				text("lbl"),
				group("{1}{2}", text("1"), text("2")),
			),
		},
		{
			name:  "command argument next to a group",
			input: "{\\chem{NO_{2}} VCD}{x}",
			output: group("{\\chem{NO_{2}} VCD}{x}",
				text("\\chem{NO_{2}} VCD"),
				text("x"),
			),
		},
		{
			name:   "group after command with whitespace belongs to the command",
			input:  "\\textbf {a}{b}",
			output: group("\\textbf {a}{b}", text("b")),
		},
		{
			name:   "escaped braces",
			input:  "\\{a\\} {b}",
			output: group("\\{a\\} {b}", text("b")),
		},
		{
			name:   "escaped backslash before group",
			input:  "\\\\textbf{a}",
			output: group("\\\\textbf{a}", text("a")),
		},
		{
			name:   "empty group",
			input:  "{}",
			output: group("{}", text("")),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := latex.Decompose(tc.input)
			if err != nil {
				t.Fatal(err)
			}

			if !cmp.Equal(got, tc.output) {
				t.Errorf("Tree does not match:\n%s", cmp.Diff(tc.output, got))
			}
		})
	}
}

func TestDecompose_GroupCount(t *testing.T) {
	input := ""
	for n := 1; n <= 10; n++ {
		input += "{g} "

		got, err := latex.Decompose(input)
		if err != nil {
			t.Fatal(err)
		}

		if got.Len() != n {
			t.Errorf("Expected %d groups in %q, got %d", n, input, got.Len())
		}
	}
}

func TestDecompose_Unbalanced(t *testing.T) {
	_, err := latex.Decompose("{a}{b{c}")
	if !errors.Is(err, latex.ErrUnbalancedDelimiter) {
		t.Fatalf("Expected unbalanced delimiter error, got %v", err)
	}

	var se *latex.SyntaxError
	if !errors.As(err, &se) || se.Offset != 3 {
		t.Errorf("Expected syntax error at offset 3, got %v", err)
	}
}
