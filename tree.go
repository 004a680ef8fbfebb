package latex

import "errors"

// Decompose splits text into a tree of independent brace groups.
//
// Every top level {...} which is not an argument of a command becomes a child node and is decomposed recursively.
// Text outside of groups is dropped. If there are no independent groups, a text node is returned.
//
//	{sec:intro}{{1}{2}} => [sec:intro, [1, 2]]
func Decompose(text string) (*Node, error) {
	return decompose(text, 0)
}

func decompose(text string, base int) (*Node, error) {
	var children []*Node

	pos := 0
	for pos < len(text) {
		if text[pos] != '{' || escaped(text, pos) {
			pos++
			continue
		}

		g, err := MatchGroup(text, pos, Braces)
		if err != nil {
			return nil, shift(err, base)
		}

		pos = g.End()

		if commandBefore(text, g.Offset) {
			continue
		}

		child, err := decompose(g.Content, base+g.Offset+1)
		if err != nil {
			return nil, err
		}

		children = append(children, child)
	}

	if len(children) == 0 {
		return &Node{Kind: TextKind, Data: text}, nil
	}

	return &Node{Kind: GroupKind, Data: text, Children: children}, nil
}

// shift moves offset of a syntax error found in a fragment which starts at base
func shift(err error, base int) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		se.Offset += base
	}

	return err
}
