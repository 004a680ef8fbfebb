package latex

import (
	"iter"
	"slices"
	"strings"
)

// Environment is a block between \begin{name} and \end{name}.
type Environment struct {
	Name    string
	Content string // raw text between the markers
	Offset  int    // position of \begin
	End     int    // position right after closing \end{name}
}

// EnvironmentScanner finds environments with one of the given names.
type EnvironmentScanner struct {
	Names []string

	// Loose allows an environment to be closed by \end of any name from Names. By default the name in \end must be
	// the same as in \begin, so \begin{figure} is never closed by \end{figure*}.
	Loose bool
}

// Environments iterates over top level environments with the given names, \begin and \end names must match.
func Environments(text string, names ...string) iter.Seq2[Environment, error] {
	return EnvironmentScanner{Names: names}.Scan(text)
}

// Scan iterates over environments in document order. Nested environments are part of the enclosing environment
// content and not reported separately. Iteration stops after the first error.
func (s EnvironmentScanner) Scan(text string) iter.Seq2[Environment, error] {
	return func(yield func(Environment, error) bool) {
		pos := 0
		for {
			open, ok := s.next(text, pos, func(m marker) bool {
				return m.begin && slices.Contains(s.Names, m.name)
			})

			if !ok {
				return
			}

			depth := 1
			closing, ok := s.next(text, open.end, func(m marker) bool {
				if !s.closes(open.name, m.name) {
					return false
				}

				if m.begin {
					depth++
					return false
				}

				depth--
				return depth == 0
			})

			if !ok {
				yield(Environment{}, &SyntaxError{Op: "find end of", Name: open.name, Offset: open.offset, Err: ErrNoMatchingEnd})
				return
			}

			env := Environment{
				Name:    open.name,
				Content: text[open.end:closing.offset],
				Offset:  open.offset,
				End:     closing.end,
			}

			if !yield(env, nil) {
				return
			}

			pos = closing.end
		}
	}
}

// closes checks if marker with name "other" takes part in nesting of environment "name"
func (s EnvironmentScanner) closes(name, other string) bool {
	if s.Loose {
		return slices.Contains(s.Names, other)
	}

	return name == other
}

// marker is \begin{name} or \end{name}
type marker struct {
	begin  bool
	name   string
	offset int
	end    int
}

// next finds the first marker at or after pos accepted by match
func (s EnvironmentScanner) next(text string, pos int, match func(marker) bool) (marker, bool) {
	for pos < len(text) {
		idx := strings.IndexByte(text[pos:], '\\')
		if idx < 0 {
			return marker{}, false
		}

		pos += idx
		m, ok := readMarker(text, pos)
		if !ok {
			pos++
			continue
		}

		if match(m) {
			return m, true
		}

		pos = m.end
	}

	return marker{}, false
}

// readMarker reads \begin{name} or \end{name} at pos
func readMarker(text string, pos int) (marker, bool) {
	if escaped(text, pos) {
		return marker{}, false
	}

	m := marker{offset: pos}

	rest := text[pos:]
	switch {
	case strings.HasPrefix(rest, "\\begin"):
		m.begin = true
		pos += len("\\begin")
	case strings.HasPrefix(rest, "\\end"):
		pos += len("\\end")
	default:
		return marker{}, false
	}

	// \endgroup, \beginning etc.
	if pos < len(text) && isLetter(rune(text[pos])) {
		return marker{}, false
	}

	pos = skipWhitespaces(text, pos)
	if pos >= len(text) || text[pos] != '{' {
		return marker{}, false
	}

	g, err := MatchGroup(text, pos, Braces)
	if err != nil {
		return marker{}, false
	}

	m.name = strings.TrimSpace(g.Content)
	m.end = g.End()

	return m, true
}
