package latex

// Delimiters is a pair of characters opening and closing a group.
type Delimiters struct {
	Open  byte
	Close byte
}

var (
	Braces   = Delimiters{Open: '{', Close: '}'}
	Brackets = Delimiters{Open: '[', Close: ']'}
)

// Group is a balanced span of text.
type Group struct {
	Content string // text strictly between the delimiters
	Offset  int    // position of the opening delimiter
	Length  int    // number of characters consumed, delimiters included
}

// End returns position right after the closing delimiter.
func (g Group) End() int {
	return g.Offset + g.Length
}

// MatchGroup finds the first opening delimiter at or after start and returns the group it opens.
//
// Delimiters escaped with a backslash (like \{) are treated as text.
func MatchGroup(text string, start int, d Delimiters) (Group, error) {
	open := -1
	for pos := start; pos < len(text); pos++ {
		if text[pos] == d.Open && !escaped(text, pos) {
			open = pos
			break
		}
	}

	if open < 0 {
		return Group{}, &SyntaxError{Op: "match group", Offset: start, Err: ErrNoGroup}
	}

	depth := 0
	for pos := open; pos < len(text); pos++ {
		char := text[pos]
		if (char != d.Open && char != d.Close) || escaped(text, pos) {
			continue
		}

		if char == d.Open {
			depth++
			continue
		}

		depth--
		if depth == 0 {
			return Group{Content: text[open+1 : pos], Offset: open, Length: pos - open + 1}, nil
		}
	}

	return Group{}, &SyntaxError{Op: "match group", Offset: open, Err: ErrUnbalancedDelimiter}
}

// escaped checks if character at pos is preceded by an odd number of backslashes
func escaped(text string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}

	return n%2 == 1
}
