package latex

// isLetter returns true for a letter allowed in command names
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\n', '\t', '\r':
		return true
	default:
		return false
	}
}

// skipWhitespaces returns position of the first non-whitespace character at or after pos
func skipWhitespaces(text string, pos int) int {
	for pos < len(text) && isWhitespace(rune(text[pos])) {
		pos++
	}

	return pos
}
