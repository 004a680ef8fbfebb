package latex

import "strings"

// StripComments removes line comments: everything from an unescaped % up to the end of line.
// The line break itself is kept, so the text has the same number of lines after stripping.
func StripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	last := 0
	for _, span := range comments(text) {
		b.WriteString(text[last:span[0]])
		last = span[1]
	}

	b.WriteString(text[last:])
	return b.String()
}

// MaskComments replaces comments with spaces, so positions in the result match positions in the original text.
func MaskComments(text string) string {
	buf := []byte(text)
	for _, span := range comments(text) {
		for pos := span[0]; pos < span[1]; pos++ {
			buf[pos] = ' '
		}
	}

	return string(buf)
}

// comments lists [start, end) of every comment in text, end points to the line break or end of text
func comments(text string) (spans [][2]int) {
	pos := 0
	for pos < len(text) {
		idx := strings.IndexByte(text[pos:], '%')
		if idx < 0 {
			break
		}

		start := pos + idx
		if escaped(text, start) {
			pos = start + 1
			continue
		}

		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}

		spans = append(spans, [2]int{start, end})
		pos = end
	}

	return
}
