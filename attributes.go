package latex

import (
	"fmt"
	"strings"
)

// KeyValue parses key-value parameters in this format: key=value, key=value, for example as used in
// \includegraphics option parameter.
//
// Keys are lower-cased, values may be quoted with " or ' (use backslash to escape quote inside the value). Parts
// without a value are ignored.
func KeyValue(raw string) (map[string]string, error) {
	kv := map[string]string{}

	pos := 0
	for pos < len(raw) {
		pos = skipWhitespaces(raw, pos)

		start := pos
		for pos < len(raw) && isKeyChar(raw[pos]) {
			pos++
		}

		key := strings.ToLower(raw[start:pos])

		pos = skipWhitespaces(raw, pos)
		if key == "" || pos >= len(raw) || raw[pos] != '=' {
			pos = nextPart(raw, pos)
			continue
		}

		pos = skipWhitespaces(raw, pos+1)

		var value string
		if pos < len(raw) && (raw[pos] == '"' || raw[pos] == '\'') {
			v, end, err := quoted(raw, pos)
			if err != nil {
				return nil, err
			}

			value, pos = v, end
		} else {
			start := pos
			for pos < len(raw) && raw[pos] != ',' && !isWhitespace(rune(raw[pos])) {
				pos++
			}

			value = raw[start:pos]
		}

		kv[key] = value
		pos = nextPart(raw, pos)
	}

	return kv, nil
}

// quoted reads quoted string starting at pos, returns unquoted value and position after the closing quote
func quoted(raw string, pos int) (string, int, error) {
	quote := raw[pos]

	var b strings.Builder
	for i := pos + 1; i < len(raw); i++ {
		switch {
		case raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == quote:
			b.WriteByte(quote)
			i++
		case raw[i] == quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(raw[i])
		}
	}

	return "", 0, fmt.Errorf("quoted value at position %d is not closed", pos)
}

// nextPart skips to position after the next comma
func nextPart(raw string, pos int) int {
	idx := strings.IndexByte(raw[pos:], ',')
	if idx < 0 {
		return len(raw)
	}

	return pos + idx + 1
}

func isKeyChar(c byte) bool {
	return isLetter(rune(c)) || '0' <= c && c <= '9' || c == '_' || c == '-'
}
