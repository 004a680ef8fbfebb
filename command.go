package latex

import "iter"

// Command is an invocation of a command with a mandatory argument, like \textbf{...}.
type Command struct {
	Name     string   // command name with the backslash, eg. \textbf
	Argument string   // content of the first brace group after the name
	Options  []string // contents of [...] groups between name and argument, see CommandsWithOptions
	Offset   int      // position of the backslash
	End      int      // position right after the closing brace
}

// ArgumentOffset returns position of the argument content in the scanned text.
func (c Command) ArgumentOffset() int {
	return c.End - 1 - len(c.Argument)
}

// Commands iterates over top level commands followed by a brace group: backslash, letters, optional whitespace and {.
//
// Commands nested in an argument are not reported, the argument is skipped as a whole. Iteration stops after the
// first error.
func Commands(text string) iter.Seq2[Command, error] {
	return func(yield func(Command, error) bool) {
		scanCommands(text, 0, false, yield)
	}
}

// CommandsWithOptions works like Commands, but also accepts optional parameters in square brackets between command
// name and its argument (eg. \includegraphics[width=5cm]{fig.png}) and starred names (eg. \section*{...}).
func CommandsWithOptions(text string) iter.Seq2[Command, error] {
	return func(yield func(Command, error) bool) {
		scanCommands(text, 0, true, yield)
	}
}

// AllCommands iterates over all commands including ones nested in arguments of other commands. Outer commands come
// before inner ones, offsets are relative to text.
func AllCommands(text string) iter.Seq2[Command, error] {
	return func(yield func(Command, error) bool) {
		walkCommands(text, 0, yield)
	}
}

func walkCommands(text string, base int, yield func(Command, error) bool) bool {
	next := true
	scanCommands(text, base, false, func(c Command, err error) bool {
		if !yield(c, err) || err != nil {
			next = false
			return false
		}

		next = walkCommands(c.Argument, c.ArgumentOffset(), yield)
		return next
	})

	return next
}

// scanCommands reports commands in text, base is added to all offsets
func scanCommands(text string, base int, options bool, yield func(Command, error) bool) {
	pos := 0
	for pos < len(text) {
		if text[pos] != '\\' {
			pos++
			continue
		}

		start := pos
		end := start + 1
		for end < len(text) && isLetter(rune(text[end])) {
			end++
		}

		// escaped symbol, like \\ or \{
		if end == start+1 {
			pos = start + 2
			continue
		}

		name := text[start:end]
		if options && end < len(text) && text[end] == '*' {
			end++
			name = text[start:end]
		}

		pos = end

		var opts []string
		cursor := skipWhitespaces(text, end)
		for options && cursor < len(text) && text[cursor] == '[' {
			g, err := MatchGroup(text, cursor, Brackets)
			if err != nil {
				break
			}

			opts = append(opts, g.Content)
			cursor = skipWhitespaces(text, g.End())
		}

		if cursor >= len(text) || text[cursor] != '{' {
			continue
		}

		g, err := MatchGroup(text, cursor, Braces)
		if err != nil {
			yield(Command{}, &SyntaxError{Op: "read argument of", Name: name, Offset: base + cursor, Err: ErrUnbalancedDelimiter})
			return
		}

		c := Command{Name: name, Argument: g.Content, Options: opts, Offset: base + start, End: base + g.End()}
		if !yield(c, nil) {
			return
		}

		pos = g.End()
	}
}

// commandBefore checks if brace at pos opens an argument of a command, ie. it is preceded by \name and whitespaces
func commandBefore(text string, pos int) bool {
	i := pos - 1
	for i >= 0 && isWhitespace(rune(text[i])) {
		i--
	}

	letters := 0
	for i >= 0 && isLetter(rune(text[i])) {
		i--
		letters++
	}

	return letters > 0 && i >= 0 && text[i] == '\\' && !escaped(text, i)
}
