// Package wordcount counts words of a LaTeX document per section.
package wordcount

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/eolymp/go-latextools"
)

// Unnamed is the name of the text before the first sectioning command.
const Unnamed = "(unnamed)"

// ErrNoDocument is returned when text has no document environment.
var ErrNoDocument = errors.New("could not find \\begin{document} and \\end{document}")

// divisions are sectioning commands from the highest level
var divisions = []string{"\\part", "\\chapter", "\\section", "\\subsection", "\\subsubsection", "\\paragraph", "\\subparagraph"}

var (
	markers  = regexp.MustCompile(`\\(begin|end)\s*\{[^}]*\}`)
	commands = regexp.MustCompile(`\\([A-Za-z]+\*?|.)`)
)

// Section is a part of document body started by a sectioning command.
type Section struct {
	Name    string // title of the section, Unnamed for the text before the first one
	Command string // sectioning command, eg. \section, empty for the unnamed section
	Level   int    // position of the command in part..subparagraph, -1 for the unnamed section
	Words   int
	Offset  int // position of the section in the document body
}

// Count splits body of the document into sections and counts words in each of them. Comments, command names and
// environment markers are not counted, words of command arguments are. Starred sectioning commands start sections
// the same way as unstarred ones.
func Count(text string) ([]Section, error) {
	body, err := documentBody(latex.StripComments(text))
	if err != nil {
		return nil, err
	}

	sections := []Section{{Name: Unnamed, Level: -1}}
	last := 0

	for c, err := range latex.CommandsWithOptions(body) {
		if err != nil {
			return nil, err
		}

		level := slices.Index(divisions, strings.TrimSuffix(c.Name, "*"))
		if level < 0 {
			continue
		}

		sections[len(sections)-1].Words = Words(body[last:c.Offset])

		sections = append(sections, Section{Name: strings.TrimSpace(c.Argument), Command: c.Name, Level: level, Offset: c.Offset})
		last = c.End
	}

	sections[len(sections)-1].Words = Words(body[last:])

	return sections, nil
}

// Words counts words of a LaTeX fragment.
func Words(text string) int {
	text = markers.ReplaceAllString(text, " ")
	text = commands.ReplaceAllString(text, " ")

	count := 0
	for _, field := range strings.FieldsFunc(text, isSeparator) {
		if strings.IndexFunc(field, isWordRune) >= 0 {
			count++
		}
	}

	return count
}

func documentBody(text string) (string, error) {
	for env, err := range latex.Environments(text, "document") {
		if errors.Is(err, latex.ErrNoMatchingEnd) {
			return "", fmt.Errorf("%w: %w", ErrNoDocument, err)
		}

		if err != nil {
			return "", err
		}

		return env.Content, nil
	}

	return "", ErrNoDocument
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("{}[]~", r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
