// Package htmlfmt converts LaTeX formatting commands to HTML using a registry of formatters.
package htmlfmt

import (
	"fmt"
	"io"
	"maps"
	"regexp"
	"strings"

	"github.com/eolymp/go-latextools"
)

var (
	word      = regexp.MustCompile(`\w+`)
	subscript = regexp.MustCompile(`_(\d+|\{[^{}]*\})`)
	supscript = regexp.MustCompile(`\^([+\-]|\d+[+\-]?|\{[^{}]*\})`)
)

// Formatter formats already rendered argument of a command.
type Formatter func(arg string) string

// Registry maps command names (with backslash) to formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates registry with formatting commands known by default.
func NewRegistry() *Registry {
	return &Registry{formatters: map[string]Formatter{
		"\\textbf":    Tag("<strong>"),
		"\\emph":      Tag("<i>"),
		"\\textit":    Tag("<i>"),
		"\\underline": Tag("<u>"),
		"\\texttt":    Tag("<code>"),
		"\\chem":      Chem,
	}}
}

// Register adds or replaces formatter of a command.
func (r *Registry) Register(name string, f Formatter) {
	r.formatters[name] = f
}

// Lookup returns formatter of a command.
func (r *Registry) Lookup(name string) (Formatter, bool) {
	f, ok := r.formatters[name]
	return f, ok
}

// Clone returns a copy which can be extended without affecting the original.
func (r *Registry) Clone() *Registry {
	return &Registry{formatters: maps.Clone(r.formatters)}
}

// Tag wraps argument in the given opening tag and a closing tag made of the first word of the opening one, so
// <span class="x"> is closed with </span>.
func Tag(tag string) Formatter {
	closing := ""
	if name := word.FindString(tag); name != "" {
		closing = "</" + name + ">"
	}

	return func(arg string) string {
		return tag + arg + closing
	}
}

// Chem formats chemical formula, digits after _ become subscripts and charges after ^ become superscripts.
func Chem(arg string) string {
	arg = subscript.ReplaceAllStringFunc(arg, func(m string) string {
		return "<sub>" + strings.Trim(m[1:], "{}") + "</sub>"
	})

	return supscript.ReplaceAllStringFunc(arg, func(m string) string {
		return "<sup>" + strings.Trim(m[1:], "{}") + "</sup>"
	})
}

// HTML converts LaTeX text to HTML.
func (r *Registry) HTML(text string) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, text); err != nil {
		return "", err
	}

	return b.String(), nil
}

// Render writes HTML representation of LaTeX text: comments are removed, commands are formatted with registered
// formatters (nested commands first) and the remaining text is escaped.
//
// Commands without a formatter result in *latex.UnknownCommandError.
func (r *Registry) Render(w io.Writer, text string) error {
	out, err := r.render(latex.StripComments(text))
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, out)
	return err
}

func (r *Registry) render(src string) (string, error) {
	var b strings.Builder

	last := 0
	for c, err := range latex.Commands(src) {
		if err != nil {
			return "", err
		}

		f, ok := r.formatters[c.Name]
		if !ok {
			return "", &latex.UnknownCommandError{Name: c.Name}
		}

		arg, err := r.render(c.Argument)
		if err != nil {
			return "", fmt.Errorf("%s: %w", c.Name, err)
		}

		b.WriteString(text(src[last:c.Offset]))
		b.WriteString(f(arg))
		last = c.End
	}

	b.WriteString(text(src[last:]))

	return b.String(), nil
}
