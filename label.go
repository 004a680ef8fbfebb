package latex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const labelMarker = "\\newlabel"

// Label is a cross-reference definition from an aux file:
//
//	\newlabel{sec:methods}{{2.1}{3}{VCD calculation}{subsection.2.1}{}}
type Label struct {
	Label      string `json:"label" yaml:"label" jsonschema:"description=Label name as used in \\ref"`
	Ref        string `json:"ref" yaml:"ref" jsonschema:"description=Text printed by \\ref"`
	PageRef    string `json:"pageref" yaml:"pageref" jsonschema:"description=Text printed by \\pageref"`
	LinkText   string `json:"link_text" yaml:"link_text" jsonschema:"description=Title of the labelled object"`
	LinkTarget string `json:"link_target" yaml:"link_target" jsonschema:"description=Hyperref anchor"`
}

// Labels is a list of labels in the order of definition.
type Labels []Label

// Lookup finds label by name, the last definition wins.
func (l Labels) Lookup(name string) (Label, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Label == name {
			return l[i], true
		}
	}

	return Label{}, false
}

// Map indexes labels by name.
func (l Labels) Map() map[string]Label {
	m := make(map[string]Label, len(l))
	for _, label := range l {
		m[label.Label] = label
	}

	return m
}

// LineError is an error in a specific line of an aux file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseLabel parses one \newlabel line.
func ParseLabel(line string) (Label, error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, labelMarker) {
		return Label{}, fmt.Errorf("%w: line does not start with %s", ErrMalformedLabel, labelMarker)
	}

	tree, err := Decompose(strings.TrimPrefix(line, labelMarker))
	if err != nil {
		return Label{}, fmt.Errorf("%w: %w", ErrMalformedLabel, err)
	}

	if tree.Len() != 2 {
		return Label{}, fmt.Errorf("%w: expected label name and definition, got %d groups", ErrMalformedLabel, tree.Len())
	}

	def := tree.Children[1]
	if def.Len() < 4 {
		return Label{}, fmt.Errorf("%w: expected at least 4 groups in definition of %#v, got %d", ErrMalformedLabel, String(tree.Children[0]), def.Len())
	}

	return Label{
		Label:      String(tree.Children[0]),
		Ref:        String(def.Children[0]),
		PageRef:    String(def.Children[1]),
		LinkText:   String(def.Children[2]),
		LinkTarget: String(def.Children[3]),
	}, nil
}

// ParseLabels reads all \newlabel definitions from aux file content, other lines are ignored.
//
// Malformed definitions do not stop reading: the returned labels contain every well-formed definition and the error
// joins a *LineError for each malformed one.
func ParseLabels(r io.Reader) (Labels, error) {
	var labels Labels
	var errs []error

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	number := 0
	for scanner.Scan() {
		number++

		line := scanner.Text()
		if !strings.HasPrefix(line, labelMarker) {
			continue
		}

		label, err := ParseLabel(line)
		if err != nil {
			errs = append(errs, &LineError{Line: number, Err: err})
			continue
		}

		labels = append(labels, label)
	}

	if err := scanner.Err(); err != nil {
		return labels, err
	}

	return labels, errors.Join(errs...)
}

// ParseAux is ParseLabels for aux file content in a string.
func ParseAux(text string) (Labels, error) {
	return ParseLabels(strings.NewReader(text))
}

// ReadAux reads labels from an aux file. The ".aux" extension is added if path has a different extension and does
// not exist as is, so both "main" and "main.aux" refer to the same file.
func ReadAux(path string) (Labels, error) {
	if filepath.Ext(path) != ".aux" {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			path += ".aux"
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	labels, err := ParseLabels(file)
	if err != nil {
		return labels, fmt.Errorf("%s: %w", path, err)
	}

	return labels, nil
}
