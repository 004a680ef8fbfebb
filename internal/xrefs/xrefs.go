// Package xrefs replaces references to labels of external documents (xr package) with static text.
package xrefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/eolymp/go-latextools"
)

// ExternalDocument is a document referenced with \externaldocument[prefix]{path}.
type ExternalDocument struct {
	Path   string // absolute path, without .aux extension
	Prefix string // prepended to labels of the document
}

// Replacement describes one replaced reference.
type Replacement struct {
	Command string // \ref or \pageref
	Label   string
	Value   string
	Offset  int // position of the command in the original text
}

// Options configure FreezeFile.
type Options struct {
	TexFile  string
	Output   string // path of the frozen copy, derived from TexFile and Suffix if empty
	Suffix   string // defaults to -xrfrozen
	KeepRefs bool   // keep original references in comments
	Logger   *slog.Logger
}

// Result of FreezeFile.
type Result struct {
	Output       string
	Documents    []ExternalDocument
	Replacements []Replacement
}

func (o Options) output() string {
	if o.Output != "" {
		return o.Output
	}

	suffix := o.Suffix
	if suffix == "" {
		suffix = "-xrfrozen"
	}

	return strings.TrimSuffix(o.TexFile, ".tex") + suffix + ".tex"
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.Default()
}

// FindExternalDocuments lists \externaldocument commands of a document, relative paths are resolved against the
// directory of texPath. Commented out commands are ignored.
func FindExternalDocuments(texPath, text string) ([]ExternalDocument, error) {
	var docs []ExternalDocument

	for c, err := range latex.CommandsWithOptions(latex.StripComments(text)) {
		if err != nil {
			return nil, err
		}

		if c.Name != "\\externaldocument" {
			continue
		}

		path := strings.TrimSpace(c.Argument)
		if !filepath.IsAbs(path) {
			abs, err := filepath.Abs(filepath.Join(filepath.Dir(texPath), path))
			if err != nil {
				return nil, err
			}

			path = abs
		}

		doc := ExternalDocument{Path: path}
		if len(c.Options) > 0 {
			doc.Prefix = strings.TrimSpace(c.Options[0])
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// LoadLabels reads labels of external documents and adds document prefixes to them. A document which can not be
// read is reported to the logger and skipped, all such errors are returned joined together with the labels which
// could be read.
func LoadLabels(docs []ExternalDocument, logger *slog.Logger) (latex.Labels, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var labels latex.Labels
	var errs []error

	for _, doc := range docs {
		found, err := latex.ReadAux(doc.Path)
		if err != nil {
			logger.Warn("unable to read labels of external document", "document", doc.Path, "error", err)
			errs = append(errs, err)
		}

		for _, label := range found {
			label.Label = doc.Prefix + label.Label
			labels = append(labels, label)
		}

		logger.Debug("loaded labels of external document", "document", doc.Path, "prefix", doc.Prefix, "labels", len(found))
	}

	return labels, errors.Join(errs...)
}

// Freeze replaces \ref{label} and \pageref{label} with the ref and pageref text of the label. References in
// comments and references to unknown labels are kept as is. With keep, the replaced reference is preserved in a
// comment following the value.
func Freeze(text string, labels latex.Labels, keep bool) (string, []Replacement, error) {
	index := labels.Map()

	var b strings.Builder
	var replacements []Replacement

	last := 0
	for c, err := range latex.AllCommands(latex.MaskComments(text)) {
		if err != nil {
			return "", nil, err
		}

		if c.Offset < last || (c.Name != "\\ref" && c.Name != "\\pageref") {
			continue
		}

		name := strings.TrimSpace(c.Argument)

		label, ok := index[name]
		if !ok {
			continue
		}

		value := label.Ref
		if c.Name == "\\pageref" {
			value = label.PageRef
		}

		b.WriteString(text[last:c.Offset])
		if keep {
			fmt.Fprintf(&b, "%s%%%s\n", value, name)
		} else {
			b.WriteString(value)
		}

		last = c.End
		replacements = append(replacements, Replacement{Command: c.Name, Label: name, Value: value, Offset: c.Offset})
	}

	b.WriteString(text[last:])

	return b.String(), replacements, nil
}

// FreezeFile writes a copy of the document with references to external documents replaced by static text.
func FreezeFile(opts Options) (Result, error) {
	logger := opts.logger()

	data, err := os.ReadFile(opts.TexFile)
	if err != nil {
		return Result{}, err
	}

	text := string(data)

	docs, err := FindExternalDocuments(opts.TexFile, text)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", opts.TexFile, err)
	}

	labels, err := LoadLabels(docs, logger)
	if err != nil && len(labels) == 0 {
		return Result{Documents: docs}, err
	}

	frozen, replacements, err := Freeze(text, labels, opts.KeepRefs)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", opts.TexFile, err)
	}

	for _, r := range replacements {
		logger.Debug("replaced reference", "command", r.Command, "label", r.Label, "value", r.Value)
	}

	output := opts.output()
	if err := os.WriteFile(output, []byte(frozen), 0o644); err != nil {
		return Result{}, err
	}

	logger.Info("froze external references", "input", opts.TexFile, "output", output, "documents", len(docs), "replaced", len(replacements))

	return Result{Output: output, Documents: docs, Replacements: replacements}, nil
}
