// Package figures finds images of figure environments and copies them under names made of figure numbers.
package figures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/eolymp/go-latextools"
)

// DefaultPattern names copies by figure number.
const DefaultPattern = "Fig{num}"

// ErrNoGraphics is returned for a figure environment without \includegraphics.
var ErrNoGraphics = errors.New("no includegraphics command in figure environment")

// ErrNoLabel is returned for a figure without \label when labels are required.
var ErrNoLabel = errors.New("no label in figure environment")

// ErrUnknownLabel is returned when figure label is not defined in the aux file.
var ErrUnknownLabel = errors.New("label is not defined in aux file")

// extensions are tried in this order when \includegraphics omits the extension
var extensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".eps"}

// Figure is an image included in a figure environment.
type Figure struct {
	Source  string            // path as given to \includegraphics
	Options map[string]string // \includegraphics options, eg. width
	Label   string
	Number  string // number from the aux file, or a sequential one if figure has no label
}

// Width returns the width option of \includegraphics, ok is false if it is missing or not a length.
func (f Figure) Width() (latex.Length, bool) {
	raw, ok := f.Options["width"]
	if !ok {
		return latex.Length{}, false
	}

	l, err := latex.ParseLength(raw)
	if err != nil {
		return latex.Length{}, false
	}

	return l, true
}

// ScanOptions configure Scan.
type ScanOptions struct {
	Environments []string // defaults to figure and figure*
	RequireLabel bool
	Labels       latex.Labels // labels from the aux file, used to find figure numbers
}

// Scan finds figures of a document. The first \includegraphics and \label of every environment are used. Figures
// without label are numbered sequentially, unless labels are required.
func Scan(text string, opts ScanOptions) ([]Figure, error) {
	envs := opts.Environments
	if len(envs) == 0 {
		envs = []string{"figure", "figure*"}
	}

	var figures []Figure

	for env, err := range latex.Environments(latex.StripComments(text), envs...) {
		if err != nil {
			return nil, err
		}

		fig := Figure{}
		for c, err := range latex.CommandsWithOptions(env.Content) {
			if err != nil {
				return nil, fmt.Errorf("%s environment: %w", env.Name, err)
			}

			switch {
			case c.Name == "\\includegraphics" && fig.Source == "":
				fig.Source = strings.TrimSpace(c.Argument)
				if len(c.Options) > 0 {
					if fig.Options, err = latex.KeyValue(c.Options[0]); err != nil {
						return nil, fmt.Errorf("options of %s: %w", fig.Source, err)
					}
				}
			case c.Name == "\\label" && fig.Label == "":
				fig.Label = strings.TrimSpace(c.Argument)
			}
		}

		if fig.Source == "" {
			return nil, fmt.Errorf("%w (figure #%d)", ErrNoGraphics, len(figures)+1)
		}

		switch {
		case fig.Label != "":
			label, ok := opts.Labels.Lookup(fig.Label)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownLabel, fig.Label)
			}

			fig.Number = label.Ref
		case opts.RequireLabel:
			return nil, fmt.Errorf("%w: image %s", ErrNoLabel, fig.Source)
		default:
			fig.Number = fmt.Sprintf("%02d", len(figures)+1)
		}

		figures = append(figures, fig)
	}

	return figures, nil
}

// Options configure Collect.
type Options struct {
	TexFile      string
	OutputDir    string
	Pattern      string // copy name without extension, {num} is replaced with figure number
	Environments []string
	RequireLabel bool
	Logger       *slog.Logger
}

// Copy is a copied figure.
type Copy struct {
	Figure      Figure
	Source      string // resolved path of the image
	Destination string
}

// Collect copies images of all figures of a document into the output directory. The output directory is created if
// it does not exist, but its parent must exist. A figure which can not be copied is logged and skipped, all such
// errors are returned joined.
func Collect(ctx context.Context, opts Options) ([]Copy, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	if err := prepareDir(opts.OutputDir); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.TexFile)
	if err != nil {
		return nil, err
	}

	aux := strings.TrimSuffix(opts.TexFile, ".tex") + ".aux"
	labels, err := latex.ReadAux(aux)
	if err != nil {
		logger.Warn("unable to read labels, figures with labels can not be numbered", "aux", aux, "error", err)
	}

	figures, err := Scan(string(data), ScanOptions{Environments: opts.Environments, RequireLabel: opts.RequireLabel, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.TexFile, err)
	}

	var copies []Copy
	var errs []error

	dir := filepath.Dir(opts.TexFile)
	for _, fig := range figures {
		if err := ctx.Err(); err != nil {
			return copies, err
		}

		src := resolve(dir, fig.Source)
		dst := filepath.Join(opts.OutputDir, strings.ReplaceAll(pattern, "{num}", fig.Number)+filepath.Ext(src))

		logger.Debug("copying figure", "source", src, "destination", dst)

		if err := copyFile(src, dst); err != nil {
			logger.Error("failed to copy figure", "source", src, "error", err)
			errs = append(errs, err)
			continue
		}

		copies = append(copies, Copy{Figure: fig, Source: src, Destination: dst})
	}

	logger.Info("collected figures", "input", opts.TexFile, "output", opts.OutputDir, "figures", len(figures), "copied", len(copies))

	return copies, errors.Join(errs...)
}

// prepareDir creates output directory if needed
func prepareDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return os.Mkdir(dir, 0o755)
	}

	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("output directory %#v exists and is not a directory", dir)
	}

	return nil
}

// resolve makes image path relative to the document and guesses extension if it is omitted
func resolve(dir, source string) string {
	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	if filepath.Ext(path) != "" {
		return path
	}

	for _, ext := range extensions {
		if _, err := os.Stat(path + ext); err == nil {
			return path + ext
		}
	}

	return path
}

// copyFile copies file content, permissions and modification time
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}

	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
