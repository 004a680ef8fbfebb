package xrefs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eolymp/go-latextools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestFindExternalDocuments(t *testing.T) {
	text := `\documentclass{article}
\usepackage{xr}
\externaldocument[supp-]{supplement/mysupp}
% \externaldocument{ignored}
\externaldocument{/abs/other}
\begin{document}\end{document}`

	docs, err := FindExternalDocuments("/work/paper/main.tex", text)
	require.NoError(t, err)

	assert.Equal(t, []ExternalDocument{
		{Path: "/work/paper/supplement/mysupp", Prefix: "supp-"},
		{Path: "/abs/other"},
	}, docs)
}

func TestFreeze(t *testing.T) {
	labels := latex.Labels{
		{Label: "supp-fig:1", Ref: "S1", PageRef: "3"},
		{Label: "supp-tab:2", Ref: "S2", PageRef: "5"},
	}

	tests := []struct {
		name     string
		input    string
		keep     bool
		output   string
		replaced int
	}{
		{
			name:     "ref and pageref",
			input:    "See Figure~\\ref{supp-fig:1} on page \\pageref{supp-fig:1}.",
			output:   "See Figure~S1 on page 3.",
			replaced: 2,
		},
		{
			name:     "unknown labels are kept",
			input:    "\\ref{local} and \\ref{supp-tab:2}",
			output:   "\\ref{local} and S2",
			replaced: 1,
		},
		{
			name:     "references in comments are kept",
			input:    "text % \\ref{supp-fig:1}\n\\ref{supp-fig:1}",
			output:   "text % \\ref{supp-fig:1}\nS1",
			replaced: 1,
		},
		{
			name:     "nested in other commands",
			input:    "\\caption{As in \\ref{supp-fig:1}, \\textbf{\\ref{supp-tab:2}}}",
			output:   "\\caption{As in S1, \\textbf{S2}}",
			replaced: 2,
		},
		{
			name:     "keep original reference",
			input:    "Figure \\ref{supp-fig:1} shows",
			keep:     true,
			output:   "Figure S1%supp-fig:1\n shows",
			replaced: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, replacements, err := Freeze(tt.input, labels, tt.keep)
			require.NoError(t, err)

			assert.Equal(t, tt.output, got)
			assert.Len(t, replacements, tt.replaced)
		})
	}
}

func TestFreeze_Unbalanced(t *testing.T) {
	_, _, err := Freeze("\\ref{supp-fig:1", nil, false)
	assert.ErrorIs(t, err, latex.ErrUnbalancedDelimiter)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestLoadLabels(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"supp.aux": "\\newlabel{fig:1}{{S1}{2}{Setup}{figure.1}{}}\n",
	})

	labels, err := LoadLabels([]ExternalDocument{
		{Path: filepath.Join(dir, "missing"), Prefix: "m-"},
		{Path: filepath.Join(dir, "supp"), Prefix: "s-"},
	}, discard)

	assert.ErrorIs(t, err, os.ErrNotExist)
	require.Len(t, labels, 1)
	assert.Equal(t, "s-fig:1", labels[0].Label)
	assert.Equal(t, "S1", labels[0].Ref)
}

func TestFreezeFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.tex": "\\externaldocument[s-]{supp}\nSee \\ref{s-fig:1} on p.~\\pageref{s-fig:1}.\n",
		"supp.aux": "\\relax\n\\newlabel{fig:1}{{S1}{2}{Setup}{figure.1}{}}\n",
	})

	result, err := FreezeFile(Options{TexFile: filepath.Join(dir, "main.tex"), Logger: discard})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "main-xrfrozen.tex"), result.Output)
	assert.Len(t, result.Documents, 1)
	assert.Len(t, result.Replacements, 2)

	data, err := os.ReadFile(result.Output)
	require.NoError(t, err)
	assert.Equal(t, "\\externaldocument[s-]{supp}\nSee S1 on p.~2.\n", string(data))
}

func TestFreezeFile_MissingAux(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.tex": "\\externaldocument{supp}\n\\ref{fig:1}\n",
	})

	result, err := FreezeFile(Options{TexFile: filepath.Join(dir, "main.tex"), Suffix: "-static", Logger: discard})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Len(t, result.Documents, 1)
	assert.NoFileExists(t, filepath.Join(dir, "main-static.tex"))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.tex": "\\externaldocument{supp}\n\\ref{fig:1}\n",
		"supp.aux": "\\newlabel{fig:1}{{1}{1}{A}{figure.1}{}}\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, Options{TexFile: filepath.Join(dir, "main.tex"), Logger: discard}, 20*time.Millisecond)
	}()

	output := filepath.Join(dir, "main-xrfrozen.tex")
	read := func() string {
		data, _ := os.ReadFile(output)
		return string(data)
	}

	require.Eventually(t, func() bool {
		return strings.Contains(read(), "\n1\n")
	}, 5*time.Second, 20*time.Millisecond)

	// rewrite until the change is noticed, the watcher may not be ready right after the first freeze
	require.Eventually(t, func() bool {
		writeFiles(t, dir, map[string]string{"supp.aux": "\\newlabel{fig:1}{{7}{1}{A}{figure.1}{}}\n"})
		return strings.Contains(read(), "\n7\n")
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
