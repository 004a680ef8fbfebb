package cmd

import (
	"fmt"
	"strings"

	"github.com/eolymp/go-latextools/internal/htmlfmt"
	"github.com/spf13/cobra"
)

var htmlCmd = &cobra.Command{
	Use:   "html <text|->",
	Short: "Render formatted text as HTML",
	Long: `Renders text with formatting commands (\textbf, \emph, \chem ...) as HTML.
Use "-" to read text from standard input. Additional commands may be mapped
to tags in the [html.tags] section of the config file.

Examples:
  latextools html '\textbf{NO_2} VCD'
  echo '\chem{SO_4^{2-}}' | latextools html -`,
	Args: cobra.ExactArgs(1),
	RunE: runHTML,
}

func init() {
	rootCmd.AddCommand(htmlCmd)
}

func runHTML(cmd *cobra.Command, args []string) error {
	text := args[0]
	if text == "-" {
		in, err := readInput(cmd, text)
		if err != nil {
			return err
		}

		text = strings.TrimRight(in, "\r\n")
	}

	registry := htmlfmt.NewRegistry()
	for name, tag := range cfg.HTML.Tags {
		registry.Register(name, htmlfmt.Tag(tag))
	}

	if err := registry.Render(cmd.OutOrStdout(), text); err != nil {
		return err
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout())
	return err
}
