package cmd

import (
	"fmt"

	"github.com/eolymp/go-latextools/internal/figures"
	"github.com/spf13/cobra"
)

var (
	figuresPattern      string
	figuresRequireLabel bool
)

var figuresCmd = &cobra.Command{
	Use:   "collect-figures <tex-file> <output-dir>",
	Short: "Copy figure images under names made of figure numbers",
	Long: `Finds \includegraphics of every figure environment and copies the image
into the output directory. Figure numbers are taken from the aux file of the
document, figures without \label are numbered in order of appearance.

Examples:
  latextools collect-figures paper.tex figures
  latextools collect-figures -p "Figure_{num}" -l paper.tex figures`,
	Args: cobra.ExactArgs(2),
	RunE: runFigures,
}

func init() {
	rootCmd.AddCommand(figuresCmd)

	figuresCmd.Flags().StringVarP(&figuresPattern, "pattern", "p", "", "name of copies without extension, {num} is the figure number")
	figuresCmd.Flags().BoolVarP(&figuresRequireLabel, "require-label", "l", false, "fail on figures without label")
}

func runFigures(cmd *cobra.Command, args []string) error {
	pattern := figuresPattern
	if pattern == "" {
		pattern = cfg.Figures.Pattern
	}

	copies, err := figures.Collect(cmd.Context(), figures.Options{
		TexFile:      args[0],
		OutputDir:    args[1],
		Pattern:      pattern,
		Environments: cfg.Figures.Environments,
		RequireLabel: figuresRequireLabel || cfg.Figures.RequireLabel,
		Logger:       logger,
	})

	for _, c := range copies {
		width := "-"
		if l, ok := c.Figure.Width(); ok {
			width = l.String()
			if cm, err := l.Centimeters(); err == nil {
				width = fmt.Sprintf("%.1fcm", cm)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (width %s)\n", c.Source, c.Destination, width)
	}

	return err
}
