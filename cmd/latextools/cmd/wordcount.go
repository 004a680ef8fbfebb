package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/eolymp/go-latextools/internal/wordcount"
	"github.com/spf13/cobra"
)

var wordcountCmd = &cobra.Command{
	Use:   "wordcount <tex-file|->",
	Short: "Count words per section",
	Long: `Counts words of the document body per sectioning command (\part to
\subparagraph). Comments, command names and environment markers are not counted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWordcount,
}

func init() {
	rootCmd.AddCommand(wordcountCmd)
}

func runWordcount(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	sections, err := wordcount.Count(text)
	if err != nil {
		return err
	}

	total := 0
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, s := range sections {
		indent := strings.Repeat("  ", max(s.Level, 0))
		fmt.Fprintf(tw, "%s%s\t%d\t\n", indent, s.Name, s.Words)
		total += s.Words
	}

	fmt.Fprintf(tw, "Total\t%d\t\n", total)
	return tw.Flush()
}
