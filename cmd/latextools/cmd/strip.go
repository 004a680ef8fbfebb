package cmd

import (
	"fmt"

	"github.com/eolymp/go-latextools"
	"github.com/spf13/cobra"
)

var stripMask bool

var stripCmd = &cobra.Command{
	Use:   "strip-comments <file|->",
	Short: "Remove comments from a file",
	Long: `Prints the file without % comments. Escaped \% is kept. With --mask,
comments are replaced with spaces so positions of the remaining text do not change.`,
	Args: cobra.ExactArgs(1),
	RunE: runStrip,
}

func init() {
	rootCmd.AddCommand(stripCmd)

	stripCmd.Flags().BoolVar(&stripMask, "mask", false, "replace comments with spaces instead of removing them")
}

func runStrip(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	if stripMask {
		text = latex.MaskComments(text)
	} else {
		text = latex.StripComments(text)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
