package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/eolymp/go-latextools/internal/xrefs"
	"github.com/spf13/cobra"
)

var (
	freezeKeep     bool
	freezeWatch    bool
	freezeOutput   string
	freezeDebounce = xrefs.DefaultDebounce
)

var freezeCmd = &cobra.Command{
	Use:   "freeze-xrefs <tex-file>",
	Short: "Convert external references to static text",
	Long: `Replaces \ref and \pageref of labels defined in documents loaded with
\externaldocument (xr package) with the text found in their aux files.
The result is written next to the input, eg. paper-xrfrozen.tex.

Examples:
  latextools freeze-xrefs paper.tex
  latextools freeze-xrefs -k paper.tex       # keep references in comments
  latextools freeze-xrefs --watch paper.tex  # refreeze on changes`,
	Args: cobra.ExactArgs(1),
	RunE: runFreeze,
}

func init() {
	rootCmd.AddCommand(freezeCmd)

	freezeCmd.Flags().BoolVarP(&freezeKeep, "keep-refs", "k", false, "keep original references in comments")
	freezeCmd.Flags().BoolVarP(&freezeWatch, "watch", "w", false, "refreeze when the document or aux files change")
	freezeCmd.Flags().StringVarP(&freezeOutput, "output", "o", "", "output file (default: input name with config suffix)")
	freezeCmd.Flags().DurationVar(&freezeDebounce, "debounce", freezeDebounce, "delay before refreezing in watch mode")
}

func runFreeze(cmd *cobra.Command, args []string) error {
	opts := xrefs.Options{
		TexFile:  args[0],
		Output:   freezeOutput,
		Suffix:   cfg.Xrefs.Suffix,
		KeepRefs: freezeKeep || cfg.Xrefs.KeepRefs,
		Logger:   logger,
	}

	if !freezeWatch {
		_, err := xrefs.FreezeFile(opts)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return xrefs.Watch(ctx, opts, freezeDebounce)
}
