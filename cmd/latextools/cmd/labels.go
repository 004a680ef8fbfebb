package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/eolymp/go-latextools"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	labelsOutput string
	labelsSchema bool
)

var labelsCmd = &cobra.Command{
	Use:   "labels [aux-file]",
	Short: "Print labels of an aux file",
	Long: `Parses \newlabel lines of an aux file and prints the labels.
The .aux extension may be omitted. Malformed lines are reported and skipped.

Examples:
  latextools labels paper.aux
  latextools labels -o json paper
  latextools labels --schema`,
	Args: cobra.RangeArgs(0, 1),
	RunE: runLabels,
}

func init() {
	rootCmd.AddCommand(labelsCmd)

	labelsCmd.Flags().StringVarP(&labelsOutput, "output", "o", "table", "output format: table, json or yaml")
	labelsCmd.Flags().BoolVar(&labelsSchema, "schema", false, "print JSON schema of a label instead")
}

func runLabels(cmd *cobra.Command, args []string) error {
	if labelsSchema {
		return writeSchema(cmd.OutOrStdout())
	}

	if len(args) == 0 {
		return errors.New("aux file is required")
	}

	labels, err := latex.ReadAux(args[0])
	if err != nil {
		if len(labels) == 0 {
			return err
		}

		logger.Warn("some labels could not be parsed", "aux", args[0], "error", err)
	}

	return writeLabels(cmd.OutOrStdout(), labels, labelsOutput)
}

func writeLabels(w io.Writer, labels latex.Labels, format string) error {
	if labels == nil {
		labels = latex.Labels{}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(labels)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(labels); err != nil {
			return err
		}

		return enc.Close()
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "LABEL\tREF\tPAGE\tTEXT\tTARGET")
		for _, l := range labels {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.Label, l.Ref, l.PageRef, l.LinkText, l.LinkTarget)
		}

		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %#v", format)
	}
}

func writeSchema(w io.Writer) error {
	r := &jsonschema.Reflector{ExpandedStruct: true}

	schema := r.Reflect(&latex.Label{})
	schema.Title = "Label"
	schema.Description = "Cross-reference definition from an aux file"

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(schema)
}
