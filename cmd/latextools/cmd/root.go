package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/eolymp/go-latextools/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "latextools",
	Short: "Tools to automate tasks with LaTeX files",
	Long: `latextools automates common tasks with LaTeX documents.

Commands:
  freeze-xrefs     - replace references to external documents with static text
  collect-figures  - copy figure images under names made of figure numbers
  labels           - print labels of an aux file
  html             - render formatted text as HTML
  wordcount        - count words per section
  strip-comments   - remove comments from a file`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./latextools.toml or $"+config.EnvVar+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}

// setup loads configuration and creates the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	loaded, path, err := config.Discover(cfgFile)
	if err != nil {
		return err
	}

	if verbose {
		loaded.Log.Level = "debug"
	}

	if logFormat != "" {
		loaded.Log.Format = logFormat
	}

	cfg = loaded
	logger = cfg.Log.Logger(cmd.ErrOrStderr())
	slog.SetDefault(logger)

	if path != "" {
		logger.Debug("loaded config", "path", path)
	}

	return nil
}

// readInput reads a file, or standard input if name is "-"
func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return string(data), nil
}
