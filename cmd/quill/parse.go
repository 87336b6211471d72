package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.tw",
	Short: "Parse a markup source file",
	Long:  `Parse builds the syntax tree for a markup source file`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("no-tree", false, "report diagnostics only")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	noTree, _ := cmd.Flags().GetBool("no-tree")

	result, err := driver.Parse(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: true,
		})
	}
	if noTree {
		return nil
	}

	switch format {
	case "pretty":
		return diagfmt.DumpASTPretty(os.Stdout, result.Builder, result.Root, result.FileSet)
	case "json":
		return diagfmt.DumpASTJSON(os.Stdout, result.Builder, result.Root)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
