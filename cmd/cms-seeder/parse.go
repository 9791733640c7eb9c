// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cms-seeder/internal/logging"
	"github.com/pdiddy/cms-seeder/internal/seed"
	"github.com/pdiddy/cms-seeder/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <seed-file>",
	Short: "Parse a seed document and print the result",
	Long: `Parse reads a seed document and prints the parsed metadata, global
styles, settings, pages, and blocks without contacting the CMS. Parser
warnings go to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	doc, err := seed.ParseFile(args[0], logging.NewConsole(os.Stderr))
	if err != nil {
		return err
	}
	return writeDocument(os.Stdout, doc, format)
}

func writeDocument(w io.Writer, doc *types.Document, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
