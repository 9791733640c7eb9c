// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cms-seeder/pkg/types"
)

// FormatSummary writes a human-readable run summary to w.
func FormatSummary(s types.RunSummary, w io.Writer) {
	mode := "publish"
	if s.DryRun {
		mode = "dry run"
	}
	status := "succeeded"
	if !s.Success {
		status = "failed"
	}

	fmt.Fprintf(w, "\nRun %s (%s) %s\n", s.RunID, mode, status)
	if s.ApplicationID != 0 {
		fmt.Fprintf(w, "Application ID: %d\n", s.ApplicationID)
	}
	fmt.Fprintf(w, "Pages created: %d, blocks created: %d\n", s.PagesCreated, s.BlocksCreated)

	if len(s.CreatedPages) > 0 {
		titles := make([]string, 0, len(s.CreatedPages))
		for title := range s.CreatedPages {
			titles = append(titles, title)
		}
		sort.Slice(titles, func(i, j int) bool {
			return s.CreatedPages[titles[i]] < s.CreatedPages[titles[j]]
		})

		fmt.Fprintf(w, "\n%-6s  %s\n", "ID", "Page")
		fmt.Fprintln(w, strings.Repeat("-", 40))
		for _, title := range titles {
			fmt.Fprintf(w, "%-6d  %s\n", s.CreatedPages[title], title)
		}
	}

	if s.Error != "" {
		fmt.Fprintf(w, "\nError: %s\n", s.Error)
	}
}

// WriteReport saves the run summary as YAML.
func WriteReport(path string, s types.RunSummary) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a run summary written by WriteReport.
func ReadReport(path string) (*types.RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run report: %w", err)
	}
	var s types.RunSummary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing run report: %w", err)
	}
	return &s, nil
}
