// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cms-seeder/internal/journal"
	"github.com/pdiddy/cms-seeder/pkg/types"
)

const defaultJournalPath = ".cms-seeder/journal.db"

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the run journal (runs, show, export)",
	Long: `Journal reads the SQLite run journal written by publish --journal. Use it
to find what a failed run created so it can be cleaned up by hand.`,
}

// --- runs subcommand ---

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled runs, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(cmd, func(j *journal.Journal) error {
			runs, err := j.Runs(context.Background())
			if err != nil {
				return err
			}
			return formatRuns(os.Stdout, runs)
		})
	},
}

// --- show subcommand ---

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "List the records created by a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(cmd, func(j *journal.Journal) error {
			ctx := context.Background()
			if _, err := j.Run(ctx, args[0]); err != nil {
				return err
			}
			records, err := j.Records(ctx, args[0])
			if err != nil {
				return err
			}
			return formatRecords(os.Stdout, records)
		})
	},
}

// --- export subcommand ---

var journalExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a run and its records as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		return withJournal(cmd, func(j *journal.Journal) error {
			if out == "" {
				return j.ExportYAML(context.Background(), args[0], os.Stdout)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := j.ExportYAML(context.Background(), args[0], f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Exported run %s to %s\n", args[0], out)
			return nil
		})
	},
}

func init() {
	journalCmd.PersistentFlags().String("db", "", "journal database (default: journal config key or "+defaultJournalPath+")")
	journalExportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalExportCmd)
	rootCmd.AddCommand(journalCmd)
}

func withJournal(cmd *cobra.Command, fn func(*journal.Journal) error) error {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = viper.GetString("journal")
	}
	if path == "" {
		path = defaultJournalPath
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("journal %s: %w", path, err)
	}

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()
	return fn(j)
}

func formatRuns(w io.Writer, runs []types.RunSummary) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs journaled.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-7s  %-7s  %5s  %6s  %s\n",
		"Run", "Started", "Mode", "Status", "Pages", "Blocks", "Seed")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range runs {
		mode := "publish"
		if r.DryRun {
			mode = "dry-run"
		}
		status := "ok"
		switch {
		case r.FinishedAt.IsZero():
			status = "running"
		case !r.Success:
			status = "failed"
		}
		fmt.Fprintf(w, "%-36s  %-20s  %-7s  %-7s  %5d  %6d  %s\n",
			r.RunID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), mode, status,
			r.PagesCreated, r.BlocksCreated, r.SeedFile)
	}
	return nil
}

func formatRecords(w io.Writer, records []types.CreatedRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records created.")
		return nil
	}

	fmt.Fprintf(w, "%-14s  %-8s  %-8s  %s\n", "Kind", "ID", "Parent", "Label")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, r := range records {
		parent := "-"
		if r.ParentID != 0 {
			parent = fmt.Sprint(r.ParentID)
		}
		fmt.Fprintf(w, "%-14s  %-8d  %-8s  %s\n", r.Kind, r.RemoteID, parent, r.Label)
	}
	fmt.Fprintf(w, "\n%d records\n", len(records))
	return nil
}
