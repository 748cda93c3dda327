// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/shloka-console/internal/batch"
	"github.com/taibuivan/shloka-console/internal/strapi"
)

var (
	stopOnError bool
	importJSON  bool
)

// importCmd submits a file verse by verse
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Log in and submit every verse in a YAML file",
	Long: `Logs in to the content API and submits the file's verses one at a time,
in order. Verse numbers and hierarchy values auto-increment for verses that
omit them.

Example:
  shlokactl import chapter-2.yaml --identifier editor@example.org`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first failed verse")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "Print the report as JSON")
}

func runImport(cmd *cobra.Command, args []string) error {
	items, err := loadItems(args[0])
	if err != nil {
		return err
	}

	client := strapi.New(timeout)
	current, err := login(cmd.Context(), client)
	if err != nil {
		return err
	}

	report := batch.NewImporter(client, logger, stopOnError).Run(cmd.Context(), current, items)

	if importJSON {
		err = writeJSON(cmd.OutOrStdout(), report)
	} else {
		err = writeReport(cmd.OutOrStdout(), report)
	}
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d verses failed", report.Failed)
	}
	return nil
}

func writeReport(out io.Writer, report batch.Report) error {
	table := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "#\tVERSE\tSTATUS\tDETAIL")

	for _, outcome := range report.Outcomes {
		status, detail := "saved", outcome.Upstream
		if !outcome.Saved {
			status, detail = "failed", outcome.Error
		}
		fmt.Fprintf(table, "%d\t%s\t%s\t%s\n", outcome.Position, outcome.Label, status, detail)
	}

	if err := table.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\nsaved %d, failed %d, skipped %d\n", report.Saved, report.Failed, report.Skipped)
	return err
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}
