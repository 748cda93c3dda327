// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/shloka-console/internal/batch"
	"github.com/taibuivan/shloka-console/internal/compose"
)

// composeCmd prints the submissions a file would produce
var composeCmd = &cobra.Command{
	Use:   "compose [file]",
	Short: "Print the content API payloads for a YAML verse file",
	Long: `Composes every verse in the file and prints the submissions as a JSON
array. Nothing is sent. Verses that fail validation are reported on stderr
and the command exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func runCompose(cmd *cobra.Command, args []string) error {
	items, err := loadItems(args[0])
	if err != nil {
		return err
	}

	submissions := make([]compose.Submission, 0, len(items))
	invalid := 0

	for _, item := range items {
		if err := item.Draft.Validate(); err != nil {
			invalid++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", item.Label(), batch.Describe(err))
			continue
		}
		submissions = append(submissions, item.Draft.Submission())
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(submissions); err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d verses are invalid", invalid, len(items))
	}
	return nil
}

// loadItems reads and expands a batch file.
func loadItems(path string) ([]batch.Item, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	parsed, err := batch.Load(file)
	if err != nil {
		return nil, err
	}

	return parsed.Drafts()
}
