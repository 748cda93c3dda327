// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/shloka-console/internal/library"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/pkg/pagination"
)

var (
	libraryQuery string
	libraryPage  int
	libraryLimit int
	libraryJSON  bool
)

// libraryCmd lists stored verses
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List verses stored in the content API",
	Long: `Flattens every stored entry into one row per verse. --q filters by
book title, hierarchy, or source text (case-insensitive).`,
	Args: cobra.NoArgs,
	RunE: runLibrary,
}

func init() {
	libraryCmd.Flags().StringVarP(&libraryQuery, "q", "q", "", "Search term")
	libraryCmd.Flags().IntVar(&libraryPage, "page", pagination.DefaultPage, "Page number")
	libraryCmd.Flags().IntVar(&libraryLimit, "limit", pagination.DefaultLimit, "Rows per page")
	libraryCmd.Flags().BoolVar(&libraryJSON, "json", false, "Print rows as JSON")
}

func runLibrary(cmd *cobra.Command, args []string) error {
	client := strapi.New(timeout)
	current, err := login(cmd.Context(), client)
	if err != nil {
		return err
	}

	page := pagination.New(libraryPage, libraryLimit)
	rows, total, err := library.NewService(client).List(cmd.Context(), current, libraryQuery, page)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if libraryJSON {
		return writeJSON(out, rows)
	}

	table := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "ENTRY\tINDEX\tBOOK\tHIERARCHY\tTEXT")
	for _, row := range rows {
		fmt.Fprintf(table, "%s\t%d\t%s\t%s\t%s\n", row.EntryID, row.Index, row.BookTitle, row.Hierarchy, row.Verse.SourceText)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "\n%d of %d rows\n", len(rows), total)
	return err
}
