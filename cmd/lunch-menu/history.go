// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lunch-menu/internal/archive"
	"github.com/pdiddy/lunch-menu/internal/report"
	"github.com/pdiddy/lunch-menu/pkg/types"
)

const defaultArchivePath = "menus.db"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived menus",
	Long: `History reads the SQLite archive written by "scrape --archive". Without
options it lists the most recent menu dates. Use --date to show one day,
--query to find a dish across all days, or --export to dump everything.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("archive", defaultArchivePath, "SQLite history database")
	historyCmd.Flags().String("date", "", "show the menu of one day (YYYY-MM-DD)")
	historyCmd.Flags().String("query", "", "search dishes containing this text")
	historyCmd.Flags().Int("max-results", 30, "maximum number of dates or matches")
	historyCmd.Flags().Bool("json", false, "output results as JSON")
	historyCmd.Flags().String("export", "", "export all menus in this format: json or yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	store, err := archive.NewStore(types.ArchiveConfig{
		Path:       stringSetting(cmd, "archive", "archive"),
		MaxResults: maxResults,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		return store.Export(ctx, out, types.OutputFormat(format))
	}

	if date, _ := cmd.Flags().GetString("date"); date != "" {
		m, err := store.Menu(ctx, date)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, m)
		}
		fmt.Fprintf(out, "%s (%s)\n", m.Date, m.SourceURL)
		fmt.Fprint(out, report.Summarize(m.Items))
		return nil
	}

	if query, _ := cmd.Flags().GetString("query"); query != "" {
		matches, err := store.Search(ctx, query, 0)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, matches)
		}
		if len(matches) == 0 {
			fmt.Fprintln(out, "no matches")
			return nil
		}
		for _, m := range matches {
			fmt.Fprintf(out, "%s  %s  %s\n", m.Date, m.Dish, m.Price)
		}
		return nil
	}

	dates, err := store.Dates(ctx, 0)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(out, dates)
	}
	if len(dates) == 0 {
		fmt.Fprintln(out, "archive is empty")
		return nil
	}
	for _, d := range dates {
		fmt.Fprintln(out, d)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
