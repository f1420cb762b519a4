// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/lunch-menu/internal/archive"
	"github.com/pdiddy/lunch-menu/internal/fetch"
	"github.com/pdiddy/lunch-menu/internal/report"
	"github.com/pdiddy/lunch-menu/internal/scrape"
	"github.com/pdiddy/lunch-menu/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch today's menu and write it to a file",
	Long: `Scrape downloads the menu page, extracts the dish and price records and
writes them to the output file. With --archive the menu is also stored in
the SQLite history under today's date.

A failed download ends the run with a non-zero exit status. A failed write
is reported but the extracted menu is still printed.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().String("url", types.DefaultURL, "menu page URL")
	scrapeCmd.Flags().String("selector", types.DefaultSelector, "CSS selector of menu text blocks")
	scrapeCmd.Flags().StringP("output", "o", types.DefaultOutput, "output file")
	scrapeCmd.Flags().String("format", string(types.FormatJSON), "output format: json or yaml")
	scrapeCmd.Flags().Duration("timeout", types.DefaultTimeout, "HTTP request timeout")
	scrapeCmd.Flags().String("user-agent", types.DefaultUserAgent, "User-Agent header")
	scrapeCmd.Flags().String("archive", "", "SQLite history database (disabled when empty)")
	scrapeCmd.Flags().String("input", "", "read a saved HTML page instead of fetching --url")

	rootCmd.AddCommand(scrapeCmd)
}

func scrapeConfig(cmd *cobra.Command) types.ScrapeConfig {
	cfg := types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "timeout"),
			UserAgent: stringSetting(cmd, "user-agent", "user_agent"),
		},
		URL:         stringSetting(cmd, "url", "url"),
		Selector:    stringSetting(cmd, "selector", "selector"),
		OutputPath:  stringSetting(cmd, "output", "output"),
		Format:      types.OutputFormat(stringSetting(cmd, "format", "format")),
		ArchivePath: stringSetting(cmd, "archive", "archive"),
	}
	return cfg.WithDefaults()
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg := scrapeConfig(cmd)
	if !cfg.Format.Valid() {
		return fmt.Errorf("unsupported output format %q (want json or yaml)", cfg.Format)
	}

	var fetcher fetch.Fetcher = fetch.NewHTTPFetcher(cfg.HTTPConfig)
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		fetcher = fetch.FileFetcher{Path: input}
	}

	sinks := []report.Sink{report.FileSink{Path: cfg.OutputPath, Format: cfg.Format}}
	if cfg.ArchivePath != "" {
		store, err := archive.NewStore(types.ArchiveConfig{Path: cfg.ArchivePath})
		if err != nil {
			log.Error().Err(err).Str("archive", cfg.ArchivePath).Msg("archive unavailable, continuing without it")
		} else {
			defer store.Close()
			sinks = append(sinks, store.Sink(cfg.URL))
		}
	}

	result, err := scrape.Run(cmd.Context(), fetcher, cfg, sinks, log.Logger)
	if err != nil {
		return err
	}

	log.Info().
		Int("items", len(result.Items)).
		Int("persist_failures", len(result.PersistErrors)).
		Msg("extracted menu data")
	fmt.Fprint(cmd.OutOrStdout(), report.Summarize(result.Items))
	return nil
}
