// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape runs one menu extraction: fetch the page, collect the menu
// fragments, rebuild the items and hand them to every sink.
package scrape

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/lunch-menu/internal/extract"
	"github.com/pdiddy/lunch-menu/internal/fetch"
	"github.com/pdiddy/lunch-menu/internal/menu"
	"github.com/pdiddy/lunch-menu/internal/report"
	"github.com/pdiddy/lunch-menu/pkg/types"
)

// Result holds the outcome of a run.
type Result struct {
	URL       string
	Fragments int
	Items     []types.MenuItem

	// PersistErrors lists the sinks that failed. The items are valid
	// regardless.
	PersistErrors []error
}

// HasPersistFailures reports whether any sink failed.
func (r Result) HasPersistFailures() bool {
	return len(r.PersistErrors) > 0
}

// Run extracts the menu at cfg.URL. A fetch failure is returned as is and
// ends the run. Sink failures are logged and collected in the result; they
// never discard the extracted items.
func Run(ctx context.Context, f fetch.Fetcher, cfg types.ScrapeConfig, sinks []report.Sink, log zerolog.Logger) (Result, error) {
	result := Result{URL: cfg.URL}

	log.Debug().Str("url", cfg.URL).Msg("fetching menu page")
	doc, err := f.Fetch(ctx, cfg.URL)
	if err != nil {
		log.Error().Err(err).Str("url", cfg.URL).Msg("failed to fetch page content")
		return result, err
	}

	fragments := extract.Fragments(doc, cfg.Selector)
	result.Fragments = len(fragments)
	log.Debug().Int("fragments", len(fragments)).Str("selector", cfg.Selector).Msg("extracted text blocks")

	result.Items = menu.Reconstruct(fragments)
	if len(result.Items) == 0 {
		log.Info().Msg("no menu items found")
	}

	for _, sink := range sinks {
		if err := sink.Persist(ctx, result.Items); err != nil {
			var pe *report.PersistError
			if !errors.As(err, &pe) {
				err = &report.PersistError{Target: fmt.Sprintf("%T", sink), Err: err}
			}
			log.Error().Err(err).Msg("failed to save menu data")
			result.PersistErrors = append(result.PersistErrors, err)
			continue
		}
		log.Info().Str("target", describe(sink)).Int("items", len(result.Items)).Msg("menu data saved")
	}

	return result, nil
}

func describe(s report.Sink) string {
	switch v := s.(type) {
	case report.FileSink:
		return v.Path
	case *report.FileSink:
		return v.Path
	default:
		return fmt.Sprintf("%T", s)
	}
}
