// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves the menu page and hands back a parsed document.
// There is no retry: a failed request ends the run.
package fetch

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/lunch-menu/internal/extract"
	"github.com/pdiddy/lunch-menu/pkg/types"
)

// Fetcher returns the parsed page at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (extract.Document, error)
}

// FetchError reports a page that could not be retrieved: a transport
// failure, a non-2xx status, or an unreadable body.
type FetchError struct {
	URL string

	// StatusCode is the HTTP status, or 0 when no response arrived.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPFetcher fetches pages over HTTP with resty.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher returns a fetcher using the timeout and User-Agent from cfg.
func NewHTTPFetcher(cfg types.HTTPConfig) *HTTPFetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	return &HTTPFetcher{client: client}
}

// NewHTTPFetcherWithClient wraps an existing resty client.
func NewHTTPFetcherWithClient(client *resty.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (extract.Document, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	doc, err := extract.ParseBytes(resp.Body(), resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode(), Err: err}
	}
	return doc, nil
}

// FileFetcher reads a saved page from disk instead of the network. The url
// passed to Fetch is only used in errors.
type FileFetcher struct {
	Path string
}

// Fetch implements Fetcher.
func (f FileFetcher) Fetch(_ context.Context, url string) (extract.Document, error) {
	doc, err := extract.ParseFile(f.Path)
	if err != nil {
		return nil, &FetchError{URL: f.Path, Err: err}
	}
	return doc, nil
}
