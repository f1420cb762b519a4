// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lunch-menu pipeline:
// the extracted menu records and the configuration of each stage.
package types

import "time"

// CurrencySuffix is appended, with one separating space, to every price
// token taken from the source page.
const CurrencySuffix = "Kč"

// MenuItem is one dish of the daily menu. Field order and names are the
// output contract: consumers of menu.json expect exactly "Dish" then "Price".
type MenuItem struct {
	// Dish is the normalized dish description, including its index marker
	// (e.g. "2. Guláš s knedlíkem").
	Dish string `json:"Dish" yaml:"dish"`

	// Price is the source price token with the currency suffix (e.g. "109,- Kč").
	Price string `json:"Price" yaml:"price"`
}

// Menu is the menu published on one day, as kept by the archive.
type Menu struct {
	// Date is the calendar day the menu was fetched for, formatted YYYY-MM-DD.
	Date string `json:"date" yaml:"date"`

	// SourceURL is the page the menu was extracted from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// FetchedAt is when the menu was last stored.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`

	// Items lists the dishes in page order.
	Items []MenuItem `json:"items" yaml:"items"`
}
