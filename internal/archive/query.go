// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/lunch-menu/pkg/types"
)

// ErrNotFound is returned when no menu is stored for a date.
var ErrNotFound = errors.New("menu not found")

// Match is a dish found by Search together with the day it was offered.
type Match struct {
	types.MenuItem `yaml:",inline"`

	// Date is the day the dish was on the menu.
	Date string `json:"date" yaml:"date"`
}

// Menu returns the menu stored for date (YYYY-MM-DD).
func (s *Store) Menu(ctx context.Context, date string) (*types.Menu, error) {
	var (
		menu      types.Menu
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT date, source_url, fetched_at FROM menus WHERE date = ?`, date,
	).Scan(&menu.Date, &menu.SourceURL, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", date, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
		menu.FetchedAt = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT dish, price FROM items WHERE menu_date = ? ORDER BY position`, date)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	menu.Items = []types.MenuItem{}
	for rows.Next() {
		var it types.MenuItem
		if err := rows.Scan(&it.Dish, &it.Price); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		menu.Items = append(menu.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return &menu, nil
}

// Dates returns stored menu dates, newest first. A limit of zero uses the
// store default.
func (s *Store) Dates(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT date FROM menus ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// Search returns dishes whose text contains query, newest first. Matching
// is case-insensitive for ASCII letters.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT menu_date, dish, price FROM items
		 WHERE dish LIKE ? ESCAPE '\'
		 ORDER BY menu_date DESC, position
		 LIMIT ?`,
		"%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Date, &m.Dish, &m.Price); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
