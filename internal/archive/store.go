// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps a SQLite history of daily menus so past offers can
// be listed and searched.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lunch-menu/internal/report"
	"github.com/pdiddy/lunch-menu/pkg/types"
)

const (
	dateLayout        = "2006-01-02"
	defaultMaxResults = 30
)

// Store manages the menu history database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
	now        func() time.Time
}

// NewStore opens or creates the history database at cfg.Path and creates
// the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("archive path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		path:       cfg.Path,
		maxResults: maxResults,
		now:        time.Now,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menus (
			date TEXT PRIMARY KEY,
			source_url TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			menu_date TEXT NOT NULL REFERENCES menus(date) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			dish TEXT NOT NULL,
			price TEXT NOT NULL,
			PRIMARY KEY (menu_date, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_dish ON items(dish)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores menu, replacing any menu already stored for the same date.
func (s *Store) Save(ctx context.Context, menu types.Menu) error {
	if _, err := time.Parse(dateLayout, menu.Date); err != nil {
		return fmt.Errorf("invalid menu date %q: %w", menu.Date, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	fetchedAt := menu.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = s.now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO menus (date, source_url, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			source_url=excluded.source_url, fetched_at=excluded.fetched_at`,
		menu.Date, menu.SourceURL, fetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting menu: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE menu_date = ?`, menu.Date); err != nil {
		return fmt.Errorf("deleting old items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (menu_date, position, dish, price) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range menu.Items {
		if _, err := stmt.ExecContext(ctx, menu.Date, i, item.Dish, item.Price); err != nil {
			return fmt.Errorf("inserting item %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// DaySink stores each persisted menu under the current local date.
type DaySink struct {
	store     *Store
	sourceURL string
}

// Sink returns a report.Sink that archives menus fetched from sourceURL.
func (s *Store) Sink(sourceURL string) *DaySink {
	return &DaySink{store: s, sourceURL: sourceURL}
}

// Persist implements report.Sink.
func (d *DaySink) Persist(ctx context.Context, items []types.MenuItem) error {
	now := d.store.now()
	menu := types.Menu{
		Date:      now.Format(dateLayout),
		SourceURL: d.sourceURL,
		FetchedAt: now,
		Items:     items,
	}
	if err := d.store.Save(ctx, menu); err != nil {
		return &report.PersistError{Target: d.store.path, Err: err}
	}
	return nil
}
