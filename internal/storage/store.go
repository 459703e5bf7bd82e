package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNotFound is returned when no row exists for the requested key.
var ErrNotFound = errors.New("not found")

// Store defines the interface for journal data operations.
type Store interface {
	UpsertEntry(ctx context.Context, entry *Entry) error
	GetEntry(ctx context.Context, date string) (*Entry, error)
	GetEntriesInRange(ctx context.Context, start, end string) ([]Entry, error)
	ReplaceHourlyStats(ctx context.Context, date string, stats map[int]HourlyStat) error
	GetHourlyStats(ctx context.Context, date string) (map[int]HourlyStat, error)
	GetCategory(ctx context.Context, domain string) (*SiteCategory, error)
	SetCategory(ctx context.Context, domain, category string, weight float64) error
	AllCategories(ctx context.Context) ([]SiteCategory, error)
	GetStats(ctx context.Context) (*Stats, error)
	PruneBefore(ctx context.Context, date string) (int64, error)
	PurgeAll(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	upsertEntry *sql.Stmt
	getEntry    *sql.Stmt
	getCategory *sql.Stmt
	setCategory *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.upsertEntry, err = s.db.Prepare(`
		INSERT OR REPLACE INTO journal_entries
			(date, total_sites_visited, total_time_spent, top_categories,
			 productivity_score, summary, raw_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getEntry, err = s.db.Prepare(`
		SELECT date, total_sites_visited, total_time_spent, top_categories,
		       productivity_score, summary, raw_data, created_at
		FROM journal_entries WHERE date = ?
	`)
	if err != nil {
		return err
	}

	s.getCategory, err = s.db.Prepare(`
		SELECT domain, category, productivity_weight
		FROM site_categories WHERE domain = ?
	`)
	if err != nil {
		return err
	}

	s.setCategory, err = s.db.Prepare(`
		INSERT OR REPLACE INTO site_categories (domain, category, productivity_weight)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries the common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// UpsertEntry inserts or fully replaces the journal entry for entry.Date.
// The nested category/hourly/domain structures are serialized to JSON at
// this boundary; no partial row is ever visible.
func (s *SQLiteStore) UpsertEntry(ctx context.Context, entry *Entry) error {
	topJSON, err := json.Marshal(entry.TopCategories)
	if err != nil {
		return fmt.Errorf("marshal top categories: %w", err)
	}

	rawJSON, err := json.Marshal(entry.Raw)
	if err != nil {
		return fmt.Errorf("marshal raw data: %w", err)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err = s.upsertEntry.ExecContext(ctx,
		entry.Date, entry.TotalSitesVisited, entry.TotalTimeSpent,
		string(topJSON), entry.ProductivityScore, entry.Summary,
		string(rawJSON), entry.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}

	return nil
}

// GetEntry retrieves the journal entry for a date, or ErrNotFound.
func (s *SQLiteStore) GetEntry(ctx context.Context, date string) (*Entry, error) {
	row := s.getEntry.QueryRowContext(ctx, date)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry for %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// GetEntriesInRange retrieves all entries with start <= date <= end, ordered
// by date ascending. Days without an entry produce no row.
func (s *SQLiteStore) GetEntriesInRange(ctx context.Context, start, end string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, total_sites_visited, total_time_spent, top_categories,
		       productivity_score, summary, raw_data, created_at
		FROM journal_entries
		WHERE date BETWEEN ? AND ?
		ORDER BY date ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var topJSON, rawJSON, createdStr string

	err := row.Scan(
		&e.Date, &e.TotalSitesVisited, &e.TotalTimeSpent, &topJSON,
		&e.ProductivityScore, &e.Summary, &rawJSON, &createdStr,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(topJSON), &e.TopCategories); err != nil {
		return nil, fmt.Errorf("unmarshal top categories: %w", err)
	}
	if err := json.Unmarshal([]byte(rawJSON), &e.Raw); err != nil {
		return nil, fmt.Errorf("unmarshal raw data: %w", err)
	}
	e.CreatedAt, _ = parseTimestamp(createdStr)

	return &e, nil
}

// ReplaceHourlyStats deletes all hourly rows for the date and inserts the new
// set in one transaction, so a regeneration that produced fewer active hours
// leaves no stale rows behind.
func (s *SQLiteStore) ReplaceHourlyStats(ctx context.Context, date string, stats map[int]HourlyStat) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM hourly_stats WHERE date = ?", date); err != nil {
		return fmt.Errorf("clear hourly stats: %w", err)
	}

	for hour, st := range stats {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO hourly_stats (date, hour, sites_visited, time_spent)
			VALUES (?, ?, ?, ?)
		`, date, hour, st.SitesVisited, st.TimeSpent)
		if err != nil {
			return fmt.Errorf("insert hourly stat %d: %w", hour, err)
		}
	}

	return tx.Commit()
}

// GetHourlyStats retrieves the hourly statistics for a date.
func (s *SQLiteStore) GetHourlyStats(ctx context.Context, date string) (map[int]HourlyStat, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT hour, sites_visited, time_spent FROM hourly_stats WHERE date = ?", date,
	)
	if err != nil {
		return nil, fmt.Errorf("query hourly stats: %w", err)
	}
	defer rows.Close()

	stats := map[int]HourlyStat{}
	for rows.Next() {
		var hour int
		var st HourlyStat
		if err := rows.Scan(&hour, &st.SitesVisited, &st.TimeSpent); err != nil {
			return nil, fmt.Errorf("scan hourly stat: %w", err)
		}
		stats[hour] = st
	}

	return stats, rows.Err()
}

// GetCategory retrieves the stored category mapping for a domain, or
// ErrNotFound when the domain has never been classified.
func (s *SQLiteStore) GetCategory(ctx context.Context, domain string) (*SiteCategory, error) {
	var c SiteCategory
	err := s.getCategory.QueryRowContext(ctx, domain).Scan(
		&c.Domain, &c.Category, &c.ProductivityWeight,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category for %s: %w", domain, ErrNotFound)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// SetCategory adds or replaces the category mapping for a domain.
func (s *SQLiteStore) SetCategory(ctx context.Context, domain, category string, weight float64) error {
	if _, err := s.setCategory.ExecContext(ctx, domain, category, weight); err != nil {
		return fmt.Errorf("set category: %w", err)
	}
	return nil
}

// AllCategories returns every stored category mapping ordered by domain.
func (s *SQLiteStore) AllCategories(ctx context.Context) ([]SiteCategory, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT domain, category, productivity_weight FROM site_categories ORDER BY domain",
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	cats := []SiteCategory{}
	for rows.Next() {
		var c SiteCategory
		if err := rows.Scan(&c.Domain, &c.Category, &c.ProductivityWeight); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}

	return cats, rows.Err()
}

// GetStats returns aggregate statistics about the journal database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM journal_entries").Scan(&stats.TotalEntries)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM site_categories").Scan(&stats.TotalCategories)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	if stats.TotalEntries > 0 {
		err = s.db.QueryRowContext(ctx,
			"SELECT MIN(date), MAX(date) FROM journal_entries",
		).Scan(&stats.OldestEntry, &stats.NewestEntry)
		if err != nil {
			return nil, fmt.Errorf("entry date range: %w", err)
		}
	}

	return stats, nil
}

// DatabaseSize returns the size of the database file in bytes. For in-memory
// databases it falls back to page_count * page_size.
func (s *SQLiteStore) DatabaseSize(dbPath string) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	var pageCount, pageSize int64
	if err := s.db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := s.db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// PruneBefore deletes journal entries and hourly stats dated strictly before
// the given date. Returns the number of entries removed.
func (s *SQLiteStore) PruneBefore(ctx context.Context, date string) (int64, error) {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM hourly_stats WHERE date < ?", date); err != nil {
		return 0, fmt.Errorf("prune hourly stats: %w", err)
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM journal_entries WHERE date < ?", date)
	if err != nil {
		return 0, fmt.Errorf("prune entries: %w", err)
	}

	return res.RowsAffected()
}

// PurgeAll deletes all journal entries, hourly stats, and category mappings.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM hourly_stats",
		"DELETE FROM journal_entries",
		"DELETE FROM site_categories",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.upsertEntry, s.getEntry, s.getCategory, s.setCategory,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
