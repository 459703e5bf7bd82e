package storage

import "database/sql"

// migrateV001 creates the initial daybook schema: journal entries, hourly
// stats, site categories, indexes, and the seeded default category weights.
// Every statement uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		// ── Tables ──────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS journal_entries (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			date                TEXT NOT NULL UNIQUE,
			total_sites_visited INTEGER NOT NULL DEFAULT 0,
			total_time_spent    INTEGER NOT NULL DEFAULT 0,
			top_categories      TEXT NOT NULL DEFAULT '[]',
			productivity_score  REAL NOT NULL DEFAULT 0,
			summary             TEXT NOT NULL DEFAULT '',
			raw_data            TEXT NOT NULL DEFAULT '{}',
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS hourly_stats (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			date          TEXT NOT NULL,
			hour          INTEGER NOT NULL CHECK (hour BETWEEN 0 AND 23),
			sites_visited INTEGER NOT NULL DEFAULT 0,
			time_spent    INTEGER NOT NULL DEFAULT 0,
			UNIQUE(date, hour)
		)`,

		`CREATE TABLE IF NOT EXISTS site_categories (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			domain              TEXT NOT NULL UNIQUE,
			category            TEXT NOT NULL,
			productivity_weight REAL NOT NULL DEFAULT 0.0
		)`,

		// ── Indexes ────────────────────────────────────────────

		`CREATE INDEX IF NOT EXISTS idx_journal_entries_date ON journal_entries(date)`,
		`CREATE INDEX IF NOT EXISTS idx_hourly_stats_date    ON hourly_stats(date)`,
		`CREATE INDEX IF NOT EXISTS idx_site_categories_dom  ON site_categories(domain)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return seedDefaultCategories(tx)
}

// seedDefaultCategories inserts the curated category weights for well-known
// domains. Uses INSERT OR IGNORE so re-running is safe and manual edits to
// these rows survive restarts.
func seedDefaultCategories(tx *sql.Tx) error {
	defaults := []SiteCategory{
		{"github.com", "Development", 0.8},
		{"stackoverflow.com", "Development", 0.7},
		{"docs.python.org", "Development", 0.8},
		{"youtube.com", "Entertainment", -0.3},
		{"facebook.com", "Social Media", -0.2},
		{"twitter.com", "Social Media", -0.2},
		{"linkedin.com", "Professional", 0.4},
		{"medium.com", "Reading", 0.5},
		{"reddit.com", "Social Media", -0.1},
		{"wikipedia.org", "Research", 0.6},
		{"google.com", "Search", 0.1},
	}

	const insertSQL = `INSERT OR IGNORE INTO site_categories (domain, category, productivity_weight) VALUES (?, ?, ?)`

	for _, c := range defaults {
		if _, err := tx.Exec(insertSQL, c.Domain, c.Category, c.ProductivityWeight); err != nil {
			return err
		}
	}

	return nil
}
