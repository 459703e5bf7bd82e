package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/runnerr0/daybook/internal/config"
	"github.com/runnerr0/daybook/internal/firefox"
	"github.com/runnerr0/daybook/internal/journal"
	"github.com/runnerr0/daybook/internal/storage"
)

// loadConfig loads the config from --config or the default location,
// creating the default file on first run.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.LoadOrCreateAt(globals.Config)
	}
	return config.LoadOrCreate()
}

// newLogger builds the CLI logger. --verbose forces debug regardless of the
// configured level.
func newLogger(globals *GlobalFlags, cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg != nil {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level)); err == nil {
			level = parsed
		}
	}
	if globals != nil && globals.Verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// openStore opens the journal database from the config, runs migrations,
// and returns a ready-to-use store and the underlying *sql.DB.
func openStore(cfg *config.Config) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

// parseDate validates and parses a YYYY-MM-DD date string in loc. "today"
// and "" mean the current date. Invalid input is rejected before any I/O.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if s == "" || s == "today" {
		return time.Now().In(loc), nil
	}
	day, err := time.ParseInLocation(storage.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return day, nil
}

// newReader opens the Firefox history reader from the config. A missing
// profile is reported as a nil reader, not an error; callers decide whether
// "no data" is acceptable.
func newReader(cfg *config.Config, loc *time.Location, log zerolog.Logger) (*firefox.Reader, error) {
	reader, err := firefox.NewReader(cfg.ProfilePath(), loc, log)
	if err != nil {
		if errors.Is(err, firefox.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return reader, nil
}

// newGenerator wires the store and (possibly absent) history reader into a
// journal generator.
func newGenerator(cfg *config.Config, store *storage.SQLiteStore, loc *time.Location, log zerolog.Logger) (*journal.Generator, error) {
	reader, err := newReader(cfg, loc, log)
	if err != nil {
		return nil, err
	}

	var source journal.HistorySource
	if reader != nil {
		source = reader
	}

	return journal.NewGenerator(store, source, loc, cfg.Firefox.ExcludePrivate, log), nil
}

// mondayOf returns the Monday of the week containing day.
func mondayOf(day time.Time) time.Time {
	daysSinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -daysSinceMonday)
}

// formatMinutes renders a minute count like "3h 25m" or "45m".
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
