package firefox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// ErrProfileNotFound is returned by NewReader when no Firefox profile with a
// places.sqlite store can be located. Callers treat this as "no data
// available", not as a fatal error.
var ErrProfileNotFound = errors.New("firefox places.sqlite database not found")

// Reader provides point-in-time access to a Firefox history store. Every
// read operation works on a private snapshot of the store, so the browser
// can keep the original open and locked.
type Reader struct {
	profilePath string
	placesPath  string
	loc         *time.Location
	log         zerolog.Logger
}

// NewReader creates a Reader for the given profile directory. An empty
// profilePath triggers automatic discovery of the most recently used
// profile. Day and hour boundaries are computed in loc.
func NewReader(profilePath string, loc *time.Location, log zerolog.Logger) (*Reader, error) {
	if loc == nil {
		loc = time.Local
	}

	if profilePath == "" {
		root := profileRoot()
		profilePath = findProfile(root)
		if profilePath == "" {
			log.Warn().Str("root", root).Msg("no firefox profile found")
			return nil, ErrProfileNotFound
		}
		log.Info().Str("profile", profilePath).Msg("using most recently used firefox profile")
	}

	placesPath := filepath.Join(profilePath, placesFile)
	if _, err := os.Stat(placesPath); err != nil {
		return nil, ErrProfileNotFound
	}

	return &Reader{
		profilePath: profilePath,
		placesPath:  placesPath,
		loc:         loc,
		log:         log,
	}, nil
}

// ProfilePath returns the profile directory the reader is bound to.
func (r *Reader) ProfilePath() string {
	return r.profilePath
}

// dayBounds returns the inclusive microsecond-epoch span covering
// 00:00:00.000000 through 23:59:59.999999 of the given calendar day in the
// reader's location.
func (r *Reader) dayBounds(day time.Time) (int64, int64) {
	y, m, d := day.In(r.loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, r.loc)
	end := time.Date(y, m, d, 23, 59, 59, 999999000, r.loc)
	return start.UnixMicro(), end.UnixMicro()
}

// normalizeDomain lowercases the URL's host and strips a leading "www.".
func normalizeDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	domain := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(domain, "www.")
}

// normalizeTitle maps a NULL or empty page title to "Untitled".
func normalizeTitle(t sql.NullString) string {
	if !t.Valid || t.String == "" {
		return "Untitled"
	}
	return t.String
}

// VisitsForDate returns the normalized visit records for one calendar day,
// ordered by visit time ascending. Visits flagged as private browsing are
// dropped when excludePrivate is set. Read failures are logged and yield an
// empty result; the snapshot is removed on every exit path.
func (r *Reader) VisitsForDate(ctx context.Context, day time.Time, excludePrivate bool) []Visit {
	start, end := r.dayBounds(day)
	return r.visitsBetween(ctx, start, end, excludePrivate)
}

// VisitsForRange returns the normalized visit records between the start of
// startDay and the end of endDay inclusive, ordered by visit time ascending.
func (r *Reader) VisitsForRange(ctx context.Context, startDay, endDay time.Time, excludePrivate bool) []Visit {
	start, _ := r.dayBounds(startDay)
	_, end := r.dayBounds(endDay)
	return r.visitsBetween(ctx, start, end, excludePrivate)
}

func (r *Reader) visitsBetween(ctx context.Context, startMicros, endMicros int64, excludePrivate bool) []Visit {
	visits := []Visit{}

	err := r.withSnapshot(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT p.url, p.title, p.visit_count, h.visit_date, h.visit_type, h.from_visit
			FROM moz_places p
			JOIN moz_historyvisits h ON p.id = h.place_id
			WHERE h.visit_date BETWEEN ? AND ?
			ORDER BY h.visit_date ASC
		`, startMicros, endMicros)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				rawURL     string
				title      sql.NullString
				visitCount int
				visitDate  int64
				visitType  int
				fromVisit  int64
			)
			if err := rows.Scan(&rawURL, &title, &visitCount, &visitDate, &visitType, &fromVisit); err != nil {
				return err
			}

			if excludePrivate && visitType == visitTypePrivate {
				continue
			}

			visits = append(visits, Visit{
				URL:        rawURL,
				Title:      normalizeTitle(title),
				Domain:     normalizeDomain(rawURL),
				VisitCount: visitCount,
				VisitTime:  time.UnixMicro(visitDate).In(r.loc),
				VisitType:  visitType,
				FromVisit:  fromVisit,
			})
		}

		return rows.Err()
	})
	if err != nil {
		r.log.Error().Err(err).Msg("error reading firefox history")
		return []Visit{}
	}

	return visits
}

// MostVisited returns up to limit places ordered by total visit count.
func (r *Reader) MostVisited(ctx context.Context, limit int) []Site {
	sites := []Site{}

	err := r.withSnapshot(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT p.url, p.title, p.visit_count, p.last_visit_date
			FROM moz_places p
			WHERE p.visit_count > 0
			ORDER BY p.visit_count DESC
			LIMIT ?
		`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				rawURL     string
				title      sql.NullString
				visitCount int
				lastVisit  sql.NullInt64
			)
			if err := rows.Scan(&rawURL, &title, &visitCount, &lastVisit); err != nil {
				return err
			}

			site := Site{
				URL:        rawURL,
				Title:      normalizeTitle(title),
				Domain:     normalizeDomain(rawURL),
				VisitCount: visitCount,
			}
			if lastVisit.Valid {
				site.LastVisit = time.UnixMicro(lastVisit.Int64).In(r.loc)
			}
			sites = append(sites, site)
		}

		return rows.Err()
	})
	if err != nil {
		r.log.Error().Err(err).Msg("error reading most visited sites")
		return []Site{}
	}

	return sites
}

// Bookmarks returns all URL bookmarks ordered by date added, newest first.
func (r *Reader) Bookmarks(ctx context.Context) []Bookmark {
	bookmarks := []Bookmark{}

	err := r.withSnapshot(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT b.title, p.url, b.dateAdded, b.lastModified
			FROM moz_bookmarks b
			JOIN moz_places p ON b.fk = p.id
			WHERE b.type = 1 AND p.url IS NOT NULL
			ORDER BY b.dateAdded DESC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				title        sql.NullString
				rawURL       string
				dateAdded    sql.NullInt64
				lastModified sql.NullInt64
			)
			if err := rows.Scan(&title, &rawURL, &dateAdded, &lastModified); err != nil {
				return err
			}

			bm := Bookmark{
				Title:  normalizeTitle(title),
				URL:    rawURL,
				Domain: normalizeDomain(rawURL),
			}
			if dateAdded.Valid {
				bm.DateAdded = time.UnixMicro(dateAdded.Int64).In(r.loc)
			}
			if lastModified.Valid {
				bm.LastModified = time.UnixMicro(lastModified.Int64).In(r.loc)
			}
			bookmarks = append(bookmarks, bm)
		}

		return rows.Err()
	})
	if err != nil {
		r.log.Error().Err(err).Msg("error reading bookmarks")
		return []Bookmark{}
	}

	return bookmarks
}

// withSnapshot copies the store, opens the copy read-only, runs fn against
// it, and removes the copy regardless of outcome.
func (r *Reader) withSnapshot(fn func(db *sql.DB) error) error {
	path, cleanup, err := r.snapshot()
	if err != nil {
		return err
	}
	defer cleanup()

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	return fn(db)
}
