package storage

import "time"

// DateFormat is the canonical on-disk representation of a journal date.
const DateFormat = "2006-01-02"

// DomainStat holds the per-domain aggregates for one day.
type DomainStat struct {
	Visits             int      `json:"visits"`
	TimeSpent          int      `json:"time_spent"`
	Titles             []string `json:"titles"`
	Category           string   `json:"category"`
	ProductivityWeight float64  `json:"productivity_weight"`
}

// CategoryStat holds the per-category aggregates for one day.
type CategoryStat struct {
	TimeSpent          int     `json:"time_spent"`
	Visits             int     `json:"visits"`
	ProductivityWeight float64 `json:"productivity_weight"`
}

// TopCategory is one element of the ordered top-categories list.
type TopCategory struct {
	Category           string  `json:"category"`
	TimeSpent          int     `json:"time_spent"`
	Visits             int     `json:"visits"`
	ProductivityWeight float64 `json:"productivity_weight"`
}

// HourlyStat holds the aggregates for one hour (0-23) of one day.
type HourlyStat struct {
	SitesVisited int `json:"sites_visited"`
	TimeSpent    int `json:"time_spent"`
}

// RawData is the full per-domain/per-hour detail stored alongside the flat
// summary fields of an entry.
type RawData struct {
	DomainStats       map[string]DomainStat   `json:"domain_stats"`
	HourlyStats       map[int]HourlyStat      `json:"hourly_stats"`
	CategoryBreakdown map[string]CategoryStat `json:"category_breakdown"`
}

// Entry is one persisted daily journal entry. Exactly one entry exists per
// date; regenerating a date replaces it in full.
type Entry struct {
	Date              string        `json:"date"`
	TotalSitesVisited int           `json:"total_sites_visited"`
	TotalTimeSpent    int           `json:"total_time_spent"`
	TopCategories     []TopCategory `json:"top_categories"`
	ProductivityScore float64       `json:"productivity_score"`
	Summary           string        `json:"summary"`
	Raw               RawData       `json:"raw_data"`
	CreatedAt         time.Time     `json:"created_at"`
}

// SiteCategory maps a domain to its category and productivity weight.
type SiteCategory struct {
	Domain             string  `json:"domain"`
	Category           string  `json:"category"`
	ProductivityWeight float64 `json:"productivity_weight"`
}

// Stats holds aggregate statistics about the journal database.
type Stats struct {
	TotalEntries      int64
	TotalCategories   int64
	OldestEntry       string
	NewestEntry       string
	DatabaseSizeBytes int64
}
