package journal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/daybook/internal/firefox"
	"github.com/runnerr0/daybook/internal/storage"
)

// ErrNoHistory indicates that no browsing data exists for the requested
// period. It is a normal outcome, not a failure.
var ErrNoHistory = errors.New("no browsing history available")

// HistorySource provides the day's raw visit records. *firefox.Reader
// satisfies it; tests substitute fixtures.
type HistorySource interface {
	VisitsForDate(ctx context.Context, day time.Time, excludePrivate bool) []firefox.Visit
}

// WeeklyCategory is one merged category in a weekly summary. The original
// per-day weights are not carried across the merge.
type WeeklyCategory struct {
	Category  string `json:"category"`
	TimeSpent int    `json:"time_spent"`
	Visits    int    `json:"visits"`
}

// WeeklySummary aggregates the persisted daily entries of one week.
type WeeklySummary struct {
	StartDate                string           `json:"start_date"`
	EndDate                  string           `json:"end_date"`
	TotalSitesVisited        int              `json:"total_sites_visited"`
	TotalTimeSpent           int              `json:"total_time_spent"`
	AverageProductivityScore float64          `json:"average_productivity_score"`
	TopCategories            []WeeklyCategory `json:"top_categories"`
	DailyEntriesCount        int              `json:"daily_entries_count"`
}

// Generator wires the history source, analyzer, and journal store into the
// single-date generation operation and the weekly rollup.
type Generator struct {
	store          storage.Store
	source         HistorySource
	analyzer       *Analyzer
	loc            *time.Location
	excludePrivate bool
	log            zerolog.Logger
}

// NewGenerator creates a Generator. source may be nil when no history store
// could be located; every generation then reports ErrNoHistory.
func NewGenerator(store storage.Store, source HistorySource, loc *time.Location, excludePrivate bool, log zerolog.Logger) *Generator {
	if loc == nil {
		loc = time.Local
	}
	classifier := NewClassifier(store, log)
	return &Generator{
		store:          store,
		source:         source,
		analyzer:       NewAnalyzer(classifier, loc),
		loc:            loc,
		excludePrivate: excludePrivate,
		log:            log,
	}
}

// GenerateDaily reads the day's visits, analyzes them, and persists the
// resulting journal entry and hourly stats. Regenerating a date replaces the
// previous entry in full. Returns ErrNoHistory when the day has no visits or
// no history store is available.
func (g *Generator) GenerateDaily(ctx context.Context, day time.Time) (*storage.Entry, error) {
	date := day.In(g.loc).Format(storage.DateFormat)

	if g.source == nil {
		g.log.Warn().Str("date", date).Msg("history source unavailable")
		return nil, ErrNoHistory
	}

	visits := g.source.VisitsForDate(ctx, day, g.excludePrivate)
	if len(visits) == 0 {
		g.log.Info().Str("date", date).Msg("no browsing history found")
		return nil, ErrNoHistory
	}

	activity := g.analyzer.AnalyzeDay(ctx, visits)
	score := Score(activity.CategoryStats)

	entry := &storage.Entry{
		Date:              date,
		TotalSitesVisited: activity.TotalSites,
		TotalTimeSpent:    activity.TotalTime,
		TopCategories:     activity.TopCategories,
		ProductivityScore: score,
		Summary:           Summarize(activity.TotalSites, activity.TotalTime, score, activity.TopCategories),
		Raw: storage.RawData{
			DomainStats:       activity.DomainStats,
			HourlyStats:       activity.HourlyStats,
			CategoryBreakdown: activity.CategoryStats,
		},
	}

	if err := g.store.UpsertEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("save journal entry for %s: %w", date, err)
	}
	if err := g.store.ReplaceHourlyStats(ctx, date, activity.HourlyStats); err != nil {
		return nil, fmt.Errorf("save hourly stats for %s: %w", date, err)
	}

	g.log.Info().
		Str("date", date).
		Int("sites", entry.TotalSitesVisited).
		Int("minutes", entry.TotalTimeSpent).
		Float64("score", entry.ProductivityScore).
		Msg("journal entry generated")

	return entry, nil
}

// GenerateWeekly aggregates the persisted entries for the seven days
// starting at weekStart. It re-reads nothing from the browser; days without
// an entry simply contribute nothing. Returns ErrNoHistory when the week has
// no entries at all.
func (g *Generator) GenerateWeekly(ctx context.Context, weekStart time.Time) (*WeeklySummary, error) {
	start := weekStart.In(g.loc)
	end := start.AddDate(0, 0, 6)
	startDate := start.Format(storage.DateFormat)
	endDate := end.Format(storage.DateFormat)

	entries, err := g.store.GetEntriesInRange(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("load entries %s..%s: %w", startDate, endDate, err)
	}
	if len(entries) == 0 {
		return nil, ErrNoHistory
	}

	summary := &WeeklySummary{
		StartDate:         startDate,
		EndDate:           endDate,
		DailyEntriesCount: len(entries),
	}

	merged := map[string]WeeklyCategory{}
	scoreSum := 0.0
	for _, entry := range entries {
		summary.TotalSitesVisited += entry.TotalSitesVisited
		summary.TotalTimeSpent += entry.TotalTimeSpent
		scoreSum += entry.ProductivityScore

		for _, cat := range entry.TopCategories {
			m := merged[cat.Category]
			m.Category = cat.Category
			m.TimeSpent += cat.TimeSpent
			m.Visits += cat.Visits
			merged[cat.Category] = m
		}
	}
	summary.AverageProductivityScore = round2(scoreSum / float64(len(entries)))

	for _, m := range merged {
		summary.TopCategories = append(summary.TopCategories, m)
	}
	sort.Slice(summary.TopCategories, func(i, j int) bool {
		a, b := summary.TopCategories[i], summary.TopCategories[j]
		if a.TimeSpent != b.TimeSpent {
			return a.TimeSpent > b.TimeSpent
		}
		return a.Category < b.Category
	})

	return summary, nil
}
