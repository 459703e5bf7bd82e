package journal

import (
	"context"
	"sort"
	"time"

	"github.com/runnerr0/daybook/internal/firefox"
	"github.com/runnerr0/daybook/internal/storage"
)

const (
	// Consecutive visits closer than this are treated as one continuous
	// browsing session; a single gap is also capped at this value.
	sessionGapSeconds = 1800
	// Time credited to a visit whose duration cannot be observed.
	standaloneVisitSeconds = 120
)

// DayActivity holds every aggregate computed from one day of visits.
type DayActivity struct {
	DomainStats   map[string]storage.DomainStat
	CategoryStats map[string]storage.CategoryStat
	HourlyStats   map[int]storage.HourlyStat
	TopCategories []storage.TopCategory
	TotalSites    int
	TotalTime     int
}

// Analyzer turns a day's visit records into domain, category, and hourly
// aggregates. Hour buckets are computed in loc so results are reproducible
// across environments.
type Analyzer struct {
	classifier *Classifier
	loc        *time.Location
}

// NewAnalyzer creates an Analyzer using the given classifier and time zone.
func NewAnalyzer(classifier *Classifier, loc *time.Location) *Analyzer {
	if loc == nil {
		loc = time.Local
	}
	return &Analyzer{classifier: classifier, loc: loc}
}

// estimateMinutes applies the gap heuristic to a group of visit times:
// sorted ascending, each gap under 30 minutes counts in full (capped at 30
// minutes), larger gaps count as a 2-minute standalone hit, and the final
// visit always contributes 2 minutes. Returns whole minutes, truncated.
func estimateMinutes(times []time.Time) int {
	if len(times) == 0 {
		return 0
	}

	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var totalSeconds float64
	for i := 0; i < len(sorted)-1; i++ {
		gap := sorted[i+1].Sub(sorted[i]).Seconds()
		if gap < sessionGapSeconds {
			totalSeconds += gap
		} else {
			totalSeconds += standaloneVisitSeconds
		}
	}

	// The last visit's end time is unobservable.
	totalSeconds += standaloneVisitSeconds

	return int(totalSeconds / 60)
}

// AnalyzeDay computes all aggregates for one day of visits. Domains are
// processed in sorted order so category weights and tie-breaks are
// deterministic: when domains within one category carry different weights,
// the lexicographically smallest domain's weight wins.
func (a *Analyzer) AnalyzeDay(ctx context.Context, visits []firefox.Visit) DayActivity {
	byDomain := map[string][]firefox.Visit{}
	for _, v := range visits {
		byDomain[v.Domain] = append(byDomain[v.Domain], v)
	}

	domains := make([]string, 0, len(byDomain))
	for d := range byDomain {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	domainStats := map[string]storage.DomainStat{}
	categoryStats := map[string]storage.CategoryStat{}

	totalTime := 0
	for _, domain := range domains {
		group := byDomain[domain]
		info := a.classifier.Classify(ctx, domain)
		timeSpent := estimateMinutes(visitTimes(group))

		domainStats[domain] = storage.DomainStat{
			Visits:             len(group),
			TimeSpent:          timeSpent,
			Titles:             distinctTitles(group),
			Category:           info.Category,
			ProductivityWeight: info.ProductivityWeight,
		}
		totalTime += timeSpent

		cat := categoryStats[info.Category]
		if cat.Visits == 0 && cat.TimeSpent == 0 {
			cat.ProductivityWeight = info.ProductivityWeight
		}
		cat.TimeSpent += timeSpent
		cat.Visits += len(group)
		categoryStats[info.Category] = cat
	}

	return DayActivity{
		DomainStats:   domainStats,
		CategoryStats: categoryStats,
		HourlyStats:   a.hourlyStats(visits),
		TopCategories: topCategories(categoryStats),
		TotalSites:    len(domainStats),
		TotalTime:     totalTime,
	}
}

// hourlyStats partitions visits by local hour and estimates each hour's
// dwell time independently. Hourly totals are a separate view and are not
// required to sum to the per-domain totals.
func (a *Analyzer) hourlyStats(visits []firefox.Visit) map[int]storage.HourlyStat {
	byHour := map[int][]firefox.Visit{}
	for _, v := range visits {
		hour := v.VisitTime.In(a.loc).Hour()
		byHour[hour] = append(byHour[hour], v)
	}

	stats := map[int]storage.HourlyStat{}
	for hour, group := range byHour {
		domains := map[string]struct{}{}
		for _, v := range group {
			domains[v.Domain] = struct{}{}
		}
		stats[hour] = storage.HourlyStat{
			SitesVisited: len(domains),
			TimeSpent:    estimateMinutes(visitTimes(group)),
		}
	}

	return stats
}

// topCategories orders categories by time spent descending, breaking ties by
// category name so the ordering is deterministic.
func topCategories(categoryStats map[string]storage.CategoryStat) []storage.TopCategory {
	top := make([]storage.TopCategory, 0, len(categoryStats))
	for cat, st := range categoryStats {
		top = append(top, storage.TopCategory{
			Category:           cat,
			TimeSpent:          st.TimeSpent,
			Visits:             st.Visits,
			ProductivityWeight: st.ProductivityWeight,
		})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].TimeSpent != top[j].TimeSpent {
			return top[i].TimeSpent > top[j].TimeSpent
		}
		return top[i].Category < top[j].Category
	})

	return top
}

func visitTimes(visits []firefox.Visit) []time.Time {
	times := make([]time.Time, len(visits))
	for i, v := range visits {
		times[i] = v.VisitTime
	}
	return times
}

func distinctTitles(visits []firefox.Visit) []string {
	seen := map[string]struct{}{}
	for _, v := range visits {
		seen[v.Title] = struct{}{}
	}
	titles := make([]string, 0, len(seen))
	for t := range seen {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles
}
