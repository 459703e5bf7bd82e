package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/daybook/internal/journal"
	"github.com/runnerr0/daybook/internal/storage"
)

func testEntry() *storage.Entry {
	return &storage.Entry{
		Date:              "2026-08-31",
		TotalSitesVisited: 2,
		TotalTimeSpent:    95,
		TopCategories: []storage.TopCategory{
			{Category: "Development", TimeSpent: 80, Visits: 12, ProductivityWeight: 0.7},
			{Category: "Social Media", TimeSpent: 15, Visits: 4, ProductivityWeight: -0.2},
		},
		ProductivityScore: 7.13,
		Summary:           "Visited 2 unique websites. This was a highly productive day.",
		Raw: storage.RawData{
			DomainStats: map[string]storage.DomainStat{
				"github.com": {
					Visits:    12,
					TimeSpent: 80,
					Titles:    []string{"A very long pull request title that goes on", "Issues"},
					Category:  "Development",
				},
				"social.example.com": {
					Visits: 4, TimeSpent: 15, Category: "Social Media", Titles: []string{"Feed"},
				},
			},
			HourlyStats: map[int]storage.HourlyStat{
				10: {SitesVisited: 2, TimeSpent: 60},
				21: {SitesVisited: 1, TimeSpent: 35},
			},
		},
	}
}

func newTestExporter(t *testing.T) (*Exporter, string) {
	t.Helper()
	dir := t.TempDir()
	e, err := NewExporter(dir, "", zerolog.Nop())
	require.NoError(t, err)
	return e, dir
}

func TestExportDaily_WritesFile(t *testing.T) {
	e, dir := newTestExporter(t)

	path, err := e.ExportDaily(testEntry())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "journal_2026-08-31.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Daily Journal - August 31, 2026")
	assert.Contains(t, content, "**Total Sites Visited**: 2")
	assert.Contains(t, content, "**Total Time Spent**: 95 minutes (1 hour 35 minutes)")
	assert.Contains(t, content, "**Productivity Score**: 7.13/10")
	assert.Contains(t, content, "1. **Development** - 1 hour 20 minutes (12 visits)")
	assert.Contains(t, content, "1. **github.com** (Development)")
}

func TestExportDaily_HourlyTable(t *testing.T) {
	e, _ := newTestExporter(t)

	path, err := e.ExportDaily(testEntry())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "| 10:00 | 2 | 1 hour |")
	assert.Contains(t, content, "| 21:00 | 1 | 35 minutes |")
	assert.Contains(t, content, "| 03:00 | 0 | 0 minutes |", "hours without activity show zero rows")
	assert.Equal(t, 24, strings.Count(content, ":00 |"), "all 24 hours are listed")
}

func TestExportDaily_Insights(t *testing.T) {
	e, _ := newTestExporter(t)

	path, err := e.ExportDaily(testEntry())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Good productivity")
	assert.Contains(t, content, "Light browsing activity")
	assert.Contains(t, content, "Strong focus on development")
	assert.Contains(t, content, "Peak activity during business hours")
}

func TestExportDaily_NotableActivities(t *testing.T) {
	e, _ := newTestExporter(t)

	path, err := e.ExportDaily(testEntry())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Spent significant time on **github.com**")
	assert.Contains(t, content, `"A very long pull request title that goes on"`)
	assert.NotContains(t, content, `"Issues"`, "short titles are not highlighted")
}

func TestExportDaily_Overwrites(t *testing.T) {
	e, _ := newTestExporter(t)
	entry := testEntry()

	first, err := e.ExportDaily(entry)
	require.NoError(t, err)

	entry.TotalSitesVisited = 99
	second, err := e.ExportDaily(entry)
	require.NoError(t, err)
	assert.Equal(t, first, second, "regeneration writes to the same file")

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "**Total Sites Visited**: 99")
}

func TestNewExporter_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "custom.tmpl")
	require.NoError(t, os.WriteFile(tmplPath, []byte("DATE={{.Date}} SCORE={{.ProductivityScore}}"), 0644))

	e, err := NewExporter(dir, tmplPath, zerolog.Nop())
	require.NoError(t, err)

	path, err := e.ExportDaily(testEntry())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "DATE=August 31, 2026 SCORE=7.13", string(data))
}

func TestNewExporter_MissingTemplateFallsBack(t *testing.T) {
	dir := t.TempDir()

	e, err := NewExporter(dir, filepath.Join(dir, "missing.tmpl"), zerolog.Nop())
	require.NoError(t, err, "unreadable template falls back to the built-in one")

	path, err := e.ExportDaily(testEntry())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Daily Journal -")
}

func TestExportWeekly(t *testing.T) {
	e, dir := newTestExporter(t)

	summary := &journal.WeeklySummary{
		StartDate:                "2026-08-24",
		EndDate:                  "2026-08-30",
		TotalSitesVisited:        14,
		TotalTimeSpent:           300,
		AverageProductivityScore: 6.4,
		TopCategories: []journal.WeeklyCategory{
			{Category: "Development", TimeSpent: 200, Visits: 30},
			{Category: "News", TimeSpent: 100, Visits: 10},
		},
		DailyEntriesCount: 5,
	}

	path, err := e.ExportWeekly(summary)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "weekly_summary_2026-08-24.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Weekly Summary - August 24 to August 30, 2026")
	assert.Contains(t, content, "**Total Sites Visited**: 14")
	assert.Contains(t, content, "**Total Time Spent**: 5 hours")
	assert.Contains(t, content, "**Average Productivity Score**: 6.4/10")
	assert.Contains(t, content, "**Days with Data**: 5")
	assert.Contains(t, content, "1. **Development** - 3 hours 20 minutes (30 visits)")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 minutes"},
		{1, "1 minutes"},
		{45, "45 minutes"},
		{60, "1 hour"},
		{61, "1 hour 1 minute"},
		{120, "2 hours"},
		{95, "1 hour 35 minutes"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, formatDuration(tc.minutes), "%d minutes", tc.minutes)
	}
}

func TestPeakHour(t *testing.T) {
	_, ok := peakHour(nil)
	assert.False(t, ok)

	peak, ok := peakHour(map[int]storage.HourlyStat{
		9:  {TimeSpent: 30},
		14: {TimeSpent: 30},
		22: {TimeSpent: 10},
	})
	require.True(t, ok)
	assert.Equal(t, 9, peak, "ties go to the earliest hour")
}
