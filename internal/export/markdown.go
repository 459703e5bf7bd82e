package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/daybook/internal/journal"
	"github.com/runnerr0/daybook/internal/storage"
)

const defaultTemplate = `# Daily Journal - {{.Date}}

## Summary
{{.Summary}}

## Statistics
- **Total Sites Visited**: {{.TotalSitesVisited}}
- **Total Time Spent**: {{.TotalTimeSpent}} minutes ({{.TotalTimeHuman}})
- **Productivity Score**: {{.ProductivityScore}}/10

## Activity Breakdown

### Top Categories by Time
{{.TopCategories}}

### Hourly Activity
{{.HourlyActivity}}

## Detailed Site Analysis

### Most Visited Domains
{{.TopDomains}}

### Notable Activities
{{.NotableActivities}}

## Insights
{{.Insights}}

---
*Generated on {{.GeneratedAt}} by daybook*
`

// Exporter writes journal entries and weekly summaries as markdown files.
// It is a pure sink over the journal record; nothing is read back.
type Exporter struct {
	outputDir string
	tmpl      *template.Template
	log       zerolog.Logger
}

// dailyVars are the pre-rendered sections handed to the daily template.
type dailyVars struct {
	Date              string
	Summary           string
	TotalSitesVisited int
	TotalTimeSpent    int
	TotalTimeHuman    string
	ProductivityScore float64
	TopCategories     string
	HourlyActivity    string
	TopDomains        string
	NotableActivities string
	Insights          string
	GeneratedAt       string
}

// NewExporter creates an Exporter writing to outputDir. templatePath may
// name a custom daily template file; when empty or unreadable the built-in
// template is used.
func NewExporter(outputDir, templatePath string, log zerolog.Logger) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	text := defaultTemplate
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			log.Warn().Err(err).Str("path", templatePath).Msg("template file not found, using default template")
		} else {
			text = string(data)
		}
	}

	tmpl, err := template.New("daily").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing journal template: %w", err)
	}

	return &Exporter{outputDir: outputDir, tmpl: tmpl, log: log}, nil
}

// ExportDaily renders the entry to journal_YYYY-MM-DD.md and returns the
// written path.
func (e *Exporter) ExportDaily(entry *storage.Entry) (string, error) {
	prettyDate := entry.Date
	if day, err := time.Parse(storage.DateFormat, entry.Date); err == nil {
		prettyDate = day.Format("January 2, 2006")
	}

	vars := dailyVars{
		Date:              prettyDate,
		Summary:           entry.Summary,
		TotalSitesVisited: entry.TotalSitesVisited,
		TotalTimeSpent:    entry.TotalTimeSpent,
		TotalTimeHuman:    formatDuration(entry.TotalTimeSpent),
		ProductivityScore: entry.ProductivityScore,
		TopCategories:     formatCategories(entry.TopCategories),
		HourlyActivity:    formatHourly(entry.Raw.HourlyStats),
		TopDomains:        formatTopDomains(entry.Raw.DomainStats),
		NotableActivities: notableActivities(entry.Raw.DomainStats),
		Insights:          insights(entry),
		GeneratedAt:       time.Now().Format("2006-01-02 15:04:05"),
	}

	outPath := filepath.Join(e.outputDir, "journal_"+entry.Date+".md")
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("creating journal file: %w", err)
	}
	defer f.Close()

	if err := e.tmpl.Execute(f, vars); err != nil {
		return "", fmt.Errorf("rendering journal: %w", err)
	}

	e.log.Info().Str("path", outPath).Msg("journal exported")
	return outPath, nil
}

// ExportWeekly writes the weekly summary to weekly_summary_YYYY-MM-DD.md
// (named after the week's start date) and returns the written path.
func (e *Exporter) ExportWeekly(summary *journal.WeeklySummary) (string, error) {
	pretty := func(date, layout string) string {
		if d, err := time.Parse(storage.DateFormat, date); err == nil {
			return d.Format(layout)
		}
		return date
	}

	cats := make([]storage.TopCategory, len(summary.TopCategories))
	for i, c := range summary.TopCategories {
		cats[i] = storage.TopCategory{Category: c.Category, TimeSpent: c.TimeSpent, Visits: c.Visits}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Weekly Summary - %s to %s\n\n",
		pretty(summary.StartDate, "January 2"), pretty(summary.EndDate, "January 2, 2006"))
	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "- **Total Sites Visited**: %d\n", summary.TotalSitesVisited)
	fmt.Fprintf(&b, "- **Total Time Spent**: %s\n", formatDuration(summary.TotalTimeSpent))
	fmt.Fprintf(&b, "- **Average Productivity Score**: %v/10\n", summary.AverageProductivityScore)
	fmt.Fprintf(&b, "- **Days with Data**: %d\n\n", summary.DailyEntriesCount)
	b.WriteString("## Top Categories This Week\n")
	b.WriteString(formatCategories(cats))
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "*Generated on %s by daybook*\n", time.Now().Format("2006-01-02 15:04:05"))

	outPath := filepath.Join(e.outputDir, "weekly_summary_"+summary.StartDate+".md")
	if err := os.WriteFile(outPath, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("writing weekly summary: %w", err)
	}

	e.log.Info().Str("path", outPath).Msg("weekly summary exported")
	return outPath, nil
}

// formatDuration converts minutes to a human-readable duration.
func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := minutes / 60
	rem := minutes % 60

	if rem == 0 {
		return fmt.Sprintf("%d %s", hours, plural("hour", hours))
	}
	return fmt.Sprintf("%d %s %d %s", hours, plural("hour", hours), rem, plural("minute", rem))
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func formatCategories(categories []storage.TopCategory) string {
	if len(categories) == 0 {
		return "No browsing activity recorded."
	}

	lines := make([]string, 0, len(categories))
	for i, cat := range categories {
		lines = append(lines, fmt.Sprintf("%d. **%s** - %s (%d visits)",
			i+1, cat.Category, formatDuration(cat.TimeSpent), cat.Visits))
	}
	return strings.Join(lines, "\n")
}

func formatHourly(hourly map[int]storage.HourlyStat) string {
	if len(hourly) == 0 {
		return "No hourly data available."
	}

	lines := []string{
		"| Hour | Sites Visited | Time Spent |",
		"|------|---------------|------------|",
	}
	for hour := 0; hour < 24; hour++ {
		st, ok := hourly[hour]
		if ok {
			lines = append(lines, fmt.Sprintf("| %02d:00 | %d | %s |", hour, st.SitesVisited, formatDuration(st.TimeSpent)))
		} else {
			lines = append(lines, fmt.Sprintf("| %02d:00 | 0 | 0 minutes |", hour))
		}
	}
	return strings.Join(lines, "\n")
}

// sortedDomains orders domains by time spent descending, name ascending.
func sortedDomains(domainStats map[string]storage.DomainStat) []string {
	domains := make([]string, 0, len(domainStats))
	for d := range domainStats {
		domains = append(domains, d)
	}
	sort.Slice(domains, func(i, j int) bool {
		a, b := domainStats[domains[i]], domainStats[domains[j]]
		if a.TimeSpent != b.TimeSpent {
			return a.TimeSpent > b.TimeSpent
		}
		return domains[i] < domains[j]
	})
	return domains
}

func formatTopDomains(domainStats map[string]storage.DomainStat) string {
	if len(domainStats) == 0 {
		return "No domain data available."
	}

	domains := sortedDomains(domainStats)
	if len(domains) > 10 {
		domains = domains[:10]
	}

	lines := make([]string, 0, len(domains))
	for i, domain := range domains {
		st := domainStats[domain]
		lines = append(lines, fmt.Sprintf("%d. **%s** (%s) - %s (%d visits)",
			i+1, domain, st.Category, formatDuration(st.TimeSpent), st.Visits))
	}
	return strings.Join(lines, "\n")
}

func notableActivities(domainStats map[string]storage.DomainStat) string {
	if len(domainStats) == 0 {
		return "No notable activities."
	}

	var activities []string
	for _, domain := range sortedDomains(domainStats) {
		st := domainStats[domain]

		if st.TimeSpent > 30 {
			activities = append(activities, fmt.Sprintf("- Spent significant time on **%s** (%s) - %s",
				domain, st.Category, formatDuration(st.TimeSpent)))
		} else if st.Visits > 10 {
			activities = append(activities, fmt.Sprintf("- Frequently visited **%s** (%s) - %d visits",
				domain, st.Category, st.Visits))
		}

		count := 0
		for _, title := range st.Titles {
			if len(title) > 20 && title != "Untitled" {
				if len(title) > 80 {
					title = title[:80] + "..."
				}
				activities = append(activities, fmt.Sprintf("  - %q", title))
				count++
				if count == 3 {
					break
				}
			}
		}
	}

	if len(activities) == 0 {
		return "No significant activities detected."
	}
	if len(activities) > 15 {
		activities = activities[:15]
	}
	return strings.Join(activities, "\n")
}

func insights(entry *storage.Entry) string {
	var lines []string

	switch {
	case entry.ProductivityScore >= 8:
		lines = append(lines, "Excellent productivity! You focused on valuable activities.")
	case entry.ProductivityScore >= 6:
		lines = append(lines, "Good productivity with a healthy balance of work and leisure.")
	case entry.ProductivityScore >= 4:
		lines = append(lines, "Moderate productivity. Consider focusing more on valuable activities.")
	default:
		lines = append(lines, "Low productivity day. Mostly entertainment or social media browsing.")
	}

	switch {
	case entry.TotalTimeSpent > 480:
		lines = append(lines, "Heavy browsing day with over 8 hours of activity.")
	case entry.TotalTimeSpent > 240:
		lines = append(lines, "Moderate browsing activity (4-8 hours).")
	case entry.TotalTimeSpent > 60:
		lines = append(lines, "Light browsing activity (1-4 hours).")
	default:
		lines = append(lines, "Minimal browsing activity today.")
	}

	if len(entry.TopCategories) > 0 {
		switch entry.TopCategories[0].Category {
		case "Development":
			lines = append(lines, "Strong focus on development and technical activities.")
		case "Entertainment":
			lines = append(lines, "Entertainment was the primary focus today.")
		case "Social Media":
			lines = append(lines, "Social media consumed most of your browsing time.")
		case "Research":
			lines = append(lines, "Great focus on research and learning activities.")
		}
	}

	if peak, ok := peakHour(entry.Raw.HourlyStats); ok {
		switch {
		case peak >= 9 && peak <= 17:
			lines = append(lines, "Peak activity during business hours.")
		case peak >= 18 && peak <= 23:
			lines = append(lines, "Most active during evening hours.")
		default:
			lines = append(lines, "Unusual activity pattern with late-night browsing.")
		}
	}

	for i, l := range lines {
		lines[i] = "- " + l
	}
	return strings.Join(lines, "\n")
}

// peakHour returns the hour with the most time spent, ties going to the
// earliest hour.
func peakHour(hourly map[int]storage.HourlyStat) (int, bool) {
	best, bestTime, found := 0, -1, false
	for hour := 0; hour < 24; hour++ {
		if st, ok := hourly[hour]; ok && st.TimeSpent > bestTime {
			best, bestTime, found = hour, st.TimeSpent, true
		}
	}
	return best, found
}
