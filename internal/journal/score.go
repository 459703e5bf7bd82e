package journal

import (
	"fmt"
	"math"
	"strings"

	"github.com/runnerr0/daybook/internal/storage"
)

// Score converts per-category time aggregates into a productivity score.
// With zero recorded time the score is exactly 0. Otherwise the
// time-weighted mean of the category weights is mapped onto a 5-centered
// scale: 5 + weightedSum*5, rounded to two decimals. The result is not
// clamped; the shipped weights keep it inside [0, 10].
func Score(categoryStats map[string]storage.CategoryStat) float64 {
	totalTime := 0
	for _, st := range categoryStats {
		totalTime += st.TimeSpent
	}
	if totalTime == 0 {
		return 0.0
	}

	weightedSum := 0.0
	for _, st := range categoryStats {
		weightedSum += st.ProductivityWeight * float64(st.TimeSpent) / float64(totalTime)
	}

	return round2(5 + weightedSum*5)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Summarize renders the day's headline sentence sequence: site count,
// approximate duration, a productivity assessment, and the top three focus
// areas.
func Summarize(totalSites, totalTime int, score float64, top []storage.TopCategory) string {
	parts := []string{fmt.Sprintf("Visited %d unique websites", totalSites)}

	if totalTime > 0 {
		hours := totalTime / 60
		minutes := totalTime % 60
		if hours > 0 {
			parts = append(parts, fmt.Sprintf("spent approximately %dh %dm browsing", hours, minutes))
		} else {
			parts = append(parts, fmt.Sprintf("spent approximately %d minutes browsing", minutes))
		}
	}

	switch {
	case score >= 7:
		parts = append(parts, "This was a highly productive day with focus on valuable activities")
	case score >= 5:
		parts = append(parts, "This was a moderately productive day with balanced activities")
	default:
		parts = append(parts, "This day had more entertainment/leisure browsing than productive activities")
	}

	if len(top) > 0 {
		limit := len(top)
		if limit > 3 {
			limit = 3
		}
		focus := make([]string, 0, limit)
		for _, cat := range top[:limit] {
			focus = append(focus, fmt.Sprintf("%s (%dmin)", cat.Category, cat.TimeSpent))
		}
		parts = append(parts, "Primary focus areas: "+strings.Join(focus, ", "))
	}

	return strings.Join(parts, ". ") + "."
}
