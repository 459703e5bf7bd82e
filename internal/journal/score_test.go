package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runnerr0/daybook/internal/storage"
)

func TestScore_ZeroTime(t *testing.T) {
	assert.Equal(t, 0.0, Score(nil))
	assert.Equal(t, 0.0, Score(map[string]storage.CategoryStat{
		"Development": {TimeSpent: 0, ProductivityWeight: 0.7},
	}))
}

func TestScore_NeutralWeight(t *testing.T) {
	got := Score(map[string]storage.CategoryStat{
		"Uncategorized": {TimeSpent: 60, ProductivityWeight: 0.0},
	})
	assert.Equal(t, 5.0, got, "zero-weight browsing scores the neutral midpoint")
}

func TestScore_TimeWeightedMean(t *testing.T) {
	// (0.7*7 + -0.2*2) / 9 = 0.5; 5 + 0.5*5 = 7.5
	got := Score(map[string]storage.CategoryStat{
		"Development":  {TimeSpent: 7, ProductivityWeight: 0.7},
		"Social Media": {TimeSpent: 2, ProductivityWeight: -0.2},
	})
	assert.Equal(t, 7.5, got)
}

func TestScore_RoundsToTwoDecimals(t *testing.T) {
	// (0.7*1 + -0.3*2) / 3 = 0.0333...; 5 + 0.1666... = 5.17
	got := Score(map[string]storage.CategoryStat{
		"Development":   {TimeSpent: 1, ProductivityWeight: 0.7},
		"Entertainment": {TimeSpent: 2, ProductivityWeight: -0.3},
	})
	assert.Equal(t, 5.17, got)
}

func TestScore_NotClamped(t *testing.T) {
	got := Score(map[string]storage.CategoryStat{
		"Extreme": {TimeSpent: 10, ProductivityWeight: 2.0},
	})
	assert.Equal(t, 15.0, got, "out-of-range manual weights pass through unclamped")
}

func TestSummarize_ShortDay(t *testing.T) {
	top := []storage.TopCategory{
		{Category: "Development", TimeSpent: 7},
		{Category: "Social Media", TimeSpent: 2},
	}
	got := Summarize(2, 9, 7.5, top)

	assert.Contains(t, got, "Visited 2 unique websites")
	assert.Contains(t, got, "spent approximately 9 minutes browsing")
	assert.Contains(t, got, "highly productive day")
	assert.Contains(t, got, "Primary focus areas: Development (7min), Social Media (2min)")
}

func TestSummarize_HoursAndMinutes(t *testing.T) {
	got := Summarize(10, 125, 5.3, nil)

	assert.Contains(t, got, "spent approximately 2h 5m browsing")
	assert.Contains(t, got, "moderately productive day")
}

func TestSummarize_LowScore(t *testing.T) {
	got := Summarize(3, 45, 3.1, nil)
	assert.Contains(t, got, "more entertainment/leisure browsing")
}

func TestSummarize_TopThreeOnly(t *testing.T) {
	top := []storage.TopCategory{
		{Category: "A", TimeSpent: 40},
		{Category: "B", TimeSpent: 30},
		{Category: "C", TimeSpent: 20},
		{Category: "D", TimeSpent: 10},
	}
	got := Summarize(4, 100, 5.0, top)

	assert.Contains(t, got, "A (40min), B (30min), C (20min)")
	assert.NotContains(t, got, "D (10min)")
}
