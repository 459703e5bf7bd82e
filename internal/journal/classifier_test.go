package journal

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/daybook/internal/storage"
)

// fakeCategoryStore is an in-memory CategoryStore for classifier and
// analyzer tests.
type fakeCategoryStore struct {
	m map[string]storage.SiteCategory
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{m: map[string]storage.SiteCategory{}}
}

func (f *fakeCategoryStore) GetCategory(ctx context.Context, domain string) (*storage.SiteCategory, error) {
	if c, ok := f.m[domain]; ok {
		return &c, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeCategoryStore) SetCategory(ctx context.Context, domain, category string, weight float64) error {
	f.m[domain] = storage.SiteCategory{Domain: domain, Category: category, ProductivityWeight: weight}
	return nil
}

func TestClassify_StoredMappingWins(t *testing.T) {
	store := newFakeCategoryStore()
	store.m["youtube.com"] = storage.SiteCategory{
		Domain: "youtube.com", Category: "Music Production", ProductivityWeight: 0.5,
	}
	c := NewClassifier(store, zerolog.Nop())

	got := c.Classify(context.Background(), "youtube.com")
	assert.Equal(t, "Music Production", got.Category, "manual override must beat the heuristic")
	assert.Equal(t, 0.5, got.ProductivityWeight)
}

func TestClassify_KeywordHeuristic(t *testing.T) {
	c := NewClassifier(newFakeCategoryStore(), zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		domain   string
		category string
		weight   float64
	}{
		{"github.example.com", "Development", 0.7},
		{"music.youtube.com", "Entertainment", -0.3},
		{"social.example.com", "Social Media", -0.2},
		{"news.example.org", "News", 0.1},
		{"en.wikipedia.org", "Research", 0.6},
		{"mail.example.com", "Communication", 0.3},
		{"shop.example.com", "Shopping", -0.1},
	}
	for _, tc := range tests {
		got := c.Classify(ctx, tc.domain)
		assert.Equal(t, tc.category, got.Category, "category for %s", tc.domain)
		assert.Equal(t, tc.weight, got.ProductivityWeight, "weight for %s", tc.domain)
	}
}

func TestClassify_RuleOrderIsPriority(t *testing.T) {
	c := NewClassifier(newFakeCategoryStore(), zerolog.Nop())

	// Matches both the Development and Entertainment keyword sets; the
	// earlier rule must win.
	got := c.Classify(context.Background(), "github-youtube.example")
	assert.Equal(t, "Development", got.Category)
}

func TestClassify_UncategorizedDefault(t *testing.T) {
	c := NewClassifier(newFakeCategoryStore(), zerolog.Nop())

	got := c.Classify(context.Background(), "example.net")
	assert.Equal(t, "Uncategorized", got.Category)
	assert.Equal(t, 0.0, got.ProductivityWeight)
}

func TestClassify_PersistsResult(t *testing.T) {
	store := newFakeCategoryStore()
	c := NewClassifier(store, zerolog.Nop())
	ctx := context.Background()

	c.Classify(ctx, "github.example.com")

	stored, err := store.GetCategory(ctx, "github.example.com")
	require.NoError(t, err, "heuristic result should be written back")
	assert.Equal(t, "Development", stored.Category)

	// A second classification reads the stored row, so it stays stable
	// even if the rule table changes.
	got := c.Classify(ctx, "github.example.com")
	assert.Equal(t, "Development", got.Category)
}
