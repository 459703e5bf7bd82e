package journal

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/runnerr0/daybook/internal/storage"
)

// CategoryStore is the slice of the journal store the classifier needs.
type CategoryStore interface {
	GetCategory(ctx context.Context, domain string) (*storage.SiteCategory, error)
	SetCategory(ctx context.Context, domain, category string, weight float64) error
}

// categoryRule maps a keyword set to a category and productivity weight.
// Rules are evaluated in order; the first match wins.
type categoryRule struct {
	keywords []string
	category string
	weight   float64
}

// defaultRules is the fixed heuristic table, in priority order.
var defaultRules = []categoryRule{
	{[]string{"github", "gitlab", "stackoverflow", "docs", "developer"}, "Development", 0.7},
	{[]string{"youtube", "netflix", "twitch", "entertainment"}, "Entertainment", -0.3},
	{[]string{"facebook", "twitter", "instagram", "tiktok", "social"}, "Social Media", -0.2},
	{[]string{"news", "cnn", "bbc", "reuters"}, "News", 0.1},
	{[]string{"wikipedia", "research", "academic", "edu"}, "Research", 0.6},
	{[]string{"mail", "email", "gmail", "outlook"}, "Communication", 0.3},
	{[]string{"shop", "amazon", "ebay", "store"}, "Shopping", -0.1},
}

// Classifier maps a domain to a category and productivity weight. Stored
// mappings always win, so manual overrides are never clobbered by the
// heuristic; heuristic and default results are written back so future
// lookups stay stable even if the rule table changes.
type Classifier struct {
	store CategoryStore
	log   zerolog.Logger
}

// NewClassifier creates a Classifier backed by the given category store.
func NewClassifier(store CategoryStore, log zerolog.Logger) *Classifier {
	return &Classifier{store: store, log: log}
}

// Classify returns the category mapping for a domain. Lookup order: stored
// mapping, keyword heuristic, then the "Uncategorized" default.
func (c *Classifier) Classify(ctx context.Context, domain string) storage.SiteCategory {
	stored, err := c.store.GetCategory(ctx, domain)
	if err == nil {
		return *stored
	}
	if !errors.Is(err, storage.ErrNotFound) {
		c.log.Error().Err(err).Str("domain", domain).Msg("category lookup failed")
	}

	result := storage.SiteCategory{
		Domain:             domain,
		Category:           "Uncategorized",
		ProductivityWeight: 0.0,
	}

	for _, rule := range defaultRules {
		if matchesAny(domain, rule.keywords) {
			result.Category = rule.category
			result.ProductivityWeight = rule.weight
			break
		}
	}

	if err := c.store.SetCategory(ctx, domain, result.Category, result.ProductivityWeight); err != nil {
		c.log.Warn().Err(err).Str("domain", domain).Msg("failed to persist category")
	}

	return result
}

func matchesAny(domain string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(domain, kw) {
			return true
		}
	}
	return false
}
