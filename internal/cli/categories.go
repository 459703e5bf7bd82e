package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Execute implements the go-flags Commander interface for CategoriesCommand.
func (c *CategoriesCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	ctx := context.Background()

	if c.Set {
		if c.Domain == "" {
			return fmt.Errorf("--domain is required with --set")
		}
		if c.Category == "" {
			return fmt.Errorf("--category is required with --set")
		}

		domain := strings.ToLower(strings.TrimPrefix(c.Domain, "www."))
		if err := store.SetCategory(ctx, domain, c.Category, c.Weight); err != nil {
			return fmt.Errorf("setting category override: %w", err)
		}

		if c.globals.JSON {
			out := map[string]interface{}{
				"domain":              domain,
				"category":            c.Category,
				"productivity_weight": c.Weight,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Printf("Set %s -> %s (weight %.2f)\n", domain, c.Category, c.Weight)
		return nil
	}

	cats, err := store.AllCategories(ctx)
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}

	if c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cats)
	}

	if len(cats) == 0 {
		fmt.Println("No stored categories.")
		return nil
	}

	fmt.Printf("%-30s %-15s %s\n", "DOMAIN", "CATEGORY", "WEIGHT")
	for _, cat := range cats {
		fmt.Printf("%-30s %-15s %+.2f\n", cat.Domain, cat.Category, cat.ProductivityWeight)
	}

	return nil
}
