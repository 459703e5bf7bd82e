package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/daybook/internal/storage"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	days := cfg.Database.RetentionDays
	if c.OlderThan > 0 {
		days = c.OlderThan
	}
	if days <= 0 {
		fmt.Println("Retention is disabled; nothing to prune.")
		return nil
	}

	cutoff := time.Now().In(loc).AddDate(0, 0, -days).Format(storage.DateFormat)

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	ctx := context.Background()

	if c.DryRun {
		old, err := store.GetEntriesInRange(ctx, "0000-01-01", cutoff)
		if err != nil {
			return fmt.Errorf("listing prunable entries: %w", err)
		}
		// GetEntriesInRange is inclusive of the cutoff date itself, which
		// PruneBefore keeps.
		count := 0
		for _, e := range old {
			if e.Date < cutoff {
				count++
			}
		}

		if c.globals.JSON {
			out := map[string]interface{}{"cutoff": cutoff, "would_delete": count, "dry_run": true}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		fmt.Printf("Would delete %d entries older than %s\n", count, cutoff)
		return nil
	}

	deleted, err := store.PruneBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("pruning entries: %w", err)
	}

	if c.globals.JSON {
		out := map[string]interface{}{"cutoff": cutoff, "deleted": deleted}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Deleted %d entries older than %s\n", deleted, cutoff)
	return nil
}
