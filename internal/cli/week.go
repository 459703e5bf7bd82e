package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/runnerr0/daybook/internal/journal"
)

// Execute implements the go-flags Commander interface for WeekCommand.
func (c *WeekCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	log := newLogger(c.globals, cfg)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	start, err := parseDate(c.Start, loc)
	if err != nil {
		return err
	}
	if c.Start == "" || c.Start == "today" {
		start = mondayOf(start)
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	generator, err := newGenerator(cfg, store, loc, log)
	if err != nil {
		return err
	}

	summary, err := generator.GenerateWeekly(context.Background(), start)
	if err != nil {
		if errors.Is(err, journal.ErrNoHistory) {
			fmt.Printf("No journal entries found for the week starting %s\n", start.Format("2006-01-02"))
			return nil
		}
		return fmt.Errorf("generating weekly summary: %w", err)
	}

	outPath := ""
	if !c.NoExport {
		exporter, err := newExporter(cfg, log)
		if err != nil {
			return err
		}
		if outPath, err = exporter.ExportWeekly(summary); err != nil {
			return err
		}
	}

	if c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("Weekly summary %s to %s\n", summary.StartDate, summary.EndDate)
	fmt.Printf("  Days with data:     %d\n", summary.DailyEntriesCount)
	fmt.Printf("  Sites visited:      %d\n", summary.TotalSitesVisited)
	fmt.Printf("  Time spent:         %s\n", formatMinutes(summary.TotalTimeSpent))
	fmt.Printf("  Avg productivity:   %.2f/10\n", summary.AverageProductivityScore)
	if len(summary.TopCategories) > 0 {
		fmt.Println("  Top categories:")
		for _, cat := range summary.TopCategories {
			fmt.Printf("    %-20s %s (%d visits)\n", cat.Category, formatMinutes(cat.TimeSpent), cat.Visits)
		}
	}
	if outPath != "" {
		fmt.Printf("  Exported to:        %s\n", outPath)
	}

	return nil
}
