package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/runnerr0/daybook/internal/storage"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	if c.Format != "json" && c.Format != "csv" {
		return fmt.Errorf("invalid format %q (use json or csv)", c.Format)
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	to, err := parseDate(c.To, loc)
	if err != nil {
		return err
	}
	from := to.AddDate(0, 0, -30)
	if c.From != "" {
		if from, err = parseDate(c.From, loc); err != nil {
			return err
		}
	}

	fromDate := from.Format(storage.DateFormat)
	toDate := to.Format(storage.DateFormat)

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	entries, err := store.GetEntriesInRange(context.Background(), fromDate, toDate)
	if err != nil {
		return fmt.Errorf("loading entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Printf("No journal entries found between %s and %s\n", fromDate, toDate)
		return nil
	}

	outPath := c.Output
	if outPath == "" {
		outPath = fmt.Sprintf("export_%s_to_%s.%s", fromDate, toDate, c.Format)
	}

	switch c.Format {
	case "json":
		err = writeJSONExport(outPath, entries)
	case "csv":
		err = writeCSVExport(outPath, entries)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d entries to %s\n", len(entries), outPath)
	return nil
}

func writeJSONExport(path string, entries []storage.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// writeCSVExport writes the flat summary fields, one row per entry.
func writeCSVExport(path string, entries []storage.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"date", "total_sites_visited", "total_time_spent", "productivity_score", "summary"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Date,
			strconv.Itoa(e.TotalSitesVisited),
			strconv.Itoa(e.TotalTimeSpent),
			strconv.FormatFloat(e.ProductivityScore, 'f', 2, 64),
			e.Summary,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
