package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/runnerr0/daybook/internal/config"
	"github.com/runnerr0/daybook/internal/export"
	"github.com/runnerr0/daybook/internal/journal"
	"github.com/runnerr0/daybook/internal/storage"
)

// Execute implements the go-flags Commander interface for GenerateCommand.
func (c *GenerateCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	log := newLogger(c.globals, cfg)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Reject malformed dates before touching any store.
	day, err := parseDate(c.Date, loc)
	if err != nil {
		return err
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

	entry, err := generator.GenerateDaily(context.Background(), day)
	if err != nil {
		if errors.Is(err, journal.ErrNoHistory) {
			fmt.Printf("No browsing history found for %s\n", day.Format("2006-01-02"))
			return nil
		}
		return fmt.Errorf("generating journal: %w", err)
	}

	outPath := ""
	if !c.NoExport {
		outPath, err = exportEntry(cfg, entry, log)
		if err != nil {
			return err
		}
	}

	if c.globals.JSON {
		out := map[string]interface{}{
			"date":                entry.Date,
			"total_sites_visited": entry.TotalSitesVisited,
			"total_time_spent":    entry.TotalTimeSpent,
			"productivity_score":  entry.ProductivityScore,
			"summary":             entry.Summary,
		}
		if outPath != "" {
			out["exported_to"] = outPath
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Journal generated for %s\n", entry.Date)
	fmt.Printf("  Sites visited:      %d\n", entry.TotalSitesVisited)
	fmt.Printf("  Time spent:         %s\n", formatMinutes(entry.TotalTimeSpent))
	fmt.Printf("  Productivity score: %.2f/10\n", entry.ProductivityScore)
	if outPath != "" {
		fmt.Printf("  Exported to:        %s\n", outPath)
	}

	return nil
}

// newExporter builds the markdown exporter from the config paths.
func newExporter(cfg *config.Config, log zerolog.Logger) (*export.Exporter, error) {
	outDir, err := config.ExpandPath(cfg.Journal.OutputDirectory)
	if err != nil {
		return nil, err
	}
	tmplPath := cfg.Journal.TemplatePath
	if tmplPath != "" {
		if tmplPath, err = config.ExpandPath(tmplPath); err != nil {
			return nil, err
		}
	}
	return export.NewExporter(outDir, tmplPath, log)
}

// exportEntry writes the markdown file for a freshly generated entry.
func exportEntry(cfg *config.Config, entry *storage.Entry, log zerolog.Logger) (string, error) {
	exporter, err := newExporter(cfg, log)
	if err != nil {
		return "", err
	}
	return exporter.ExportDaily(entry)
}
