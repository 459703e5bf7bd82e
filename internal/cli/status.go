package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	TotalEntries      int64  `json:"total_entries"`
	TotalCategories   int64  `json:"total_categories"`
	OldestEntry       string `json:"oldest_entry,omitempty"`
	NewestEntry       string `json:"newest_entry,omitempty"`
	RetentionDays     int    `json:"retention_days"`
	ProfileFound      bool   `json:"profile_found"`
	ProfilePath       string `json:"profile_path,omitempty"`
	SchedulerEnabled  bool   `json:"scheduler_enabled"`
	ScheduleTime      string `json:"schedule_time"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	log := newLogger(c.globals, cfg)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	stats, err := store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	dbSize := store.DatabaseSize(dbPath)

	reader, err := newReader(cfg, loc, log)
	if err != nil {
		return err
	}
	profilePath := ""
	if reader != nil {
		profilePath = reader.ProfilePath()
	}

	if c.globals != nil && c.globals.JSON {
		out := statusJSON{
			Version:           c.version,
			DatabasePath:      dbPath,
			DatabaseSizeBytes: dbSize,
			TotalEntries:      stats.TotalEntries,
			TotalCategories:   stats.TotalCategories,
			OldestEntry:       stats.OldestEntry,
			NewestEntry:       stats.NewestEntry,
			RetentionDays:     cfg.Database.RetentionDays,
			ProfileFound:      reader != nil,
			ProfilePath:       profilePath,
			SchedulerEnabled:  cfg.Scheduler.Enabled,
			ScheduleTime:      cfg.Scheduler.Time,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println("Daybook Status")
	fmt.Println("==============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Entries:       %d\n", stats.TotalEntries)
	fmt.Printf("Categories:    %d\n", stats.TotalCategories)

	if stats.TotalEntries > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestEntry)
		fmt.Printf("Newest:        %s\n", stats.NewestEntry)
	}

	fmt.Printf("Retention:     %d days\n", cfg.Database.RetentionDays)

	fmt.Println()
	if reader != nil {
		fmt.Printf("Profile:       %s\n", profilePath)
	} else {
		fmt.Println("Profile:       not found")
	}
	if cfg.Scheduler.Enabled {
		fmt.Printf("Scheduler:     enabled (daily at %s)\n", cfg.Scheduler.Time)
	} else {
		fmt.Println("Scheduler:     disabled")
	}

	return nil
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
