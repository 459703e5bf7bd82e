package cli

import "database/sql"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// GenerateCommand generates the journal entry for one date.
type GenerateCommand struct {
	Date     string `long:"date" description:"Date in YYYY-MM-DD format or 'today'" default:"today"`
	NoExport bool   `long:"no-export" description:"Skip writing the markdown file"`

	globals *GlobalFlags
	version string
}

// WeekCommand summarizes a week of persisted entries.
type WeekCommand struct {
	Start    string `long:"start" description:"Week start date (YYYY-MM-DD); defaults to this week's Monday"`
	NoExport bool   `long:"no-export" description:"Skip writing the markdown file"`

	globals *GlobalFlags
	version string
}

// ExportCommand dumps journal entries for a date range to JSON or CSV.
type ExportCommand struct {
	Format string `long:"format" description:"Export format: json | csv" default:"json"`
	From   string `long:"from" description:"Range start (YYYY-MM-DD); defaults to 30 days ago"`
	To     string `long:"to" description:"Range end (YYYY-MM-DD); defaults to today"`
	Output string `long:"output" description:"Output file path (defaults to export_<from>_to_<to>.<format>)"`

	globals *GlobalFlags
	version string
}

// CategoriesCommand lists stored domain categories or sets a manual override.
type CategoriesCommand struct {
	Set      bool    `long:"set" description:"Set a manual category override"`
	Domain   string  `long:"domain" description:"Domain to override (required with --set)"`
	Category string  `long:"category" description:"Category name (required with --set)"`
	Weight   float64 `long:"weight" description:"Productivity weight, roughly -1.0..1.0" default:"0"`

	globals *GlobalFlags
	version string
}

// TopCommand lists the most visited sites from Firefox history.
type TopCommand struct {
	Limit int `long:"limit" description:"Maximum sites to list" default:"20"`

	globals *GlobalFlags
	version string
}

// BookmarksCommand lists Firefox bookmarks.
type BookmarksCommand struct {
	globals *GlobalFlags
	version string
}

// StatusCommand shows journal database statistics and configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PruneCommand deletes journal entries older than the retention period.
type PruneCommand struct {
	OlderThan int  `long:"older-than" description:"Override retention period in days"`
	DryRun    bool `long:"dry-run" description:"Show what would be pruned without deleting"`

	globals *GlobalFlags
	version string
}

// PurgeCommand deletes ALL journal data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	db      *sql.DB // injectable for testing; nil means open default DB
}

// ScheduleCommand runs the cron daemon for daily/weekly generation.
type ScheduleCommand struct {
	globals *GlobalFlags
	version string
}
