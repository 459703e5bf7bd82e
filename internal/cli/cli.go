package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Generate   *GenerateCommand
	Week       *WeekCommand
	Export     *ExportCommand
	Categories *CategoriesCommand
	Top        *TopCommand
	Bookmarks  *BookmarksCommand
	Status     *StatusCommand
	Prune      *PruneCommand
	Purge      *PurgeCommand
	Schedule   *ScheduleCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "daybook"
	parser.LongDescription = "Daily browsing journal generated from your local Firefox history."

	cmds := &commands{
		Generate:   &GenerateCommand{globals: &globals, version: version},
		Week:       &WeekCommand{globals: &globals, version: version},
		Export:     &ExportCommand{globals: &globals, version: version},
		Categories: &CategoriesCommand{globals: &globals, version: version},
		Top:        &TopCommand{globals: &globals, version: version},
		Bookmarks:  &BookmarksCommand{globals: &globals, version: version},
		Status:     &StatusCommand{globals: &globals, version: version},
		Prune:      &PruneCommand{globals: &globals, version: version},
		Purge:      &PurgeCommand{globals: &globals, version: version},
		Schedule:   &ScheduleCommand{globals: &globals, version: version},
	}

	parser.AddCommand("generate", "Generate a daily journal entry", "Read Firefox history for a date, analyze it, and persist the journal entry.", cmds.Generate)
	parser.AddCommand("week", "Summarize a week", "Aggregate the persisted daily entries of one week into a weekly summary.", cmds.Week)
	parser.AddCommand("export", "Export journal data", "Export persisted journal entries for a date range to JSON or CSV.", cmds.Export)
	parser.AddCommand("categories", "List or override site categories", "List stored domain categories, or set a manual category override for a domain.", cmds.Categories)
	parser.AddCommand("top", "Show most visited sites", "List the most visited sites from Firefox history.", cmds.Top)
	parser.AddCommand("bookmarks", "List Firefox bookmarks", "List all URL bookmarks from the Firefox profile.", cmds.Bookmarks)
	parser.AddCommand("status", "Show journal statistics", "Show journal database statistics and configuration summary.", cmds.Status)
	parser.AddCommand("prune", "Apply retention pruning", "Delete journal entries older than the retention period.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL journal data", "Delete ALL journal data. Destructive operation with safety prompt.", cmds.Purge)
	parser.AddCommand("schedule", "Run the scheduler daemon", "Run the cron daemon that generates daily entries and weekly summaries.", cmds.Schedule)

	return parser, &globals, cmds
}

// Run is the main entry point for the daybook CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("daybook %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
