package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/daybook/internal/storage"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("refusing to purge without --all")
	}

	if !c.Force {
		fmt.Print("This will delete ALL journal entries, hourly stats, and category overrides.\nType PURGE to confirm: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if strings.TrimSpace(line) != "PURGE" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	db := c.db
	var store *storage.SQLiteStore
	if db == nil {
		var err error
		cfg, err := loadConfig(c.globals)
		if err != nil {
			return err
		}
		store, db, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
	} else {
		var err error
		store, err = storage.NewSQLiteStore(db)
		if err != nil {
			return err
		}
	}
	defer store.Close()

	if err := store.PurgeAll(context.Background()); err != nil {
		return fmt.Errorf("purging database: %w", err)
	}

	fmt.Println("All journal data deleted.")
	return nil
}

// withDB injects a database handle, used by tests to avoid touching the
// configured database path.
func (c *PurgeCommand) withDB(db *sql.DB) *PurgeCommand {
	c.db = db
	return c
}
