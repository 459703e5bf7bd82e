package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// bookmarkJSON is the JSON output structure for one bookmark.
type bookmarkJSON struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	DateAdded string `json:"date_added,omitempty"`
}

// Execute implements the go-flags Commander interface for BookmarksCommand.
func (c *BookmarksCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	log := newLogger(c.globals, cfg)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	reader, err := newReader(cfg, loc, log)
	if err != nil {
		return err
	}
	if reader == nil {
		fmt.Println("No Firefox profile found.")
		return nil
	}

	bookmarks := reader.Bookmarks(context.Background())

	if c.globals.JSON {
		out := make([]bookmarkJSON, len(bookmarks))
		for i, b := range bookmarks {
			out[i] = bookmarkJSON{Title: b.Title, URL: b.URL, Domain: b.Domain}
			if !b.DateAdded.IsZero() {
				out[i].DateAdded = b.DateAdded.Format(time.RFC3339)
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks found.")
		return nil
	}

	for _, b := range bookmarks {
		fmt.Printf("%s\n  %s\n", b.Title, b.URL)
	}

	return nil
}
