package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// topSiteJSON is the JSON output structure for one most-visited site.
type topSiteJSON struct {
	Domain     string `json:"domain"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	VisitCount int    `json:"visit_count"`
	LastVisit  string `json:"last_visit,omitempty"`
}

// Execute implements the go-flags Commander interface for TopCommand.
func (c *TopCommand) Execute(args []string) error {
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

	sites := reader.MostVisited(context.Background(), c.Limit)

	if c.globals.JSON {
		out := make([]topSiteJSON, len(sites))
		for i, s := range sites {
			out[i] = topSiteJSON{
				Domain:     s.Domain,
				Title:      s.Title,
				URL:        s.URL,
				VisitCount: s.VisitCount,
			}
			if !s.LastVisit.IsZero() {
				out[i].LastVisit = s.LastVisit.Format(time.RFC3339)
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(sites) == 0 {
		fmt.Println("No visited sites found.")
		return nil
	}

	fmt.Printf("%-30s %-8s %s\n", "DOMAIN", "VISITS", "TITLE")
	for _, s := range sites {
		title := s.Title
		if len(title) > 50 {
			title = title[:50] + "..."
		}
		fmt.Printf("%-30s %-8d %s\n", s.Domain, s.VisitCount, title)
	}

	return nil
}
