package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/runnerr0/daybook/internal/scheduler"
)

// Execute implements the go-flags Commander interface for ScheduleCommand.
// It blocks until SIGINT or SIGTERM.
func (c *ScheduleCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	log := newLogger(c.globals, cfg)

	if !cfg.Scheduler.Enabled {
		return fmt.Errorf("scheduler is disabled in the config")
	}

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

	generator, err := newGenerator(cfg, store, loc, log)
	if err != nil {
		return err
	}

	exporter, err := newExporter(cfg, log)
	if err != nil {
		return err
	}

	sched := scheduler.New(generator, exporter, loc, cfg.Scheduler.Time, log)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	if next := sched.NextRun(); !next.IsZero() {
		fmt.Printf("Scheduler running; next job at %s. Press Ctrl-C to stop.\n", next.Format("2006-01-02 15:04:05"))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	return nil
}
