package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/runnerr0/daybook/internal/export"
	"github.com/runnerr0/daybook/internal/journal"
)

// Scheduler runs journal generation on a wall-clock schedule: daily
// generation at a configured HH:MM, and a weekly summary every Sunday at
// midnight covering the week that started the previous Monday. Job errors
// are logged and the schedule keeps running.
type Scheduler struct {
	generator *journal.Generator
	exporter  *export.Exporter
	loc       *time.Location
	dailyAt   string
	cron      *cron.Cron
	log       zerolog.Logger
}

// New creates a Scheduler. dailyAt is a local-time "HH:MM" string.
func New(generator *journal.Generator, exporter *export.Exporter, loc *time.Location, dailyAt string, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		generator: generator,
		exporter:  exporter,
		loc:       loc,
		dailyAt:   dailyAt,
		log:       log,
	}
}

// dailySpec converts an "HH:MM" time of day into a cron expression.
func dailySpec(at string) (string, error) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid schedule time %q (want HH:MM)", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid schedule time %q (want HH:MM)", at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid schedule time %q (want HH:MM)", at)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// Start registers the daily and weekly jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	spec, err := dailySpec(s.dailyAt)
	if err != nil {
		return err
	}

	s.cron = cron.New(cron.WithLocation(s.loc))

	if _, err := s.cron.AddFunc(spec, s.runDaily); err != nil {
		return fmt.Errorf("schedule daily job: %w", err)
	}
	if _, err := s.cron.AddFunc("0 0 * * 0", s.runWeekly); err != nil {
		return fmt.Errorf("schedule weekly job: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("daily_at", s.dailyAt).Msg("scheduler started")
	return nil
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// NextRun returns the earliest upcoming job time, or the zero time when
// nothing is scheduled.
func (s *Scheduler) NextRun() time.Time {
	if s.cron == nil {
		return time.Time{}
	}
	var next time.Time
	for _, entry := range s.cron.Entries() {
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	return next
}

func (s *Scheduler) runDaily() {
	today := time.Now().In(s.loc)

	entry, err := s.generator.GenerateDaily(context.Background(), today)
	if err != nil {
		if errors.Is(err, journal.ErrNoHistory) {
			s.log.Info().Msg("no journal data to generate today")
		} else {
			s.log.Error().Err(err).Msg("daily journal generation failed")
		}
		return
	}

	if _, err := s.exporter.ExportDaily(entry); err != nil {
		s.log.Error().Err(err).Msg("daily journal export failed")
	}
}

func (s *Scheduler) runWeekly() {
	now := time.Now().In(s.loc)
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -daysSinceMonday)

	summary, err := s.generator.GenerateWeekly(context.Background(), monday)
	if err != nil {
		if errors.Is(err, journal.ErrNoHistory) {
			s.log.Info().Msg("no weekly summary data available")
		} else {
			s.log.Error().Err(err).Msg("weekly summary generation failed")
		}
		return
	}

	if _, err := s.exporter.ExportWeekly(summary); err != nil {
		s.log.Error().Err(err).Msg("weekly summary export failed")
	}
}
