// Package scheduler triggers the daily matching run at a fixed local time.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler wraps robfig/cron for a single daily job.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	spec   string
}

// New creates a scheduler firing once per day at dailyAt ("HH:MM", local
// time).
func New(dailyAt string, job func(), logger *zap.Logger) (*Scheduler, error) {
	spec, err := dailySpec(dailyAt)
	if err != nil {
		return nil, err
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("registering cron job: %w", err)
	}

	return &Scheduler{cron: c, logger: logger, spec: spec}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.spec))
}

// Stop cancels the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// dailySpec converts "HH:MM" into a five-field cron spec.
func dailySpec(dailyAt string) (string, error) {
	parts := strings.Split(strings.TrimSpace(dailyAt), ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid daily time %q, expected HH:MM", dailyAt)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", dailyAt)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", dailyAt)
	}

	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
