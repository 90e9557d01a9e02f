package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Spok95/inventory-tracker/internal/service"
)

// Checker runs one alert rule pass.
type Checker interface {
	Check(ctx context.Context) (service.CheckResult, error)
}

// Scheduler runs the periodic alert check.
type Scheduler struct {
	cron    *cron.Cron
	checker Checker
	spec    string
	timeout time.Duration
	log     *slog.Logger
}

func New(spec string, loc *time.Location, checker Checker, timeout time.Duration, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Scheduler{cron: c, checker: checker, spec: spec, timeout: timeout, log: log}
}

// Start registers the check and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		return err
	}
	s.log.Info("scheduler started", "spec", s.spec)
	s.cron.Start()
	return nil
}

// Stop waits for a running check to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.checker.Check(ctx)
	if err != nil {
		s.log.Error("scheduled alert check failed", "err", err, "created", len(res.Created), "failed", len(res.Failed))
		return
	}
	s.log.Info("scheduled alert check", "created", len(res.Created), "skipped", len(res.Skipped))
}
