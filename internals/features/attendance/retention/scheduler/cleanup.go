package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	retService "attendance_backend/internals/features/attendance/retention/service"
	"attendance_backend/internals/helpers/logger"
)

// Runner: cukup RunMonthlyCleanup dari retention Engine
type Runner interface {
	RunMonthlyCleanup(ctx context.Context) (retService.Result, error)
}

// Scheduler jalankan purge bulanan via cron (di zona sipil) + sekali saat start.
type Scheduler struct {
	runner   Runner
	schedule string
	cron     *cron.Cron
	log      zerolog.Logger

	mu      sync.Mutex
	running bool
	initial sync.WaitGroup
}

// NewScheduler: schedule kosong → scheduler tidak jalan (hanya purge saat start).
func NewScheduler(runner Runner, schedule string, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(loc)),
		log:      logger.WithComponent("retention.scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule != "" {
		if _, err := cron.ParseStandard(s.schedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
		}
	}

	// purge awal; gagal hanya di-log
	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.RunOnce(ctx)
	}()

	if s.schedule == "" {
		s.log.Info().Msg("retention schedule not configured, skipping cron")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.log.Info().Str("schedule", s.schedule).Msg("🗓️ retention scheduler started")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Scheduler) RunOnce(ctx context.Context) {
	res, err := s.runner.RunMonthlyCleanup(ctx)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Msg("[CLEANUP ERROR] monthly cleanup failed, will retry")
	case res.Skipped:
		s.log.Debug().Str("reason", res.Reason).Msg("[CLEANUP] skipped")
	default:
		s.log.Info().Int64("deleted", res.Deleted).Str("cutoff", res.Cutoff).Msg("[CLEANUP] done")
	}
}

// Stop hentikan cron dan tunggu job yang sedang jalan (termasuk purge awal).
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.log.Info().Msg("retention scheduler stopped")
	}
	s.initial.Wait()
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
