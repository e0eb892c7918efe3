// Package scheduler gates and retries whole-pipeline runs: weekday mornings
// only, US holidays skipped, fixed-delay linear retry.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"github.com/robfig/cron/v3"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/logger"
)

// RunFunc executes one complete newsletter run (fetch, summarize, render,
// send) and returns a short human-readable result summary.
type RunFunc func(ctx context.Context) (string, error)

// Notifier sends admin status emails. Satisfied by *email.Sender.
type Notifier interface {
	SendAdminNotification(adminEmail, subject, message string, success bool) error
}

// Scheduler wraps a pipeline run with gating, retry, and notification.
type Scheduler struct {
	cfg      config.Scheduler
	run      RunFunc
	notifier Notifier
	calendar *cal.BusinessCalendar
	Now      func() time.Time
	Sleep    func(ctx context.Context, d time.Duration) error
}

// New creates a scheduler for the given run function. notifier may be nil
// when admin notifications are not wanted.
func New(cfg config.Scheduler, run RunFunc, notifier Notifier) *Scheduler {
	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(us.Holidays...)

	return &Scheduler{
		cfg:      cfg,
		run:      run,
		notifier: notifier,
		calendar: calendar,
		Now:      time.Now,
		Sleep:    sleepCtx,
	}
}

// ShouldRunToday reports whether the newsletter should run on the given day,
// with a reason when it should not. Weekends always skip; holidays skip when
// configured.
func (s *Scheduler) ShouldRunToday(now time.Time) (bool, string) {
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return false, fmt.Sprintf("not a scheduled day (today is %s)", now.Weekday())
	}
	if s.cfg.SkipHolidays {
		if actual, observed, holiday := s.calendar.IsHoliday(now); actual || observed {
			name := "holiday"
			if holiday != nil {
				name = holiday.Name
			}
			return false, fmt.Sprintf("holiday: %s", name)
		}
	}
	return true, "scheduled day, no holidays"
}

// RunOnce performs one gated, retried newsletter run. Each retry re-runs the
// entire pipeline from scratch with a fixed delay between attempts; no
// partial results are carried over. The gate skipping a day is success, not
// failure.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	now := s.Now()
	if ok, reason := s.ShouldRunToday(now); !ok {
		logger.Info("⏭️ Skipping newsletter run", "reason", reason)
		return nil
	}

	attempts := s.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		logger.Info("🚀 Starting newsletter run", "attempt", attempt, "of", attempts)
		summary, err := s.run(ctx)
		if err == nil {
			logger.Info("🎉 Newsletter run succeeded", "attempt", attempt)
			s.notify("Newsletter sent", summary, true)
			return nil
		}
		lastErr = err
		logger.Error("newsletter run failed", err, "attempt", attempt)

		if attempt < attempts {
			logger.Info("⏳ Waiting before retry", "delay", s.cfg.RetryDelay.String())
			if err := s.Sleep(ctx, s.cfg.RetryDelay); err != nil {
				return err
			}
		}
	}

	s.notify("Newsletter generation failed",
		fmt.Sprintf("All %d attempts failed.\nLast error: %v", attempts, lastErr), false)
	return fmt.Errorf("newsletter run failed after %d attempts: %w", attempts, lastErr)
}

// Daemon blocks, running the gated pipeline every scheduled day at the
// configured time until the context is cancelled.
func (s *Scheduler) Daemon(ctx context.Context) error {
	hour, minute, err := parseClock(s.cfg.Time)
	if err != nil {
		return err
	}

	c := cron.New()
	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	_, err = c.AddFunc(spec, func() {
		if err := s.RunOnce(ctx); err != nil {
			logger.Error("scheduled newsletter run failed", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	logger.Info("⏰ Scheduler started", "time", s.cfg.Time)
	c.Start()
	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	return ctx.Err()
}

// notify sends an admin notification when a notifier and admin address are
// configured. Notification failures are logged, never fatal.
func (s *Scheduler) notify(subject, message string, success bool) {
	if s.notifier == nil || s.cfg.AdminEmail == "" {
		return
	}
	if err := s.notifier.SendAdminNotification(s.cfg.AdminEmail, subject, message, success); err != nil {
		logger.Warn("failed to send admin notification", "error", err.Error())
	}
}

// parseClock parses "HH:MM".
func parseClock(value string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid schedule time %q (want HH:MM): %w", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid schedule time %q (want HH:MM)", value)
	}
	return hour, minute, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
