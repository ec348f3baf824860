/*
scheduler.go - Automated reminder scheduler

PURPOSE:
  Periodically scans waiting applications for ones an approver should be
  nudged about, dispatches a reminder for each, and stamps the remind date
  so the same day never produces a second reminder.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - A remind date is only stamped after the reminder was delivered,
    so failed deliveries are retried on the next tick
  - Applications already reminded today are skipped

CONFIGURATION:
  - CheckInterval:      How often to scan (default: 1 hour)
  - DaysBeforeReminder: Grace period before the first reminder

USAGE:
  scheduler := NewReminderScheduler(store, notifier, 2)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RunReminders endpoint (manual dispatch)
  - leave/reminder.go: Due-for-reminder decision
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/notify"
)

// ReminderScheduler handles automated overdue-application reminders.
type ReminderScheduler struct {
	Applications       leave.ApplicationStore
	Notifier           notify.Notifier
	DaysBeforeReminder int
	CheckInterval      time.Duration
	Enabled            bool
	Log                *logrus.Logger

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex

	// today is overridable for tests; defaults to leave.Today.
	today func() leave.Date
}

// NewReminderScheduler creates a new scheduler.
func NewReminderScheduler(applications leave.ApplicationStore, notifier notify.Notifier, daysBeforeReminder int) *ReminderScheduler {
	return &ReminderScheduler{
		Applications:       applications,
		Notifier:           notifier,
		DaysBeforeReminder: daysBeforeReminder,
		CheckInterval:      1 * time.Hour,
		Enabled:            true,
		Log:                logrus.StandardLogger(),
		stop:               make(chan bool),
		today:              leave.Today,
	}
}

// Start begins the scheduler.
func (rs *ReminderScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		rs.Log.Info("reminder scheduler disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)

	go rs.run()

	rs.Log.WithField("interval", rs.CheckInterval).Info("reminder scheduler started")
}

// Stop stops the scheduler.
func (rs *ReminderScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.Log.Info("reminder scheduler stopped")
	}
}

func (rs *ReminderScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.RunOnce(context.Background())

	for {
		select {
		case <-rs.ticker.C:
			rs.RunOnce(context.Background())
		case <-rs.stop:
			return
		}
	}
}

// RunOnce performs a single reminder sweep: scan, dispatch, stamp.
// Returns how many reminders were delivered.
func (rs *ReminderScheduler) RunOnce(ctx context.Context) int {
	today := rs.today()

	waiting, err := rs.Applications.ApplicationsByStatus(ctx, leave.StatusWaiting)
	if err != nil {
		rs.Log.WithError(err).Error("reminder sweep failed to list waiting applications")
		return 0
	}

	due := leave.DueForReminder(waiting, today, rs.DaysBeforeReminder)
	if len(due) == 0 {
		return 0
	}

	notified := 0
	for _, app := range due {
		if err := rs.Notifier.NotifyOverdue(ctx, app); err != nil {
			rs.Log.WithError(err).WithField("application", app.ID).Warn("reminder delivery failed")
			continue
		}
		if err := rs.Applications.StampRemindDate(ctx, app.ID, today); err != nil {
			rs.Log.WithError(err).WithField("application", app.ID).Warn("failed to stamp remind date")
			continue
		}
		notified++
	}

	rs.Log.WithFields(logrus.Fields{
		"due":      len(due),
		"notified": notified,
		"today":    today.String(),
	}).Info("reminder sweep completed")

	return notified
}
