/*
Package notify is the notification dispatch boundary.

PURPOSE:
  The engine only decides WHICH applications are overdue; delivering the
  reminder (email, chat, ...) and stamping the remind date afterwards is the
  dispatcher's job. Delivery transport lives behind the Notifier interface so
  the scheduler and handlers stay independent of it.
*/
package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/warp/leave-engine/leave"
)

// Notifier delivers an overdue reminder for one waiting application.
// Implementations must return a non-nil error when delivery fails; the
// caller only stamps the remind date after a successful delivery.
type Notifier interface {
	NotifyOverdue(ctx context.Context, app leave.Application) error
}

// LogNotifier records reminders in the log instead of delivering them.
// Used in development and as the default when no mail transport is wired.
type LogNotifier struct {
	Log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogNotifier{Log: log}
}

func (n *LogNotifier) NotifyOverdue(_ context.Context, app leave.Application) error {
	n.Log.WithFields(logrus.Fields{
		"application": app.ID,
		"person":      app.Person,
		"applied":     app.ApplicationDate.String(),
		"start":       app.StartDate.String(),
		"end":         app.EndDate.String(),
	}).Info("reminder: application still waiting for a decision")
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
