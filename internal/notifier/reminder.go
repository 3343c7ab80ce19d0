package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/policy"
)

// DueLister lists incomplete entries due on now's calendar day.
type DueLister interface {
	DueToday(now time.Time) []models.Entry
}

// Outcome describes what a reminder run did.
type Outcome int

const (
	Sent Outcome = iota
	AlreadyNotified
	NothingDue
)

func (o Outcome) String() string {
	switch o {
	case Sent:
		return "sent"
	case AlreadyNotified:
		return "already notified today"
	case NothingDue:
		return "nothing due"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result reports a reminder run.
type Result struct {
	Outcome Outcome
	Due     []models.Entry
	Message string
}

// Reminder sends at most one due-today notification per calendar day.
type Reminder struct {
	Todo   DueLister
	Guard  policy.DailyGuard
	Sender Sender
}

// Message formats the reminder text for due.
func Message(due []models.Entry) string {
	titles := make([]string, len(due))
	for i, e := range due {
		titles[i] = e.Title
	}
	noun := "tasks"
	if len(due) == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s due today: %s", len(due), noun, strings.Join(titles, ", "))
}

// Run notifies about entries due today. The day is marked only after a
// successful send, and a day with nothing due is left unmarked.
func (r *Reminder) Run(ctx context.Context, now time.Time) (Result, error) {
	if !r.Guard.Due(now) {
		return Result{Outcome: AlreadyNotified}, nil
	}

	due := r.Todo.DueToday(now)
	if len(due) == 0 {
		return Result{Outcome: NothingDue}, nil
	}

	msg := Message(due)
	if err := r.Sender.Notify(ctx, msg); err != nil {
		return Result{Due: due, Message: msg}, fmt.Errorf("failed to send reminder: %w", err)
	}
	if err := r.Guard.Mark(now); err != nil {
		logger.Warn("Failed to persist notification date", "key", r.Guard.Key, "error", err)
	}
	logger.Info("Sent due-today reminder", "count", len(due))
	return Result{Outcome: Sent, Due: due, Message: msg}, nil
}
