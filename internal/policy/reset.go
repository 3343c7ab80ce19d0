package policy

import (
	"time"

	"github.com/julianstephens/hearth/internal/logger"
)

// ScheduledReset fires at most once per calendar day, at the first check made
// at or after TriggerHour. Days on which no check happens are skipped; there
// is no catch-up.
type ScheduledReset struct {
	Guard       DailyGuard
	TriggerHour int
}

// Eligible reports whether a check at now would fire.
func (r ScheduledReset) Eligible(now time.Time) bool {
	return now.Hour() >= r.TriggerHour && r.Guard.Due(now)
}

// Check runs reset when eligible and records the day. It reports whether reset ran.
// A failure to record the day is logged; the reset still counts as applied.
func (r ScheduledReset) Check(now time.Time, reset func()) bool {
	if !r.Eligible(now) {
		return false
	}
	reset()
	if err := r.Guard.Mark(now); err != nil {
		logger.Warn("Failed to persist reset flag", "key", r.Guard.Key, "error", err)
	}
	logger.Debug("Scheduled reset applied", "key", r.Guard.Key, "hour", r.TriggerHour)
	return true
}
