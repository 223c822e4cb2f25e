package alarm

import (
	"fmt"
	"strings"
	"time"

	"github.com/adhocore/gronx"
)

// RepeatKind discriminates the recurrence rule variants.
type RepeatKind string

const (
	// RepeatNone marks a one-shot alarm, removed after firing.
	RepeatNone RepeatKind = ""

	// RepeatEveryNDays repeats a fixed number of days after each deadline.
	RepeatEveryNDays RepeatKind = "every_n_days"

	// RepeatWeekdays repeats at the deadline's time of day on a set of
	// weekdays, evaluated in the daemon's local zone.
	RepeatWeekdays RepeatKind = "weekdays"

	// RepeatCron repeats per a 5-field cron expression, evaluated in the
	// daemon's local zone.
	RepeatCron RepeatKind = "cron"
)

// Repeat is a recurrence rule represented as data. The scheduler never
// branches on calendar math itself; it only calls NextAfter.
type Repeat struct {
	Kind     RepeatKind     `json:"kind,omitempty"`
	Days     int            `json:"days,omitempty"`
	Weekdays []time.Weekday `json:"weekdays,omitempty"`
	Cron     string         `json:"cron,omitempty"`
}

// IsNone reports whether the rule is one-shot.
func (r Repeat) IsNone() bool { return r.Kind == RepeatNone }

func (r Repeat) clone() Repeat {
	c := r
	if r.Weekdays != nil {
		c.Weekdays = append([]time.Weekday(nil), r.Weekdays...)
	}
	return c
}

// Validate checks the rule for internal consistency.
func (r Repeat) Validate() error {
	switch r.Kind {
	case RepeatNone:
		return nil
	case RepeatEveryNDays:
		if r.Days <= 0 {
			return fmt.Errorf("repeat: days must be positive, got %d", r.Days)
		}
	case RepeatWeekdays:
		if len(r.Weekdays) == 0 {
			return fmt.Errorf("repeat: weekday set is empty")
		}
		for _, wd := range r.Weekdays {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("repeat: invalid weekday %d", wd)
			}
		}
	case RepeatCron:
		if len(strings.Fields(r.Cron)) != 5 || !gronx.IsValid(r.Cron) {
			return fmt.Errorf("repeat: invalid cron expression %q", r.Cron)
		}
	default:
		return fmt.Errorf("repeat: unknown kind %q", r.Kind)
	}
	return nil
}

// NextAfter returns the rule's first occurrence strictly after now, given the
// deadline that just fired. Occurrences between deadline and now are skipped,
// so a backlog accumulated while the process was offline never replays.
// Returns the zero time for one-shot rules.
func (r Repeat) NextAfter(deadline, now time.Time) (time.Time, error) {
	if now.Before(deadline) {
		now = deadline
	}
	switch r.Kind {
	case RepeatNone:
		return time.Time{}, nil

	case RepeatEveryNDays:
		period := time.Duration(r.Days) * 24 * time.Hour
		steps := now.Sub(deadline)/period + 1
		return deadline.Add(steps * period), nil

	case RepeatWeekdays:
		// Keep the deadline's wall-clock time of day in the local zone.
		tod := deadline.Local()
		base := now.Local()
		for day := 0; day <= 7; day++ {
			d := base.AddDate(0, 0, day)
			cand := time.Date(d.Year(), d.Month(), d.Day(),
				tod.Hour(), tod.Minute(), tod.Second(), 0, time.Local)
			if cand.After(now) && r.onWeekday(cand.Weekday()) {
				return cand.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("repeat: no weekday occurrence found")

	case RepeatCron:
		next, err := gronx.NextTickAfter(r.Cron, now.Local(), false)
		if err != nil {
			return time.Time{}, fmt.Errorf("repeat: %w", err)
		}
		return next.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("repeat: unknown kind %q", r.Kind)
}

func (r Repeat) onWeekday(wd time.Weekday) bool {
	for _, w := range r.Weekdays {
		if w == wd {
			return true
		}
	}
	return false
}

// String renders the rule for CLI listings.
func (r Repeat) String() string {
	switch r.Kind {
	case RepeatNone:
		return "once"
	case RepeatEveryNDays:
		if r.Days == 1 {
			return "daily"
		}
		return fmt.Sprintf("every %d days", r.Days)
	case RepeatWeekdays:
		names := make([]string, 0, len(r.Weekdays))
		for _, wd := range r.Weekdays {
			names = append(names, wd.String()[:3])
		}
		return strings.Join(names, ",")
	case RepeatCron:
		return "cron(" + r.Cron + ")"
	}
	return string(r.Kind)
}
