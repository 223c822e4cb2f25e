package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/reveil-sh/reveil/pkg/alarm"
)

const atLayout = "2006-01-02 15:04"

// parseAt validates and parses an --at value in the local timezone.
func parseAt(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("error: invalid --at format, expected YYYY-MM-DD HH:MM")
	}
	t, err := time.ParseInLocation(atLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("error: invalid --at format, expected YYYY-MM-DD HH:MM")
	}
	return t, nil
}

// parseIn validates an --in duration string and returns the resolved
// absolute time. Valid formats: Go duration syntax (e.g., "2h", "30m",
// "8h30m").
func parseIn(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("error: invalid --in duration, expected format like 2h, 30m, or 8h30m (days not supported, use 24h)")
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return time.Time{}, fmt.Errorf("error: invalid --in duration, expected format like 2h, 30m, or 8h30m (days not supported, use 24h)")
	}
	return time.Now().Add(d), nil
}

// resolveDeadline turns the mutually exclusive --at/--in flags into one
// absolute wake instant.
func resolveDeadline(at, in string) (time.Time, error) {
	switch {
	case at != "" && in != "":
		return time.Time{}, fmt.Errorf("error: flags --at and --in are mutually exclusive")
	case at != "":
		return parseAt(at)
	case in != "":
		return parseIn(in)
	}
	return time.Time{}, fmt.Errorf("error: one of --at or --in is required")
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// parseWeekdays parses a comma-separated --days value like "mon,tue,fri".
func parseWeekdays(value string) ([]time.Weekday, error) {
	var out []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, name := range strings.Split(value, ",") {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("error: invalid weekday %q, expected sun,mon,tue,wed,thu,fri,sat", name)
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, wd)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("error: --days needs at least one weekday")
	}
	return out, nil
}

// buildRepeat turns the mutually exclusive repeat flags into a repeat rule.
// Returns nil when no repeat flag was given (a one-shot alarm).
func buildRepeat(everyDays int, days, cron string) (*alarm.Repeat, error) {
	set := 0
	if everyDays > 0 {
		set++
	}
	if days != "" {
		set++
	}
	if cron != "" {
		set++
	}
	if set > 1 {
		return nil, fmt.Errorf("error: flags --every-days, --days and --cron are mutually exclusive")
	}

	var r alarm.Repeat
	switch {
	case everyDays > 0:
		r = alarm.Repeat{Kind: alarm.RepeatEveryNDays, Days: everyDays}
	case days != "":
		wds, err := parseWeekdays(days)
		if err != nil {
			return nil, err
		}
		r = alarm.Repeat{Kind: alarm.RepeatWeekdays, Weekdays: wds}
	case cron != "":
		r = alarm.Repeat{Kind: alarm.RepeatCron, Cron: cron}
	default:
		return nil, nil
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("error: %s", err.Error())
	}
	return &r, nil
}
