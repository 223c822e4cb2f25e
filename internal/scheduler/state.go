package scheduler

import (
	"sort"
	"time"

	"github.com/reveil-sh/reveil/pkg/alarm"
)

// schedule is the in-memory authoritative alarm set, keyed by id. It is only
// ever touched by the loop goroutine; mutations go through a cloned copy so
// a failed persist leaves the committed state untouched.
type schedule map[string]*alarm.Alarm

func newSchedule(alarms []*alarm.Alarm) schedule {
	st := make(schedule, len(alarms))
	for _, a := range alarms {
		st[a.ID] = a
	}
	return st
}

func (st schedule) clone() schedule {
	next := make(schedule, len(st))
	for id, a := range st {
		next[id] = a
	}
	return next
}

// nextWake returns the alarm with the minimum enabled deadline, ties broken
// by smallest id. This is the only value ever written to hardware.
func (st schedule) nextWake() (*alarm.Alarm, bool) {
	var best *alarm.Alarm
	for _, a := range st {
		if !a.Enabled {
			continue
		}
		if best == nil || a.Before(best) {
			best = a
		}
	}
	return best, best != nil
}

// due returns all enabled alarms with deadline <= now, oldest deadline first.
// More than one alarm can be due when the process was not running exactly at
// a deadline, e.g. after a long suspend.
func (st schedule) due(now time.Time) []*alarm.Alarm {
	var out []*alarm.Alarm
	for _, a := range st {
		if a.Enabled && !a.Deadline.After(now) {
			out = append(out, a)
		}
	}
	sort.Sort(alarm.Slice(out))
	return out
}

// all returns every alarm ordered by (deadline, id).
func (st schedule) all() []*alarm.Alarm {
	out := make([]*alarm.Alarm, 0, len(st))
	for _, a := range st {
		out = append(out, a)
	}
	sort.Sort(alarm.Slice(out))
	return out
}
