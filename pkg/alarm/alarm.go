// Package alarm provides the core alarm data model for reveil: the durable
// Alarm record, its recurrence rules, and the filesystem-backed store.
package alarm

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Alarm is the durable unit managed by the daemon.
type Alarm struct {
	// ID is an opaque unique identifier, generated at creation and stable
	// for the alarm's lifetime. IDs are never reused.
	ID string `json:"id"`

	// Deadline is the absolute instant at which the alarm is next due.
	Deadline time.Time `json:"-"`

	// Repeat is the recurrence rule. The zero value means one-shot.
	Repeat Repeat `json:"repeat,omitempty"`

	// Label is free-form user text, opaque to scheduling.
	Label string `json:"label,omitempty"`

	// Enabled selects whether the alarm participates in wake-timer
	// computation and firing. Disabled alarms are retained.
	Enabled bool `json:"enabled"`
}

// alarmJSON is the persisted shape of an Alarm. Deadlines are stored as unix
// seconds since the RTC wake register has whole-second granularity anyway.
// Repeat is a pointer so one-shot alarms omit the key entirely.
type alarmJSON struct {
	ID       string  `json:"id"`
	Deadline int64   `json:"deadline"`
	Repeat   *Repeat `json:"repeat,omitempty"`
	Label    string  `json:"label,omitempty"`
	Enabled  bool    `json:"enabled"`
}

// MarshalJSON implements json.Marshaler.
func (a Alarm) MarshalJSON() ([]byte, error) {
	aj := alarmJSON{
		ID:       a.ID,
		Deadline: a.Deadline.Unix(),
		Label:    a.Label,
		Enabled:  a.Enabled,
	}
	if !a.Repeat.IsNone() {
		r := a.Repeat.clone()
		aj.Repeat = &r
	}
	return json.Marshal(aj)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Alarm) UnmarshalJSON(b []byte) error {
	var aj alarmJSON
	if err := json.Unmarshal(b, &aj); err != nil {
		return err
	}
	a.ID = aj.ID
	a.Deadline = time.Unix(aj.Deadline, 0).UTC()
	a.Repeat = Repeat{}
	if aj.Repeat != nil {
		a.Repeat = *aj.Repeat
	}
	a.Label = aj.Label
	a.Enabled = aj.Enabled
	return nil
}

// New creates an enabled alarm with a fresh id.
func New(deadline time.Time, repeat Repeat, label string) *Alarm {
	return &Alarm{
		ID:       uuid.NewString(),
		Deadline: deadline.UTC(),
		Repeat:   repeat,
		Label:    label,
		Enabled:  true,
	}
}

// Clone returns a copy of the alarm.
func (a *Alarm) Clone() *Alarm {
	c := *a
	c.Repeat = a.Repeat.clone()
	return &c
}

// Before reports whether a sorts ahead of b: earlier deadline first,
// ties broken by smaller id so ordering stays deterministic.
func (a *Alarm) Before(b *Alarm) bool {
	if !a.Deadline.Equal(b.Deadline) {
		return a.Deadline.Before(b.Deadline)
	}
	return a.ID < b.ID
}

// Slice attaches sort.Interface to a slice of alarms, ordered by
// (deadline, id).
type Slice []*Alarm

func (s Slice) Len() int           { return len(s) }
func (s Slice) Less(i, j int) bool { return s[i].Before(s[j]) }
func (s Slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
