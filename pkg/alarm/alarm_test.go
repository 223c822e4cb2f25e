package alarm

import (
	"encoding/json"
	"sort"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 6, 30, 0, 0, time.Local)
	a := New(deadline, Repeat{}, "work")
	if a.ID == "" {
		t.Fatal("New returned empty id")
	}
	if !a.Enabled {
		t.Error("new alarms must start enabled")
	}
	if !a.Deadline.Equal(deadline) {
		t.Errorf("deadline = %v, want %v", a.Deadline, deadline)
	}
	if a.Deadline.Location() != time.UTC {
		t.Errorf("deadline stored in %v, want UTC", a.Deadline.Location())
	}

	b := New(deadline, Repeat{}, "work")
	if a.ID == b.ID {
		t.Error("two alarms share an id")
	}
}

func TestAlarmJSONDeadlineSeconds(t *testing.T) {
	a := &Alarm{
		ID:       "abc",
		Deadline: time.Date(2026, 9, 1, 6, 30, 0, 0, time.UTC),
		Enabled:  true,
	}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	var secs int64
	if err := json.Unmarshal(raw["deadline"], &secs); err != nil {
		t.Fatalf("deadline is not an integer: %s", raw["deadline"])
	}
	if secs != a.Deadline.Unix() {
		t.Errorf("deadline = %d, want %d", secs, a.Deadline.Unix())
	}

	var back Alarm
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Deadline.Equal(a.Deadline) {
		t.Errorf("round-trip deadline = %v, want %v", back.Deadline, a.Deadline)
	}
}

func TestAlarmJSONOmitsOneShotRepeat(t *testing.T) {
	oneShot := &Alarm{ID: "abc", Deadline: time.Unix(1000, 0), Enabled: true}
	data, err := json.Marshal(oneShot)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["repeat"]; ok {
		t.Errorf("one-shot alarm serialized a repeat key: %s", data)
	}
	var back Alarm
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Repeat.IsNone() {
		t.Errorf("round-trip turned a one-shot into %+v", back.Repeat)
	}

	daily := &Alarm{
		ID:       "def",
		Deadline: time.Unix(1000, 0),
		Repeat:   Repeat{Kind: RepeatEveryNDays, Days: 1},
		Enabled:  true,
	}
	data, err = json.Marshal(daily)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back = Alarm{}
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Repeat.Kind != RepeatEveryNDays || back.Repeat.Days != 1 {
		t.Errorf("round-trip repeat = %+v, want daily rule", back.Repeat)
	}
}

func TestAlarmClone(t *testing.T) {
	a := New(time.Unix(1000, 0), Repeat{Kind: RepeatWeekdays, Weekdays: []time.Weekday{time.Monday}}, "x")
	c := a.Clone()
	c.Label = "y"
	c.Repeat.Weekdays[0] = time.Friday
	if a.Label != "x" {
		t.Error("Clone shares the label")
	}
	if a.Repeat.Weekdays[0] != time.Monday {
		t.Error("Clone shares the weekday slice")
	}
}

func TestSliceOrdering(t *testing.T) {
	alarms := Slice{
		{ID: "b", Deadline: time.Unix(200, 0)},
		{ID: "c", Deadline: time.Unix(100, 0)},
		{ID: "a", Deadline: time.Unix(200, 0)},
	}
	sort.Sort(alarms)
	want := []string{"c", "a", "b"}
	for i, id := range want {
		if alarms[i].ID != id {
			t.Fatalf("position %d holds %s, want %s", i, alarms[i].ID, id)
		}
	}
}
