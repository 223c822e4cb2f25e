package alarm

import (
	"testing"
	"time"
)

func TestRepeatValidate(t *testing.T) {
	tests := []struct {
		name    string
		repeat  Repeat
		wantErr bool
	}{
		{"one-shot", Repeat{}, false},
		{"every day", Repeat{Kind: RepeatEveryNDays, Days: 1}, false},
		{"every zero days", Repeat{Kind: RepeatEveryNDays, Days: 0}, true},
		{"negative days", Repeat{Kind: RepeatEveryNDays, Days: -3}, true},
		{"weekdays", Repeat{Kind: RepeatWeekdays, Weekdays: []time.Weekday{time.Monday}}, false},
		{"empty weekdays", Repeat{Kind: RepeatWeekdays}, true},
		{"bad weekday", Repeat{Kind: RepeatWeekdays, Weekdays: []time.Weekday{8}}, true},
		{"cron", Repeat{Kind: RepeatCron, Cron: "30 6 * * 1-5"}, false},
		{"cron six fields", Repeat{Kind: RepeatCron, Cron: "0 30 6 * * 1-5"}, true},
		{"cron garbage", Repeat{Kind: RepeatCron, Cron: "not a cron"}, true},
		{"unknown kind", Repeat{Kind: "hourly"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.repeat.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNextAfterEveryNDays(t *testing.T) {
	deadline := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	r := Repeat{Kind: RepeatEveryNDays, Days: 2}

	// Fired exactly on time: advance one period.
	next, err := r.NextAfter(deadline, deadline)
	if err != nil {
		t.Fatalf("NextAfter: %v", err)
	}
	if want := deadline.AddDate(0, 0, 2); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}

	// Five days late: the two missed occurrences are skipped, not replayed.
	now := deadline.Add(5 * 24 * time.Hour)
	next, err = r.NextAfter(deadline, now)
	if err != nil {
		t.Fatalf("NextAfter: %v", err)
	}
	if want := deadline.AddDate(0, 0, 6); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
	if !next.After(now) {
		t.Errorf("next %v is not strictly after now %v", next, now)
	}
}

func TestNextAfterWeekdays(t *testing.T) {
	// 2026-03-02 is a Monday.
	deadline := time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local)
	r := Repeat{Kind: RepeatWeekdays, Weekdays: []time.Weekday{time.Monday, time.Wednesday}}

	next, err := r.NextAfter(deadline, deadline)
	if err != nil {
		t.Fatalf("NextAfter: %v", err)
	}
	want := time.Date(2026, 3, 4, 7, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next.Local(), want)
	}

	// Ten days of backlog still yields a single occurrence after now, at the
	// deadline's time of day.
	now := deadline.AddDate(0, 0, 10).Add(3 * time.Hour)
	next, err = r.NextAfter(deadline, now)
	if err != nil {
		t.Fatalf("NextAfter: %v", err)
	}
	if !next.After(now) {
		t.Fatalf("next %v is not strictly after now %v", next, now)
	}
	local := next.Local()
	if local.Hour() != 7 || local.Minute() != 0 {
		t.Errorf("next %v does not keep the 07:00 time of day", local)
	}
	if wd := local.Weekday(); wd != time.Monday && wd != time.Wednesday {
		t.Errorf("next falls on %v, want Monday or Wednesday", wd)
	}
}

func TestNextAfterCron(t *testing.T) {
	deadline := time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local)
	r := Repeat{Kind: RepeatCron, Cron: "0 7 * * *"}

	next, err := r.NextAfter(deadline, deadline)
	if err != nil {
		t.Fatalf("NextAfter: %v", err)
	}
	want := time.Date(2026, 3, 3, 7, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next.Local(), want)
	}
}

func TestNextAfterOneShot(t *testing.T) {
	r := Repeat{}
	next, err := r.NextAfter(time.Now(), time.Now())
	if err != nil {
		t.Fatalf("NextAfter: %v", err)
	}
	if !next.IsZero() {
		t.Errorf("one-shot rule produced occurrence %v", next)
	}
}

func TestRepeatString(t *testing.T) {
	tests := []struct {
		repeat Repeat
		want   string
	}{
		{Repeat{}, "once"},
		{Repeat{Kind: RepeatEveryNDays, Days: 1}, "daily"},
		{Repeat{Kind: RepeatEveryNDays, Days: 3}, "every 3 days"},
		{Repeat{Kind: RepeatWeekdays, Weekdays: []time.Weekday{time.Monday, time.Friday}}, "Mon,Fri"},
		{Repeat{Kind: RepeatCron, Cron: "30 6 * * 1-5"}, "cron(30 6 * * 1-5)"},
	}
	for _, tt := range tests {
		if got := tt.repeat.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
