package alarm

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
)

const testDBPath = "/state/reveil/alarms.json"

func TestStoreLoadAbsent(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), testDBPath)
	alarms, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(alarms) != 0 {
		t.Fatalf("expected empty set for absent file, got %d alarms", len(alarms))
	}
}

func TestStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, testDBPath)

	a := New(time.Date(2026, 9, 1, 6, 30, 0, 0, time.UTC),
		Repeat{Kind: RepeatWeekdays, Weekdays: []time.Weekday{time.Monday}}, "work")
	b := New(time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC), Repeat{}, "")
	b.Enabled = false

	if err := s.Save([]*Alarm{a, b}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d alarms, want 2", len(loaded))
	}
	byID := map[string]*Alarm{loaded[0].ID: loaded[0], loaded[1].ID: loaded[1]}
	got, ok := byID[a.ID]
	if !ok {
		t.Fatalf("alarm %s missing after round trip", a.ID)
	}
	if !got.Deadline.Equal(a.Deadline) {
		t.Errorf("deadline = %v, want %v", got.Deadline, a.Deadline)
	}
	if got.Repeat.Kind != RepeatWeekdays || got.Label != "work" || !got.Enabled {
		t.Errorf("alarm fields lost in round trip: %+v", got)
	}
	if byID[b.ID].Enabled {
		t.Errorf("disabled alarm came back enabled")
	}
}

func TestStoreLoadCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, testDBPath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(fs, testDBPath)
	_, err := s.Load()
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("Load on corrupt file = %v, want *StoreError", err)
	}
	if se.Op != "load" {
		t.Errorf("Op = %q, want \"load\"", se.Op)
	}
}

func TestStoreSaveSortsByID(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, testDBPath)

	alarms := []*Alarm{
		{ID: "ccc", Deadline: time.Unix(100, 0)},
		{ID: "aaa", Deadline: time.Unix(300, 0)},
		{ID: "bbb", Deadline: time.Unix(200, 0)},
	}
	if err := s.Save(alarms); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"aaa", "bbb", "ccc"}
	for i, id := range want {
		if loaded[i].ID != id {
			t.Fatalf("position %d holds %s, want %s", i, loaded[i].ID, id)
		}
	}
}

func TestStoreSaveLeavesNoTempFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, testDBPath)
	if err := s.Save([]*Alarm{New(time.Unix(1000, 0), Repeat{}, "")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ok, _ := afero.Exists(fs, testDBPath+".tmp"); ok {
		t.Fatalf("temporary file left behind after Save")
	}
}

func TestStoreSaveReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s := NewStore(fs, testDBPath)
	err := s.Save([]*Alarm{New(time.Unix(1000, 0), Repeat{}, "")})
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("Save on read-only fs = %v, want *StoreError", err)
	}
}
