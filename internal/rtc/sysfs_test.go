package rtc

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/reveil-sh/reveil/pkg/logger"
)

func newScratchAttr(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wakealarm")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSysfsArmWritesClearThenEpoch(t *testing.T) {
	path := newScratchAttr(t)
	timer := newSysfsTimerAt(path)

	when := time.Unix(1790000000, 0)
	if err := timer.Arm(when); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := strconv.FormatInt(when.Unix(), 10) + "\n"
	if string(data) != want {
		t.Errorf("attribute holds %q, want %q", data, want)
	}
}

func TestSysfsDisarmWritesZero(t *testing.T) {
	path := newScratchAttr(t)
	timer := newSysfsTimerAt(path)
	if err := timer.Disarm(); err != nil {
		t.Fatalf("Disarm: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "0\n" {
		t.Errorf("attribute holds %q, want %q", data, "0\n")
	}
}

func TestSysfsMissingAttribute(t *testing.T) {
	timer := newSysfsTimerAt(filepath.Join(t.TempDir(), "nope", "wakealarm"))
	if timer.usable() {
		t.Error("usable() = true for a missing attribute")
	}
	err := timer.Arm(time.Unix(1000, 0))
	var he *HardwareError
	if !errors.As(err, &he) {
		t.Fatalf("Arm = %v, want *HardwareError", err)
	}
	if he.Op != "clear" {
		t.Errorf("Op = %q, want \"clear\"", he.Op)
	}
}

func TestDetectNoDevice(t *testing.T) {
	if wt := Detect("rtc-does-not-exist", logger.NewNopLogger()); wt != nil {
		t.Errorf("Detect returned %v for a nonexistent device", wt)
	}
}
