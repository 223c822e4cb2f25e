package rtc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// sysfsTimer drives the wake register through the kernel's
// /sys/class/rtc/<dev>/wakealarm attribute. Writing epoch seconds stages a
// wake; writing zero clears it. The kernel rejects a second write while a
// value is staged, so Arm always clears first.
type sysfsTimer struct {
	path string
}

func newSysfsTimer(device string) *sysfsTimer {
	return &sysfsTimer{path: filepath.Join("/sys/class/rtc", device, "wakealarm")}
}

// newSysfsTimerAt creates a sysfs timer over an explicit attribute path.
// Used by tests to point at a scratch file.
func newSysfsTimerAt(path string) *sysfsTimer {
	return &sysfsTimer{path: path}
}

func (s *sysfsTimer) usable() bool {
	f, err := os.OpenFile(s.path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Arm stages a wake at the given instant. The clear-then-set sequence is one
// logical operation; callers must not split it.
func (s *sysfsTimer) Arm(t time.Time) error {
	if err := s.write("0"); err != nil {
		return &HardwareError{Op: "clear", Err: err}
	}
	secs := strconv.FormatInt(t.Unix(), 10)
	if err := s.write(secs); err != nil {
		return &HardwareError{Op: "set", Err: err}
	}
	return nil
}

// Disarm clears any staged wake value.
func (s *sysfsTimer) Disarm() error {
	if err := s.write("0"); err != nil {
		return &HardwareError{Op: "clear", Err: err}
	}
	return nil
}

func (s *sysfsTimer) write(value string) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	_, werr := fmt.Fprintln(f, value)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}
