// Package rtc arms and disarms the hardware RTC wake-alarm register. The
// daemon uses it to make the machine resume from suspend at the next enabled
// alarm's deadline.
//
// Two backends are provided: the sysfs wakealarm attribute (preferred) and
// the RTC_WKALM ioctls on the character device. Both expose the same narrow
// WakeTimer interface so the scheduler never touches the hardware surface
// directly and tests can substitute a recorder.
package rtc

import (
	"fmt"
	"time"

	"github.com/reveil-sh/reveil/pkg/logger"
)

// DefaultDevice is the primary RTC, present on virtually all systems with a
// hardware clock.
const DefaultDevice = "rtc0"

// WakeTimer is the hardware wake-alarm surface. One logical value is
// outstanding at a time.
type WakeTimer interface {
	// Arm sets the wake register to the given absolute instant, replacing
	// any previously staged value.
	Arm(t time.Time) error

	// Disarm clears any staged wake value.
	Disarm() error
}

// HardwareError wraps a failure of the wake-alarm surface. It is non-fatal:
// the daemon keeps firing alarms from its in-process timer and retries
// arming on the next mutation or fire cycle.
type HardwareError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *HardwareError) Error() string {
	return fmt.Sprintf("rtc %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *HardwareError) Unwrap() error { return e.Err }

// Detect probes for a usable wake-timer backend on the given RTC device
// (e.g. "rtc0"). It prefers the sysfs wakealarm attribute and falls back to
// the /dev ioctl interface. Returns nil if neither surface is usable; the
// caller is expected to run degraded with an in-process timer only.
func Detect(device string, log logger.Logger) WakeTimer {
	if device == "" {
		device = DefaultDevice
	}
	if s := newSysfsTimer(device); s.usable() {
		log.Info("using sysfs wake alarm for %s", device)
		return s
	}
	if d := newDevTimer(device); d.usable() {
		log.Info("using %s ioctl wake alarm", d.path)
		return d
	}
	return nil
}
