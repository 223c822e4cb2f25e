package rtc

import (
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// devTimer drives the wake register through the RTC_WKALM ioctls on the
// /dev/rtcN character device. Used when the sysfs attribute is missing or
// not writable.
type devTimer struct {
	path string
}

func newDevTimer(device string) *devTimer {
	return &devTimer{path: filepath.Join("/dev", device)}
}

func (d *devTimer) usable() bool {
	f, err := os.Open(d.path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Arm stages a wake at the given instant, replacing any staged value.
func (d *devTimer) Arm(t time.Time) error {
	wk := wkalrmFromTime(t)
	if err := d.set(wk); err != nil {
		return &HardwareError{Op: "set", Err: err}
	}
	return nil
}

// Disarm clears any staged wake value by writing a disabled epoch alarm.
func (d *devTimer) Disarm() error {
	wk := wkalrmFromTime(time.Unix(0, 0))
	wk.Enabled = 0
	if err := d.set(wk); err != nil {
		return &HardwareError{Op: "clear", Err: err}
	}
	return nil
}

func (d *devTimer) set(wk *unix.RTCWkAlrm) error {
	f, err := os.Open(d.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return unix.IoctlSetRTCWkAlrm(int(f.Fd()), wk)
}

// wkalrmFromTime converts an absolute instant to the kernel's broken-down
// RTC representation. The RTC runs in UTC; months are zero-based and years
// count from 1900.
func wkalrmFromTime(t time.Time) *unix.RTCWkAlrm {
	t = t.UTC()
	return &unix.RTCWkAlrm{
		Enabled: 1,
		Time: unix.RTCTime{
			Sec:  int32(t.Second()),
			Min:  int32(t.Minute()),
			Hour: int32(t.Hour()),
			Mday: int32(t.Day()),
			Mon:  int32(t.Month()) - 1,
			Year: int32(t.Year()) - 1900,
		},
	}
}
