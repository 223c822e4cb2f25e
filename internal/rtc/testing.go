package rtc

import (
	"sync"
	"time"
)

// Recorder is a WakeTimer that records calls instead of touching hardware.
// Tests use it to assert on the arm/disarm sequence; setting Fail simulates
// an absent or rejecting wake-alarm surface.
type Recorder struct {
	mu      sync.Mutex
	armed   []time.Time
	disarms int
	Fail    bool
}

// Arm records the requested wake instant.
func (r *Recorder) Arm(t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return &HardwareError{Op: "set", Err: errUnavailable}
	}
	r.armed = append(r.armed, t)
	return nil
}

// Disarm records a clear.
func (r *Recorder) Disarm() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return &HardwareError{Op: "clear", Err: errUnavailable}
	}
	r.disarms++
	return nil
}

// Armed returns all recorded wake instants in order.
func (r *Recorder) Armed() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.armed...)
}

// LastArmed returns the most recent wake instant, or the zero time.
func (r *Recorder) LastArmed() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.armed) == 0 {
		return time.Time{}
	}
	return r.armed[len(r.armed)-1]
}

// Disarms returns the number of recorded clears.
func (r *Recorder) Disarms() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disarms
}

// SetFail toggles simulated hardware failure.
func (r *Recorder) SetFail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Fail = fail
}

var _ WakeTimer = (*Recorder)(nil)

type unavailableError struct{}

func (unavailableError) Error() string { return "wake-alarm surface unavailable" }

var errUnavailable = unavailableError{}
