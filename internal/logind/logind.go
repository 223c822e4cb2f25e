// Package logind watches systemd-logind for suspend and resume so the
// scheduler can arm the RTC before the machine sleeps and fire overdue
// alarms immediately after it wakes. A delay inhibitor is held while awake
// and released once the pre-sleep work is done.
//
// Systems without logind simply run without suspend awareness; the
// scheduler's max-sleep-cap still picks up overdue alarms within a minute
// of resume.
package logind

import (
	"context"
	"syscall"

	"github.com/godbus/dbus/v5"
	"github.com/reveil-sh/reveil/pkg/logger"
)

const (
	busName    = "org.freedesktop.login1"
	objectPath = "/org/freedesktop/login1"
	managerIfc = "org.freedesktop.login1.Manager"
)

// Watcher subscribes to logind's PrepareForSleep signal on the system bus.
type Watcher struct {
	log  logger.Logger
	conn *dbus.Conn

	inhibitFD int // -1 when no inhibitor is held
}

// NewWatcher connects to the system bus and subscribes to PrepareForSleep.
func NewWatcher(l logger.Logger) (*Watcher, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, err
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(managerIfc),
		dbus.WithMatchMember("PrepareForSleep"),
	); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Watcher{log: l, conn: conn, inhibitFD: -1}, nil
}

// Run dispatches suspend/resume transitions until the context is canceled.
// onSleep runs before the inhibitor is released, so it may still write to
// the RTC; onWake runs after a fresh inhibitor is taken.
func (w *Watcher) Run(ctx context.Context, onSleep, onWake func()) {
	w.takeInhibitor()
	defer w.Close()

	signals := make(chan *dbus.Signal, 8)
	w.conn.Signal(signals)

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			if sig.Name != managerIfc+".PrepareForSleep" || len(sig.Body) != 1 {
				continue
			}
			sleeping, _ := sig.Body[0].(bool)
			if sleeping {
				w.log.Info("preparing for sleep")
				if onSleep != nil {
					onSleep()
				}
				w.releaseInhibitor()
			} else {
				w.log.Info("resumed from sleep")
				w.takeInhibitor()
				if onWake != nil {
					onWake()
				}
			}
		}
	}
}

// takeInhibitor registers a sleep delay inhibitor so suspend waits for the
// RTC to be armed.
func (w *Watcher) takeInhibitor() {
	if w.inhibitFD >= 0 {
		return
	}
	var fd dbus.UnixFD
	obj := w.conn.Object(busName, objectPath)
	err := obj.Call(managerIfc+".Inhibit", 0,
		"sleep", "reveil", "arming RTC wake alarm", "delay").Store(&fd)
	if err != nil {
		w.log.Warning("could not register sleep inhibitor: %v", err)
		return
	}
	w.inhibitFD = int(fd)
}

// releaseInhibitor closes the inhibitor fd, letting suspend proceed.
func (w *Watcher) releaseInhibitor() {
	if w.inhibitFD < 0 {
		return
	}
	_ = syscall.Close(w.inhibitFD)
	w.inhibitFD = -1
}

// Close releases the inhibitor and the bus connection.
func (w *Watcher) Close() {
	w.releaseInhibitor()
	_ = w.conn.Close()
}
