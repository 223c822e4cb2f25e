// Package daemon assembles the reveil subsystems into a running process:
// store, scheduler loop, RTC wake timer, unix-socket RPC server, the optional
// HTTP bridge, and the logind suspend watcher.
package daemon

import (
	"context"
	"errors"

	"github.com/spf13/afero"

	"github.com/reveil-sh/reveil/common"
	"github.com/reveil-sh/reveil/internal/logind"
	"github.com/reveil-sh/reveil/internal/rtc"
	"github.com/reveil-sh/reveil/internal/scheduler"
	"github.com/reveil-sh/reveil/internal/server"
	"github.com/reveil-sh/reveil/pkg/alarm"
	"github.com/reveil-sh/reveil/pkg/logger"
)

// Daemon owns the wired subsystems for the lifetime of one Run call.
type Daemon struct {
	log     logger.Logger
	cfg     Config
	version common.VersionResult
}

// New creates a daemon from a resolved configuration.
func New(l logger.Logger, cfg Config, version common.VersionResult) *Daemon {
	return &Daemon{log: l, cfg: cfg, version: version}
}

// Run wires everything together and blocks until the context is canceled and
// the scheduler loop has flushed its final store write. A corrupt alarm DB is
// fatal; a missing RTC or logind is not.
func (d *Daemon) Run(ctx context.Context) error {
	// All subsystems share one cancelable context so a fatal listener error
	// tears down the scheduler loop too.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := alarm.NewStore(afero.NewOsFs(), d.cfg.StateFile)
	notifier := server.NewNotifier(d.log)

	wake := rtc.Detect(d.cfg.RTCDevice, d.log)
	if wake == nil {
		d.log.Warning("no usable RTC wake surface for %q, alarms will not wake the machine from suspend", d.cfg.RTCDevice)
	}

	sched := scheduler.New(d.log, store, wake, func(a *alarm.Alarm) {
		notifier.Broadcast(common.NotifyFired, common.FiredNotification{
			ID:       a.ID,
			Label:    a.Label,
			Deadline: a.Deadline.Unix(),
		})
	})
	if err := sched.Start(ctx); err != nil {
		return err
	}

	methods := server.NewMethods(sched, d.version).Map()
	srv := server.NewServer(d.log, methods, notifier, d.cfg.SocketPath)

	errCh := make(chan error, 2)

	var web *server.WebServer
	if d.cfg.HTTPAddr != "" {
		web = server.NewWebServer(d.log, methods, notifier, d.cfg.HTTPAddr, d.cfg.HTTPSecret)
		go func() {
			if err := web.Start(); err != nil {
				errCh <- err
			}
		}()
	}

	if watcher, err := logind.NewWatcher(d.log); err != nil {
		d.log.Warning("logind unavailable, running without suspend awareness: %v", err)
	} else {
		go watcher.Run(ctx,
			func() { _ = sched.Resync(ctx) },
			sched.Poke,
		)
	}

	go func() {
		errCh <- srv.Start(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		if runErr != nil {
			d.log.Error("server failed: %v", runErr)
		}
		cancel()
	}

	srv.Shutdown()
	if web != nil {
		if err := web.Shutdown(context.Background()); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			d.log.Error("http bridge shutdown: %v", err)
		}
	}

	// The loop exits on ctx cancellation; wait for its final store flush.
	<-sched.Done()
	d.log.Info("daemon stopped")
	return runErr
}
