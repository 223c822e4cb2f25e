package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/reveil-sh/reveil/internal/rtc"
	"github.com/reveil-sh/reveil/pkg/alarm"
	"github.com/reveil-sh/reveil/pkg/logger"
)

// maxSleepCap bounds the in-process timer so the loop re-reads the wall
// clock at least once a minute. Monotonic timers stall across suspend; the
// cap guarantees alarms due during a sleep the RTC did not cover still fire
// shortly after resume.
const maxSleepCap = 60 * time.Second

// FireFunc receives every alarm that fired, after the resulting state change
// was persisted.
type FireFunc func(*alarm.Alarm)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the wall-clock source. Tests use it to steer firing.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithMaxSleep overrides the timer cap. Tests use a small cap to exercise
// the re-check path quickly.
func WithMaxSleep(d time.Duration) Option {
	return func(s *Scheduler) { s.maxSleep = d }
}

// Scheduler is the single owner of the alarm set, the store file, and the
// hardware wake timer.
type Scheduler struct {
	log   logger.Logger
	store *alarm.Store
	wake  rtc.WakeTimer // nil when no RTC surface was detected
	fire  FireFunc

	now      func() time.Time
	maxSleep time.Duration

	reqCh chan *request
	done  chan struct{}

	// Loop-owned; never touched outside the run goroutine.
	state       schedule
	degraded    bool
	pendingSave bool

	// Read-only snapshot for List, refreshed after every commit.
	snapMu sync.RWMutex
	snap   []*alarm.Alarm
}

// New creates a scheduler. The wake timer may be nil (no RTC); fire may be
// nil when nobody listens for fire events.
func New(l logger.Logger, store *alarm.Store, wake rtc.WakeTimer, fire FireFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		log:      l,
		store:    store,
		wake:     wake,
		fire:     fire,
		now:      time.Now,
		maxSleep: maxSleepCap,
		reqCh:    make(chan *request),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the alarm set from the store and launches the loop goroutine.
// A present-but-corrupt store file is a hard error: the daemon must not run
// over state it cannot read.
func (s *Scheduler) Start(ctx context.Context) error {
	alarms, err := s.store.Load()
	if err != nil {
		return err
	}
	s.state = newSchedule(alarms)
	s.publish()
	// Arm for the loaded set right away; a restart must not leave the wake
	// register pointing at a stale or absent deadline.
	s.rearm()
	s.log.Info("loaded %d alarm(s) from %s", len(alarms), s.store.Path())
	go s.run(ctx)
	return nil
}

// Done is closed once the loop has exited and its last store write is
// confirmed.
func (s *Scheduler) Done() <-chan struct{} { return s.done }

// Create adds a new enabled alarm and returns it once the change is durable
// and the wake timer reflects it.
func (s *Scheduler) Create(ctx context.Context, deadline time.Time, repeat alarm.Repeat, label string) (*alarm.Alarm, error) {
	if err := repeat.Validate(); err != nil {
		return nil, err
	}
	res, err := s.send(ctx, &request{op: opCreate, deadline: deadline, repeat: repeat, label: label})
	if err != nil {
		return nil, err
	}
	return res.alarm, nil
}

// Remove deletes an alarm by id. Returns alarm.ErrNotFound for unknown ids.
func (s *Scheduler) Remove(ctx context.Context, id string) error {
	_, err := s.send(ctx, &request{op: opRemove, id: id})
	return err
}

// SetEnabled toggles an alarm and returns its updated state.
func (s *Scheduler) SetEnabled(ctx context.Context, id string, enabled bool) (*alarm.Alarm, error) {
	res, err := s.send(ctx, &request{op: opSetEnabled, id: id, enabled: enabled})
	if err != nil {
		return nil, err
	}
	return res.alarm, nil
}

// Poke wakes the loop to fire anything due and re-arm the hardware timer.
// Called after resume from suspend, when the in-process timer may still be
// sleeping on stale monotonic time.
func (s *Scheduler) Poke() {
	select {
	case s.reqCh <- &request{op: opPoke}:
	case <-s.done:
	}
}

// Resync is the synchronous form of Poke: it returns once due alarms have
// fired and the hardware timer was re-derived. Called before suspend so the
// RTC is armed while the sleep inhibitor is still held.
func (s *Scheduler) Resync(ctx context.Context) error {
	_, err := s.send(ctx, &request{op: opPoke})
	return err
}

// List returns a copy of the current alarm set ordered by (deadline, id).
// Served from the published snapshot; does not enter the mutation queue.
func (s *Scheduler) List() []*alarm.Alarm {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	out := make([]*alarm.Alarm, len(s.snap))
	for i, a := range s.snap {
		out[i] = a.Clone()
	}
	return out
}

func (s *Scheduler) send(ctx context.Context, req *request) (response, error) {
	req.resp = make(chan response, 1)
	select {
	case s.reqCh <- req:
	case <-s.done:
		return response{}, alarm.ErrShuttingDown
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
	// Once dispatched, the loop always replies, even during shutdown.
	res := <-req.resp
	return res, res.err
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		next, ok := s.state.nextWake()
		if !ok {
			if s.pendingSave {
				// A deferred store write may not wait for the next client
				// call; keep ticking until it lands.
				timer = time.NewTimer(s.maxSleep)
				return timer.C
			}
			// Nothing enabled; block on requests only.
			return nil
		}
		dur := next.Deadline.Sub(s.now())
		if dur > s.maxSleep {
			dur = s.maxSleep
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	timerCh := resetTimer()

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return

		case req := <-s.reqCh:
			s.handle(req)
			timerCh = resetTimer()

		case <-timerCh:
			s.fireDue()
			timerCh = resetTimer()
		}
	}
}

// shutdown drains queued requests with a clean failure and flushes any
// deferred store write before the loop exits.
func (s *Scheduler) shutdown() {
	for {
		select {
		case req := <-s.reqCh:
			req.reply(response{err: alarm.ErrShuttingDown})
		default:
			if s.pendingSave {
				if err := s.store.Save(s.state.all()); err != nil {
					s.log.Error("final store write failed: %v", err)
				} else {
					s.pendingSave = false
				}
			}
			return
		}
	}
}

func (s *Scheduler) handle(req *request) {
	switch req.op {
	case opCreate:
		a := alarm.New(req.deadline, req.repeat, req.label)
		next := s.state.clone()
		next[a.ID] = a
		if err := s.persist(next); err != nil {
			req.reply(response{err: err})
			return
		}
		s.commit(next)
		s.log.Info("created alarm %s at %s", a.ID, a.Deadline.Format(time.RFC3339))
		req.reply(response{alarm: a.Clone()})

	case opRemove:
		if _, ok := s.state[req.id]; !ok {
			req.reply(response{err: alarm.ErrNotFound})
			return
		}
		next := s.state.clone()
		delete(next, req.id)
		if err := s.persist(next); err != nil {
			req.reply(response{err: err})
			return
		}
		s.commit(next)
		s.log.Info("removed alarm %s", req.id)
		req.reply(response{})

	case opSetEnabled:
		prev, ok := s.state[req.id]
		if !ok {
			req.reply(response{err: alarm.ErrNotFound})
			return
		}
		updated := prev.Clone()
		updated.Enabled = req.enabled
		next := s.state.clone()
		next[req.id] = updated
		if err := s.persist(next); err != nil {
			req.reply(response{err: err})
			return
		}
		s.commit(next)
		req.reply(response{alarm: updated.Clone()})

	case opPoke:
		s.fireDue()
		if req.resp != nil {
			req.reply(response{})
		}
	}
}

// fireDue fires every enabled alarm with deadline <= now, oldest first.
// One-shots are removed; repeating alarms advance strictly past now, so a
// backlog accumulated while suspended fires once instead of replaying.
func (s *Scheduler) fireDue() {
	now := s.now()
	due := s.state.due(now)
	if len(due) == 0 {
		s.retryDeferred()
		return
	}

	next := s.state.clone()
	for _, a := range due {
		if a.Repeat.IsNone() {
			delete(next, a.ID)
			continue
		}
		advanced := a.Clone()
		nd, err := a.Repeat.NextAfter(a.Deadline, now)
		if err != nil {
			// A rule that cannot produce a next occurrence would fire
			// forever; disable the alarm instead of dropping it.
			s.log.Error("disabling alarm %s: %v", a.ID, err)
			advanced.Enabled = false
		} else {
			advanced.Deadline = nd
		}
		next[a.ID] = advanced
	}

	if err := s.persist(next); err != nil {
		// Firing cannot be rolled back the way a mutation can: reverting
		// would replay the alarm on the next tick. Keep the in-memory
		// advance and retry the write on the next loop event.
		s.log.Error("could not persist fired alarms: %v", err)
		s.pendingSave = true
	}
	s.commit(next)

	for _, a := range due {
		s.log.Info("alarm %s fired (%s)", a.ID, a.Label)
		if s.fire != nil {
			s.fire(a.Clone())
		}
	}
}

// retryDeferred handles a timer tick with nothing due: flush a deferred
// store write and, when degraded, retry arming the hardware.
func (s *Scheduler) retryDeferred() {
	if s.pendingSave {
		if err := s.store.Save(s.state.all()); err == nil {
			s.pendingSave = false
		}
	}
	if s.degraded {
		s.rearm()
	}
}

func (s *Scheduler) persist(next schedule) error {
	if err := s.store.Save(next.all()); err != nil {
		return err
	}
	s.pendingSave = false
	return nil
}

// commit makes next the authoritative state, refreshes the List snapshot,
// and re-derives the hardware wake timer.
func (s *Scheduler) commit(next schedule) {
	s.state = next
	s.publish()
	s.rearm()
}

func (s *Scheduler) publish() {
	snap := s.state.all()
	s.snapMu.Lock()
	s.snap = snap
	s.snapMu.Unlock()
}

// rearm points the hardware wake register at the earliest enabled deadline,
// or clears it when no enabled alarms remain. Hardware failure is non-fatal
// and logged once per transition into or out of the degraded state.
func (s *Scheduler) rearm() {
	if s.wake == nil {
		return
	}
	var err error
	if next, ok := s.state.nextWake(); ok {
		err = s.wake.Arm(next.Deadline)
	} else {
		err = s.wake.Disarm()
	}
	switch {
	case err != nil && !s.degraded:
		s.degraded = true
		s.log.Warning("wake timer unavailable, alarms will not wake the machine from suspend: %v", err)
	case err == nil && s.degraded:
		s.degraded = false
		s.log.Info("wake timer restored")
	}
}

func (r *request) reply(res response) {
	if r.resp != nil {
		r.resp <- res
	}
}
