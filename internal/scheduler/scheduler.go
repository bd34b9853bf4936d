package scheduler

import (
	"context"

	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/errors"
)

type eventKind int

const (
	suspended eventKind = iota
	finished
)

// event is what a routine sends back when it gives up control.
type event struct {
	co   *Coroutine
	kind eventKind
	err  error
}

// Coroutine is the handle a routine uses to suspend itself.
type Coroutine struct {
	s         *Scheduler
	task      Task
	state     State
	started   bool
	parked    bool // goroutine is blocked inside Await
	resume    chan error
	waitingOn string
	err       error
}

// Name returns the task name.
func (co *Coroutine) Name() string { return co.task.Name }

// Scheduler runs tasks one at a time and suspends them on unresolved ids.
type Scheduler struct {
	coroutines []*Coroutine
	ready      []*Coroutine
	pending    map[string][]*Coroutine // Key: id, Value: waiters in suspension order
	resolved   map[string]bool
	producers  map[string]*Coroutine
	events     chan event
	running    *Coroutine
	fatal      error
	aborting   bool
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		pending:   make(map[string][]*Coroutine),
		resolved:  make(map[string]bool),
		producers: make(map[string]*Coroutine),
		events:    make(chan event),
	}
}

// Add queues a task behind every task already queued.
func (s *Scheduler) Add(t Task) *Coroutine {
	co := &Coroutine{s: s, task: t, resume: make(chan error)}
	s.coroutines = append(s.coroutines, co)
	s.ready = append(s.ready, co)
	for _, id := range t.Provides {
		if _, ok := s.producers[id]; !ok {
			s.producers[id] = co
		}
	}
	return co
}

// Resolve marks id as available and moves its waiters to the back of the
// ready queue in the order they suspended. Resolving twice is a no-op.
func (s *Scheduler) Resolve(id string) {
	if s.resolved[id] {
		return
	}
	s.resolved[id] = true
	waiters := s.pending[id]
	delete(s.pending, id)
	s.ready = append(s.ready, waiters...)
}

// Resolved reports whether id has been resolved.
func (s *Scheduler) Resolved(id string) bool { return s.resolved[id] }

// Abort records a pass-fatal error. The run stops after the current routine
// yields, even if that routine ignores the error. The first error wins.
func (s *Scheduler) Abort(err error) {
	if s.fatal == nil && err != nil {
		s.fatal = err
	}
}

// Await suspends the calling routine until id is resolved. It returns
// immediately when id is already resolved, and ErrPassAborted once the pass
// has been cancelled.
func (co *Coroutine) Await(id string) error {
	s := co.s
	if s.running != co {
		panic("scheduler: Await called outside the running routine")
	}
	if s.aborting || s.fatal != nil {
		return errors.Wrapf(errors.ErrPassAborted, "while awaiting %q", id)
	}
	if s.resolved[id] {
		return nil
	}

	co.waitingOn = id
	s.events <- event{co: co, kind: suspended}
	err := <-co.resume
	if err == nil {
		co.waitingOn = ""
	}
	return err
}

// Run drives every task to completion. It returns the first pass-fatal error,
// or a *DependencyError when routines are left waiting.
func (s *Scheduler) Run(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting scheduler.", "routines", len(s.coroutines))

	for len(s.ready) > 0 && s.fatal == nil {
		if err := ctx.Err(); err != nil {
			s.Abort(err)
			break
		}
		co := s.ready[0]
		s.ready = s.ready[1:]
		s.step(ctx, co)
	}

	if s.fatal != nil {
		logger.Error("Aborting pass.", "error", s.fatal)
		s.drain(ctx, true)
		return s.report(), s.fatal
	}

	if len(s.pending) == 0 {
		logger.Debug("All routines completed.")
		return s.report(), nil
	}

	depErr := s.classify(ctx)
	s.drain(ctx, false)
	if depErr != nil {
		logger.Error("Routines left waiting.", "ids", depErr.IDs())
		return s.report(), depErr
	}
	return s.report(), nil
}

// step hands control to co and blocks until it yields.
func (s *Scheduler) step(ctx context.Context, co *Coroutine) {
	s.running = co
	co.state = Running
	if !co.started {
		co.started = true
		go co.main(ctx)
	} else {
		co.parked = false
		co.resume <- nil
	}
	s.handle(ctx, <-s.events)
}

func (s *Scheduler) handle(ctx context.Context, ev event) {
	logger := ctxlog.FromContext(ctx)
	co := ev.co
	s.running = nil

	switch ev.kind {
	case suspended:
		logger.Debug("Routine suspended.", "routine", co.task.Name, "waiting_on", co.waitingOn)
		co.state = Suspended
		co.parked = true
		s.pending[co.waitingOn] = append(s.pending[co.waitingOn], co)
	case finished:
		if ev.err == nil {
			logger.Debug("Routine completed.", "routine", co.task.Name)
			co.state = Done
			return
		}
		co.state = Failed
		co.err = ev.err
		if errors.IsFatal(ev.err) {
			s.Abort(ev.err)
			return
		}
		logger.Warn("Routine failed.", "routine", co.task.Name, "error", ev.err)
	}
}

func (co *Coroutine) main(ctx context.Context) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("routine %q panicked: %v", co.task.Name, r)
		}
		co.s.events <- event{co: co, kind: finished, err: err}
	}()
	err = co.task.Run(ctx, co)
}

// classify runs once the ready queue drained with routines still waiting.
// Waiters on ids whose producer failed are skipped, transitively; the rest
// become the returned error.
func (s *Scheduler) classify(ctx context.Context) *DependencyError {
	logger := ctxlog.FromContext(ctx)

	dead := make(map[string]string) // Key: id, Value: failed producer
	markDead := func(co *Coroutine) {
		for _, id := range co.task.Provides {
			if _, ok := dead[id]; !ok && !s.resolved[id] {
				dead[id] = co.task.Name
			}
		}
	}
	for _, co := range s.coroutines {
		if co.state == Failed {
			markDead(co)
		}
	}

	for changed := true; changed; {
		changed = false
		for _, co := range s.coroutines {
			if co.state != Suspended {
				continue
			}
			producer, ok := dead[co.waitingOn]
			if !ok {
				continue
			}
			logger.Warn("Skipping routine due to upstream failure.", "routine", co.task.Name, "dependency", producer)
			co.state = Skipped
			co.err = errors.Newf("skipped due to upstream failure of %q", producer)
			markDead(co)
			changed = true
		}
	}

	var waits []Wait
	for _, co := range s.coroutines {
		if co.state != Suspended {
			continue
		}
		w := Wait{Routine: co.task.Name, ID: co.waitingOn}
		if p, ok := s.producers[co.waitingOn]; ok {
			w.Producer = p.task.Name
			w.Blocked = p.state == Suspended
		}
		waits = append(waits, w)
	}
	if len(waits) == 0 {
		return nil
	}
	return &DependencyError{Waits: waits}
}

// drain resumes every parked routine with ErrPassAborted and waits for it
// to return, so no goroutine outlives the run.
func (s *Scheduler) drain(ctx context.Context, fatal bool) {
	s.aborting = true
	for _, co := range s.coroutines {
		if !co.started {
			if fatal {
				co.state = Aborted
				co.err = errors.ErrPassAborted
			}
			continue
		}
		if !co.parked {
			continue
		}
		s.running = co
		co.parked = false
		co.resume <- errors.Wrapf(errors.ErrPassAborted, "while awaiting %q", co.waitingOn)
		<-s.events
		s.running = nil
		if fatal && co.state == Suspended {
			co.state = Aborted
			co.err = errors.ErrPassAborted
		}
	}
	s.ready = nil
}

func (s *Scheduler) report() *Report {
	r := &Report{Results: make([]Result, 0, len(s.coroutines))}
	for _, co := range s.coroutines {
		r.Results = append(r.Results, Result{
			Task:      co.task.Name,
			State:     co.state,
			Err:       co.err,
			WaitingOn: co.waitingOn,
		})
	}
	return r
}
