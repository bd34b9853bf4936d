package scheduler

import "context"

// RunFunc is the body of a routine. It may suspend only through co.Await.
type RunFunc func(ctx context.Context, co *Coroutine) error

// Task is one routine to schedule.
type Task struct {
	// Name identifies the routine in logs and reports, typically the block kind and id.
	Name string
	// Provides lists the ids the routine is expected to resolve. It is used
	// to attribute waits to producers when the run fails.
	Provides []string
	// Run is the routine body.
	Run RunFunc
}

// State represents the execution state of a routine.
type State int32

const (
	// Pending indicates the routine has not started yet.
	Pending State = iota
	// Running indicates the routine holds control.
	Running
	// Suspended indicates the routine waits on an id.
	Suspended
	// Done indicates the routine returned without error.
	Done
	// Failed indicates the routine returned an error or panicked.
	Failed
	// Skipped indicates the routine waited on an id whose producer failed.
	Skipped
	// Aborted indicates the pass was cancelled before the routine finished.
	Aborted
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Result is the outcome of one routine.
type Result struct {
	Task  string
	State State
	// Err is the error the routine returned, or the reason it was skipped.
	Err error
	// WaitingOn is the id a skipped or blocked routine was waiting for.
	WaitingOn string
}

// Report is the outcome of a run, with results in registration order.
type Report struct {
	Results []Result
}

// Failed returns the results of routines that failed on their own.
func (r *Report) Failed() []Result {
	return r.filter(Failed)
}

// Skipped returns the results of routines skipped after an upstream failure.
func (r *Report) Skipped() []Result {
	return r.filter(Skipped)
}

func (r *Report) filter(s State) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.State == s {
			out = append(out, res)
		}
	}
	return out
}
