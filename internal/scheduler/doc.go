// Package scheduler runs generator routines as cooperative coroutines and
// suspends them on unresolved ids.
//
// # Why Scheduler Exists
//
// Blocks may reference each other in any order. A generator for `sensor.bme280`
// needs the handle of the i2c bus it sits on, even when the bus block comes
// later in the file. Instead of sorting blocks up front, every generator runs
// as a routine that can stop at Await(id) until some other routine declares
// that id.
//
// # How It Works
//
// Each routine gets its own goroutine, but only one of them ever runs: the
// scheduler hands control to a routine and blocks until the routine either
// suspends or finishes. The state of a run is:
//
//  1. A FIFO ready queue, initially every task in registration order.
//  2. A pending table mapping an id to the routines waiting on it, in the
//     order they suspended.
//  3. The set of resolved ids.
//
// Resolve(id), called by the running routine when it declares a variable,
// moves the waiters of id to the back of the ready queue. The running routine
// keeps going until its next suspension point.
//
// # Terminal States
//
//   - Success: the ready queue drained and nothing is pending.
//   - Block failure: a routine returned a non-fatal error. Routines waiting on
//     ids that routine would have provided are skipped, transitively.
//   - Dependency failure: the queue drained with routines still pending. The
//     run fails with a *DependencyError naming every unsatisfied id, which
//     matches errors.ErrDependencyDeadlock when the waited-on producer is
//     itself blocked and errors.ErrUnresolvedReference when no live producer
//     exists.
//   - Fatal error: a routine failed with a pass-fatal error or called Abort.
//     Nothing else is started; suspended routines are resumed with
//     errors.ErrPassAborted and drained.
//
// # Thread-Safety
//
// None of the scheduler state is locked. Control passes between goroutines
// through unbuffered channels, which orders every access.
package scheduler
