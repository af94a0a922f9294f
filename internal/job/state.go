package job

import "sync/atomic"

// State is the lifecycle state of a Job. Terminal events return the Job to
// StateIdle with its result fields populated, so a finished Job can be
// inspected and started again.
type State int

const (
	// StateIdle indicates no live process. Either the Job has never been
	// started or the last run has been finalized.
	StateIdle State = iota

	// StateStarting indicates Start has been called but the operating system
	// has not yet confirmed the process.
	StateStarting

	// StateRunning indicates the process is confirmed alive.
	StateRunning

	// StateStopping indicates an abort was requested but the run has not yet
	// finalized.
	StateStopping
)

// NOTE: This slice needs to be kept in sync with any changes to the State
// values.
var stateNames = []string{
	"Idle",
	"Starting",
	"Running",
	"Stopping",
}

// String implements the Stringer interface for State.
func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}

	return stateNames[s]
}

// AtomicState is a wrapper around an atomic.Int32 to provide atomic
// operations on a State. Validating lifecycle transitions with
// CompareAndSwap removes the need to hold a mutex across the transition.
type AtomicState struct {
	v atomic.Int32
}

// Load atomically loads the State value.
func (a *AtomicState) Load() State {
	return State(a.v.Load())
}

// Store atomically stores the State value.
func (a *AtomicState) Store(s State) {
	a.v.Store(int32(s))
}

// CompareAndSwap performs an atomic compare-and-swap operation with an old
// and new State.
func (a *AtomicState) CompareAndSwap(o, n State) bool {
	return a.v.CompareAndSwap(int32(o), int32(n))
}
