package job

import (
	"errors"
	"fmt"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

// InvalidStateError is returned when an operation is not valid in the Job's
// current state, e.g. starting a Job that is already running.
type InvalidStateError struct {
	State State
	Op    string
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s job in state %s", e.Op, e.State)
}

// ErrorKind classifies why a run went wrong. It is NoError until a run
// finalizes unsuccessfully, and then holds the last process-level error of
// that run.
type ErrorKind int

const (
	// NoError indicates the run did not fail.
	NoError ErrorKind = iota

	// LaunchFailure indicates the executable could not be started: not
	// found, not executable, or permission denied.
	LaunchFailure

	// ReadFailure indicates an output channel could not be read or its bytes
	// could not be decoded under the configured policy.
	ReadFailure

	// AbnormalExit indicates the process ran but exited with a nonzero code
	// or was terminated by the operating system.
	AbnormalExit
)

// NOTE: This slice needs to be kept in sync with any changes to the
// ErrorKind values.
var errorKindNames = []string{
	"NoError",
	"LaunchFailure",
	"ReadFailure",
	"AbnormalExit",
}

// String implements the Stringer interface for ErrorKind.
func (k ErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(errorKindNames) {
		return "Unknown"
	}

	return errorKindNames[k]
}

// Outcome is the tri-state result of a run: unknown until a terminal event
// fires, then success or failure, set exactly once per run.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

// String implements the Stringer interface for Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeFailure:
		return "Failure"
	}

	return "Unknown"
}
