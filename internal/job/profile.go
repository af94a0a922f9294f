package job

import (
	"fmt"
	"math"
	"time"
)

// ExitStatus describes how a process left: a regular exit with a code, or
// termination by the operating system (e.g. a signal).
type ExitStatus struct {
	// Code is the exit code, or -1 when the process did not exit on its own.
	Code int

	// Exited is false when the process was terminated rather than exited.
	Exited bool

	// Detail describes an abnormal exit, e.g. "signal: terminated".
	Detail string
}

// A Profile customizes how a Job assembles its command line and narrates its
// lifecycle. Implementations usually embed DefaultProfile and override only
// the pieces they need, e.g. to insert compiler flags or reword messages.
//
// BuildCommand must only produce an argument vector; it must not touch the
// Job's lifecycle state.
type Profile interface {
	// BuildCommand assembles the final argument vector from the Job's
	// configuration. The Job calls it exactly once per Start, before timing
	// begins.
	BuildCommand(j *Job) []string

	// StartText returns the status line announcing the launch of the job
	// with the given display name.
	StartText(name string) string

	// AbortText returns the status line announcing an abort request.
	AbortText(name string) string

	// ErrorText describes a process-level error. Returning an empty string
	// suppresses the message.
	ErrorText(kind ErrorKind, program string) string

	// FinishText describes the final result and the category to record it
	// under: Failure for a nonzero code or abnormal exit, Success otherwise.
	FinishText(status ExitStatus, elapsed time.Duration) (string, Category)
}

// DefaultProfile provides the stock command assembly and status messages.
// The zero value is ready to use.
type DefaultProfile struct{}

// BuildCommand appends to the base command, in order: the custom arguments,
// the input files, and the output files. Calling it twice would duplicate
// arguments, which is why the Job calls it exactly once per start.
func (DefaultProfile) BuildCommand(j *Job) []string {
	argv := j.Command()
	argv = append(argv, j.Arguments()...)
	argv = j.Input().appendTo(argv)
	argv = j.Output().appendTo(argv)

	return argv
}

func (DefaultProfile) StartText(name string) string {
	return fmt.Sprintf("Starting %s...", name)
}

func (DefaultProfile) AbortText(name string) string {
	return fmt.Sprintf("Aborting %s...", name)
}

func (DefaultProfile) ErrorText(kind ErrorKind, program string) string {
	switch kind {
	case LaunchFailure:
		return fmt.Sprintf(
			"Could not start %s.\nPlease check path and permissions.",
			program,
		)
	case ReadFailure:
		return "Could not read from the process."
	}

	return ""
}

func (DefaultProfile) FinishText(
	status ExitStatus,
	elapsed time.Duration,
) (string, Category) {
	switch {
	case status.Exited && status.Code != 0:
		return fmt.Sprintf("Exited with return code %d.", status.Code), Failure
	case !status.Exited:
		return fmt.Sprintf("Exited with exit status %s.", status.Detail), Failure
	default:
		text := fmt.Sprintf(
			"Completed successfully in %s.",
			FormatElapsed(elapsed),
		)
		return text, Success
	}
}

// FormatElapsed renders a duration the way the finish message shows it:
// minutes and seconds as M'S" when at least a minute passed, otherwise
// seconds with one decimal place, like 0.6".
func FormatElapsed(d time.Duration) string {
	seconds := d.Seconds()
	minutes := math.Floor(seconds / 60)
	if minutes > 0 {
		return fmt.Sprintf("%.0f'%.0f\"", minutes, seconds-minutes*60)
	}

	return fmt.Sprintf("%.1f\"", seconds)
}
