package job

import (
	"slices"
	"strings"
	"time"
)

// message appends one history entry and forwards it to output listeners.
// The append and the delivery are one logical event: the emit lock keeps
// history order and notification order identical across goroutines.
func (j *Job) message(text string, cat Category) {
	j.emitMu.Lock()
	defer j.emitMu.Unlock()

	j.mu.Lock()
	j.history = append(j.history, Message{Text: text, Category: cat})
	fns := slices.Clone(j.listeners.output)
	j.mu.Unlock()

	for _, fn := range fns {
		fn(text, cat)
	}
}

// History returns the entries whose category intersects mask, in insertion
// order. Use All to replay everything since the last start.
func (j *Job) History(mask Category) []Message {
	j.mu.Lock()
	defer j.mu.Unlock()

	var entries []Message
	for _, m := range j.history {
		if m.Category&mask != 0 {
			entries = append(entries, m)
		}
	}

	return entries
}

// Stdout returns everything the process wrote to standard output, in write
// order. Entries are never coalesced or reordered within a channel, so this
// exactly reproduces the channel's byte stream as text.
func (j *Job) Stdout() string {
	return j.channelText(Stdout)
}

// Stderr returns everything the process wrote to standard error, in write
// order.
func (j *Job) Stderr() string {
	return j.channelText(Stderr)
}

func (j *Job) channelText(cat Category) string {
	var b strings.Builder
	for _, m := range j.History(cat) {
		b.WriteString(m.Text)
	}

	return b.String()
}

// StartTime returns the time of the last start, or the zero time when the
// Job has never been started.
func (j *Job) StartTime() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.startedAt
}

// ElapsedTime returns how long the job has been running. It advances while
// the run is live, freezes at its final value when the run finalizes, and
// is 0 before the first start.
func (j *Job) ElapsedTime() time.Duration {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.elapsed != 0 {
		return j.elapsed
	}
	if !j.startedAt.IsZero() {
		return time.Since(j.startedAt)
	}

	return 0
}

// State returns the lifecycle state of the Job.
func (j *Job) State() State {
	return j.state.Load()
}

// IsRunning reports whether a run is in flight, from Start until the run
// has finalized.
func (j *Job) IsRunning() bool {
	return j.state.Load() != StateIdle
}

// IsAborted reports whether the last run was stopped by an Abort call, as
// opposed to failing on its own.
func (j *Job) IsAborted() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.aborted
}

// Outcome returns the tri-state result of the last run: OutcomeUnknown
// until a terminal event fires.
func (j *Job) Outcome() Outcome {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.outcome
}

// LastError returns the process-level error of the last run, or NoError
// when the run succeeded or no terminal event has fired yet.
func (j *Job) LastError() ErrorKind {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.errKind
}

// FailedToStart reports whether the last run's process could not be
// launched at all. Call it after the run has finalized.
func (j *Job) FailedToStart() bool {
	return j.LastError() == LaunchFailure
}
