package job

import "slices"

// listeners holds the registered callbacks for the four notification
// points. Registration appends under the Job mutex; delivery happens on the
// goroutine that produced the event, in causal order.
type listeners struct {
	output       []func(text string, category Category)
	done         []func(success bool)
	started      []func()
	titleChanged []func(title string)
}

// OnOutput registers fn to receive every history entry (process output and
// status messages alike) as it is appended.
//
// Listeners are invoked synchronously and must return promptly; they may
// inspect the Job but must not call Start or Abort on it from inside the
// callback.
func (j *Job) OnOutput(fn func(text string, category Category)) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.listeners.output = append(j.listeners.output, fn)
}

// OnDone registers fn to be called exactly once per run, when the run has
// finalized, with the run's success flag.
func (j *Job) OnDone(fn func(success bool)) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.listeners.done = append(j.listeners.done, fn)
}

// OnStarted registers fn to be called exactly once per run, when the
// operating system confirms the process launched. It never fires for a run
// that failed to start.
func (j *Job) OnStarted(fn func()) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.listeners.started = append(j.listeners.started, fn)
}

// OnTitleChanged registers fn to be called whenever SetTitle changes the
// title to a different value.
func (j *Job) OnTitleChanged(fn func(title string)) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.listeners.titleChanged = append(j.listeners.titleChanged, fn)
}

// Done returns a channel that is closed when the current run has finalized.
// For a Job that has never been started it returns an already closed
// channel.
func (j *Job) Done() <-chan struct{} {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.done == nil {
		return closedChan
	}

	return j.done
}

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

func (j *Job) notifyStarted() {
	j.mu.Lock()
	fns := slices.Clone(j.listeners.started)
	j.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// notifyDone runs without the emit lock so that a done listener may restart
// the Job.
func (j *Job) notifyDone(success bool) {
	j.mu.Lock()
	fns := slices.Clone(j.listeners.done)
	j.mu.Unlock()

	for _, fn := range fns {
		fn(success)
	}
}
