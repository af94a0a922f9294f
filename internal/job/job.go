package job

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/text/encoding"
)

// readBufferSize is the temporary buffer size for draining the output pipes.
// 4KB aligns with typical pipe buffer sizes.
const readBufferSize = 4096

// Job manages one external process. It launches the configured command,
// drains stdout and stderr incrementally, decodes the bytes per channel, and
// appends everything to an ordered categorized history while forwarding it
// to registered listeners.
//
// Configure a Job before calling Start. A Job may be started again after a
// run has finalized; run-scoped state (history, timing, outcome) is reset on
// every Start. Starting a Job that is already running returns an
// InvalidStateError. Configuration must not be mutated concurrently with
// Start.
type Job struct {
	state AtomicState

	mu        sync.Mutex
	command   []string
	arguments []string
	directory string
	env       Environment
	input     FileSpec
	output    FileSpec
	title     string
	priority  int
	runner    any
	profile   Profile

	encoding      encoding.Encoding
	decodeErrors  Policy
	stdoutDecoder *Decoder
	stderrDecoder *Decoder

	// run-scoped, reset on every Start
	argv      []string
	history   []Message
	startedAt time.Time
	elapsed   time.Duration
	outcome   Outcome
	errKind   ErrorKind
	lastErr   ErrorKind
	aborted   bool
	proc      *os.Process
	done      chan struct{}

	listeners listeners

	// emitMu is the per-job ordering lock: it is held across a history
	// append and the matching listener delivery, so history order and
	// notification order always agree.
	emitMu sync.Mutex
}

// New creates a Job that will run the given command (program path plus any
// fixed arguments). The Job uses DefaultProfile, Latin-1 decoding and the
// strict decode policy until configured otherwise.
func New(command ...string) *Job {
	j := &Job{
		profile:      DefaultProfile{},
		encoding:     DefaultEncoding,
		decodeErrors: PolicyStrict,
		priority:     1,
	}
	j.SetCommand(command...)
	j.rebuildDecoders()

	return j
}

// Start launches the process and returns immediately. Completion is
// reported through OnDone listeners and the Done channel, never by blocking.
// It returns an InvalidStateError if a run is already in flight, or an error
// if the assembled command is empty or the output pipes cannot be created.
func (j *Job) Start() error {
	if !j.state.CompareAndSwap(StateIdle, StateStarting) {
		return InvalidStateError{State: j.state.Load(), Op: "start"}
	}

	j.mu.Lock()
	profile := j.profile
	j.mu.Unlock()

	argv := profile.BuildCommand(j)
	if len(argv) == 0 || argv[0] == "" {
		j.state.Store(StateIdle)
		return errors.New("no command to run")
	}

	cmd := exec.Command(argv[0], argv[1:]...)

	// The working directory is applied only when it exists on disk; a
	// missing directory is silently skipped, not an error.
	if dir := j.Directory(); dir != "" {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			cmd.Dir = dir
		}
	}

	j.mu.Lock()
	if !j.env.IsEmpty() {
		cmd.Env = j.env.apply(os.Environ())
	}
	j.mu.Unlock()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		j.state.Store(StateIdle)
		return fmt.Errorf("connect stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		j.state.Store(StateIdle)
		return fmt.Errorf("connect stderr pipe: %w", err)
	}

	done := make(chan struct{})

	j.mu.Lock()
	j.argv = argv
	j.history = nil
	j.outcome = OutcomeUnknown
	j.errKind = NoError
	j.lastErr = NoError
	j.aborted = false
	j.elapsed = 0
	j.startedAt = time.Now()
	j.proc = nil
	j.done = done
	outDec, errDec := j.stdoutDecoder, j.stderrDecoder
	name := j.displayNameLocked()
	j.mu.Unlock()

	j.message(profile.StartText(name), Neutral)

	go j.run(cmd, profile, stdout, stderr, outDec, errDec, done)

	return nil
}

// Abort requests termination of the running process and returns
// immediately. The job still finalizes through the normal done path, so
// callers must wait for the done notification to know the run has fully
// stopped. Aborting a job with no live process is a no-op.
func (j *Job) Abort() {
	if !j.state.CompareAndSwap(StateRunning, StateStopping) &&
		!j.state.CompareAndSwap(StateStarting, StateStopping) {
		return
	}

	j.mu.Lock()
	j.aborted = true
	proc := j.proc
	profile := j.profile
	name := j.displayNameLocked()
	j.mu.Unlock()

	j.message(profile.AbortText(name), Neutral)

	if proc != nil {
		// The process may have exited in the meantime; a failed signal is
		// not a job failure.
		terminate(proc)
	}
}

// run is the per-run event loop. It owns the process handle from launch to
// finalization and serializes draining against the terminal status message:
// the finish message is only appended after both channels have drained to
// EOF.
func (j *Job) run(
	cmd *exec.Cmd,
	profile Profile,
	stdout, stderr io.Reader,
	outDec, errDec *Decoder,
	done chan struct{},
) {
	if err := cmd.Start(); err != nil {
		// A process that never launched will never report finished; the
		// error path is the only finalization signal in that case.
		j.mu.Lock()
		j.lastErr = LaunchFailure
		j.mu.Unlock()

		if text := profile.ErrorText(LaunchFailure, cmd.Args[0]); text != "" {
			j.message(text, Failure)
		}

		j.finalize(false, done)

		return
	}

	j.mu.Lock()
	j.proc = cmd.Process
	j.mu.Unlock()

	if !j.state.CompareAndSwap(StateStarting, StateRunning) {
		// An abort raced the launch; honor it now that the handle exists.
		terminate(cmd.Process)
	}

	j.notifyStarted()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		j.drain(stdout, outDec, Stdout, profile)
	}()
	go func() {
		defer wg.Done()
		j.drain(stderr, errDec, Stderr, profile)
	}()
	wg.Wait()

	// ProcessState carries the exit detail even when Wait returns an
	// ExitError.
	waitErr := cmd.Wait()

	status := ExitStatus{Code: -1, Exited: false}
	if ps := cmd.ProcessState; ps != nil {
		status = ExitStatus{
			Code:   ps.ExitCode(),
			Exited: ps.Exited(),
			Detail: ps.String(),
		}
	} else if waitErr != nil {
		status.Detail = waitErr.Error()
	}

	success := status.Exited && status.Code == 0
	if !success {
		j.mu.Lock()
		if j.lastErr == NoError {
			j.lastErr = AbnormalExit
		}
		j.mu.Unlock()
	}

	text, cat := profile.FinishText(status, j.ElapsedTime())
	j.message(text, cat)

	j.finalize(success, done)
}

// drain reads one channel until EOF. Every read becomes exactly one history
// entry; chunks are never coalesced or reordered within a channel, so the
// concatenated entries reproduce the channel's byte stream.
func (j *Job) drain(r io.Reader, dec *Decoder, cat Category, profile Profile) {
	buf := make([]byte, readBufferSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			text, decErr := dec.Decode(buf[:n])
			if decErr != nil {
				j.reportReadFailure(profile)
			} else {
				j.message(text, cat)
			}
		}

		if err != nil {
			if err != io.EOF {
				j.reportReadFailure(profile)
			}

			return
		}
	}
}

// reportReadFailure narrates a channel read or decode failure. The run keeps
// going; the outcome still comes from the exit status.
func (j *Job) reportReadFailure(profile Profile) {
	j.mu.Lock()
	j.lastErr = ReadFailure
	j.mu.Unlock()

	if text := profile.ErrorText(ReadFailure, ""); text != "" {
		j.message(text, Failure)
	}
}

// finalize freezes the timing and result fields, releases the process
// handle, and delivers the single done notification for this run.
func (j *Job) finalize(success bool, done chan struct{}) {
	j.mu.Lock()
	j.elapsed = time.Since(j.startedAt)
	if success {
		j.outcome = OutcomeSuccess
		j.errKind = NoError
	} else {
		j.outcome = OutcomeFailure
		j.errKind = j.lastErr
	}
	j.proc = nil
	j.mu.Unlock()

	j.state.Store(StateIdle)
	close(done)

	j.notifyDone(success)
}
