package job

import (
	"path/filepath"
	"slices"

	"golang.org/x/text/encoding"
)

// Configuration accessors. All of these may be used freely between runs;
// none of them may race with a Start call on the same Job.

// Command returns the base command: the program path plus its fixed
// arguments.
func (j *Job) Command() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	return slices.Clone(j.command)
}

// SetCommand replaces the base command.
func (j *Job) SetCommand(command ...string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.command = slices.Clone(command)
}

// AddArgument appends an additional command line argument if it is not
// present already.
func (j *Job) AddArgument(arg string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !slices.Contains(j.arguments, arg) {
		j.arguments = append(j.arguments, arg)
	}
}

// Arguments returns the additional (custom) arguments, inserted between the
// base command and the input files during assembly.
func (j *Job) Arguments() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	return slices.Clone(j.arguments)
}

// Directory returns the configured working directory.
func (j *Job) Directory() string {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.directory
}

// SetDirectory sets the working directory for the process. A directory that
// does not exist at start time is silently ignored.
func (j *Job) SetDirectory(dir string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.directory = dir
}

// SetEnv overrides (or adds) an environment variable for the process. The
// rest of the environment is inherited from the system.
func (j *Job) SetEnv(name, value string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.env.Set(name, value)
}

// UnsetEnv removes a variable from the environment the process inherits.
func (j *Job) UnsetEnv(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.env.Unset(name)
}

// Input returns the input file designator.
func (j *Job) Input() FileSpec {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.input
}

// SetInput designates the input files appended to the command line after
// the custom arguments.
func (j *Job) SetInput(input FileSpec) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.input = input
}

// Output returns the output file designator.
func (j *Job) Output() FileSpec {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.output
}

// SetOutput designates the output files appended to the command line last.
func (j *Job) SetOutput(output FileSpec) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.output = output
}

// Title returns the job title. It defaults to an empty string.
func (j *Job) Title() string {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.title
}

// SetTitle sets the title. If the title actually changed, registered
// titleChanged listeners are notified with the new value.
func (j *Job) SetTitle(title string) {
	j.mu.Lock()
	changed := title != j.title
	j.title = title
	var fns []func(string)
	if changed {
		fns = slices.Clone(j.listeners.titleChanged)
	}
	j.mu.Unlock()

	for _, fn := range fns {
		fn(title)
	}
}

// DisplayName returns the job title, falling back to the base name of the
// executable.
func (j *Job) DisplayName() string {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.displayNameLocked()
}

func (j *Job) displayNameLocked() string {
	if j.title != "" {
		return j.title
	}
	if len(j.command) > 0 {
		return filepath.Base(j.command[0])
	}

	return ""
}

// Priority returns the scheduling hint. It has no meaning to the Job
// itself; external schedulers may use it for ordering.
func (j *Job) Priority() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.priority
}

// SetPriority sets the scheduling hint.
func (j *Job) SetPriority(priority int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.priority = priority
}

// Runner returns the opaque back-reference to the external scheduler that
// owns this Job, or nil.
func (j *Job) Runner() any {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.runner
}

// SetRunner stores an opaque back-reference to an external scheduler. No
// ownership is implied.
func (j *Job) SetRunner(runner any) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.runner = runner
}

// Profile returns the active Profile.
func (j *Job) Profile() Profile {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.profile
}

// SetProfile installs a Profile that customizes command assembly and the
// status messages.
func (j *Job) SetProfile(p Profile) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if p == nil {
		p = DefaultProfile{}
	}
	j.profile = p
}

// SetEncoding sets the text encoding used to decode both output channels
// and rebuilds the per-channel decoders.
func (j *Job) SetEncoding(enc encoding.Encoding) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if enc == nil {
		enc = DefaultEncoding
	}
	j.encoding = enc
	j.rebuildDecodersLocked()
}

// SetDecodePolicy sets the error policy applied to undecodable output bytes
// and rebuilds the per-channel decoders. The default Latin-1 encoding can
// never produce a decode failure, so the policy only matters once a caller
// installs a different encoding.
func (j *Job) SetDecodePolicy(p Policy) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.decodeErrors = p
	j.rebuildDecodersLocked()
}

// SetDecoders installs the per-channel decoders directly, bypassing the
// encoding and policy configuration.
func (j *Job) SetDecoders(stdout, stderr *Decoder) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if stdout != nil {
		j.stdoutDecoder = stdout
	}
	if stderr != nil {
		j.stderrDecoder = stderr
	}
}

func (j *Job) rebuildDecoders() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.rebuildDecodersLocked()
}

func (j *Job) rebuildDecodersLocked() {
	j.stdoutDecoder = NewDecoder(j.encoding, j.decodeErrors)
	j.stderrDecoder = NewDecoder(j.encoding, j.decodeErrors)
}
