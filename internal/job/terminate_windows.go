//go:build windows

package job

import "os"

// terminate force-kills proc. Windows has no reliable graceful termination
// signal for console processes, so Kill is the only dependable request.
func terminate(proc *os.Process) error {
	return proc.Kill()
}
