//go:build !windows

package job

import (
	"os"
	"syscall"
)

// terminate asks proc to exit. On POSIX platforms SIGTERM gives the process
// a chance to clean up or even exit successfully.
func terminate(proc *os.Process) error {
	return proc.Signal(syscall.SIGTERM)
}
