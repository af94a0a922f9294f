package job_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Every run spawns an event-loop goroutine and two channel pumps; none of
// them may outlive the run.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
