package job_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tbramley/jobrun/internal/job"
)

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, `0.0"`},
		{600 * time.Millisecond, `0.6"`},
		{59 * time.Second, `59.0"`},
		{61 * time.Second, `1'1"`},
		{90 * time.Second, `1'30"`},
		{10 * time.Minute, `10'0"`},
	}

	for _, c := range cases {
		require.Equal(t, c.want, job.FormatElapsed(c.elapsed), "%v", c.elapsed)
	}
}

func TestDefaultProfileBuildCommand(t *testing.T) {
	j := job.New("lilypond", "--png")
	j.AddArgument("-dpoint-and-click")
	j.AddArgument("-dpoint-and-click") // append-once semantics
	j.AddArgument("--verbose")
	j.SetInput(job.File("score.ly"))
	j.SetOutput(job.Files("out.pdf", "out.midi"))

	argv := job.DefaultProfile{}.BuildCommand(j)

	want := []string{
		"lilypond", "--png",
		"-dpoint-and-click", "--verbose",
		"score.ly",
		"out.pdf", "out.midi",
	}
	require.Equal(t, want, argv)

	// Assembly is deterministic and does not mutate the configuration.
	require.Equal(t, argv, job.DefaultProfile{}.BuildCommand(j))
	require.Equal(t, []string{"lilypond", "--png"}, j.Command())
}

func TestDefaultProfileMessages(t *testing.T) {
	p := job.DefaultProfile{}

	require.Equal(t, "Starting engrave...", p.StartText("engrave"))
	require.Equal(t, "Aborting engrave...", p.AbortText("engrave"))

	t.Run("error text", func(t *testing.T) {
		require.Contains(
			t,
			p.ErrorText(job.LaunchFailure, "/usr/bin/lilypond"),
			"Could not start /usr/bin/lilypond.",
		)
		require.Equal(
			t,
			"Could not read from the process.",
			p.ErrorText(job.ReadFailure, ""),
		)
		// Other kinds produce no message.
		require.Empty(t, p.ErrorText(job.AbnormalExit, ""))
		require.Empty(t, p.ErrorText(job.NoError, ""))
	})

	t.Run("finish text", func(t *testing.T) {
		text, cat := p.FinishText(
			job.ExitStatus{Code: 2, Exited: true},
			time.Second,
		)
		require.Equal(t, "Exited with return code 2.", text)
		require.Equal(t, job.Failure, cat)

		text, cat = p.FinishText(
			job.ExitStatus{Code: -1, Exited: false, Detail: "signal: terminated"},
			time.Second,
		)
		require.Equal(t, "Exited with exit status signal: terminated.", text)
		require.Equal(t, job.Failure, cat)

		text, cat = p.FinishText(
			job.ExitStatus{Code: 0, Exited: true},
			1500*time.Millisecond,
		)
		require.Equal(t, `Completed successfully in 1.5".`, text)
		require.Equal(t, job.Success, cat)
	})
}

// quietProfile overrides the narration but reuses the stock command
// assembly, the way callers customize message text for a specific program.
type quietProfile struct {
	job.DefaultProfile
}

func (quietProfile) StartText(name string) string {
	return "engraving " + name
}

func TestCustomProfile(t *testing.T) {
	j := job.New("echo", "hi")
	j.SetProfile(quietProfile{})

	require.NoError(t, j.Start())
	<-j.Done()

	history := j.History(job.Neutral)
	require.NotEmpty(t, history)
	require.Equal(t, "engraving echo", history[0].Text)
}
