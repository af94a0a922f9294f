package job_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tbramley/jobrun/internal/job"
)

func TestCategoryString(t *testing.T) {
	cases := map[job.Category]string{
		job.Stdout:               "stdout",
		job.Stderr:               "stderr",
		job.Neutral:              "neutral",
		job.Success:              "success",
		job.Failure:              "failure",
		job.Output:               "output",
		job.Status:               "status",
		job.All:                  "all",
		job.Stderr | job.Failure: "stderr,failure",
	}

	for cat, want := range cases {
		require.Equal(t, want, cat.String())
	}
}

func TestParseCategory(t *testing.T) {
	t.Run("single names", func(t *testing.T) {
		got, err := job.ParseCategory("stdout")
		require.NoError(t, err)
		require.Equal(t, job.Stdout, got)

		got, err = job.ParseCategory("ALL")
		require.NoError(t, err)
		require.Equal(t, job.All, got)
	})

	t.Run("combined masks", func(t *testing.T) {
		got, err := job.ParseCategory("stderr, failure")
		require.NoError(t, err)
		require.Equal(t, job.Stderr|job.Failure, got)

		got, err = job.ParseCategory("output,neutral")
		require.NoError(t, err)
		require.Equal(t, job.Output|job.Neutral, got)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := job.ParseCategory("verbose")
		require.Error(t, err)
	})
}

func TestHistoryFiltering(t *testing.T) {
	j := job.New("sh", "-c", "echo out; echo err >&2")

	require.NoError(t, j.Start())
	<-j.Done()

	all := j.History(job.All)
	output := j.History(job.Output)
	status := j.History(job.Status)

	// Filtering partitions the history and preserves insertion order.
	require.Equal(t, len(all), len(output)+len(status))

	require.Equal(t, "out\n", j.Stdout())
	require.Equal(t, "err\n", j.Stderr())

	for _, m := range output {
		require.NotZero(t, m.Category&job.Output)
	}
	for _, m := range status {
		require.NotZero(t, m.Category&job.Status)
	}

	require.Empty(t, j.History(0))
}
