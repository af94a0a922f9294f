package job_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tbramley/jobrun/internal/job"
)

func TestFileSpec(t *testing.T) {
	require.False(t, job.NoFile().IsSet())
	require.Empty(t, job.NoFile().Names())

	single := job.File("score.ly")
	require.True(t, single.IsSet())
	require.Equal(t, []string{"score.ly"}, single.Names())

	multi := job.Files("a.ly", "b.ly")
	require.True(t, multi.IsSet())
	require.Equal(t, []string{"a.ly", "b.ly"}, multi.Names())

	require.False(t, job.Files().IsSet())
}

func TestEnvironment(t *testing.T) {
	var env job.Environment

	require.True(t, env.IsEmpty())

	env.Set("FOO", "bar")
	env.Unset("HOME")
	require.False(t, env.IsEmpty())
}
