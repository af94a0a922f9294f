package job_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tbramley/jobrun/internal/job"
)

func TestDecoderDefaultEncodingIsTotal(t *testing.T) {
	// Every byte value 0-255 is a valid Latin-1 character, so the default
	// decoder cannot fail even under the strict policy.
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	for _, policy := range []job.Policy{
		job.PolicyStrict,
		job.PolicyReplace,
		job.PolicyIgnore,
	} {
		dec := job.NewDecoder(nil, policy)

		text, err := dec.Decode(all)
		require.NoError(t, err, "policy %s", policy)
		require.Equal(t, 256, len([]rune(text)), "policy %s", policy)
	}
}

func TestDecoderLatin1(t *testing.T) {
	dec := job.NewDecoder(job.DefaultEncoding, job.PolicyStrict)

	text, err := dec.Decode([]byte{0xE9})
	require.NoError(t, err)
	require.Equal(t, "é", text)
}

func TestDecoderUTF8Policies(t *testing.T) {
	enc, err := job.LookupEncoding("utf-8")
	require.NoError(t, err)

	invalid := []byte{'a', 0xE9, 'b'} // lone 0xE9 is not valid UTF-8

	t.Run("strict fails", func(t *testing.T) {
		dec := job.NewDecoder(enc, job.PolicyStrict)

		_, err := dec.Decode(invalid)
		var decodeErr *job.DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("replace substitutes", func(t *testing.T) {
		dec := job.NewDecoder(enc, job.PolicyReplace)

		text, err := dec.Decode(invalid)
		require.NoError(t, err)
		require.Equal(t, "a�b", text)
	})

	t.Run("ignore drops", func(t *testing.T) {
		dec := job.NewDecoder(enc, job.PolicyIgnore)

		text, err := dec.Decode(invalid)
		require.NoError(t, err)
		require.Equal(t, "ab", text)
	})

	t.Run("valid input passes strict", func(t *testing.T) {
		dec := job.NewDecoder(enc, job.PolicyStrict)

		text, err := dec.Decode([]byte("héllo"))
		require.NoError(t, err)
		require.Equal(t, "héllo", text)
	})

	t.Run("literal replacement rune passes strict", func(t *testing.T) {
		dec := job.NewDecoder(enc, job.PolicyStrict)

		text, err := dec.Decode([]byte("a�b"))
		require.NoError(t, err)
		require.Equal(t, "a�b", text)
	})
}

func TestDecoderEmptyInput(t *testing.T) {
	dec := job.NewDecoder(nil, job.PolicyStrict)

	text, err := dec.Decode(nil)
	require.NoError(t, err)
	require.Equal(t, "", text)
}

func TestLookupEncoding(t *testing.T) {
	t.Run("known names resolve", func(t *testing.T) {
		for _, name := range []string{"latin1", "ISO-8859-1", "utf-8", "UTF-8"} {
			enc, err := job.LookupEncoding(name)
			require.NoError(t, err, name)
			require.NotNil(t, enc, name)
		}
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := job.LookupEncoding("no-such-encoding")
		require.Error(t, err)
	})
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]job.Policy{
		"strict":  job.PolicyStrict,
		"replace": job.PolicyReplace,
		"IGNORE":  job.PolicyIgnore,
	}

	for name, want := range cases {
		got, err := job.ParsePolicy(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := job.ParsePolicy("lenient")
	require.Error(t, err)
}
