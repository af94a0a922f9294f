package job

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Policy controls what a Decoder does with byte sequences the encoding
// cannot decode.
type Policy int

const (
	// PolicyStrict fails the decode with a DecodeError.
	PolicyStrict Policy = iota

	// PolicyReplace substitutes U+FFFD for each undecodable sequence.
	PolicyReplace

	// PolicyIgnore drops undecodable sequences.
	PolicyIgnore
)

// String implements the Stringer interface for Policy.
func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyReplace:
		return "replace"
	case PolicyIgnore:
		return "ignore"
	}

	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses a policy name: "strict", "replace" or "ignore".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "strict":
		return PolicyStrict, nil
	case "replace":
		return PolicyReplace, nil
	case "ignore":
		return PolicyIgnore, nil
	}

	return 0, fmt.Errorf("unknown decode policy %q", s)
}

// DefaultEncoding decodes one byte per character. Every byte value 0-255 is
// a valid character, so the default decoder cannot fail under any Policy.
var DefaultEncoding encoding.Encoding = charmap.ISO8859_1

// DecodeError reports output bytes that are not valid in the configured
// encoding.
type DecodeError struct {
	Encoding string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("output is not valid %s", e.Encoding)
}

// A Decoder converts raw bytes read from one process channel into text,
// applying its Policy to byte sequences the encoding cannot decode.
type Decoder struct {
	enc    encoding.Encoding
	name   string
	policy Policy
}

// NewDecoder returns a Decoder for enc with the given error policy. A nil
// enc selects DefaultEncoding.
func NewDecoder(enc encoding.Encoding, policy Policy) *Decoder {
	if enc == nil {
		enc = DefaultEncoding
	}

	return &Decoder{
		enc:    enc,
		name:   encodingName(enc),
		policy: policy,
	}
}

// LookupEncoding resolves an IANA encoding name such as "latin1" or "utf-8".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}

	return enc, nil
}

// Decode converts p to text according to the decoder's policy.
func (d *Decoder) Decode(p []byte) (string, error) {
	if len(p) == 0 {
		return "", nil
	}

	decoded, err := d.enc.NewDecoder().Bytes(p)
	if err != nil && d.policy == PolicyStrict {
		return "", &DecodeError{Encoding: d.name}
	}

	text := string(decoded)
	if d.policy == PolicyReplace || !d.sawReplacement(p, text) {
		return text, nil
	}

	switch d.policy {
	case PolicyStrict:
		return "", &DecodeError{Encoding: d.name}
	case PolicyIgnore:
		return strings.ReplaceAll(text, string(utf8.RuneError), ""), nil
	}

	return text, nil
}

// sawReplacement reports whether decoding substituted U+FFFD for input
// bytes. Charmaps cannot encode U+FFFD, so any replacement rune in their
// output was introduced by the decoder. UTF-8 input may carry a literal
// U+FFFD, so it is validated directly instead.
func (d *Decoder) sawReplacement(src []byte, text string) bool {
	if d.enc == unicode.UTF8 {
		return !utf8.Valid(src)
	}

	return strings.ContainsRune(text, utf8.RuneError)
}

func encodingName(enc encoding.Encoding) string {
	if name, err := ianaindex.IANA.Name(enc); err == nil {
		return name
	}

	return fmt.Sprintf("%v", enc)
}
