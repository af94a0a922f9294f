package job

import (
	"fmt"
	"strings"
)

// Category classifies a history entry: raw process output on one of the two
// channels, or a status message the job reports about itself.
//
// The five flags combine as a bitmask for filtering. When displaying entries
// in a log, take care with newlines: status messages carry none of their
// own, while process output may continue on the same line.
type Category int

const (
	// Stdout is raw output read from the process' standard output.
	Stdout Category = 1 << iota

	// Stderr is raw output read from the process' standard error.
	Stderr

	// Neutral is an informational status message, e.g. "Starting ...".
	Neutral

	// Success is the status message of a successful completion.
	Success

	// Failure is a status message describing an error or failed exit.
	Failure
)

const (
	// Output matches raw process output on either channel.
	Output = Stdout | Stderr

	// Status matches the job's own status messages.
	Status = Neutral | Success | Failure

	// All matches every history entry.
	All = Output | Status
)

// Message is one history entry: a piece of decoded process output or a
// status line, tagged with its category.
type Message struct {
	Text     string
	Category Category
}

// NOTE: This map needs to be kept in sync with any changes to the Category
// values. Combined masks are rendered from the flag names they contain.
var categoryNames = map[Category]string{
	Stdout:  "stdout",
	Stderr:  "stderr",
	Neutral: "neutral",
	Success: "success",
	Failure: "failure",
}

// String renders single flags by name and combined masks as a
// comma-separated flag list. The common masks render as "output", "status"
// and "all".
func (c Category) String() string {
	switch c {
	case Output:
		return "output"
	case Status:
		return "status"
	case All:
		return "all"
	}

	if name, ok := categoryNames[c]; ok {
		return name
	}

	var names []string
	for flag := Stdout; flag <= Failure; flag <<= 1 {
		if c&flag != 0 {
			names = append(names, categoryNames[flag])
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("Category(%d)", int(c))
	}

	return strings.Join(names, ",")
}

// ParseCategory parses a comma-separated list of category or mask names,
// e.g. "stdout", "output" or "stderr,failure", into a combined mask.
func ParseCategory(s string) (Category, error) {
	var mask Category

	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "stdout":
			mask |= Stdout
		case "stderr":
			mask |= Stderr
		case "neutral":
			mask |= Neutral
		case "success":
			mask |= Success
		case "failure":
			mask |= Failure
		case "output":
			mask |= Output
		case "status":
			mask |= Status
		case "all":
			mask |= All
		default:
			return 0, fmt.Errorf("unknown category %q", name)
		}
	}

	return mask, nil
}
