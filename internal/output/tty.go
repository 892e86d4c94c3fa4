package output

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether stderr is attached to a terminal. The spinner and
// log both write to stderr, so that is the stream that matters.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
