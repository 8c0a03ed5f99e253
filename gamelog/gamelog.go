// Package gamelog is the core's logging surface: a package-level writer
// any system can call into without threading a logger through every
// constructor. Grounded on the teacher's game/logging.go (Logf,
// SetLogWriter) — same shape, moved out of the game package into its own
// since this core has no single top-level package every caller already
// imports.
package gamelog

import (
	"fmt"
	"io"
	"os"
)

var writer io.Writer = os.Stdout

// SetWriter redirects log output, e.g. to a file or a test buffer.
func SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	writer = w
}

// Logf writes a formatted, newline-terminated message to the current
// writer.
func Logf(format string, args ...any) {
	fmt.Fprintf(writer, format+"\n", args...)
}
