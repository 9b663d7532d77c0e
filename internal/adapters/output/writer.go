// Package output provides adapters for writing application output.
package output

import (
	"fmt"
	"io"
	"os"
)

// Writer carries user-facing build output: per-unit progress lines, the
// --echo invocation line, and the compiler subprocess's streamed output.
// Everything goes through one destination so lines interleave in the order
// they were produced. By default, it writes to stdout.
type Writer struct {
	out io.Writer
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{out: os.Stdout}
}

// NewWriterWithOutput creates a new Writer with a custom output destination.
// This is useful for testing.
func NewWriterWithOutput(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteLine writes one line of subprocess output, as received. Write
// errors are intentionally ignored: the subprocess keeps running either
// way and there is no recovery action for a failed stdout write.
func (w *Writer) WriteLine(line string) {
	fmt.Fprintln(w.out, line)
}

// Out exposes the underlying destination for components that write
// progress lines directly.
func (w *Writer) Out() io.Writer {
	return w.out
}
