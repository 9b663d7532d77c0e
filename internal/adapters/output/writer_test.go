package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_WriteLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterWithOutput(&buf)

	w.WriteLine("first")
	w.WriteLine("second")

	assert.Equal(t, "first\nsecond\n", buf.String())
}

func TestWriter_Out(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterWithOutput(&buf)

	assert.Same(t, &buf, w.Out().(*bytes.Buffer))
}

func TestNewWriter_DefaultsToStdout(t *testing.T) {
	w := NewWriter()

	assert.NotNil(t, w.Out())
}
