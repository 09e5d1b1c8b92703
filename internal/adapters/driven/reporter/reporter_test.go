package reporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter_CaptureMessage(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.CaptureMessage("malformed query \"/a\"")
	r.CaptureMessage("second")

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, "second", r.Last())
	assert.Equal(t, "flamesearch: malformed query \"/a\"\nflamesearch: second\n", buf.String())
}

func TestReporter_NilWriter(t *testing.T) {
	r := New(nil)

	r.CaptureMessage("quiet")

	assert.Equal(t, 1, r.Count())
	assert.Equal(t, "quiet", r.Last())
}

func TestReporter_Empty(t *testing.T) {
	r := New(nil)

	assert.Zero(t, r.Count())
	assert.Empty(t, r.Last())
}

func TestFunc(t *testing.T) {
	var got []string
	f := Func(func(msg string) { got = append(got, msg) })

	f.CaptureMessage("a")
	Func(nil).CaptureMessage("ignored")

	assert.Equal(t, []string{"a"}, got)
}
