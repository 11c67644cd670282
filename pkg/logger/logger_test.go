package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugfHiddenUnlessVerbose(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(false)
	Debugf("dropped line %d", 3)
	assert.Empty(t, buf.String(), "debug output should be suppressed without --verbose")

	SetVerbose(true)
	assert.True(t, IsVerbose())
	Debugf("dropped line %d", 4)
	assert.Contains(t, buf.String(), "dropped line 4")
}

func TestErrorfAlwaysWritten(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Errorf("failed to read %s", "input.txt")
	Infof("wrote %d commands", 2)

	out := buf.String()
	assert.Contains(t, out, "failed to read input.txt")
	assert.Contains(t, out, "wrote 2 commands")
}
