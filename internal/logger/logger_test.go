package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseTogglesDebugOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden %s", "message")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	defer SetVerbose(false)
	Debug("visible %s", "message")
	assert.Contains(t, buf.String(), "visible message")
}

func TestWarnAlwaysPrinted(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Warn("low disk space on %s", "/srv")
	assert.Contains(t, buf.String(), "low disk space on /srv")
}
