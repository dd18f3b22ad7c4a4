package logger

import (
	"bytes"
	"io"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDebugMode(t *testing.T) {
	originalOutput := log.Writer()
	originalDebug := defaultLogger.debugEnabled
	defer func() {
		log.SetOutput(originalOutput)
		defaultLogger.debugEnabled = originalDebug
	}()

	SetDebugMode(true)
	assert.True(t, defaultLogger.debugEnabled)
	assert.Equal(t, os.Stderr, log.Writer())

	SetDebugMode(false)
	assert.False(t, defaultLogger.debugEnabled)
	assert.Equal(t, io.Discard, log.Writer())
}

func TestIsDebugEnabled(t *testing.T) {
	originalDebug := defaultLogger.debugEnabled
	defer func() { defaultLogger.debugEnabled = originalDebug }()

	defaultLogger.debugEnabled = false
	assert.False(t, IsDebugEnabled())

	defaultLogger.debugEnabled = true
	assert.True(t, IsDebugEnabled())
}

func TestDebugAndInfoGatedByDebugMode(t *testing.T) {
	originalOutput := log.Writer()
	originalDebug := defaultLogger.debugEnabled
	originalFlags := log.Flags()
	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
		defaultLogger.debugEnabled = originalDebug
	}()
	log.SetFlags(0)

	var buf bytes.Buffer
	log.SetOutput(&buf)

	defaultLogger.debugEnabled = false
	Debug("hidden %s", "debug")
	Info("hidden %s", "info")
	assert.Empty(t, buf.String())

	defaultLogger.debugEnabled = true
	Debug("shown %s", "debug")
	Info("shown %s", "info")
	assert.Equal(t, "[DEBUG] shown debug\n[INFO] shown info\n", buf.String())
}

func TestWarnAndErrorAlwaysEmit(t *testing.T) {
	var buf bytes.Buffer
	original := alwaysLogger
	alwaysLogger = log.New(&buf, "", 0)
	defer func() { alwaysLogger = original }()

	originalDebug := defaultLogger.debugEnabled
	defer func() { defaultLogger.debugEnabled = originalDebug }()

	defaultLogger.debugEnabled = false
	Warn("max_slot clamped to %d", 100)
	Error("fatal: %s", "state root mismatch")

	out := buf.String()
	assert.Contains(t, out, "[WARN] max_slot clamped to 100")
	assert.Contains(t, out, "[ERROR] fatal: state root mismatch")
}
