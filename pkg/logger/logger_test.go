package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogUsableBeforeSetup(t *testing.T) {
	assert.NotNil(t, Log)
	// Must not panic when a package logs before main calls Setup
	assert.NotPanics(t, func() {
		Warn("warmup", "key", "value")
		Info("warmup")
	})
}

func TestSetupReplacesHandler(t *testing.T) {
	before := Log
	Setup("development")
	assert.NotNil(t, Log)
	assert.NotSame(t, before, Log)
}
