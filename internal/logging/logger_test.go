package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DevelopmentMode(t *testing.T) {
	log, err := New("dev", false)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.NotNil(t, log.SugaredLogger)
}

func TestNew_ProductionModeVerbose(t *testing.T) {
	log, err := New("Production", true)
	require.NoError(t, err)
	assert.True(t, log.SugaredLogger.Desugar().Core().Enabled(-1), "debug level should be enabled")
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.With("component", "test").Info("hello", "key", "value")
		log.Error("boom", "error", "x")
		log.Sync()
	})
}
