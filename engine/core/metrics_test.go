package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsFrameAccumulation(t *testing.T) {
	require.NoError(t, MetricsInitialize())

	// 120 frames at a steady 20ms: the FPS bucket fills past one second
	// and the sample window wraps exactly at the end.
	for i := 0; i < 120; i++ {
		MetricsUpdate(0.020)
	}

	fps, frameMS := MetricsFrame()
	assert.InDelta(t, 50.0, fps, 2.0)
	assert.InDelta(t, 20.0, frameMS, 0.001)
	assert.Equal(t, fps, MetricsFPS())
	assert.Equal(t, frameMS, MetricsFrameTime())
}
