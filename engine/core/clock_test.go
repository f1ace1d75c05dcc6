package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockCountsWhileRunning(t *testing.T) {
	c := NewClock()
	assert.Zero(t, c.Elapsed())

	// Updating a clock that was never started stays at zero.
	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	assert.Greater(t, c.Elapsed(), float64(0))
}

func TestClockStopFreezesElapsed(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(time.Millisecond)
	c.Update()
	frozen := c.Elapsed()
	require.Greater(t, frozen, float64(0))

	c.Stop()
	time.Sleep(time.Millisecond)
	c.Update()
	assert.Equal(t, frozen, c.Elapsed())

	// Restarting resets the count.
	c.Start()
	assert.Zero(t, c.Elapsed())
}
