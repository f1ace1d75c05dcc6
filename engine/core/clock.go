package core

import "time"

// Clock measures elapsed time in nanoseconds against a monotonic start
// point. A stopped clock freezes its last elapsed value.
type Clock struct {
	start   time.Time
	elapsed float64
	running bool
}

func NewClock() *Clock {
	return &Clock{}
}

// Start resets the clock and begins counting.
func (c *Clock) Start() {
	c.start = time.Now()
	c.elapsed = 0
	c.running = true
}

// Update refreshes the elapsed time. Call it just before reading Elapsed;
// it has no effect on a clock that was never started or was stopped.
func (c *Clock) Update() {
	if c.running {
		c.elapsed = float64(time.Since(c.start).Nanoseconds())
	}
}

// Stop halts the clock without resetting the elapsed time.
func (c *Clock) Stop() {
	c.running = false
}

// Elapsed returns the nanoseconds counted at the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
