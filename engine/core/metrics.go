package core

import "sync"

// metricsWindow is the number of frames averaged into the frame time.
const metricsWindow = 30

// metricsState accumulates frame timings: a rolling window for the
// average frame time and a one second bucket for the FPS counter.
type metricsState struct {
	samples    [metricsWindow]float64
	cursor     int
	avgFrameMS float64

	frames   int
	windowMS float64
	fps      float64
}

var onceMetrics sync.Once
var metrics *metricsState

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metrics = &metricsState{}
	})
	return nil
}

// MetricsUpdate records one frame's duration in seconds. Call it once per
// frame; calls before MetricsInitialize are dropped.
func MetricsUpdate(frameSeconds float64) {
	if metrics == nil {
		return
	}
	ms := frameSeconds * 1000.0

	metrics.samples[metrics.cursor] = ms
	metrics.cursor = (metrics.cursor + 1) % metricsWindow
	if metrics.cursor == 0 {
		sum := 0.0
		for _, sample := range metrics.samples {
			sum += sample
		}
		metrics.avgFrameMS = sum / metricsWindow
	}

	metrics.frames++
	metrics.windowMS += ms
	if metrics.windowMS > 1000.0 {
		metrics.fps = float64(metrics.frames)
		metrics.windowMS -= 1000.0
		metrics.frames = 0
	}
}

// MetricsFPS returns the frames counted over the last full second.
func MetricsFPS() float64 {
	return metrics.fps
}

// MetricsFrameTime returns the average frame time in milliseconds over
// the last full sample window.
func MetricsFrameTime() float64 {
	return metrics.avgFrameMS
}

// MetricsFrame returns FPS and average frame time together.
func MetricsFrame() (float64, float64) {
	return metrics.fps, metrics.avgFrameMS
}
