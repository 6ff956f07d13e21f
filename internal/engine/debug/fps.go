package debug

import "time"

// FPSCounter averages frame rate over a fixed window.
type FPSCounter struct {
	window  time.Duration
	elapsed time.Duration
	frames  int
	fps     float64
}

// NewFPSCounter creates a counter that refreshes its rate every window.
func NewFPSCounter(window time.Duration) *FPSCounter {
	if window <= 0 {
		window = 500 * time.Millisecond
	}
	return &FPSCounter{window: window}
}

// Update records one frame that took delta. It reports true when the
// averaged rate was refreshed.
func (c *FPSCounter) Update(delta time.Duration) bool {
	c.frames++
	c.elapsed += delta
	if c.elapsed < c.window {
		return false
	}
	c.fps = float64(c.frames) / c.elapsed.Seconds()
	c.frames = 0
	c.elapsed = 0
	return true
}

// FPS returns the last averaged rate.
func (c *FPSCounter) FPS() float64 {
	return c.fps
}
