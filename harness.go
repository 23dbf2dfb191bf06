package flurry

import "time"

// ManualClock is a clock that only moves when told to.
type ManualClock struct {
	now time.Duration
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now += d
}

// defaultFrameStep is one frame at 60 Hz.
const defaultFrameStep = time.Second / 60

// Harness runs a snowfall without a window: a manual clock drives a
// FrameLoop, a StaticContainer stands in for the host element and a Raster
// receives the pixels.
type Harness struct {
	Clock      *ManualClock
	Loop       *FrameLoop
	Container  *StaticContainer
	Surface    *Raster
	Controller *Controller
	Config     SimulationConfig

	// ScreenshotDir receives PNG captures. When empty, captures are only
	// recorded by label.
	ScreenshotDir string
	// Screenshots lists every capture taken, as file paths or labels.
	Screenshots []string
}

// NewHarness returns an idle harness for a w x h CSS-pixel container at the
// given device scale.
func NewHarness(w, h, dpr float64, cfg SimulationConfig, opts Options) *Harness {
	clock := &ManualClock{}
	loop := NewFrameLoop(clock.Now)
	return &Harness{
		Clock:      clock,
		Loop:       loop,
		Container:  NewStaticContainer(w, h, dpr),
		Surface:    NewRaster(),
		Controller: NewController(loop, opts),
		Config:     cfg,
	}
}

// Start starts (or restarts) the snowfall.
func (h *Harness) Start() {
	h.Controller.Start(h.Container, h.Surface, h.Config)
}

// Stop stops the snowfall.
func (h *Harness) Stop() {
	h.Controller.Stop()
}

// Advance moves the clock by step and dispatches one frame, frames times.
// A non-positive step uses one 60 Hz frame.
func (h *Harness) Advance(frames int, step time.Duration) {
	if step <= 0 {
		step = defaultFrameStep
	}
	for i := 0; i < frames; i++ {
		h.Clock.Advance(step)
		h.Loop.Dispatch()
	}
}

// Screenshot captures the raster under label.
func (h *Harness) Screenshot(label string) error {
	if h.ScreenshotDir == "" {
		h.Screenshots = append(h.Screenshots, label)
		return nil
	}
	path, err := h.Surface.SavePNG(h.ScreenshotDir, label)
	if err != nil {
		return err
	}
	h.Screenshots = append(h.Screenshots, path)
	return nil
}
