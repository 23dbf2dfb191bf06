package flurry

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// ContainerMetrics is the measured container box. Width and Height are CSS
// pixels; DPR is device pixels per CSS pixel. All particle math uses CSS
// pixels, the surface scales by DPR.
type ContainerMetrics struct {
	Width, Height float64
	DPR           float64
}

// BackingSize returns the device-pixel dimensions of the surface backing
// store for these metrics.
func (m ContainerMetrics) BackingSize() (w, h int) {
	return int(math.Ceil(m.Width * m.DPR)), int(math.Ceil(m.Height * m.DPR))
}

// sanitizeMetrics clamps a raw measurement: sizes below one pixel (not yet
// laid out) become 1x1 and a missing or sub-unit scale becomes 1.
func sanitizeMetrics(w, h, dpr float64) ContainerMetrics {
	return ContainerMetrics{
		Width:  atLeastOne(math.Floor(w)),
		Height: atLeastOne(math.Floor(h)),
		DPR:    atLeastOne(dpr),
	}
}

func atLeastOne(v float64) float64 {
	if !(v >= 1) || math.IsInf(v, 1) {
		return 1
	}
	return v
}

// lateRemeasureDelay is how long after start the adapter measures once more
// to absorb reflows from late layout or font loading.
const lateRemeasureDelay = 250 * time.Millisecond

// Adapter keeps a Surface sized to its Container. Resize notifications only
// mark the metrics stale; the simulation loop applies them at the start of
// the next tick, so metrics never change mid-frame.
type Adapter struct {
	container Container
	surface   Surface
	logger    *zap.Logger

	metrics ContainerMetrics
	applied bool

	stale     bool
	nextFrame bool
	lateAt    time.Duration
	unobserve func()
}

// NewAdapter creates an adapter for the given container and surface. It does
// nothing until Start.
func NewAdapter(c Container, s Surface, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{container: c, surface: s, logger: logger}
}

// Start measures immediately, subscribes to resize notifications and arms two
// deferred re-measurements: one on the next frame and one after
// lateRemeasureDelay.
func (a *Adapter) Start(now time.Duration) {
	a.Measure()
	a.nextFrame = true
	a.lateAt = now + lateRemeasureDelay
	if a.unobserve == nil {
		a.unobserve = a.container.Observe(func() { a.stale = true })
	}
}

// Stop unsubscribes from the container and cancels pending re-measurements.
// Safe to call more than once.
func (a *Adapter) Stop() {
	if a.unobserve != nil {
		a.unobserve()
		a.unobserve = nil
	}
	a.stale = false
	a.nextFrame = false
	a.lateAt = 0
}

// Metrics returns the most recently applied metrics.
func (a *Adapter) Metrics() ContainerMetrics {
	return a.metrics
}

// Measure reads the container and, when the box changed, resizes the surface
// backing store and resets its transform to the device scale.
func (a *Adapter) Measure() {
	w, h := a.container.Size()
	m := sanitizeMetrics(w, h, a.container.DeviceScale())
	a.stale = false
	if a.applied && m == a.metrics {
		return
	}
	a.metrics = m
	a.applied = true
	bw, bh := m.BackingSize()
	a.surface.Resize(bw, bh, m.Width, m.Height)
	a.surface.SetScale(m.DPR)
	a.logger.Debug("surface resized",
		zap.Float64("width", m.Width),
		zap.Float64("height", m.Height),
		zap.Float64("dpr", m.DPR),
		zap.Int("backingWidth", bw),
		zap.Int("backingHeight", bh))
}

// poll applies pending notifications and deferred re-measurements. Called
// by the simulation at the start of every tick.
func (a *Adapter) poll(now time.Duration) {
	due := a.stale || a.nextFrame
	a.nextFrame = false
	if a.lateAt > 0 && now >= a.lateAt {
		a.lateAt = 0
		due = true
	}
	if due {
		a.Measure()
	}
}
