package flurry

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// State is the lifecycle state of a Controller. There is no paused state:
// Stop tears everything down and Start builds it again.
type State uint8

const (
	StateIdle    State = iota // no simulation, nothing scheduled
	StateRunning              // a frame is always scheduled
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Options configures a Controller. The zero value is valid.
type Options struct {
	// ReducedMotion slows the simulation by ReducedMotionFactor. Read once
	// per Start.
	ReducedMotion bool
	// Seed makes particle sampling deterministic when non-zero.
	Seed uint64
	// Wind overrides DefaultWind.
	Wind WindField
	// FadeIn eases the effect in over this duration after Start.
	FadeIn time.Duration
	// Logger receives lifecycle events. Nil means no logging.
	Logger *zap.Logger
	// Debug logs frame stats every debugFrameInterval frames.
	Debug bool
	// Observer receives the stats of every frame.
	Observer FrameObserver
}

// Controller wires a Simulation to a FrameScheduler, a Container and a
// Surface with an explicit Start/Stop lifecycle. It owns the resize
// subscription and the scheduled frame handle, and releases both on Stop.
//
// A Controller is not safe for concurrent use; call it from the goroutine
// that dispatches frames.
type Controller struct {
	sched  FrameScheduler
	opts   Options
	logger *zap.Logger

	state   State
	gen     uint64
	sim     *Simulation
	adapter *Adapter
	handle  FrameHandle
}

// NewController returns an idle controller driven by sched.
func NewController(sched FrameScheduler, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{sched: sched, opts: opts, logger: logger}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Simulation returns the running simulation, or nil when idle.
func (c *Controller) Simulation() *Simulation {
	return c.sim
}

// Metrics returns the applied container metrics, or the zero value when idle.
func (c *Controller) Metrics() ContainerMetrics {
	if c.adapter == nil {
		return ContainerMetrics{}
	}
	return c.adapter.Metrics()
}

// Start begins a new simulation on surface, sized to container. A run already
// in progress is stopped first. A nil container or surface leaves the
// controller idle: the effect is decorative and simply does not appear.
func (c *Controller) Start(container Container, surface Surface, cfg SimulationConfig) {
	c.Stop()
	if container == nil || surface == nil {
		c.logger.Debug("snowfall not started: no drawing surface")
		return
	}

	now := c.sched.Now()
	adapter := NewAdapter(container, surface, c.logger)
	adapter.Start(now)

	var rng *rand.Rand
	if c.opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(c.opts.Seed, c.opts.Seed^seedStream))
	}
	observer := c.opts.Observer
	if c.opts.Debug {
		observer = newDebugObserver(c.logger, observer)
	}

	c.adapter = adapter
	c.sim = newSimulation(simulationParams{
		config:   cfg,
		adapter:  adapter,
		surface:  surface,
		wind:     c.opts.Wind,
		rng:      rng,
		reduced:  c.opts.ReducedMotion,
		fadeIn:   c.opts.FadeIn,
		observer: observer,
		start:    now,
	})
	c.state = StateRunning
	c.gen++
	c.schedule()

	m := adapter.Metrics()
	c.logger.Debug("snowfall started",
		zap.Int("count", c.sim.pool.Len()),
		zap.Float64("width", m.Width),
		zap.Float64("height", m.Height),
		zap.Float64("dpr", m.DPR),
		zap.Bool("reducedMotion", c.opts.ReducedMotion))
}

// seedStream is mixed into Options.Seed to derive the second PCG word.
const seedStream = 0x9e3779b97f4a7c15

// schedule requests the next frame. The callback checks the generation it
// was scheduled for, so a frame from a previous run never ticks a new one.
func (c *Controller) schedule() {
	gen := c.gen
	c.handle = c.sched.RequestFrame(func(now time.Duration) {
		if c.state != StateRunning || c.gen != gen {
			return
		}
		c.handle = 0
		c.sim.Tick(now)
		if c.state == StateRunning && c.gen == gen {
			c.schedule()
		}
	})
}

// Stop cancels the scheduled frame, disconnects the resize subscription and
// drops the simulation with its references to the container and surface.
// Safe to call repeatedly or before Start.
func (c *Controller) Stop() {
	if c.state == StateIdle {
		return
	}
	c.sched.CancelFrame(c.handle)
	c.handle = 0
	c.adapter.Stop()
	c.adapter = nil
	c.sim = nil
	c.state = StateIdle
	c.logger.Debug("snowfall stopped")
}
