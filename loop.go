package flurry

import (
	"math"
	"math/rand/v2"
	"time"
)

// MaxFrameDelta caps the time step of a single tick so a long pause (a
// backgrounded window, a debugger stop) can't teleport particles past their
// recycle check.
const MaxFrameDelta = 33 * time.Millisecond

// ReducedMotionFactor slows the whole simulation when the reduced-motion
// preference is set. The effect keeps running, just gentler.
const ReducedMotionFactor = 0.35

// FrameStats summarizes one tick.
type FrameStats struct {
	Frame    uint64  `csv:"frame"`
	Elapsed  float64 `csv:"elapsed"`
	DT       float64 `csv:"dt"`
	Wind     float64 `csv:"wind"`
	Recycled int     `csv:"recycled"`
	Live     int     `csv:"live"`
	Width    float64 `csv:"width"`
	Height   float64 `csv:"height"`
	DPR      float64 `csv:"dpr"`
}

// FrameObserver receives the stats of every tick.
type FrameObserver interface {
	ObserveFrame(FrameStats)
}

// Simulation advances and paints one snowfall instance. It owns the particle
// pool and the elapsed-time counter; a Controller owns the Simulation.
type Simulation struct {
	config   SimulationConfig
	pool     *Pool
	wind     WindField
	renderer *Renderer
	adapter  *Adapter
	surface  Surface
	fade     *fade
	observer FrameObserver

	speed   float64
	elapsed float64
	last    time.Duration
	frame   uint64
}

// simulationParams bundles what a Controller hands to newSimulation.
type simulationParams struct {
	config   SimulationConfig
	adapter  *Adapter
	surface  Surface
	wind     WindField
	rng      *rand.Rand
	reduced  bool
	fadeIn   time.Duration
	observer FrameObserver
	start    time.Duration
}

func newSimulation(p simulationParams) *Simulation {
	cfg := p.config.Normalize()
	wind := p.wind
	if wind == nil {
		wind = DefaultWind
	}
	speed := 1.0
	if p.reduced {
		speed = ReducedMotionFactor
	}
	return &Simulation{
		config:   cfg,
		pool:     NewPool(cfg, p.adapter.Metrics(), p.rng),
		wind:     wind,
		renderer: NewRenderer(cfg),
		adapter:  p.adapter,
		surface:  p.surface,
		fade:     newFade(p.fadeIn),
		observer: p.observer,
		speed:    speed,
		last:     p.start,
	}
}

// Pool returns the particle pool.
func (s *Simulation) Pool() *Pool {
	return s.pool
}

// Elapsed returns the simulated time in seconds.
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// Config returns the normalized configuration.
func (s *Simulation) Config() SimulationConfig {
	return s.config
}

// Tick advances the simulation to now and repaints the surface.
func (s *Simulation) Tick(now time.Duration) FrameStats {
	s.adapter.poll(now)
	m := s.adapter.Metrics()

	delta := now - s.last
	s.last = now
	dt := min(max(delta, 0), MaxFrameDelta).Seconds() * s.speed
	s.elapsed += dt
	s.frame++

	s.renderer.Opacity = s.fade.update(dt)
	s.surface.Clear()

	wind := s.wind.At(s.elapsed) * s.config.WindMultiplier
	bounds := ExpandedBounds(m)
	swingT := s.elapsed * s.config.SwingFrequency
	recycled := 0

	particles := s.pool.Particles()
	for i := range particles {
		p := &particles[i]
		sway := math.Sin(swingT+p.Phase) * p.SwingAmplitude
		p.X += (p.VX+wind)*dt + sway*dt
		p.Y += p.VY * dt
		p.RemainingLife -= dt

		if p.expired(bounds) {
			s.pool.Recycle(p, m)
			recycled++
		}
		s.renderer.Draw(s.surface, p)
	}

	stats := FrameStats{
		Frame:    s.frame,
		Elapsed:  s.elapsed,
		DT:       dt,
		Wind:     wind,
		Recycled: recycled,
		Live:     len(particles),
		Width:    m.Width,
		Height:   m.Height,
		DPR:      m.DPR,
	}
	if s.observer != nil {
		s.observer.ObserveFrame(stats)
	}
	return stats
}
