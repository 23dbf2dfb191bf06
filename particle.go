package flurry

import (
	"math"
	"math/rand/v2"
)

// Particle is one simulated snowflake. Positions are in CSS pixels relative to
// the container's top-left corner; velocities are in pixels per second.
type Particle struct {
	X, Y           float64
	Radius         float64
	VX, VY         float64
	SwingAmplitude float64
	Phase          float64 // oscillation phase offset in radians
	RemainingLife  float64 // seconds until forced recycle
}

// Margins around the container that make up the expanded bounding box. A
// particle leaving this box is recycled. Entry spawns are placed inside it.
const (
	SideMargin   = 120.0
	BottomMargin = 60.0
	TopMargin    = 180.0
)

// Entry spawn offsets, in CSS pixels outside the visible box.
var (
	topEntryOffset  = Range{10, 120}
	sideEntryOffset = Range{10, 80}
)

// sideEntryHeight is the fraction of the container height side entries are
// spread over, so flakes blowing in from the side don't all appear at once.
const sideEntryHeight = 0.7

// SpawnRegion identifies where a recycled particle re-enters the container.
type SpawnRegion uint8

const (
	RegionTop   SpawnRegion = iota // just above the top edge
	RegionLeft                     // off-screen left
	RegionRight                    // off-screen right
)

// Cumulative spawn weights: 65% top, 17.5% left, 17.5% right.
const (
	topWeight  = 0.65
	leftWeight = 0.825
)

// regionFor maps a uniform sample u in [0, 1) to a spawn region.
func regionFor(u float64) SpawnRegion {
	switch {
	case u < topWeight:
		return RegionTop
	case u < leftWeight:
		return RegionLeft
	default:
		return RegionRight
	}
}

// ExpandedBounds returns the container box grown by the recycle margins.
func ExpandedBounds(m ContainerMetrics) Rect {
	return Rect{
		X:      -SideMargin,
		Y:      -TopMargin,
		Width:  m.Width + 2*SideMargin,
		Height: m.Height + TopMargin + BottomMargin,
	}
}

// Pool owns a fixed number of particles. The backing slice is allocated once
// and particles are recycled in place for the pool's lifetime.
type Pool struct {
	config    SimulationConfig
	rng       *rand.Rand
	particles []Particle
}

// NewPool allocates cfg.Count particles spread uniformly over the container so
// the effect does not visibly start empty. A nil rng uses a randomly seeded
// PCG source. A non-positive count yields an empty pool.
func NewPool(cfg SimulationConfig, m ContainerMetrics, rng *rand.Rand) *Pool {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	n := cfg.Count
	if n < 0 {
		n = 0
	}
	p := &Pool{
		config:    cfg.Normalize(),
		rng:       rng,
		particles: make([]Particle, n),
	}
	for i := range p.particles {
		pt := &p.particles[i]
		pt.X = p.rng.Float64() * m.Width
		pt.Y = p.rng.Float64() * m.Height
		p.sampleMotion(pt)
	}
	return p
}

// Particles returns the pool's backing slice. Callers may mutate particles in
// place but must not append to or reslice it.
func (p *Pool) Particles() []Particle {
	return p.particles
}

// Len returns the pool size. It never changes after NewPool.
func (p *Pool) Len() int {
	return len(p.particles)
}

// Recycle reinitializes pt in place at an entry point just outside the
// container: usually above the top edge, sometimes beside it.
func (p *Pool) Recycle(pt *Particle, m ContainerMetrics) {
	p.recycleAt(pt, m, regionFor(p.rng.Float64()))
}

func (p *Pool) recycleAt(pt *Particle, m ContainerMetrics, region SpawnRegion) {
	switch region {
	case RegionTop:
		pt.X = p.rng.Float64() * m.Width
		pt.Y = -topEntryOffset.Sample(p.rng)
	case RegionLeft:
		pt.X = -sideEntryOffset.Sample(p.rng)
		pt.Y = p.rng.Float64() * m.Height * sideEntryHeight
	case RegionRight:
		pt.X = m.Width + sideEntryOffset.Sample(p.rng)
		pt.Y = p.rng.Float64() * m.Height * sideEntryHeight
	}
	p.sampleMotion(pt)
}

// sampleMotion draws every non-positional field from the configured ranges.
func (p *Pool) sampleMotion(pt *Particle) {
	cfg := &p.config
	pt.Radius = cfg.Radius.Sample(p.rng)
	pt.VY = cfg.VerticalVelocity.Sample(p.rng)
	pt.VX = cfg.HorizontalVelocity.Sample(p.rng)
	pt.SwingAmplitude = cfg.SwingAmplitude.Sample(p.rng)
	pt.Phase = p.rng.Float64() * 2 * math.Pi
	pt.RemainingLife = cfg.Life.Sample(p.rng)
	if pt.RemainingLife <= 0 {
		pt.RemainingLife = minLife
	}
}

// minLife replaces a non-positive sampled lifetime so a particle is never
// recycled on the frame it spawns.
const minLife = 0.1

// expired reports whether pt must be recycled: it left the expanded bounding
// box or ran out of life.
func (pt *Particle) expired(bounds Rect) bool {
	return pt.RemainingLife <= 0 || !bounds.Contains(pt.X, pt.Y)
}
