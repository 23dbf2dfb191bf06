package flurry

// MinRadius is the smallest radius the renderer draws. Misconfigured
// non-positive radii are clamped to it.
const MinRadius = 0.25

// Renderer paints a particle as a soft sprite: a solid core plus a larger,
// faint halo in the same tint.
type Renderer struct {
	Tint      Color
	Alpha     float64
	HaloScale float64
	HaloAlpha float64
	// Opacity multiplies both core and halo alpha. Used for fade-in.
	Opacity float64
}

// NewRenderer returns a renderer configured from cfg.
func NewRenderer(cfg SimulationConfig) *Renderer {
	cfg = cfg.Normalize()
	return &Renderer{
		Tint:      cfg.Tint,
		Alpha:     cfg.Alpha,
		HaloScale: cfg.HaloScale,
		HaloAlpha: cfg.HaloAlpha,
		Opacity:   1,
	}
}

// Draw paints p on s.
func (r *Renderer) Draw(s Surface, p *Particle) {
	radius := p.Radius
	if !(radius >= MinRadius) {
		radius = MinRadius
	}
	s.FillCircle(p.X, p.Y, radius, r.Tint.WithAlpha(r.Alpha*r.Opacity))
	s.FillCircle(p.X, p.Y, radius*r.HaloScale, r.Tint.WithAlpha(r.HaloAlpha*r.Opacity))
}
