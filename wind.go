package flurry

import "math"

// WindTerm is one sinusoidal component of a WindField.
type WindTerm struct {
	Frequency float64 // radians per second
	Amplitude float64 // pixels per second
}

// WindField is a sum of sine terms evaluated at elapsed simulation time. It
// holds no state; every particle in a frame shares the same value.
type WindField []WindTerm

// DefaultWind mixes a slow, a medium and a fast gust. The frequencies are not
// rational multiples of each other, so the sum doesn't visibly repeat.
var DefaultWind = WindField{
	{Frequency: 0.6, Amplitude: 18},
	{Frequency: 1.15, Amplitude: 10},
	{Frequency: 2.3, Amplitude: 4},
}

// At returns the horizontal drift in pixels per second at time t seconds.
func (w WindField) At(t float64) float64 {
	var sum float64
	for _, term := range w {
		sum += math.Sin(t*term.Frequency) * term.Amplitude
	}
	return sum
}

// Peak returns the largest magnitude At can produce.
func (w WindField) Peak() float64 {
	var sum float64
	for _, term := range w {
		sum += math.Abs(term.Amplitude)
	}
	return sum
}
