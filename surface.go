package flurry

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is the 2D drawing target the snowfall paints on. Coordinates passed
// to FillCircle are CSS pixels; the surface maps them to device pixels with
// the scale set by SetScale.
type Surface interface {
	// Resize reallocates the backing store to w x h device pixels for a
	// container of cssW x cssH CSS pixels.
	Resize(w, h int, cssW, cssH float64)
	// SetScale resets the drawing transform to a uniform scale.
	SetScale(scale float64)
	// Clear erases the whole surface to transparent.
	Clear()
	// FillCircle paints a solid circle. No stroke, no shadow.
	FillCircle(x, y, r float64, c Color)
}

// Canvas is a Surface backed by a persistent *ebiten.Image. The image is
// owned by the Canvas and reallocated only when the backing size changes.
type Canvas struct {
	image      *ebiten.Image
	w, h       int
	cssW, cssH float64
	scale      float64
}

// NewCanvas returns an empty canvas. The backing image is allocated on the
// first Resize.
func NewCanvas() *Canvas {
	return &Canvas{scale: 1}
}

// Image returns the backing store, or nil before the first Resize.
func (c *Canvas) Image() *ebiten.Image {
	return c.image
}

// Width returns the backing width in device pixels.
func (c *Canvas) Width() int {
	return c.w
}

// Height returns the backing height in device pixels.
func (c *Canvas) Height() int {
	return c.h
}

// CSSSize returns the size the canvas covers in CSS pixels.
func (c *Canvas) CSSSize() (w, h float64) {
	return c.cssW, c.cssH
}

// Scale returns the current drawing scale.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// Resize implements Surface. Dimensions below one pixel are clamped to one.
func (c *Canvas) Resize(w, h int, cssW, cssH float64) {
	w, h = max(w, 1), max(h, 1)
	c.cssW, c.cssH = cssW, cssH
	if c.image != nil && w == c.w && h == c.h {
		return
	}
	if c.image != nil {
		c.image.Deallocate()
	}
	c.image = ebiten.NewImage(w, h)
	c.w, c.h = w, h
}

// SetScale implements Surface.
func (c *Canvas) SetScale(scale float64) {
	c.scale = scale
}

// Clear implements Surface.
func (c *Canvas) Clear() {
	if c.image != nil {
		c.image.Clear()
	}
}

// FillCircle implements Surface.
func (c *Canvas) FillCircle(x, y, r float64, col Color) {
	if c.image == nil {
		return
	}
	s := c.scale
	vector.DrawFilledCircle(c.image, float32(x*s), float32(y*s), float32(r*s), col.toRGBA(), true)
}

// Dispose deallocates the backing image. The Canvas may be resized again
// afterwards.
func (c *Canvas) Dispose() {
	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
	c.w, c.h = 0, 0
}
