package flurry

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// bezierArc is the control-point distance for approximating a quarter circle
// with one cubic Bézier segment.
const bezierArc = 0.5522847498

// Raster is a CPU Surface backed by an *image.RGBA. It needs no graphics
// context, which makes it suitable for headless capture and pixel tests.
type Raster struct {
	img        *image.RGBA
	cssW, cssH float64
	scale      float64

	rast    *vector.Rasterizer
	maskPix []uint8
}

// NewRaster returns an empty raster. The image is allocated on the first Resize.
func NewRaster() *Raster {
	return &Raster{scale: 1, rast: vector.NewRasterizer(1, 1)}
}

// Image returns the backing image, or nil before the first Resize.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Scale returns the current drawing scale.
func (r *Raster) Scale() float64 {
	return r.scale
}

// CSSSize returns the size the raster covers in CSS pixels.
func (r *Raster) CSSSize() (w, h float64) {
	return r.cssW, r.cssH
}

// Resize implements Surface. Dimensions below one pixel are clamped to one.
func (r *Raster) Resize(w, h int, cssW, cssH float64) {
	w, h = max(w, 1), max(h, 1)
	r.cssW, r.cssH = cssW, cssH
	if r.img != nil && r.img.Bounds().Dx() == w && r.img.Bounds().Dy() == h {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// SetScale implements Surface.
func (r *Raster) SetScale(scale float64) {
	r.scale = scale
}

// Clear implements Surface.
func (r *Raster) Clear() {
	if r.img != nil {
		clear(r.img.Pix)
	}
}

// FillCircle implements Surface. The circle is rasterized with anti-aliased
// coverage into a scratch mask, then composited source-over.
func (r *Raster) FillCircle(x, y, rad float64, c Color) {
	if r.img == nil || rad <= 0 {
		return
	}
	cx, cy, cr := x*r.scale, y*r.scale, rad*r.scale
	box := image.Rect(
		int(math.Floor(cx-cr)), int(math.Floor(cy-cr)),
		int(math.Ceil(cx+cr)), int(math.Ceil(cy+cr)),
	)
	clip := box.Intersect(r.img.Bounds())
	if clip.Empty() {
		return
	}

	bw, bh := box.Dx(), box.Dy()
	r.rast.Reset(bw, bh)
	r.rast.DrawOp = draw.Src
	ox, oy := float32(cx)-float32(box.Min.X), float32(cy)-float32(box.Min.Y)
	appendCircle(r.rast, ox, oy, float32(cr))

	mask := r.scratchMask(bw, bh)
	r.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	src := image.NewUniform(c.toRGBA())
	draw.DrawMask(r.img, clip, src, image.Point{}, mask, clip.Min.Sub(box.Min), draw.Over)
}

// scratchMask returns a cleared w x h alpha mask over a reused buffer. The
// stride always equals w; the rasterizer's fast path writes rows packed.
func (r *Raster) scratchMask(w, h int) *image.Alpha {
	n := w * h
	if cap(r.maskPix) < n {
		r.maskPix = make([]uint8, n)
	}
	pix := r.maskPix[:n]
	clear(pix)
	return &image.Alpha{Pix: pix, Stride: w, Rect: image.Rect(0, 0, w, h)}
}

// appendCircle adds a closed circle path made of four cubic segments.
func appendCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * bezierArc
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}
