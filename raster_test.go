package flurry

import (
	"image"
	"testing"
)

func TestRasterResizeClamps(t *testing.T) {
	r := NewRaster()
	if r.Image() != nil {
		t.Fatal("image allocated before Resize")
	}
	r.Resize(0, -4, 0, 0)
	if b := r.Image().Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("bounds = %v, want 1x1", b)
	}
}

func TestRasterResizeKeepsImageWhenUnchanged(t *testing.T) {
	r := NewRaster()
	r.Resize(40, 20, 20, 10)
	img := r.Image()
	r.Resize(40, 20, 20, 10)
	if r.Image() != img {
		t.Error("same size should keep the backing image")
	}
	r.Resize(80, 40, 40, 20)
	if r.Image() == img {
		t.Error("new size should reallocate")
	}
	w, h := r.CSSSize()
	assertNear(t, "cssW", w, 40)
	assertNear(t, "cssH", h, 20)
}

func TestRasterFillCircleScales(t *testing.T) {
	r := NewRaster()
	r.Resize(20, 20, 10, 10)
	r.SetScale(2)
	r.FillCircle(5, 5, 2, ColorWhite)

	img := r.Image()
	if a := img.RGBAAt(10, 10).A; a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}
	if a := img.RGBAAt(12, 10).A; a != 255 {
		t.Errorf("alpha inside the scaled radius = %d, want 255", a)
	}
	if a := img.RGBAAt(16, 10).A; a != 0 {
		t.Errorf("alpha outside the scaled radius = %d, want 0", a)
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestRasterFillCircleBlendsOver(t *testing.T) {
	r := NewRaster()
	r.Resize(10, 10, 10, 10)
	r.FillCircle(5, 5, 3, ColorWhite.WithAlpha(0.5))
	first := r.Image().RGBAAt(5, 5).A
	if first < 120 || first > 135 {
		t.Errorf("alpha after one pass = %d, want about 127", first)
	}
	r.FillCircle(5, 5, 3, ColorWhite.WithAlpha(0.5))
	if second := r.Image().RGBAAt(5, 5).A; second <= first {
		t.Errorf("alpha after two passes = %d, want more than %d", second, first)
	}
}

func TestRasterFillCircleClipsAtEdges(t *testing.T) {
	r := NewRaster()
	r.Resize(10, 10, 10, 10)
	r.FillCircle(0, 0, 3, ColorWhite)
	r.FillCircle(10, 10, 3, ColorWhite)
	r.FillCircle(-50, 5, 3, ColorWhite)
	img := r.Image()
	if img.RGBAAt(0, 0).A == 0 {
		t.Error("corner circle not drawn")
	}
	if img.RGBAAt(9, 9).A == 0 {
		t.Error("opposite corner circle not drawn")
	}
	if img.RGBAAt(5, 5).A != 0 {
		t.Error("center should be untouched")
	}
}

func TestRasterClear(t *testing.T) {
	r := NewRaster()
	r.Resize(10, 10, 10, 10)
	r.FillCircle(5, 5, 4, ColorWhite)
	r.Clear()
	for _, v := range r.Image().Pix {
		if v != 0 {
			t.Fatal("Clear left pixels behind")
		}
	}
}

func TestRasterFillBeforeResize(t *testing.T) {
	r := NewRaster()
	r.FillCircle(1, 1, 1, ColorWhite)
	r.Clear()
}

func TestHarnessRasterMatchesBackingSize(t *testing.T) {
	h := NewHarness(390, 844, 3, DefaultConfig(), Options{Seed: 5})
	h.Start()
	h.Advance(1, 0)
	if b := h.Surface.Image().Bounds(); b != image.Rect(0, 0, 1170, 2532) {
		t.Errorf("bounds = %v, want 1170x2532", b)
	}
	assertNear(t, "scale", h.Surface.Scale(), 3)

	lit := false
	for i := 3; i < len(h.Surface.Image().Pix); i += 4 {
		if h.Surface.Image().Pix[i] != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Error("no snow drawn")
	}
}
