package flurry

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fade eases the effect's overall opacity from 0 to 1 after Start. A
// zero-duration fade is fully opaque from the first frame.
type fade struct {
	tween *gween.Tween
	value float64
}

func newFade(d time.Duration) *fade {
	if d <= 0 {
		return &fade{value: 1}
	}
	return &fade{tween: gween.New(0, 1, float32(d.Seconds()), ease.OutQuad)}
}

// update advances the fade by dt seconds and returns the current opacity.
func (f *fade) update(dt float64) float64 {
	if f.tween == nil {
		return f.value
	}
	v, done := f.tween.Update(float32(dt))
	f.value = clamp01(float64(v))
	if done {
		f.tween = nil
		f.value = 1
	}
	return f.value
}
