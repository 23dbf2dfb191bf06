package flurry

import "go.uber.org/zap"

// debugFrameInterval is how many frames pass between debug stat lines.
const debugFrameInterval = 120

// debugObserver logs a summary of the simulation every debugFrameInterval
// frames and forwards every frame to next.
type debugObserver struct {
	logger   *zap.Logger
	next     FrameObserver
	recycled int
	maxDT    float64
}

func newDebugObserver(logger *zap.Logger, next FrameObserver) *debugObserver {
	return &debugObserver{logger: logger, next: next}
}

// ObserveFrame implements FrameObserver.
func (d *debugObserver) ObserveFrame(fs FrameStats) {
	d.recycled += fs.Recycled
	d.maxDT = max(d.maxDT, fs.DT)
	if fs.Frame%debugFrameInterval == 0 {
		d.logger.Info("snowfall frame stats",
			zap.Uint64("frame", fs.Frame),
			zap.Float64("elapsed", fs.Elapsed),
			zap.Float64("maxDT", d.maxDT),
			zap.Int("recycled", d.recycled),
			zap.Int("live", fs.Live),
			zap.Float64("wind", fs.Wind),
			zap.Float64("width", fs.Width),
			zap.Float64("height", fs.Height),
			zap.Float64("dpr", fs.DPR))
		d.recycled = 0
		d.maxDT = 0
	}
	if d.next != nil {
		d.next.ObserveFrame(fs)
	}
}
