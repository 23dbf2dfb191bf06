package flurry

import "time"

// FrameHandle identifies a requested frame callback. The zero handle is
// never issued and cancelling it is a no-op.
type FrameHandle uint64

// FrameScheduler is the per-frame callback source driving the simulation.
// Each requested callback fires at most once, on the next frame.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Duration)) FrameHandle
	CancelFrame(h FrameHandle)
	Now() time.Duration
}

type frameRequest struct {
	handle FrameHandle
	fn     func(now time.Duration)
}

// FrameLoop is a single-threaded FrameScheduler. The host calls Dispatch
// once per frame; callbacks requested during a dispatch wait for the next one.
// FrameLoop is not safe for concurrent use.
type FrameLoop struct {
	clock   func() time.Duration
	next    FrameHandle
	pending []frameRequest
	running []frameRequest
}

// NewFrameLoop returns a loop reading time from clock. A nil clock uses the
// monotonic time elapsed since the loop was created.
func NewFrameLoop(clock func() time.Duration) *FrameLoop {
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}
	return &FrameLoop{clock: clock}
}

// Now implements FrameScheduler.
func (l *FrameLoop) Now() time.Duration {
	return l.clock()
}

// RequestFrame implements FrameScheduler.
func (l *FrameLoop) RequestFrame(fn func(now time.Duration)) FrameHandle {
	l.next++
	l.pending = append(l.pending, frameRequest{handle: l.next, fn: fn})
	return l.next
}

// CancelFrame implements FrameScheduler. A cancelled callback never fires,
// even when cancelled from another callback in the same dispatch.
func (l *FrameLoop) CancelFrame(h FrameHandle) {
	if h == 0 {
		return
	}
	for i := range l.pending {
		if l.pending[i].handle == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
	for i := range l.running {
		if l.running[i].handle == h {
			l.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next dispatch.
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}

// Dispatch runs every callback requested before this call and returns how
// many ran.
func (l *FrameLoop) Dispatch() int {
	if len(l.pending) == 0 {
		return 0
	}
	now := l.clock()
	l.running, l.pending = l.pending, l.running[:0]
	ran := 0
	for i := range l.running {
		fn := l.running[i].fn
		if fn == nil {
			continue
		}
		l.running[i].fn = nil
		fn(now)
		ran++
	}
	l.running = l.running[:0]
	return ran
}
