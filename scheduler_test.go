package flurry

import (
	"testing"
	"time"
)

func TestFrameLoopDispatchRunsPending(t *testing.T) {
	clock := &ManualClock{}
	l := NewFrameLoop(clock.Now)
	var got []time.Duration
	h1 := l.RequestFrame(func(now time.Duration) { got = append(got, now) })
	h2 := l.RequestFrame(func(now time.Duration) { got = append(got, now) })
	if h1 == 0 || h2 == 0 || h1 == h2 {
		t.Fatalf("handles = %d, %d, want distinct and non-zero", h1, h2)
	}

	clock.Advance(16 * time.Millisecond)
	if n := l.Dispatch(); n != 2 {
		t.Errorf("Dispatch = %d, want 2", n)
	}
	if len(got) != 2 || got[0] != 16*time.Millisecond {
		t.Errorf("callbacks saw %v, want two calls at 16ms", got)
	}
	if n := l.Dispatch(); n != 0 {
		t.Errorf("second Dispatch = %d, want 0", n)
	}
}

func TestFrameLoopRequestDuringDispatchWaits(t *testing.T) {
	l := NewFrameLoop((&ManualClock{}).Now)
	calls := 0
	var tick func(time.Duration)
	tick = func(time.Duration) {
		calls++
		l.RequestFrame(tick)
	}
	l.RequestFrame(tick)
	for i := 0; i < 3; i++ {
		l.Dispatch()
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if l.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", l.Pending())
	}
}

func TestFrameLoopCancelPending(t *testing.T) {
	l := NewFrameLoop((&ManualClock{}).Now)
	ran := false
	h := l.RequestFrame(func(time.Duration) { ran = true })
	l.CancelFrame(h)
	l.CancelFrame(h)
	l.CancelFrame(0)
	l.Dispatch()
	if ran {
		t.Error("cancelled callback ran")
	}
	if l.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", l.Pending())
	}
}

func TestFrameLoopCancelFromCallback(t *testing.T) {
	l := NewFrameLoop((&ManualClock{}).Now)
	ran := false
	var second FrameHandle
	l.RequestFrame(func(time.Duration) { l.CancelFrame(second) })
	second = l.RequestFrame(func(time.Duration) { ran = true })
	if n := l.Dispatch(); n != 1 {
		t.Errorf("Dispatch = %d, want 1", n)
	}
	if ran {
		t.Error("callback cancelled mid-dispatch still ran")
	}
}

func TestFrameLoopDefaultClock(t *testing.T) {
	l := NewFrameLoop(nil)
	a := l.Now()
	b := l.Now()
	if b < a {
		t.Errorf("Now went backwards: %v then %v", a, b)
	}
}
