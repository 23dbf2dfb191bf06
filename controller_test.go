package flurry

import (
	"testing"
	"time"
)

func newTestController(opts Options) (*Controller, *FrameLoop, *ManualClock) {
	clock := &ManualClock{}
	loop := NewFrameLoop(clock.Now)
	return NewController(loop, opts), loop, clock
}

func TestControllerStartSchedulesFrame(t *testing.T) {
	ctrl, loop, _ := newTestController(Options{})
	if ctrl.State() != StateIdle {
		t.Fatalf("initial state = %v, want idle", ctrl.State())
	}
	c := NewStaticContainer(390, 844, 3)
	ctrl.Start(c, &recordingSurface{}, DefaultConfig())

	if ctrl.State() != StateRunning {
		t.Errorf("state = %v, want running", ctrl.State())
	}
	if loop.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", loop.Pending())
	}
	if ctrl.Simulation() == nil {
		t.Fatal("Simulation is nil while running")
	}
	want := ContainerMetrics{390, 844, 3}
	if got := ctrl.Metrics(); got != want {
		t.Errorf("Metrics = %+v, want %+v", got, want)
	}
}

func TestControllerKeepsOneFrameScheduled(t *testing.T) {
	ctrl, loop, clock := newTestController(Options{})
	ctrl.Start(NewStaticContainer(100, 100, 1), &recordingSurface{}, DefaultConfig())
	for i := 0; i < 10; i++ {
		clock.Advance(16 * time.Millisecond)
		if n := loop.Dispatch(); n != 1 {
			t.Fatalf("frame %d: Dispatch ran %d callbacks, want 1", i, n)
		}
		if loop.Pending() != 1 {
			t.Fatalf("frame %d: Pending = %d, want 1", i, loop.Pending())
		}
	}
}

func TestControllerStopReleasesEverything(t *testing.T) {
	ctrl, loop, clock := newTestController(Options{})
	c := NewStaticContainer(100, 100, 1)
	s := &recordingSurface{}
	ctrl.Start(c, s, DefaultConfig())
	clock.Advance(16 * time.Millisecond)
	loop.Dispatch()

	ctrl.Stop()
	if ctrl.State() != StateIdle {
		t.Errorf("state = %v, want idle", ctrl.State())
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", loop.Pending())
	}
	if c.ObserverCount() != 0 {
		t.Errorf("observers = %d, want 0", c.ObserverCount())
	}
	if ctrl.Simulation() != nil {
		t.Error("Simulation should be nil after Stop")
	}
	if ctrl.Metrics() != (ContainerMetrics{}) {
		t.Errorf("Metrics = %+v, want zero", ctrl.Metrics())
	}

	clears := s.clears
	c.Resize(300, 300, 2)
	for i := 0; i < 5; i++ {
		clock.Advance(16 * time.Millisecond)
		loop.Dispatch()
	}
	if s.clears != clears {
		t.Errorf("surface touched after Stop: clears %d -> %d", clears, s.clears)
	}
	if s.resizes != 1 {
		t.Errorf("resizes = %d, want 1", s.resizes)
	}
}

func TestControllerStopIdempotent(t *testing.T) {
	ctrl, _, _ := newTestController(Options{})
	ctrl.Stop()
	ctrl.Start(NewStaticContainer(10, 10, 1), &recordingSurface{}, DefaultConfig())
	ctrl.Stop()
	ctrl.Stop()
	if ctrl.State() != StateIdle {
		t.Errorf("state = %v, want idle", ctrl.State())
	}
}

func TestControllerRestartRebuilds(t *testing.T) {
	ctrl, loop, clock := newTestController(Options{})
	c := NewStaticContainer(100, 100, 1)
	s := &recordingSurface{}
	ctrl.Start(c, s, DefaultConfig())
	first := ctrl.Simulation()

	ctrl.Start(c, s, PresetHeroA())
	second := ctrl.Simulation()
	if first == second {
		t.Fatal("restart reused the simulation")
	}
	if second.Pool().Len() != 60 {
		t.Errorf("pool = %d, want 60", second.Pool().Len())
	}
	if loop.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", loop.Pending())
	}
	if c.ObserverCount() != 1 {
		t.Errorf("observers = %d, want 1", c.ObserverCount())
	}

	clock.Advance(16 * time.Millisecond)
	loop.Dispatch()
	if s.clears != 1 {
		t.Errorf("clears = %d, want 1 (one tick per frame)", s.clears)
	}
}

func TestControllerNilSurfaceStaysIdle(t *testing.T) {
	ctrl, loop, _ := newTestController(Options{})
	ctrl.Start(NewStaticContainer(10, 10, 1), nil, DefaultConfig())
	if ctrl.State() != StateIdle || loop.Pending() != 0 {
		t.Errorf("state = %v, pending = %d, want idle with nothing scheduled", ctrl.State(), loop.Pending())
	}
	ctrl.Start(nil, &recordingSurface{}, DefaultConfig())
	if ctrl.State() != StateIdle {
		t.Errorf("state = %v, want idle", ctrl.State())
	}
}

func TestControllerStopFromObserver(t *testing.T) {
	ctrl, loop, clock := newTestController(Options{})
	stopper := &stopAfter{ctrl: ctrl, n: 3}
	ctrl.opts.Observer = stopper
	ctrl.Start(NewStaticContainer(10, 10, 1), &recordingSurface{}, DefaultConfig())
	for i := 0; i < 10; i++ {
		clock.Advance(16 * time.Millisecond)
		loop.Dispatch()
	}
	if stopper.seen != 3 {
		t.Errorf("frames = %d, want 3", stopper.seen)
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", loop.Pending())
	}
}

type stopAfter struct {
	ctrl *Controller
	n    int
	seen int
}

func (s *stopAfter) ObserveFrame(FrameStats) {
	s.seen++
	if s.seen == s.n {
		s.ctrl.Stop()
	}
}

func TestControllerSeedIsDeterministic(t *testing.T) {
	run := func() []Particle {
		h := NewHarness(390, 844, 2, DefaultConfig(), Options{Seed: 42})
		h.Start()
		h.Advance(90, 0)
		return append([]Particle(nil), h.Controller.Simulation().Pool().Particles()...)
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("flake %d differs between seeded runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StateRunning.String() != "running" {
		t.Errorf("String = %q, %q", StateIdle.String(), StateRunning.String())
	}
}
