// Package flurry draws ambient falling snow over an image for [Ebitengine].
//
// A fixed pool of flakes drifts down under a shared, gently varying wind,
// sways side to side and is recycled at the container edges. Each flake is
// painted as a solid core with a faint halo onto a surface whose backing store
// tracks the container size and device pixel ratio, so the snow stays crisp
// on high-density screens.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and keeps a
// snowfall running over it:
//
//	flurry.Run(flurry.RunConfig{
//		Title: "Snow", Width: 390, Height: 844,
//		Config:   flurry.PresetHeroB(),
//		Backdrop: flurry.Color{R: 0.1, G: 0.12, B: 0.16, A: 1},
//	})
//
// To composite the snow into your own game, drive a [Controller] from a
// [FrameLoop], give it a [Container] to measure and draw the [Canvas] image
// wherever you like:
//
//	loop := flurry.NewFrameLoop(nil)
//	ctrl := flurry.NewController(loop, flurry.Options{})
//	canvas := flurry.NewCanvas()
//	ctrl.Start(container, canvas, flurry.DefaultConfig())
//
//	// every Update:
//	loop.Dispatch()
//	// every Draw:
//	screen.DrawImage(canvas.Image(), nil)
//
// # Lifecycle
//
// [Controller.Start] measures the container, fills the pool and schedules the
// first frame. Every frame then schedules the next. [Controller.Stop] cancels
// the pending frame and unsubscribes from resize notifications; no callback
// runs after it returns. Starting again rebuilds everything from scratch.
//
// # Headless use
//
// [Harness] runs a snowfall against a manual clock and a CPU [Raster], which
// is how the tests exercise it and how [Script] files replay scenarios into
// PNG frames.
//
// [Ebitengine]: https://ebitengine.org
package flurry
