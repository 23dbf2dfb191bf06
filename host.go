package flurry

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// RunConfig configures the window opened by Run and the Host it drives.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial window size in logical pixels.
	Width, Height int
	// Config is the snowfall started on the first frame.
	Config SimulationConfig
	// Options configures the Controller.
	Options Options
	// Backdrop fills the screen under the snow. Zero alpha leaves it clear.
	Backdrop Color
	// Blend composites the snow canvas onto the screen.
	Blend BlendMode
	// ShowFPS draws an FPS and particle count overlay.
	ShowFPS bool
	// ScreenshotDir receives captures queued with Host.Screenshot.
	ScreenshotDir string
}

// Host is an ebiten.Game that covers its window with a snowfall. It acts as
// the Container (window size and monitor scale) and pumps the FrameLoop from
// Update, so the simulation ticks once per game tick.
type Host struct {
	loop       *FrameLoop
	controller *Controller
	canvas     *Canvas
	config     SimulationConfig
	backdrop   Color
	blend      BlendMode
	fps        *fpsOverlay

	width, height float64
	scale         float64
	observers     observerSet
	started       bool
	reload        chan SimulationConfig

	screenshotDir   string
	screenshotQueue []string

	// OnUpdate, when set, runs at the end of every Update. A non-nil error
	// ends the game.
	OnUpdate func() error
}

// NewHost returns a host for cfg. The snowfall starts on the first Update,
// after ebiten has reported the window layout.
func NewHost(cfg RunConfig) *Host {
	loop := NewFrameLoop(nil)
	h := &Host{
		loop:          loop,
		controller:    NewController(loop, cfg.Options),
		canvas:        NewCanvas(),
		config:        cfg.Config,
		backdrop:      cfg.Backdrop,
		blend:         cfg.Blend,
		width:         float64(cfg.Width),
		height:        float64(cfg.Height),
		scale:         1,
		reload:        make(chan SimulationConfig, 1),
		screenshotDir: cfg.ScreenshotDir,
	}
	if cfg.ShowFPS {
		h.fps = newFPSOverlay()
	}
	if h.screenshotDir == "" {
		h.screenshotDir = "screenshots"
	}
	return h
}

// Run opens a window and runs a Host until the window is closed.
func Run(cfg RunConfig) error {
	return RunHost(NewHost(cfg), cfg)
}

// RunHost opens a window sized by cfg and runs h until the window is closed.
func RunHost(h *Host, cfg RunConfig) error {
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Controller returns the controller driving the snowfall.
func (h *Host) Controller() *Controller {
	return h.controller
}

// Config returns the config of the current or next run.
func (h *Host) Config() SimulationConfig {
	return h.config
}

// Size implements Container.
func (h *Host) Size() (float64, float64) {
	return h.width, h.height
}

// DeviceScale implements Container.
func (h *Host) DeviceScale() float64 {
	return h.scale
}

// Observe implements Container.
func (h *Host) Observe(fn func()) func() {
	return h.observers.add(fn)
}

// Reload restarts the snowfall with cfg on the next Update. Safe to call from
// any goroutine; only the newest pending config is applied.
func (h *Host) Reload(cfg SimulationConfig) {
	for {
		select {
		case h.reload <- cfg:
			return
		default:
		}
		select {
		case <-h.reload:
		default:
		}
	}
}

// Restart stops the snowfall and starts it again with cfg. Must be called
// from the game goroutine.
func (h *Host) Restart(cfg SimulationConfig) {
	h.config = cfg
	h.controller.Start(h, h.canvas, cfg)
	h.started = true
}

// Screenshot queues a capture of the next drawn frame.
func (h *Host) Screenshot(label string) {
	h.screenshotQueue = append(h.screenshotQueue, label)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	select {
	case cfg := <-h.reload:
		h.Restart(cfg)
	default:
		if !h.started {
			h.Restart(h.config)
		}
	}
	h.loop.Dispatch()

	if h.fps != nil {
		live := 0
		if sim := h.controller.Simulation(); sim != nil {
			live = sim.Pool().Len()
		}
		h.fps.update(1.0/float64(ebiten.TPS()), live)
	}
	if h.OnUpdate != nil {
		return h.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.backdrop.A > 0 {
		screen.Fill(h.backdrop.toRGBA())
	}
	if img := h.canvas.Image(); img != nil && h.controller.State() == StateRunning {
		var op ebiten.DrawImageOptions
		op.Blend = h.blend.EbitenBlend()
		screen.DrawImage(img, &op)
	}
	if h.fps != nil {
		h.fps.draw(screen)
	}
	h.flushScreenshots(screen)
}

// Layout implements ebiten.Game. LayoutF takes precedence when ebiten
// supports it; Layout covers the integer path.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, hh := h.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(math.Ceil(w)), int(math.Ceil(hh))
}

// LayoutF records the window size in logical pixels and the monitor scale,
// notifies observers on change and returns a device-pixel screen so the
// canvas is drawn 1:1.
func (h *Host) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	if outsideWidth != h.width || outsideHeight != h.height || scale != h.scale {
		h.width, h.height, h.scale = outsideWidth, outsideHeight, scale
		h.observers.notify()
	}
	return outsideWidth * scale, outsideHeight * scale
}

// flushScreenshots writes the drawn frame once for every queued label.
func (h *Host) flushScreenshots(screen *ebiten.Image) {
	if len(h.screenshotQueue) == 0 {
		return
	}
	defer func() { h.screenshotQueue = h.screenshotQueue[:0] }()

	if err := os.MkdirAll(h.screenshotDir, 0o755); err != nil {
		h.controller.logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range h.screenshotQueue {
		path := filepath.Join(h.screenshotDir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			h.controller.logger.Warn("screenshot failed", zap.Error(err))
		}
	}
}
