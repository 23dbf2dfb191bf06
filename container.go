package flurry

// Container is the host element whose content box the snowfall covers.
type Container interface {
	// Size returns the content box in CSS (logical) pixels.
	Size() (w, h float64)
	// DeviceScale returns the ratio of device pixels to CSS pixels.
	DeviceScale() float64
	// Observe registers fn to be called whenever the content box or the
	// device scale changes. The returned func unregisters it.
	Observe(fn func()) (cancel func())
}

// observerSet is a small registry of resize callbacks shared by the
// Container implementations in this package.
type observerSet struct {
	next int
	fns  map[int]func()
}

func (o *observerSet) add(fn func()) func() {
	if o.fns == nil {
		o.fns = make(map[int]func())
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return func() { delete(o.fns, id) }
}

func (o *observerSet) notify() {
	for _, fn := range o.fns {
		fn()
	}
}

func (o *observerSet) len() int {
	return len(o.fns)
}

// StaticContainer is a Container whose box is set explicitly. It backs the
// headless Harness and is useful wherever there is no window to measure.
type StaticContainer struct {
	width, height float64
	scale         float64
	observers     observerSet
}

// NewStaticContainer returns a container of the given CSS size and device scale.
func NewStaticContainer(w, h, dpr float64) *StaticContainer {
	return &StaticContainer{width: w, height: h, scale: dpr}
}

// Size implements Container.
func (c *StaticContainer) Size() (w, h float64) {
	return c.width, c.height
}

// DeviceScale implements Container.
func (c *StaticContainer) DeviceScale() float64 {
	return c.scale
}

// Observe implements Container.
func (c *StaticContainer) Observe(fn func()) func() {
	return c.observers.add(fn)
}

// Resize changes the box and notifies observers when anything changed.
func (c *StaticContainer) Resize(w, h, dpr float64) {
	if w == c.width && h == c.height && dpr == c.scale {
		return
	}
	c.width, c.height, c.scale = w, h, dpr
	c.observers.notify()
}

// ObserverCount returns the number of registered resize observers.
func (c *StaticContainer) ObserverCount() int {
	return c.observers.len()
}
