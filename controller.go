package lectern

import (
	"go.uber.org/zap"
)

// Controller owns the presentation viewport state: the active slide, the
// layout recomputation flag, the fullscreen pointer, the hover preview, and
// every debounce/delay timer. All former top-level state lives here as
// documented fields with a single owner; handlers receive the controller by
// reference and never stash state elsewhere.
//
// The controller is single-threaded: every method must be called from the
// game loop goroutine.
type Controller struct {
	host     Host
	deck     *Deck
	platform Platform
	log      *zap.Logger

	stage    *Element // root of the presentation surface
	viewport Size     // current display surface size, pixels

	activeSlideIndex int
	isRecomputing    bool // mutual exclusion for the layout pass; cleared unconditionally
	isFullscreen     bool
	pointer          *Element // fullscreen laser dot; at most one live instance
	hoverTarget      *Element // trigger currently hovered; at most one at a time
	focused          *Element // keyboard focus, for command suppression

	timers timerSet   // singular per purpose, cancel-before-replace
	frames frameQueue // deferred render-opportunity callbacks, coalesced per slot

	preview  *previewSurface
	nav      *navOverlay
	menu     *menuGrid
	numbers  *numberStrip
	triggers []*Element

	pointerPos     Vec2 // latest raw cursor position
	pendingPointer Vec2 // position the next pointer sync will apply
}

// NewController builds a controller over the host slideshow and deck,
// attaching its chrome (nav affordances, menu grid, number strip, preview
// surface) to stage. The slide elements themselves are the host's business;
// attach them to stage before calling this so chrome draws on top.
func NewController(host Host, deck *Deck, stage *Element) *Controller {
	c := &Controller{
		host:  host,
		deck:  deck,
		stage: stage,
		log:   zap.NewNop(),
	}
	c.nav = newNavOverlay(stage)
	c.menu = newMenuGrid(stage, deck)
	c.numbers = newNumberStrip(stage, deck, c)
	c.preview = newPreviewSurface(stage)
	return c
}

// SetLogger replaces the controller's diagnostics logger. nil disables
// diagnostics.
func (c *Controller) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	c.log = log
}

// SetPlatform attaches the fullscreen platform. Without one, fullscreen
// toggling is a permanent no-op and the pointer never appears.
func (c *Controller) SetPlatform(p Platform) {
	c.platform = p
}

// Stage returns the presentation surface root.
func (c *Controller) Stage() *Element {
	return c.stage
}

// ActiveSlideIndex returns the controller's notion of the active slide.
func (c *Controller) ActiveSlideIndex() int {
	return c.activeSlideIndex
}

// Start runs the initial-load trigger: activate the host's current slide and
// request the first layout pass. Call once the viewport size is known.
func (c *Controller) Start() {
	idx := 0
	if c.hostAvailable() {
		idx = c.host.ActiveIndex()
	}
	c.activateSlide(idx)
	c.requestRecompute()
}

// Update advances the controller by dt seconds: runs callbacks deferred to
// this frame, fires due timers, animates the preview fade, and steps playing
// media.
func (c *Controller) Update(dt float64) {
	c.frames.run()
	c.timers.update(dt)
	c.preview.update(dt)
	for _, slide := range c.deck.Slides() {
		for _, el := range slide.Overlays() {
			if el.Player != nil && el.Player.Playing() {
				el.Player.Update(dt)
			}
		}
	}
}

// Shutdown cancels all pending timers and destroys the pointer visual so
// nothing fires into a dismantled controller.
func (c *Controller) Shutdown() {
	c.timers.cancelAll()
	c.destroyPointer()
}

// Resize reports a new display surface size. The recompute is debounced:
// only after the size stops changing for a short interval does the host
// refresh and the layout pass run.
func (c *Controller) Resize(w, h float64) {
	v := Size{Width: w, Height: h}
	if v == c.viewport {
		return
	}
	c.viewport = v
	c.timers.start(timerResizeDebounce, resizeDebounceDelay, func() {
		if c.hostAvailable() {
			c.host.Refresh()
		}
		c.requestRecompute()
	})
}

// Viewport returns the current display surface size.
func (c *Controller) Viewport() Size {
	return c.viewport
}

// PointerMoved reports the raw cursor position. Drives the fullscreen
// pointer dot (coalesced to one update per frame), the edge-band navigation
// affordances, and hover enter/leave on preview triggers.
func (c *Controller) PointerMoved(x, y float64) {
	c.pointerPos = Vec2{X: x, Y: y}

	if c.pointer != nil {
		c.pendingPointer = c.pointerPos
		c.frames.schedule(framePointerSync, c.syncPointer)
	}

	c.navPointerMoved(x, y)

	t := c.triggerAt(x, y)
	if t != c.hoverTarget {
		if c.hoverTarget != nil {
			c.hoverLeave(c.hoverTarget)
		}
		if t != nil {
			c.hoverEnter(t)
		}
	}
}

// Click routes a pointer click: menu cells and navigation affordances first,
// then number chips, and finally the press-to-advance convenience — any
// click inside the viewport that hits nothing else advances one slide.
func (c *Controller) Click(x, y float64) {
	if c.menu.open {
		if cell := c.menu.cellAt(x, y); cell != nil {
			c.goTo(cell.SlideIndex)
		}
		c.hideMenu()
		return
	}

	if aff := c.nav.hit(x, y); aff != nil {
		switch aff {
		case c.nav.prev:
			c.previous()
		case c.nav.next:
			c.next()
		case c.nav.fsToggle:
			c.ToggleFullscreen()
		}
		return
	}

	if chip := c.numbers.chipAt(x, y); chip != nil {
		c.activateTrigger(chip)
		return
	}

	if (Rect{Width: c.viewport.Width, Height: c.viewport.Height}).Contains(x, y) {
		c.next()
	}
}

// SetFocus moves keyboard focus to el (nil clears it). Focus reaching a
// preview trigger behaves like hover enter; focus leaving one like hover
// leave; focus on a nav affordance pins the affordances visible.
func (c *Controller) SetFocus(el *Element) {
	if c.focused == el {
		return
	}
	if c.focused != nil && c.isTrigger(c.focused) {
		c.hoverLeave(c.focused)
	}
	c.focused = el
	if el == nil {
		return
	}
	if c.isTrigger(el) {
		c.hoverEnter(el)
	}
	if el == c.nav.prev || el == c.nav.next || el == c.nav.fsToggle {
		c.FocusNavAffordance()
	}
}

// layoutChrome re-places the viewport-anchored chrome after a geometry
// change.
func (c *Controller) layoutChrome() {
	c.nav.layout(c.viewport)
	c.numbers.layout(c.viewport)
	if c.menu.open {
		c.menu.layout(c.viewport, c.deck)
	}
}
