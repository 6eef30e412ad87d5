package lectern

// navOverlay holds the floating navigation affordances: previous/next arrows
// in the left and right edge bands and a fullscreen toggle in the top-right
// corner. Hidden until the pointer nears an edge.
type navOverlay struct {
	root     *Element
	prev     *Element
	next     *Element
	fsToggle *Element
}

const (
	navArrowWidth   = 40.0
	navArrowHeight  = 80.0
	navToggleSize   = 36.0
	navEdgeInset    = 6.0
	navChromeAlpha  = 0.85
)

func newNavOverlay(stage *Element) *navOverlay {
	n := &navOverlay{
		root:     NewContainer("nav"),
		prev:     NewLabel("nav-prev", "<"),
		next:     NewLabel("nav-next", ">"),
		fsToggle: NewLabel("nav-fullscreen", "[ ]"),
	}
	n.root.Visible = false
	n.root.Alpha = navChromeAlpha
	for _, el := range []*Element{n.prev, n.next, n.fsToggle} {
		el.Color = Color{R: 0.12, G: 0.12, B: 0.14, A: 0.8}
		n.root.AddChild(el)
	}
	n.prev.Width, n.prev.Height = navArrowWidth, navArrowHeight
	n.next.Width, n.next.Height = navArrowWidth, navArrowHeight
	n.fsToggle.Width, n.fsToggle.Height = navToggleSize, navToggleSize
	stage.AddChild(n.root)
	return n
}

// layout pins the affordances to the viewport edges.
func (n *navOverlay) layout(viewport Size) {
	n.prev.X = navEdgeInset
	n.prev.Y = viewport.Height/2 - navArrowHeight/2
	n.next.X = viewport.Width - navArrowWidth - navEdgeInset
	n.next.Y = viewport.Height/2 - navArrowHeight/2
	n.fsToggle.X = viewport.Width - navToggleSize - navEdgeInset
	n.fsToggle.Y = navEdgeInset
}

// hit returns the affordance under the point while the overlay is visible.
func (n *navOverlay) hit(x, y float64) *Element {
	if !n.root.Visible {
		return nil
	}
	for _, el := range []*Element{n.prev, n.next, n.fsToggle} {
		if el.Bounds().Contains(x, y) {
			return el
		}
	}
	return nil
}

// inEdgeBand reports whether the point lies in one of the nav-revealing
// bands: the left edge, the right edge, or the top-right corner.
func inEdgeBand(x, y float64, viewport Size) bool {
	if x < 0 || y < 0 || x > viewport.Width || y > viewport.Height {
		return false // outside the viewport entirely
	}
	switch {
	case x < edgeBandPx:
		return true
	case x > viewport.Width-edgeBandPx:
		return true
	case y < edgeBandPx && x > viewport.Width-2*edgeBandPx:
		return true
	}
	return false
}

// navPointerMoved applies the edge-proximity policy: entering a band shows
// the affordances and cancels any pending hide; leaving the band (or the
// viewport) schedules a hide after a short inactivity delay.
func (c *Controller) navPointerMoved(x, y float64) {
	if inEdgeBand(x, y, c.viewport) {
		c.nav.root.Visible = true
		c.timers.cancel(timerNavHide)
		return
	}
	if c.nav.root.Visible && !c.timers.pending(timerNavHide) {
		c.timers.start(timerNavHide, navHideDelay, func() {
			c.nav.root.Visible = false
		})
	}
}

// FocusNavAffordance reports keyboard focus landing on a nav affordance; the
// pending hide is cancelled so the focused control cannot vanish.
func (c *Controller) FocusNavAffordance() {
	c.nav.root.Visible = true
	c.timers.cancel(timerNavHide)
}
