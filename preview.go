package lectern

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// previewState is the per-trigger lifecycle of the shared preview surface.
type previewState uint8

const (
	previewIdle previewState = iota
	previewPendingShow
	previewShown
	previewHiding
)

const (
	previewWidth   = 200.0 // preview surface size, pixels
	previewHeight  = 120.0
	previewGap     = 8.0 // space between trigger top and preview bottom
	previewFadeIn  = 0.12
	thumbnailWidth = 200 // raster width for slide thumbnails
)

// previewSurface is the single hover-preview panel. It is created once and
// parked off-screen between uses instead of being destroyed, avoiding
// creation churn across rapid hover sequences on adjacent triggers.
type previewSurface struct {
	el    *Element // shared surface
	image *Element // thumbnail, when one exists
	label *Element // textual fallback

	state  previewState
	target *Element // trigger the surface is showing (or about to show) for
	fade   *gween.Tween
}

func newPreviewSurface(stage *Element) *previewSurface {
	p := &previewSurface{
		el:    NewContainer("preview"),
		image: NewSprite("preview-image", nil),
		label: NewLabel("preview-label", ""),
	}
	p.el.Width, p.el.Height = previewWidth, previewHeight
	p.el.X = offscreenX
	p.el.Alpha = 0
	p.image.Width, p.image.Height = previewWidth, previewHeight
	p.label.Width, p.label.Height = previewWidth, previewHeight
	p.el.AddChild(p.image)
	p.el.AddChild(p.label)
	stage.AddChild(p.el)
	return p
}

// update advances the fade animation.
func (p *previewSurface) update(dt float64) {
	if p.fade == nil {
		return
	}
	a, done := p.fade.Update(float32(dt))
	p.el.Alpha = float64(a)
	if done {
		p.fade = nil
	}
}

// park moves the surface off-screen. The two-step hide (fade, then park)
// prevents flicker from instant removal/re-add in rapid hover sequences.
func (p *previewSurface) park() {
	p.el.X = offscreenX
	p.el.Alpha = 0
	p.fade = nil
	p.state = previewIdle
	p.target = nil
}

// --- Controller-side hover policy ---

// RegisterTrigger marks el as a hover-preview trigger for the given slide.
// Menu chips and thumbnail cells register themselves on creation.
func (c *Controller) RegisterTrigger(el *Element, slideIndex int) {
	el.SlideIndex = slideIndex
	c.triggers = append(c.triggers, el)
}

// triggerAt returns the visible trigger under the point, or nil.
func (c *Controller) triggerAt(x, y float64) *Element {
	// Last registered wins, mirroring draw order.
	for i := len(c.triggers) - 1; i >= 0; i-- {
		t := c.triggers[i]
		if t.IsDisposed() || !t.worldVisible() {
			continue
		}
		if t.Bounds().Contains(x, y) {
			return t
		}
	}
	return nil
}

// hoverEnter runs when the pointer enters (or keyboard focus reaches) a
// trigger: any pending hide is cancelled and the show-delay timer starts.
// Nothing is shown for movement that leaves before the delay elapses.
func (c *Controller) hoverEnter(trigger *Element) {
	c.hoverTarget = trigger
	c.timers.cancel(timerHoverHide)
	p := c.preview
	if (p.state == previewShown || p.state == previewHiding) && p.target == trigger {
		// Re-entered the trigger whose preview is showing or still fading
		// out; restore it without restarting the show delay.
		p.state = previewShown
		p.fade = gween.New(float32(p.el.Alpha), 1, previewFadeIn, ease.OutQuad)
		return
	}
	p.state = previewPendingShow
	p.target = trigger
	c.timers.start(timerHoverShow, hoverShowDelay, func() {
		c.showPreview(trigger)
	})
}

// hoverLeave runs when the pointer leaves (or focus departs) a trigger: a
// pending show is cancelled outright; a visible preview fades out and is
// parked off-screen after the fade completes.
func (c *Controller) hoverLeave(trigger *Element) {
	if c.hoverTarget == trigger {
		c.hoverTarget = nil
	}
	c.timers.cancel(timerHoverShow)
	p := c.preview
	if p.target != trigger {
		return
	}
	switch p.state {
	case previewPendingShow:
		p.state = previewIdle
		p.target = nil
	case previewShown:
		p.state = previewHiding
		p.fade = gween.New(float32(p.el.Alpha), 0, hoverFadeDuration, ease.InQuad)
		c.timers.start(timerHoverHide, hoverFadeDuration, p.park)
	}
}

// showPreview fires when the show delay elapses. Idempotent: if the preview
// is already showing for this exact trigger nothing happens. Otherwise the
// surface is populated (thumbnail if available, textual fallback otherwise),
// anchored above the trigger's on-screen bounds, and faded to visible.
func (c *Controller) showPreview(trigger *Element) {
	p := c.preview
	if p.state == previewShown && p.target == trigger {
		return
	}
	if trigger.IsDisposed() {
		p.park()
		return
	}

	p.image.Image = nil
	p.label.Label = ""
	if slide := c.deck.Slide(trigger.SlideIndex); slide != nil && slide.Background != nil {
		p.image.Image = slide.Background.Thumbnail(thumbnailWidth)
	}
	if p.image.Image == nil {
		p.label.Label = fmt.Sprintf("Slide %d", trigger.SlideIndex+1)
	}

	b := trigger.Bounds()
	p.el.X = b.X + b.Width/2 - previewWidth/2
	p.el.Y = b.Y - previewHeight - previewGap
	if p.el.Y < 0 {
		p.el.Y = 0
	}
	p.state = previewShown
	p.target = trigger
	p.fade = gween.New(float32(p.el.Alpha), 1, previewFadeIn, ease.OutQuad)
}

// activateTrigger is the click / Enter / Space action on a trigger: jump to
// its slide and close any open menu.
func (c *Controller) activateTrigger(trigger *Element) {
	if !c.hostAvailable() {
		return
	}
	c.host.GoTo(trigger.SlideIndex)
	c.hideMenu()
}
