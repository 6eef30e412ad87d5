package lectern

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Platform abstracts the windowing system's fullscreen surface. The real
// implementation sits on ebiten; tests substitute fakes. A platform that
// reports no fullscreen support turns toggling into a permanent no-op — the
// pointer simply never appears, which is correct since there is no
// fullscreen element to attach it to.
type Platform interface {
	// FullscreenSupported reports whether fullscreen switching exists at all.
	FullscreenSupported() bool
	// IsFullscreen reports the current fullscreen state.
	IsFullscreen() bool
	// SetFullscreen requests entering or leaving fullscreen.
	SetFullscreen(on bool)
	// FullscreenElement returns the element that actually owns the
	// fullscreen surface, or nil when not fullscreen. A fullscreen request
	// on a nested element such as a media overlay is valid and common, so
	// this must be read at transition time, never assumed to be the stage.
	FullscreenElement() *Element
}

// EbitenPlatform is the real Platform backed by the ebiten window.
type EbitenPlatform struct {
	target *Element // element owning the fullscreen surface; usually the stage
}

// NewEbitenPlatform creates a Platform whose fullscreen element is target.
func NewEbitenPlatform(target *Element) *EbitenPlatform {
	return &EbitenPlatform{target: target}
}

// SetTarget changes the element reported as owning the fullscreen surface,
// e.g. when a media overlay requests fullscreen for itself.
func (p *EbitenPlatform) SetTarget(el *Element) {
	p.target = el
}

// FullscreenSupported implements Platform.
func (p *EbitenPlatform) FullscreenSupported() bool { return true }

// IsFullscreen implements Platform.
func (p *EbitenPlatform) IsFullscreen() bool { return ebiten.IsFullscreen() }

// SetFullscreen implements Platform.
func (p *EbitenPlatform) SetFullscreen(on bool) { ebiten.SetFullscreen(on) }

// FullscreenElement implements Platform.
func (p *EbitenPlatform) FullscreenElement() *Element {
	if !ebiten.IsFullscreen() {
		return nil
	}
	return p.target
}

// pointerDotSize is the on-screen size of the fullscreen pointer dot, pixels.
const pointerDotSize = 12.0

// ToggleFullscreen flips the platform fullscreen state. With no usable
// platform this is a no-op and the rest of the controller keeps working.
func (c *Controller) ToggleFullscreen() {
	if c.platform == nil || !c.platform.FullscreenSupported() {
		c.log.Debug("fullscreen toggle ignored, platform unsupported")
		return
	}
	c.platform.SetFullscreen(!c.platform.IsFullscreen())
	c.NotifyFullscreenChanged()
}

// NotifyFullscreenChanged is the unified handler behind every fullscreen
// change notification source. Platforms deliver several notifications per
// real transition, so callers may invoke this any number of times; the
// handler compares against its own state and makes duplicates no-ops.
func (c *Controller) NotifyFullscreenChanged() {
	now := c.platform != nil && c.platform.IsFullscreen()
	if now == c.isFullscreen && (c.pointer != nil) == now {
		return // duplicate notification
	}
	c.isFullscreen = now

	// Pointer lifecycle: always destroy, recreate only inside fullscreen.
	// Creation is guarded by the destroy above, so reentrant toggles can
	// never leave two live dots.
	c.destroyPointer()
	if now {
		c.createPointer()
	}

	// Settle delay: the platform finishes geometry changes asynchronously;
	// re-measuring immediately reads stale sizes.
	c.timers.start(timerFullscreenSettle, fullscreenSettleDly, c.fullscreenSettled)
}

func (c *Controller) fullscreenSettled() {
	if !c.hostAvailable() {
		return
	}
	c.host.Refresh()
	c.requestRecompute()
}

func (c *Controller) destroyPointer() {
	if c.pointer == nil {
		return
	}
	c.pointer.Dispose()
	c.pointer = nil
}

// createPointer builds the laser-pointer dot and attaches it to whatever
// element the platform says is fullscreen right now.
func (c *Controller) createPointer() {
	parent := c.stage
	if fe := c.platform.FullscreenElement(); fe != nil {
		parent = fe
	}
	dot := NewSprite("pointer", nil)
	dot.Width, dot.Height = pointerDotSize, pointerDotSize
	dot.Color = Color{R: 1, G: 0.15, B: 0.1, A: 0.9}
	dot.BlendMode = BlendAdd
	parent.AddChild(dot)
	c.pointer = dot
	c.positionPointer(c.pointerPos)
}

// syncPointer is the deferred pointer position update. Move events arriving
// between frames coalesce into one of these.
func (c *Controller) syncPointer() {
	if c.pointer == nil {
		return
	}
	c.positionPointer(c.pendingPointer)
}

// positionPointer centers the dot on the raw cursor position, converting from
// stage coordinates into the dot's parent space.
func (c *Controller) positionPointer(at Vec2) {
	x, y := at.X, at.Y
	if p := c.pointer.Parent; p != nil {
		b := p.Bounds()
		x -= b.X
		y -= b.Y
	}
	c.pointer.X = x - pointerDotSize/2
	c.pointer.Y = y - pointerDotSize/2
}

// hostAvailable re-validates the host before use. A missing or destroyed
// host downgrades the requested operation to a logged no-op.
func (c *Controller) hostAvailable() bool {
	if c.host == nil || c.host.Destroyed() {
		c.log.Warn("slideshow host unavailable, operation skipped")
		return false
	}
	return true
}
