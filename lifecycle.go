package lectern

import (
	"errors"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// requestRecompute asks for a layout recomputation pass on the next frame.
// At most one pass is ever in flight: a request arriving while one is pending
// is dropped, not queued — the next real event (resize end, slide settle,
// fullscreen settle) re-triggers it.
func (c *Controller) requestRecompute() {
	if c.isRecomputing {
		c.log.Debug("recompute request dropped, pass already in flight")
		return
	}
	c.isRecomputing = true
	// Deferred one frame so layout settles before anything is measured.
	c.frames.schedule(frameRecompute, c.recomputePass)
}

// recomputePass projects the active slide's background and every media
// overlay under it into the current viewport, plus the neighbors' backgrounds
// so transitions have something to show. Invalid overlays are hidden and
// logged; siblings are unaffected.
func (c *Controller) recomputePass() {
	// The in-flight flag must clear no matter how this pass exits, or every
	// future recompute request would be dropped.
	defer func() {
		c.isRecomputing = false
	}()

	slide := c.deck.Slide(c.activeSlideIndex)
	if slide == nil {
		return
	}

	for i := c.activeSlideIndex - 1; i <= c.activeSlideIndex+1; i++ {
		if neighbor := c.deck.Slide(i); neighbor != nil {
			c.placeBackground(neighbor)
		}
	}

	var skipped error
	for _, el := range slide.Overlays() {
		pl, err := Project(slide.Page, c.viewport, el.PageRect)
		if err != nil {
			el.Visible = false
			skipped = multierr.Append(skipped, err)
			continue
		}
		el.X, el.Y = pl.Left, pl.Top
		el.Width, el.Height = pl.Width, pl.Height
		el.Visible = true
	}
	if skipped != nil {
		c.log.Warn("overlays skipped during layout", zap.Int("slide", slide.Index), zap.Error(skipped))
	}

	c.layoutChrome()
}

// placeBackground positions a slide's background element at the page's
// fit-inside placement and makes sure a raster of at least that size exists.
func (c *Controller) placeBackground(slide *Slide) {
	el := slide.BackgroundElement()
	if el == nil {
		return
	}
	pl, err := pagePlacement(slide.Page, c.viewport)
	if err != nil {
		el.Visible = false
		c.log.Warn("background placement rejected", zap.Int("slide", slide.Index), zap.Error(err))
		return
	}
	el.X, el.Y = pl.Left, pl.Top
	el.Width, el.Height = pl.Width, pl.Height
	el.Visible = true

	if slide.Background != nil {
		if err := slide.Background.Ensure(int(pl.Width), int(pl.Height)); err != nil {
			// Best-effort: the slide renders without a background this frame.
			c.log.Warn("background rasterization failed", zap.Int("slide", slide.Index), zap.Error(err))
		}
		el.Image = slide.Background.Texture()
	}
}

// activateSlide makes index the active slide: autoplay-flagged media under it
// start, and media under every other slide are paused and rewound to zero,
// unconditionally, every time — no slide may exhibit ghost playback state
// when revisited. A delayed cache-busting refresh follows to clear partial-
// render artifacts after rapid slide changes.
func (c *Controller) activateSlide(index int) {
	c.activeSlideIndex = index
	for _, slide := range c.deck.Slides() {
		for _, el := range slide.Overlays() {
			if el.Player == nil {
				continue
			}
			if slide.Index == index {
				if !el.Autoplay {
					continue
				}
				if err := el.Player.Play(); err != nil {
					if errors.Is(err, ErrPlaybackBlocked) {
						// Expected under platform autoplay policy; not an error.
						continue
					}
					c.log.Error("media playback start failed",
						zap.Int("slide", slide.Index), zap.String("media", el.Name), zap.Error(err))
				}
			} else {
				el.Player.Pause()
				el.Player.Rewind()
			}
		}
	}

	refreshed := index
	c.timers.start(timerBackgroundRefresh, backgroundRefreshDly, func() {
		c.refreshBackgrounds(refreshed)
	})
}

// refreshBackgrounds force-reloads the given slide's background and its
// immediate neighbors with a fresh cache-busting marker, then asks for a
// recompute so the new rasters get picked up. Best-effort; failure has no
// correctness impact.
func (c *Controller) refreshBackgrounds(index int) {
	for i := index - 1; i <= index+1; i++ {
		slide := c.deck.Slide(i)
		if slide == nil || slide.Background == nil {
			continue
		}
		slide.Background.Refresh()
	}
	c.requestRecompute()
}

// SlideSettled is the external slide-change completion signal: the host calls
// it (directly or via Slideshow.OnSettle) once a transition finishes.
func (c *Controller) SlideSettled(index int) {
	c.activateSlide(index)
	c.requestRecompute()
}
