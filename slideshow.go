package lectern

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Slideshow is the built-in Host: a horizontal strip of slide containers,
// one viewport apart, animated with an easing tween on slide changes. It
// reports slide-change completion through an OnSettle callback so the
// controller can re-run layout and media activation once the strip stops
// moving.
type Slideshow struct {
	deck  *Deck
	strip *Element // holds the slide containers side by side

	active    int
	viewport  Size
	tween     *gween.Tween
	destroyed bool

	// OnSettle fires once per completed transition (and once for the initial
	// slide) with the now-active index.
	OnSettle func(index int)
}

// NewSlideshow creates a slideshow over deck, parenting each slide container
// under a strip element attached to stage.
func NewSlideshow(deck *Deck, stage *Element) *Slideshow {
	s := &Slideshow{deck: deck, strip: NewContainer("strip")}
	stage.AddChild(s.strip)
	for _, slide := range deck.Slides() {
		s.strip.AddChild(slide.Element)
	}
	return s
}

// Strip returns the element holding the slide containers.
func (s *Slideshow) Strip() *Element {
	return s.strip
}

// SetViewport sets the viewport size used to space the slide containers and
// re-places them immediately.
func (s *Slideshow) SetViewport(v Size) {
	s.viewport = v
	s.Refresh()
}

// Next implements Host.
func (s *Slideshow) Next() {
	s.GoTo(s.active + 1)
}

// Previous implements Host.
func (s *Slideshow) Previous() {
	s.GoTo(s.active - 1)
}

// GoTo implements Host. Out-of-range indices are clamped; a jump to the
// already-active slide still re-settles it so callers can rely on the
// OnSettle signal.
func (s *Slideshow) GoTo(index int) {
	if s.destroyed || s.deck.Len() == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > s.deck.Len()-1 {
		index = s.deck.Len() - 1
	}
	s.active = index
	target := -float64(index) * s.viewport.Width
	if s.viewport.Width <= 0 || s.strip.X == target {
		s.strip.X = target
		s.settle()
		return
	}
	s.tween = gween.New(float32(s.strip.X), float32(target), transitionDuration, ease.OutCubic)
}

// ActiveIndex implements Host.
func (s *Slideshow) ActiveIndex() int {
	return s.active
}

// Count implements Host.
func (s *Slideshow) Count() int {
	return s.deck.Len()
}

// Refresh implements Host: re-places every slide container one viewport
// apart and snaps the strip to the active slide, cancelling any running
// transition. Safe to call with stale geometry; the next Refresh corrects it.
func (s *Slideshow) Refresh() {
	if s.destroyed {
		return
	}
	for i, slide := range s.deck.Slides() {
		slide.Element.X = float64(i) * s.viewport.Width
		slide.Element.Y = 0
		slide.Element.Width = s.viewport.Width
		slide.Element.Height = s.viewport.Height
	}
	s.tween = nil
	s.strip.X = -float64(s.active) * s.viewport.Width
}

// Destroyed implements Host.
func (s *Slideshow) Destroyed() bool {
	return s.destroyed
}

// Destroy tears the slideshow down. Further Host calls are no-ops.
func (s *Slideshow) Destroy() {
	s.destroyed = true
	s.tween = nil
}

// Update advances the transition animation by dt seconds and fires OnSettle
// when a transition completes.
func (s *Slideshow) Update(dt float64) {
	if s.destroyed || s.tween == nil {
		return
	}
	x, done := s.tween.Update(float32(dt))
	s.strip.X = float64(x)
	if done {
		s.tween = nil
		s.settle()
	}
}

func (s *Slideshow) settle() {
	if s.OnSettle != nil {
		s.OnSettle(s.active)
	}
}
