package lectern

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearTol(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tolerance %v)", name, got, want, tol)
	}
}

// --- Host fake ---

type fakeHost struct {
	active    int
	count     int
	nexts     int
	previouss int
	gotos     []int
	refreshes int
	destroyed bool
}

func (h *fakeHost) Next() {
	h.nexts++
	if h.active < h.count-1 {
		h.active++
	}
}

func (h *fakeHost) Previous() {
	h.previouss++
	if h.active > 0 {
		h.active--
	}
}

func (h *fakeHost) GoTo(index int) {
	h.gotos = append(h.gotos, index)
	if index < 0 {
		index = 0
	}
	if index > h.count-1 {
		index = h.count - 1
	}
	h.active = index
}

func (h *fakeHost) ActiveIndex() int { return h.active }
func (h *fakeHost) Count() int       { return h.count }
func (h *fakeHost) Refresh()         { h.refreshes++ }
func (h *fakeHost) Destroyed() bool  { return h.destroyed }

// --- Platform fake ---

type fakePlatform struct {
	supported  bool
	fullscreen bool
	element    *Element // reported fullscreen element; nil falls back to stage
}

func (p *fakePlatform) FullscreenSupported() bool { return p.supported }
func (p *fakePlatform) IsFullscreen() bool        { return p.fullscreen }
func (p *fakePlatform) SetFullscreen(on bool)     { p.fullscreen = on }
func (p *fakePlatform) FullscreenElement() *Element {
	if !p.fullscreen {
		return nil
	}
	return p.element
}

// --- Player fake ---

type fakePlayer struct {
	playing bool
	pos     float64
	blocked bool  // Play reports ErrPlaybackBlocked
	failure error // Play reports this error when set
	plays   int
	pauses  int
	rewinds int
}

func (p *fakePlayer) Play() error {
	p.plays++
	if p.blocked {
		return ErrPlaybackBlocked
	}
	if p.failure != nil {
		return p.failure
	}
	p.playing = true
	return nil
}

func (p *fakePlayer) Pause()           { p.pauses++; p.playing = false }
func (p *fakePlayer) Rewind()          { p.rewinds++; p.pos = 0 }
func (p *fakePlayer) Playing() bool    { return p.playing }
func (p *fakePlayer) Update(dt float64) {
	if p.playing {
		p.pos += dt
	}
}
func (p *fakePlayer) Frame() *ebiten.Image { return nil }

// --- Controller fixture ---

// testRig is a controller over an in-memory deck with one overlay per slide,
// each backed by a fakePlayer.
type testRig struct {
	c       *Controller
	host    *fakeHost
	deck    *Deck
	stage   *Element
	players []*fakePlayer
}

func overlayRect() PageRect {
	return PageRect{Llx: 100, Lly: 100, Urx: 300, Ury: 200}
}

func newTestRig(t *testing.T, slides int) *testRig {
	t.Helper()
	deck := NewDeck(nil)
	var players []*fakePlayer
	for i := 0; i < slides; i++ {
		slide := deck.AddSlide(PageSize{Width: 800, Height: 600}, nil)
		player := &fakePlayer{}
		if _, err := slide.AddOverlay(MediaOverlayDescriptor{
			OwnerSlideIndex: i,
			Rect:            overlayRect(),
			Autoplay:        true,
		}, player); err != nil {
			t.Fatalf("AddOverlay: %v", err)
		}
		players = append(players, player)
	}

	stage := NewContainer("stage")
	show := NewSlideshow(deck, stage)
	_ = show // slide elements now hang off the stage strip

	host := &fakeHost{count: slides}
	c := NewController(host, deck, stage)
	c.viewport = Size{Width: 1000, Height: 500}
	return &testRig{c: c, host: host, deck: deck, stage: stage, players: players}
}

// step advances the controller by dt in ~one-frame increments so timers and
// deferred frames interleave the way the game loop would run them.
func (r *testRig) step(dt float64) {
	const frame = 1.0 / 60.0
	for dt > frame {
		r.c.Update(frame)
		dt -= frame
	}
	r.c.Update(dt)
}
