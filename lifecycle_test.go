package lectern

import (
	"errors"
	"strings"
	"testing"
)

func TestRecomputeDropsConcurrentTrigger(t *testing.T) {
	r := newTestRig(t, 2)

	r.c.requestRecompute()
	if !r.c.isRecomputing {
		t.Fatal("first request did not enter Recomputing")
	}
	// Back-to-back trigger before the first pass completes: dropped.
	r.c.requestRecompute()

	r.c.Update(1.0 / 60.0)
	if r.c.isRecomputing {
		t.Fatal("flag not cleared after pass")
	}
	overlay := r.deck.Slide(0).Overlays()[0]
	if !overlay.Visible || overlay.Width <= 0 {
		t.Errorf("overlay not placed: visible=%v width=%v", overlay.Visible, overlay.Width)
	}

	// The system is re-entrant on the next trigger.
	r.c.requestRecompute()
	if !r.c.isRecomputing {
		t.Fatal("recompute not accepted after previous pass finished")
	}
}

func TestRecomputeClearsFlagAndSkipsBadOverlayOnly(t *testing.T) {
	r := newTestRig(t, 1)
	slide := r.deck.Slide(0)
	if _, err := slide.AddOverlay(MediaOverlayDescriptor{
		OwnerSlideIndex: 0,
		Rect:            PageRect{Llx: 400, Lly: 300, Urx: 500, Ury: 400},
	}, &fakePlayer{}); err != nil {
		t.Fatalf("AddOverlay: %v", err)
	}
	// Corrupt the first overlay's rect after creation so projection rejects it.
	slide.Overlays()[0].PageRect = PageRect{Llx: 300, Lly: 100, Urx: 100, Ury: 200}

	r.c.requestRecompute()
	r.c.Update(1.0 / 60.0)

	if r.c.isRecomputing {
		t.Fatal("flag must clear even when overlays fail")
	}
	if slide.Overlays()[0].Visible {
		t.Error("invalid overlay should be hidden")
	}
	if !slide.Overlays()[1].Visible {
		t.Error("sibling overlay should still be placed")
	}
}

func TestActivateSlidePlaysActiveAndSilencesOthers(t *testing.T) {
	r := newTestRig(t, 3)

	r.c.activateSlide(1)
	if r.players[1].plays != 1 || !r.players[1].playing {
		t.Errorf("active slide media not started: plays=%d", r.players[1].plays)
	}
	if r.players[0].pauses != 1 || r.players[0].rewinds != 1 {
		t.Errorf("slide 0 media not silenced: pauses=%d rewinds=%d", r.players[0].pauses, r.players[0].rewinds)
	}
	if r.players[2].pauses != 1 || r.players[2].rewinds != 1 {
		t.Errorf("slide 2 media not silenced: pauses=%d rewinds=%d", r.players[2].pauses, r.players[2].rewinds)
	}

	// Pause and rewind happen unconditionally on every activation, so a
	// revisited slide can never exhibit ghost playback state.
	r.players[2].playing = true
	r.players[2].pos = 4.2
	r.c.activateSlide(1)
	if r.players[2].playing || r.players[2].pos != 0 {
		t.Error("ghost playback state survived re-activation")
	}
}

func TestActivateSlideRespectsAutoplayFlag(t *testing.T) {
	deck := NewDeck(nil)
	slide := deck.AddSlide(PageSize{Width: 800, Height: 600}, nil)
	player := &fakePlayer{}
	if _, err := slide.AddOverlay(MediaOverlayDescriptor{Rect: overlayRect(), Autoplay: false}, player); err != nil {
		t.Fatalf("AddOverlay: %v", err)
	}
	stage := NewContainer("stage")
	NewSlideshow(deck, stage)
	c := NewController(&fakeHost{count: 1}, deck, stage)
	c.viewport = Size{Width: 1000, Height: 500}

	c.activateSlide(0)
	if player.plays != 0 {
		t.Error("autoplay=false media was started")
	}
}

func TestBlockedAutoplayIsSwallowed(t *testing.T) {
	r := newTestRig(t, 1)
	r.players[0].blocked = true

	r.c.activateSlide(0) // must not panic or surface an error
	if r.players[0].plays != 1 {
		t.Error("play was not attempted")
	}
	if r.players[0].playing {
		t.Error("blocked player reported playing")
	}
}

func TestPlaybackFailureDoesNotAbortActivation(t *testing.T) {
	r := newTestRig(t, 2)
	r.players[0].failure = errors.New("decoder exploded")

	r.c.activateSlide(0)
	// The failure is logged, and the rest of the activation still ran.
	if r.players[1].pauses != 1 {
		t.Error("other slides not silenced after playback failure")
	}
}

func TestActivateSlideSchedulesBackgroundRefresh(t *testing.T) {
	r := newTestRig(t, 3)
	for _, s := range r.deck.Slides() {
		s.Background = NewBackground("page.svg")
	}

	r.c.activateSlide(1)
	if !r.c.timers.pending(timerBackgroundRefresh) {
		t.Fatal("background refresh not scheduled")
	}

	r.step(0.06)
	for i := 0; i < 3; i++ {
		ref := r.deck.Slide(i).Background.SourceRef()
		if !strings.Contains(ref, "#") {
			t.Errorf("slide %d background not cache-busted: %q", i, ref)
		}
	}
}

func TestBackgroundRefreshCoversNeighborsOnly(t *testing.T) {
	r := newTestRig(t, 5)
	for _, s := range r.deck.Slides() {
		s.Background = NewBackground("page.svg")
	}

	r.c.activateSlide(2)
	r.step(0.06)

	for i, want := range []bool{false, true, true, true, false} {
		got := strings.Contains(r.deck.Slide(i).Background.SourceRef(), "#")
		if got != want {
			t.Errorf("slide %d refreshed = %v, want %v", i, got, want)
		}
	}
}

func TestSlideSettledActivatesAndRecomputes(t *testing.T) {
	r := newTestRig(t, 3)

	r.c.SlideSettled(2)
	if r.c.ActiveSlideIndex() != 2 {
		t.Fatalf("active = %d, want 2", r.c.ActiveSlideIndex())
	}
	if !r.c.isRecomputing {
		t.Fatal("settle did not request a recompute")
	}
	r.c.Update(1.0 / 60.0)
	overlay := r.deck.Slide(2).Overlays()[0]
	if !overlay.Visible {
		t.Error("active slide overlay not placed after settle")
	}
}
