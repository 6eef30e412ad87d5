package lectern

import "testing"

// addTrigger attaches a hover trigger element to the rig's stage.
func (r *testRig) addTrigger(t *testing.T, slideIndex int) *Element {
	t.Helper()
	el := NewSprite("trigger", nil)
	el.X, el.Y = 400, 400
	el.Width, el.Height = 28, 28
	r.stage.AddChild(el)
	r.c.RegisterTrigger(el, slideIndex)
	return el
}

func TestQuickHoverNeverShowsPreview(t *testing.T) {
	r := newTestRig(t, 3)
	r.addTrigger(t, 2)

	r.c.PointerMoved(410, 410) // enter
	r.step(hoverShowDelay / 2)
	r.c.PointerMoved(600, 300) // leave before the delay elapses
	r.step(hoverShowDelay)

	if r.c.preview.state != previewIdle {
		t.Errorf("preview state = %v, want idle", r.c.preview.state)
	}
	if r.c.preview.el.X != offscreenX {
		t.Error("preview surface not parked off-screen")
	}
}

func TestHoverPastDelayShowsAnchoredPreview(t *testing.T) {
	r := newTestRig(t, 3)
	trig := r.addTrigger(t, 2)

	r.c.PointerMoved(410, 410)
	r.step(hoverShowDelay + 0.05)

	p := r.c.preview
	if p.state != previewShown || p.target != trig {
		t.Fatalf("preview not shown for trigger: state=%v", p.state)
	}
	b := trig.Bounds()
	assertNear(t, "x", p.el.X, b.X+b.Width/2-previewWidth/2)
	assertNear(t, "y", p.el.Y, b.Y-previewHeight-previewGap)

	// No thumbnail exists, so the textual fallback names the slide.
	if p.label.Label != "Slide 3" {
		t.Errorf("fallback label = %q, want %q", p.label.Label, "Slide 3")
	}

	r.step(previewFadeIn + 0.05)
	assertNear(t, "alpha", p.el.Alpha, 1)
}

func TestPreviewClampsToViewportTop(t *testing.T) {
	r := newTestRig(t, 1)
	trig := r.addTrigger(t, 0)
	trig.Y = 40 // too close to the top for the surface to fit above

	r.c.PointerMoved(410, 50)
	r.step(hoverShowDelay + 0.05)

	if r.c.preview.el.Y != 0 {
		t.Errorf("preview y = %v, want clamped to 0", r.c.preview.el.Y)
	}
}

func TestHoverLeaveFadesThenParks(t *testing.T) {
	r := newTestRig(t, 2)
	r.addTrigger(t, 1)

	r.c.PointerMoved(410, 410)
	r.step(hoverShowDelay + previewFadeIn + 0.1)
	r.c.PointerMoved(600, 300)

	p := r.c.preview
	if p.state != previewHiding {
		t.Fatalf("state = %v after leave, want hiding", p.state)
	}
	r.step(hoverFadeDuration / 2)
	if p.el.X == offscreenX {
		t.Fatal("parked mid-fade")
	}
	if p.el.Alpha >= 1 {
		t.Fatal("alpha did not start falling")
	}
	r.step(hoverFadeDuration)
	if p.state != previewIdle || p.el.X != offscreenX || p.el.Alpha != 0 {
		t.Errorf("not parked after fade: state=%v x=%v alpha=%v", p.state, p.el.X, p.el.Alpha)
	}
}

func TestReenterDuringHideCancelsPark(t *testing.T) {
	r := newTestRig(t, 2)
	r.addTrigger(t, 1)

	r.c.PointerMoved(410, 410)
	r.step(hoverShowDelay + previewFadeIn + 0.1)
	r.c.PointerMoved(600, 300)
	r.step(hoverFadeDuration / 2)
	r.c.PointerMoved(410, 410) // back before the park fires

	r.step(hoverFadeDuration)
	if r.c.preview.el.X == offscreenX {
		t.Error("surface parked despite re-entry")
	}
	r.step(hoverShowDelay)
	if r.c.preview.state != previewShown {
		t.Errorf("state = %v after re-entry delay, want shown", r.c.preview.state)
	}
}

func TestReenterShownTriggerKeepsPreview(t *testing.T) {
	r := newTestRig(t, 2)
	trig := r.addTrigger(t, 1)

	r.c.PointerMoved(410, 410)
	r.step(hoverShowDelay + previewFadeIn + 0.1)
	// Wiggle off and immediately back.
	r.c.PointerMoved(600, 300)
	r.c.PointerMoved(410, 410)

	p := r.c.preview
	if p.state != previewShown || p.target != trig {
		t.Errorf("preview lost on immediate re-entry: state=%v", p.state)
	}
	r.step(previewFadeIn + 0.05)
	assertNear(t, "alpha", p.el.Alpha, 1)
}

func TestShowPreviewIdempotentForSameTrigger(t *testing.T) {
	r := newTestRig(t, 2)
	trig := r.addTrigger(t, 1)

	r.c.PointerMoved(410, 410)
	r.step(hoverShowDelay + previewFadeIn + 0.1)
	alpha := r.c.preview.el.Alpha

	r.c.showPreview(trig)
	if r.c.preview.el.Alpha != alpha || r.c.preview.fade != nil {
		t.Error("redundant show restarted the fade")
	}
}

func TestHoverMovesBetweenAdjacentTriggers(t *testing.T) {
	r := newTestRig(t, 3)
	a := r.addTrigger(t, 0)
	b := r.addTrigger(t, 1)
	b.X = 440

	r.c.PointerMoved(410, 410) // over a
	if r.c.hoverTarget != a {
		t.Fatal("hover target not a")
	}
	r.c.PointerMoved(450, 410) // over b
	if r.c.hoverTarget != b {
		t.Fatal("hover target not retargeted to b")
	}
	r.step(hoverShowDelay + 0.05)
	if r.c.preview.target != b {
		t.Error("preview shown for the departed trigger")
	}
}

func TestFocusActsLikeHover(t *testing.T) {
	r := newTestRig(t, 3)
	trig := r.addTrigger(t, 2)

	r.c.SetFocus(trig)
	if r.c.preview.state != previewPendingShow {
		t.Fatalf("state = %v after focus, want pendingShow", r.c.preview.state)
	}
	r.step(hoverShowDelay + 0.05)
	if r.c.preview.state != previewShown {
		t.Fatalf("state = %v, want shown", r.c.preview.state)
	}
	r.c.SetFocus(nil)
	if r.c.preview.state != previewHiding {
		t.Errorf("state = %v after focus leaves, want hiding", r.c.preview.state)
	}
}

func TestInvisibleTriggerIsNotHoverable(t *testing.T) {
	r := newTestRig(t, 2)
	trig := r.addTrigger(t, 1)
	trig.Visible = false

	r.c.PointerMoved(410, 410)
	if r.c.hoverTarget != nil {
		t.Error("hidden trigger received hover")
	}
}

func TestNumberChipClickNavigatesAndClosesMenu(t *testing.T) {
	r := newTestRig(t, 3)
	r.c.viewport = Size{Width: 600, Height: 400} // narrow: strip visible
	r.c.layoutChrome()
	if !r.c.numbers.root.Visible {
		t.Fatal("number strip hidden on narrow viewport")
	}

	chip := r.c.numbers.chips[1]
	b := chip.Bounds()
	r.c.Click(b.X+1, b.Y+1)

	if len(r.host.gotos) != 1 || r.host.gotos[0] != 1 {
		t.Fatalf("gotos = %v, want [1]", r.host.gotos)
	}
	if r.c.MenuOpen() {
		t.Error("menu left open after trigger activation")
	}
}

func TestNumberStripHiddenOnWideViewport(t *testing.T) {
	r := newTestRig(t, 3)
	r.c.layoutChrome() // viewport 1000 wide
	if r.c.numbers.root.Visible {
		t.Error("number strip visible on wide viewport")
	}
}
