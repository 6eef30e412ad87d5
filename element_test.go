package lectern

import "testing"

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")

	a.AddChild(child)
	if child.Parent != a || a.NumChildren() != 1 {
		t.Fatal("child not attached to a")
	}
	b.AddChild(child)
	if child.Parent != b {
		t.Error("child not reparented to b")
	}
	if a.NumChildren() != 0 {
		t.Error("child still listed under a")
	}
}

func TestAddChildPanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewContainer("a").AddChild(nil)
}

func TestAddChildPanicsOnCycle(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestRemoveFromParentIsNoopWithoutParent(t *testing.T) {
	NewContainer("orphan").RemoveFromParent() // must not panic
}

func TestDisposeDetachesAndRecurses(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewSprite("leaf", nil)
	root.AddChild(mid)
	mid.AddChild(leaf)

	mid.Dispose()
	if root.NumChildren() != 0 {
		t.Error("disposed subtree still attached")
	}
	if !mid.IsDisposed() || !leaf.IsDisposed() {
		t.Error("descendants not disposed")
	}
	if leaf.Parent != nil {
		t.Error("disposed leaf keeps parent link")
	}
	mid.Dispose() // idempotent
}

func TestBoundsAccumulatesAncestorOffsets(t *testing.T) {
	root := NewContainer("root")
	root.X, root.Y = 10, 20
	panel := NewContainer("panel")
	panel.X, panel.Y = 5, 5
	leaf := NewSprite("leaf", nil)
	leaf.X, leaf.Y = 1, 2
	leaf.Width, leaf.Height = 30, 40
	root.AddChild(panel)
	panel.AddChild(leaf)

	b := leaf.Bounds()
	assertNear(t, "x", b.X, 16)
	assertNear(t, "y", b.Y, 27)
	assertNear(t, "width", b.Width, 30)
	assertNear(t, "height", b.Height, 40)
}

func TestWorldAlphaMultiplies(t *testing.T) {
	root := NewContainer("root")
	root.Alpha = 0.5
	leaf := NewSprite("leaf", nil)
	leaf.Alpha = 0.5
	root.AddChild(leaf)
	assertNear(t, "world alpha", leaf.WorldAlpha(), 0.25)
}

func TestWorldVisible(t *testing.T) {
	root := NewContainer("root")
	leaf := NewSprite("leaf", nil)
	root.AddChild(leaf)
	if !leaf.worldVisible() {
		t.Fatal("visible chain reported hidden")
	}
	root.Visible = false
	if leaf.worldVisible() {
		t.Fatal("hidden ancestor not respected")
	}
}

func TestRectContainsAndIntersects(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(10, 10) || !r.Contains(30, 30) {
		t.Error("edge points should be inside")
	}
	if r.Contains(9.99, 10) {
		t.Error("outside point reported inside")
	}
	if !r.Intersects(Rect{X: 30, Y: 10, Width: 5, Height: 5}) {
		t.Error("edge-adjacent rects should intersect")
	}
	if r.Intersects(Rect{X: 31, Y: 10, Width: 5, Height: 5}) {
		t.Error("separated rects should not intersect")
	}
}
