package lectern

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// ElementKind distinguishes rendering and interaction behavior for an Element.
type ElementKind uint8

const (
	ElementContainer ElementKind = iota // group element with no visual output
	ElementSprite                       // renders an image (slide background, pointer dot, preview)
	ElementMedia                        // renders the current frame of a media Player
	ElementLabel                        // renders a short text label (number chips, fallback preview)
)

// elementIDCounter is a plain counter (no atomic — lectern is single-threaded).
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is a visual element in the presentation surface. A single flat
// struct is used for all kinds to avoid interface dispatch in the draw loop.
//
// Positions are in pixels relative to the parent. Width and Height are the
// element's on-screen size; images are stretched to fit. Alpha multiplies
// down the tree.
type Element struct {
	// Identity
	ID   uint32
	Name string
	Kind ElementKind

	// Hierarchy
	Parent   *Element
	children []*Element

	// Placement (pixels, relative to parent)
	X, Y          float64
	Width, Height float64

	// Visibility
	Alpha   float64
	Visible bool

	// Visuals
	Image     *ebiten.Image
	Label     string
	Color     Color
	BlendMode BlendMode

	// Tags from the visual-element contract: slide containers carry their
	// ordinal and page dimensions; media elements carry their page rect.
	SlideIndex int
	Page       PageSize
	PageRect   PageRect

	// Media playback, set on ElementMedia only.
	Player   Player
	Autoplay bool

	// TextEntry marks elements that consume keystrokes while focused;
	// keyboard commands are suppressed for them.
	TextEntry bool

	disposed bool
}

func elementDefaults(e *Element) {
	e.ID = nextElementID()
	e.Alpha = 1
	e.Color = ColorWhite
	e.Visible = true
}

// NewContainer creates a container element with no visual representation.
func NewContainer(name string) *Element {
	e := &Element{Name: name, Kind: ElementContainer}
	elementDefaults(e)
	return e
}

// NewSprite creates a sprite element that renders img stretched to the
// element's Width and Height. A nil img renders as a solid Color quad.
func NewSprite(name string, img *ebiten.Image) *Element {
	e := &Element{Name: name, Kind: ElementSprite, Image: img}
	elementDefaults(e)
	return e
}

// NewLabel creates a text label element.
func NewLabel(name, label string) *Element {
	e := &Element{Name: name, Kind: ElementLabel, Label: label}
	elementDefaults(e)
	return e
}

// NewMedia creates a media element bound to a Player. The element's placement
// is owned by the layout recomputation pass; callers set PageRect, not X/Y.
func NewMedia(name string, player Player) *Element {
	e := &Element{Name: name, Kind: ElementMedia, Player: player}
	elementDefaults(e)
	return e
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("lectern: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("lectern: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("lectern: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// RemoveChildren detaches all children from this element.
// Children are NOT disposed.
func (e *Element) RemoveChildren() {
	for _, child := range e.children {
		child.Parent = nil
	}
	e.children = e.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// --- Disposal ---

// Dispose removes this element from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	e.ID = 0
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.Parent = nil
	e.Image = nil
	e.Player = nil
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// --- Geometry ---

// Bounds returns the element's absolute on-screen rectangle, accumulating
// parent offsets up to the root. There is no rotation or nested scaling in
// the presentation surface, so this is a plain offset walk.
func (e *Element) Bounds() Rect {
	x, y := e.X, e.Y
	for p := e.Parent; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return Rect{X: x, Y: y, Width: e.Width, Height: e.Height}
}

// WorldAlpha returns the element's effective alpha after multiplying through
// its ancestors.
func (e *Element) WorldAlpha() float64 {
	a := e.Alpha
	for p := e.Parent; p != nil; p = p.Parent {
		a *= p.Alpha
	}
	return a
}

// worldVisible reports whether the element and all its ancestors are visible.
func (e *Element) worldVisible() bool {
	for p := e; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of el.
func isAncestor(candidate, el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}
