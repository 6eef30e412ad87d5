package lectern

import (
	"fmt"
	"math"
)

// PageSize is the size of a slide page in typographic points.
type PageSize struct {
	Width, Height float64
}

// PageRect is a rectangle in page-point space: origin at the page's
// bottom-left corner, Y increasing upward. Llx/Lly is the lower-left corner,
// Urx/Ury the upper-right.
type PageRect struct {
	Llx, Lly, Urx, Ury float64
}

// Valid reports whether the rectangle has positive extent on both axes and
// all finite coordinates.
func (r PageRect) Valid() bool {
	return finite(r.Llx) && finite(r.Lly) && finite(r.Urx) && finite(r.Ury) &&
		r.Urx > r.Llx && r.Ury > r.Lly
}

// Placement is a projected rectangle in viewport pixel space, origin
// top-left, Y increasing downward. Derived, never persisted.
type Placement struct {
	Left, Top, Width, Height float64
}

// ErrInvalidGeometry reports a projection input or result that is non-finite
// or non-positive. Callers skip the affected overlay and continue.
var ErrInvalidGeometry = fmt.Errorf("lectern: invalid geometry")

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positiveFinite(v float64) bool {
	return finite(v) && v > 0
}

// FitScale returns the fit-inside scale factor and centering offsets that map
// a page of the given size onto the viewport: the page is scaled by the
// largest factor that keeps it entirely within the viewport, preserving
// aspect ratio, and centered on both axes.
func FitScale(page PageSize, viewport Size) (scale, offsetX, offsetY float64, err error) {
	if !positiveFinite(page.Width) || !positiveFinite(page.Height) ||
		!positiveFinite(viewport.Width) || !positiveFinite(viewport.Height) {
		return 0, 0, 0, fmt.Errorf("%w: page %gx%g pt, viewport %gx%g px",
			ErrInvalidGeometry, page.Width, page.Height, viewport.Width, viewport.Height)
	}
	// The smaller of the two axis-fit scales. A viewport wider than the page's
	// aspect is height-constrained; otherwise width-constrained.
	if viewport.Width/viewport.Height > page.Width/page.Height {
		scale = viewport.Height / page.Height
	} else {
		scale = viewport.Width / page.Width
	}
	offsetX = (viewport.Width - page.Width*scale) / 2
	offsetY = (viewport.Height - page.Height*scale) / 2
	return scale, offsetX, offsetY, nil
}

// Project maps a page-space rectangle into viewport pixel space under the
// fit-inside policy of FitScale. The Y axis is flipped: page space has its
// origin at the bottom-left, pixel space at the top-left.
//
// Project is pure and idempotent: identical inputs always yield identical
// outputs, with no mutation and no side effects. Inputs or results that are
// non-finite or non-positive are rejected with ErrInvalidGeometry.
func Project(page PageSize, viewport Size, r PageRect) (Placement, error) {
	scale, offsetX, offsetY, err := FitScale(page, viewport)
	if err != nil {
		return Placement{}, err
	}
	p := Placement{
		Left:   offsetX + r.Llx*scale,
		Top:    offsetY + (page.Height-r.Ury)*scale,
		Width:  (r.Urx - r.Llx) * scale,
		Height: (r.Ury - r.Lly) * scale,
	}
	if !finite(p.Left) || !finite(p.Top) || !positiveFinite(p.Width) || !positiveFinite(p.Height) {
		return Placement{}, fmt.Errorf("%w: rect (%g,%g)-(%g,%g) pt projects to %+v",
			ErrInvalidGeometry, r.Llx, r.Lly, r.Urx, r.Ury, p)
	}
	return p, nil
}

// pagePlacement projects the full page rectangle, i.e. where the slide
// background lands in the viewport.
func pagePlacement(page PageSize, viewport Size) (Placement, error) {
	return Project(page, viewport, PageRect{Llx: 0, Lly: 0, Urx: page.Width, Ury: page.Height})
}
