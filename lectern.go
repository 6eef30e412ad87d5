package lectern

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair in viewport pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle in viewport pixel space. The coordinate
// system has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter (used by the laser pointer dot)
	BlendScreen                  // screen (1 - (1-src)*(1-dst); only brightens)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// Timing constants, in seconds unless noted. The settle delays are empirical:
// reacting to a fullscreen flip immediately reads stale geometry.
const (
	hoverShowDelay      = 0.5  // hover must persist this long before the preview appears
	hoverFadeDuration   = 0.22 // preview fade-out before parking off-screen
	navHideDelay        = 0.5  // nav affordances linger this long after leaving an edge band
	resizeDebounceDelay = 0.25 // resize events must settle this long before recompute
	fullscreenSettleDly = 0.3  // wait after a fullscreen flip before re-measuring
	backgroundRefreshDly = 0.05 // delay before cache-busting background reload
	transitionDuration  = 0.35 // built-in slideshow transition length

	edgeBandPx = 48.0 // width of the nav-revealing edge bands, pixels

	// offscreenX parks reusable surfaces (preview, hidden menu) far outside
	// any plausible viewport instead of destroying them between uses.
	offscreenX = -1e4
)

// FallbackPageSize is used when a slide reports no usable page dimensions.
var FallbackPageSize = PageSize{Width: 960, Height: 540}
