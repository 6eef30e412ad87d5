package lectern

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// maxRasterDim caps the pixel dimensions of a rasterized page. Prevents OOM
// from pathological viewBox values and matches common GPU texture limits.
const maxRasterDim = 8192

// Background is a slide's vector page image. The SVG source is rasterized
// lazily at viewport resolution and re-rasterized when the viewport outgrows
// the cached raster or when a forced refresh invalidates it.
type Background struct {
	path      string
	cacheMark string // cache-busting marker; changing it invalidates the raster

	raster  image.Image // last rasterization, kept for thumbnailing
	texture *ebiten.Image
	rw, rh  int // raster dimensions

	thumb      *ebiten.Image
	thumbWidth int
}

// NewBackground creates a background for the SVG page at path. Nothing is
// read or rasterized until the first Ensure call.
func NewBackground(path string) *Background {
	return &Background{path: path}
}

// Path returns the SVG source path.
func (b *Background) Path() string {
	return b.path
}

// SourceRef returns the background's source reference including the current
// cache-busting marker, the form a refresh mutates.
func (b *Background) SourceRef() string {
	if b.cacheMark == "" {
		return b.path
	}
	return b.path + "#" + b.cacheMark
}

// Refresh invalidates the cached raster by mutating the source reference
// with a fresh cache-busting marker. The next Ensure call re-rasterizes.
// Best-effort: works around intermittent partial-render artifacts after
// rapid slide changes.
func (b *Background) Refresh() {
	b.cacheMark = uuid.NewString()
	b.texture = nil
	b.raster = nil
	b.rw, b.rh = 0, 0
}

// Ensure rasterizes the SVG to fit inside targetW x targetH pixels if the
// cached raster is missing or smaller than requested. Shrinking the viewport
// keeps the larger raster; the draw pass downscales.
func (b *Background) Ensure(targetW, targetH int) error {
	if b.texture != nil && b.rw >= targetW && b.rh >= targetH {
		return nil
	}
	img, err := rasterizeSVG(b.path, targetW, targetH)
	if err != nil {
		return fmt.Errorf("rasterize %s: %w", b.SourceRef(), err)
	}
	bounds := img.Bounds()
	b.raster = img
	b.texture = ebiten.NewImageFromImage(img)
	b.rw, b.rh = bounds.Dx(), bounds.Dy()
	return nil
}

// Texture returns the current rasterized page, or nil if Ensure has not
// succeeded yet.
func (b *Background) Texture() *ebiten.Image {
	return b.texture
}

// Thumbnail returns a cached Lanczos-downscaled copy of the page raster at
// the given width, or nil if no raster exists yet.
func (b *Background) Thumbnail(width int) *ebiten.Image {
	if b.raster == nil || width <= 0 {
		return nil
	}
	if b.thumb != nil && b.thumbWidth == width {
		return b.thumb
	}
	small := imaging.Resize(b.raster, width, 0, imaging.Lanczos)
	b.thumb = ebiten.NewImageFromImage(small)
	b.thumbWidth = width
	return b.thumb
}

// rasterizeSVG renders the SVG file at path into an RGBA image fitting inside
// targetW x targetH while preserving the page aspect ratio. With no target
// the intrinsic viewBox size is used.
func rasterizeSVG(path string, targetW, targetH int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, err
	}

	intrW := int(math.Ceil(icon.ViewBox.W))
	intrH := int(math.Ceil(icon.ViewBox.H))
	if intrW <= 0 || intrH <= 0 {
		return nil, fmt.Errorf("%w: svg viewBox %gx%g", ErrInvalidGeometry, icon.ViewBox.W, icon.ViewBox.H)
	}

	w, h := intrW, intrH
	if targetW > 0 && targetH > 0 {
		scale := math.Min(float64(targetW)/float64(intrW), float64(targetH)/float64(intrH))
		w = max(int(math.Round(float64(intrW)*scale)), 1)
		h = max(int(math.Round(float64(intrH)*scale)), 1)
	}
	if w > maxRasterDim || h > maxRasterDim {
		s := math.Min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
