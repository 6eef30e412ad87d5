package lectern

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// backgroundFill is the letterbox color around the fitted page.
var backgroundFill = color.RGBA{R: 18, G: 18, B: 22, A: 255}

// whitePixelImg is a 1x1 white image used for solid color quads. Created
// lazily so headless tests never touch the GPU.
var whitePixelImg *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImg == nil {
		whitePixelImg = ebiten.NewImage(1, 1)
		whitePixelImg.Fill(color.White)
	}
	return whitePixelImg
}

// DrawStage renders the element tree rooted at root onto screen.
func DrawStage(screen *ebiten.Image, root *Element) {
	drawElement(screen, root, 0, 0, 1)
}

func drawElement(screen *ebiten.Image, el *Element, ox, oy, alpha float64) {
	if el == nil || !el.Visible || el.IsDisposed() {
		return
	}
	x := ox + el.X
	y := oy + el.Y
	a := alpha * el.Alpha

	switch el.Kind {
	case ElementSprite:
		drawQuad(screen, el.Image, el, x, y, a)
	case ElementMedia:
		var frame *ebiten.Image
		if el.Player != nil {
			frame = el.Player.Frame()
		}
		drawQuad(screen, frame, el, x, y, a)
	case ElementLabel:
		drawQuad(screen, nil, el, x, y, a)
		if el.Label != "" && a > 0 {
			ebitenutil.DebugPrintAt(screen, el.Label, int(x)+4, int(y)+4)
		}
	}

	for _, child := range el.Children() {
		drawElement(screen, child, x, y, a)
	}
}

// drawQuad draws img stretched to the element's size, tinted by the
// element's Color and effective alpha. A nil img draws a solid color quad.
func drawQuad(screen *ebiten.Image, img *ebiten.Image, el *Element, x, y, a float64) {
	if el.Width <= 0 || el.Height <= 0 || a <= 0 {
		return
	}
	if img == nil {
		if el.Color.A <= 0 {
			return
		}
		img = whitePixel()
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	var opts ebiten.DrawImageOptions
	opts.GeoM.Scale(el.Width/float64(bounds.Dx()), el.Height/float64(bounds.Dy()))
	opts.GeoM.Translate(x, y)
	opts.ColorScale.Scale(float32(el.Color.R), float32(el.Color.G), float32(el.Color.B), 1)
	opts.ColorScale.ScaleAlpha(float32(a * el.Color.A))
	opts.Blend = el.BlendMode.EbitenBlend()
	opts.Filter = ebiten.FilterLinear
	screen.DrawImage(img, &opts)
}
