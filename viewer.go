package lectern

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Fullscreen    bool
	ShowFPS       bool
	Logger        *zap.Logger
}

// Run opens a resizable window and presents the deck until the window is
// closed: a built-in Slideshow host, a Controller wired to the real ebiten
// platform, and a game loop translating ebiten input into controller events.
func Run(deck *Deck, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}

	stage := NewContainer("stage")
	show := NewSlideshow(deck, stage)
	c := NewController(show, deck, stage)
	if cfg.Logger != nil {
		c.SetLogger(cfg.Logger)
	}
	c.SetPlatform(NewEbitenPlatform(stage))
	show.OnSettle = c.SlideSettled

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	v := &viewer{cfg: cfg, show: show, controller: c}
	defer c.Shutdown()
	return ebiten.RunGame(v)
}

// keyBindings maps ebiten key codes to the controller's command keys.
var keyBindings = []struct {
	eb  ebiten.Key
	key Key
}{
	{ebiten.KeyArrowRight, KeyArrowRight},
	{ebiten.KeyArrowLeft, KeyArrowLeft},
	{ebiten.KeyPageDown, KeyPageDown},
	{ebiten.KeyPageUp, KeyPageUp},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyF, KeyF},
	{ebiten.KeyM, KeyM},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyEnter, KeyEnter},
}

// viewer is the ebiten.Game adapter around a Controller and its Slideshow.
type viewer struct {
	cfg        RunConfig
	show       *Slideshow
	controller *Controller

	started       bool
	surfaceW      int
	surfaceH      int
	lastW, lastH  int
	wasFullscreen bool
}

func (v *viewer) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	w, h := v.surfaceW, v.surfaceH
	if w <= 0 || h <= 0 {
		return nil
	}

	if !v.started {
		v.show.SetViewport(Size{Width: float64(w), Height: float64(h)})
		v.controller.Resize(float64(w), float64(h))
		v.controller.Start()
		v.wasFullscreen = ebiten.IsFullscreen()
		v.lastW, v.lastH = w, h
		v.started = true
	} else if w != v.lastW || h != v.lastH {
		v.show.SetViewport(Size{Width: float64(w), Height: float64(h)})
		v.controller.Resize(float64(w), float64(h))
		v.lastW, v.lastH = w, h
	}

	// Fullscreen fan-in: the state poll here and the in-controller toggle
	// path both notify; the unified handler dedupes.
	if fs := ebiten.IsFullscreen(); fs != v.wasFullscreen {
		v.wasFullscreen = fs
		v.controller.NotifyFullscreenChanged()
	}

	mx, my := ebiten.CursorPosition()
	v.controller.PointerMoved(float64(mx), float64(my))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.controller.Click(float64(mx), float64(my))
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.eb) {
			v.controller.HandleKey(KeyEvent{Key: b.key, Shift: shift})
		}
	}

	v.controller.Update(dt)
	v.show.Update(dt)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundFill)
	DrawStage(screen, v.controller.Stage())
	if v.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f  TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.surfaceW, v.surfaceH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
