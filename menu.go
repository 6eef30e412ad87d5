package lectern

import "fmt"

// Menu layout constants, pixels.
const (
	menuCellWidth   = 160.0
	menuCellHeight  = 100.0
	menuCellGap     = 12.0
	menuPadding     = 24.0
	chipSize        = 28.0
	chipGap         = 6.0
	chipStripInset  = 10.0
	narrowViewportW = 720.0 // below this, the compact number strip appears
)

// menuGrid is the thumbnail browser: a grid of slide thumbnail cells shown
// over the presentation. Toggled with the menu key; a cell click jumps to its
// slide and closes the grid.
type menuGrid struct {
	root  *Element
	cells []*Element
	open  bool
}

func newMenuGrid(stage *Element, deck *Deck) *menuGrid {
	m := &menuGrid{root: NewContainer("menu")}
	m.root.Visible = false
	m.root.Color = Color{R: 0, G: 0, B: 0, A: 0.7}
	for i := range deck.Slides() {
		cell := NewSprite(fmt.Sprintf("menu-cell-%d", i), nil)
		cell.SlideIndex = i
		cell.Width, cell.Height = menuCellWidth, menuCellHeight
		cell.Label = fmt.Sprintf("%d", i+1)
		m.root.AddChild(cell)
		m.cells = append(m.cells, cell)
	}
	stage.AddChild(m.root)
	return m
}

// layout flows the cells into as many columns as fit the viewport and
// refreshes each cell's thumbnail.
func (m *menuGrid) layout(viewport Size, deck *Deck) {
	m.root.Width, m.root.Height = viewport.Width, viewport.Height
	cols := int((viewport.Width - 2*menuPadding + menuCellGap) / (menuCellWidth + menuCellGap))
	if cols < 1 {
		cols = 1
	}
	for i, cell := range m.cells {
		cell.X = menuPadding + float64(i%cols)*(menuCellWidth+menuCellGap)
		cell.Y = menuPadding + float64(i/cols)*(menuCellHeight+menuCellGap)
		if slide := deck.Slide(i); slide != nil && slide.Background != nil {
			if thumb := slide.Background.Thumbnail(int(menuCellWidth)); thumb != nil {
				cell.Image = thumb
			}
		}
	}
}

// cellAt returns the cell under the point while the grid is open, or nil.
func (m *menuGrid) cellAt(x, y float64) *Element {
	if !m.root.Visible {
		return nil
	}
	for _, cell := range m.cells {
		if cell.Bounds().Contains(x, y) {
			return cell
		}
	}
	return nil
}

// numberStrip is the compact slide-number list for narrow viewports: one
// small chip per slide along the bottom edge. Chips double as hover-preview
// triggers.
type numberStrip struct {
	root  *Element
	chips []*Element
}

func newNumberStrip(stage *Element, deck *Deck, c *Controller) *numberStrip {
	s := &numberStrip{root: NewContainer("number-strip")}
	s.root.Visible = false
	for i := range deck.Slides() {
		chip := NewLabel(fmt.Sprintf("chip-%d", i), fmt.Sprintf("%d", i+1))
		chip.Width, chip.Height = chipSize, chipSize
		chip.Color = Color{R: 0.15, G: 0.15, B: 0.18, A: 0.8}
		c.RegisterTrigger(chip, i)
		s.root.AddChild(chip)
		s.chips = append(s.chips, chip)
	}
	stage.AddChild(s.root)
	return s
}

// layout centers the chips along the bottom edge and decides visibility:
// the strip only appears on narrow viewports.
func (s *numberStrip) layout(viewport Size) {
	s.root.Visible = viewport.Width < narrowViewportW && len(s.chips) > 0
	total := float64(len(s.chips))*chipSize + float64(len(s.chips)-1)*chipGap
	x := viewport.Width/2 - total/2
	y := viewport.Height - chipSize - chipStripInset
	for _, chip := range s.chips {
		chip.X = x
		chip.Y = y
		x += chipSize + chipGap
	}
}

// chipAt returns the chip under the point while the strip is visible, or nil.
func (s *numberStrip) chipAt(x, y float64) *Element {
	if !s.root.Visible {
		return nil
	}
	for _, chip := range s.chips {
		if chip.Bounds().Contains(x, y) {
			return chip
		}
	}
	return nil
}

// --- Controller-side menu policy ---

// ToggleMenu opens or closes the thumbnail grid.
func (c *Controller) ToggleMenu() {
	if c.menu.open {
		c.hideMenu()
	} else {
		c.showMenu()
	}
}

// MenuOpen reports whether the thumbnail grid is showing.
func (c *Controller) MenuOpen() bool {
	return c.menu.open
}

func (c *Controller) showMenu() {
	c.menu.layout(c.viewport, c.deck)
	c.menu.root.Visible = true
	c.menu.open = true
}

func (c *Controller) hideMenu() {
	c.menu.root.Visible = false
	c.menu.open = false
}
