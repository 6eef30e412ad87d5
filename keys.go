package lectern

// Key identifies a keyboard command key, independent of the windowing
// backend. The viewer translates ebiten key codes into these.
type Key uint8

const (
	KeyNone Key = iota
	KeyArrowRight
	KeyArrowLeft
	KeyPageDown
	KeyPageUp
	KeySpace
	KeyHome
	KeyEnd
	KeyF
	KeyM
	KeyEscape
	KeyEnter
)

// KeyEvent is one key press with its modifier state.
type KeyEvent struct {
	Key   Key
	Shift bool
}

// HandleKey dispatches the keyboard command table:
//
//	next slide      arrow-right, page-down, space (without shift)
//	previous slide  arrow-left, page-up
//	first slide     home
//	last slide      end
//	fullscreen      f
//	toggle menu     m
//	close menu      escape (only while the menu is open)
//
// Commands are suppressed while focus is on a text-entry control. While the
// menu is open, navigation commands are suppressed too, but the menu-toggle
// keys bypass that rule; Enter/Space on a focused trigger activate it.
func (c *Controller) HandleKey(ev KeyEvent) {
	if c.focused != nil && c.focused.TextEntry {
		return
	}

	switch ev.Key {
	case KeyM:
		c.ToggleMenu()
		return
	case KeyEscape:
		if c.menu.open {
			c.hideMenu()
		}
		return
	}

	// Keyboard activation of a focused trigger (number chip, menu cell).
	if c.focused != nil && c.isTrigger(c.focused) &&
		(ev.Key == KeyEnter || (ev.Key == KeySpace && !ev.Shift)) {
		c.activateTrigger(c.focused)
		return
	}

	if c.menu.open {
		return
	}

	switch ev.Key {
	case KeyArrowRight, KeyPageDown:
		c.next()
	case KeySpace:
		if !ev.Shift {
			c.next()
		}
	case KeyArrowLeft, KeyPageUp:
		c.previous()
	case KeyHome:
		c.goTo(0)
	case KeyEnd:
		if c.hostAvailable() {
			c.host.GoTo(c.host.Count() - 1)
		}
	case KeyF:
		c.ToggleFullscreen()
	}
}

func (c *Controller) next() {
	if c.hostAvailable() {
		c.host.Next()
	}
}

func (c *Controller) previous() {
	if c.hostAvailable() {
		c.host.Previous()
	}
}

func (c *Controller) goTo(index int) {
	if c.hostAvailable() {
		c.host.GoTo(index)
	}
}

func (c *Controller) isTrigger(el *Element) bool {
	for _, t := range c.triggers {
		if t == el {
			return true
		}
	}
	return false
}
