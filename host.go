package lectern

// Host is the external slideshow engine: it owns the slide strip, the active
// index, and the transition animation. The controller only calls into it and
// never reimplements transitions.
//
// A Host that is missing or reports Destroyed() makes every controller
// operation on it a logged no-op, never a crash.
type Host interface {
	// Next advances to the next slide, clamped at the last.
	Next()
	// Previous goes back one slide, clamped at the first.
	Previous()
	// GoTo jumps to the given slide index. Out-of-range indices are clamped.
	GoTo(index int)
	// ActiveIndex returns the index of the currently active slide.
	ActiveIndex() int
	// Count returns the number of slides.
	Count() int
	// Refresh forces the host to re-place its slides against the current
	// viewport geometry. Called after fullscreen transitions settle.
	Refresh()
	// Destroyed reports whether the host has been torn down. A destroyed
	// host must tolerate further calls as no-ops.
	Destroyed() bool
}
