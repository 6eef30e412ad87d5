// Package lectern is a presentation viewport engine for [Ebitengine].
//
// Lectern displays a deck of pre-rendered slide pages inside a fixed-aspect
// viewport and overlays time-based media elements whose placement is defined
// in the coordinate space of the original page. Overlays stay pixel-aligned
// across window resizes, fullscreen transitions, and slide changes.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	deck, err := lectern.LoadDeck("./out", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	lectern.Run(deck, lectern.RunConfig{
//		Title: "My Talk", Width: 1280, Height: 720,
//	})
//
// For full control, build a [Controller] around your own [Host] slideshow
// implementation and drive it from an [ebiten.Game] loop, forwarding input
// events and calling [Controller.Update] each frame.
//
// # Coordinate spaces
//
// Slide pages live in page-point space: origin at the page's bottom-left
// corner, units in typographic points, Y increasing upward. The viewport is
// ordinary pixel space with the origin top-left and Y increasing downward.
// [Project] maps page-space rectangles into viewport pixels under a
// fit-inside, preserve-aspect-ratio policy; it is the single source of truth
// for overlay placement.
//
// # Concurrency model
//
// Lectern is single-threaded and cooperative. All controller state is
// mutated from the game loop only; coordination uses mutual-exclusion flags
// and cancel-and-reschedule timers, never locks. At most one layout
// recomputation is in flight at a time; a trigger arriving during an
// in-flight pass is dropped, and the next real event re-triggers it.
//
// [Ebitengine]: https://ebitengine.org
package lectern
