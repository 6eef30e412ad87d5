package lectern

import (
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
	"github.com/hajimehoshi/ebiten/v2"
)

// ErrPlaybackBlocked is returned by a Player whose platform denied an
// automatic playback start (for example, an audio output that requires a
// user gesture). It is expected, not an error: callers swallow it silently.
var ErrPlaybackBlocked = errors.New("lectern: playback blocked by platform")

// Player is the playback surface of a media overlay. Implementations are
// single-threaded and driven from the game loop via Update.
type Player interface {
	// Play starts or resumes playback. Returns ErrPlaybackBlocked when the
	// platform denies an automatic start.
	Play() error
	// Pause halts playback, keeping the current position.
	Pause()
	// Rewind resets the playback position to zero without starting playback.
	Rewind()
	// Playing reports whether the player is currently advancing.
	Playing() bool
	// Update advances playback by dt seconds. No-op while paused.
	Update(dt float64)
	// Frame returns the image to display for the current position, or nil.
	Frame() *ebiten.Image
}

// FramePlayer plays a pre-decoded image sequence at a fixed frame rate,
// looping. It is the built-in Player for media the preparation pipeline
// delivers as frame sequences.
type FramePlayer struct {
	frames  []*ebiten.Image
	fps     float64
	pos     float64 // seconds
	playing bool
}

// NewFramePlayer creates a looping frame-sequence player. fps values <= 0
// default to 25.
func NewFramePlayer(frames []*ebiten.Image, fps float64) *FramePlayer {
	if fps <= 0 {
		fps = 25
	}
	return &FramePlayer{frames: frames, fps: fps}
}

// Play implements Player. A FramePlayer has no platform gate and never
// reports ErrPlaybackBlocked.
func (p *FramePlayer) Play() error {
	p.playing = true
	return nil
}

// Pause implements Player.
func (p *FramePlayer) Pause() {
	p.playing = false
}

// Rewind implements Player.
func (p *FramePlayer) Rewind() {
	p.pos = 0
}

// Playing implements Player.
func (p *FramePlayer) Playing() bool {
	return p.playing
}

// Update implements Player.
func (p *FramePlayer) Update(dt float64) {
	if !p.playing || len(p.frames) == 0 {
		return
	}
	p.pos += dt
	loop := float64(len(p.frames)) / p.fps
	for p.pos >= loop {
		p.pos -= loop
	}
}

// Frame implements Player.
func (p *FramePlayer) Frame() *ebiten.Image {
	if len(p.frames) == 0 {
		return nil
	}
	idx := int(p.pos * p.fps)
	if idx >= len(p.frames) {
		idx = len(p.frames) - 1
	}
	return p.frames[idx]
}

// sniffLen is how much of a file header filetype needs to classify it.
const sniffLen = 262

// SniffMIME detects a media file's MIME type from its header bytes, the same
// way the preparation pipeline records a detected content type. Returns "" if
// the file cannot be read or the type is unknown.
func SniffMIME(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && n == 0 {
		return ""
	}
	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}
