package lectern

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// Manifest and page file names as written by the preparation pipeline.
const (
	manifestName = "video_metadata.json"
	svgDirName   = "slides_svg"
	svgExt       = ".svg"
)

// SlideDescriptor describes one slide. Immutable once the deck is built; one
// per slide, ordered, Index matches position.
type SlideDescriptor struct {
	Index int
	Page  PageSize // points
}

// MediaOverlayDescriptor describes one media overlay in page-point space.
type MediaOverlayDescriptor struct {
	OwnerSlideIndex int
	Rect            PageRect
	Autoplay        bool
	Source          string // media file path, relative to the deck directory
	MIME            string // detected content type, "" if unknown
}

// Validate checks the descriptor's rectangle. Violations reject the overlay
// (it is skipped), they never crash the deck build.
func (d MediaOverlayDescriptor) Validate() error {
	if !d.Rect.Valid() {
		return fmt.Errorf("%w: overlay rect (%g,%g)-(%g,%g) on slide %d",
			ErrInvalidGeometry, d.Rect.Llx, d.Rect.Lly, d.Rect.Urx, d.Rect.Ury, d.OwnerSlideIndex)
	}
	return nil
}

// Slide is one page of the deck: its descriptor, its background, and the
// element subtree the layout pass mutates.
type Slide struct {
	SlideDescriptor

	Background *Background
	Element    *Element // slide container; media elements are its children

	backgroundEl *Element
	overlays     []*Element
}

// BackgroundElement returns the sprite the background raster is drawn into.
func (s *Slide) BackgroundElement() *Element {
	return s.backgroundEl
}

// Overlays returns the slide's media elements in declaration order.
// The returned slice MUST NOT be mutated by the caller.
func (s *Slide) Overlays() []*Element {
	return s.overlays
}

// AddOverlay validates desc and, if valid, creates a media element under the
// slide container. Invalid descriptors are rejected with an error and add
// nothing; sibling overlays are unaffected.
func (s *Slide) AddOverlay(desc MediaOverlayDescriptor, player Player) (*Element, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	el := NewMedia(fmt.Sprintf("media-%d-%d", s.Index, len(s.overlays)), player)
	el.SlideIndex = s.Index
	el.PageRect = desc.Rect
	el.Autoplay = desc.Autoplay
	s.Element.AddChild(el)
	s.overlays = append(s.overlays, el)
	return el, nil
}

// Deck is the ordered slide list consumed from the preparation pipeline.
type Deck struct {
	slides []*Slide
	dir    string
	log    *zap.Logger
}

// NewDeck creates an empty deck. A nil logger disables diagnostics.
func NewDeck(log *zap.Logger) *Deck {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deck{log: log}
}

// Dir returns the deck's source directory, or "" for an in-memory deck.
func (d *Deck) Dir() string {
	return d.dir
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// Slide returns the slide at index, or nil if out of range.
func (d *Deck) Slide(index int) *Slide {
	if index < 0 || index >= len(d.slides) {
		return nil
	}
	return d.slides[index]
}

// Slides returns the ordered slide list.
// The returned slice MUST NOT be mutated by the caller.
func (d *Deck) Slides() []*Slide {
	return d.slides
}

// AddSlide appends a slide with the given page size and background. Pages
// with non-positive or non-finite dimensions fall back to FallbackPageSize.
func (d *Deck) AddSlide(page PageSize, bg *Background) *Slide {
	if !positiveFinite(page.Width) || !positiveFinite(page.Height) {
		d.log.Warn("invalid page dimensions, using fallback",
			zap.Int("slide", len(d.slides)),
			zap.Float64("width_pt", page.Width),
			zap.Float64("height_pt", page.Height))
		page = FallbackPageSize
	}
	s := &Slide{
		SlideDescriptor: SlideDescriptor{Index: len(d.slides), Page: page},
		Background:      bg,
		Element:         NewContainer(fmt.Sprintf("slide-%d", len(d.slides))),
	}
	s.Element.SlideIndex = s.Index
	s.Element.Page = page
	// Background sprite first, so later-added media overlays draw above it.
	s.backgroundEl = NewSprite("background", nil)
	s.Element.AddChild(s.backgroundEl)
	d.slides = append(d.slides, s)
	return s
}

// --- Manifest loading ---

// manifestEntry mirrors one record of the pipeline's metadata file. A record
// either describes a page, a media item on a page, or both.
type manifestEntry struct {
	PageIndex      *int          `json:"pageIndex"`
	PageDimensions *manifestDims `json:"pageDimensions"`

	HasVideo            bool          `json:"hasVideo"`
	OutputPath          string        `json:"outputPath"`
	ContentTypeDetected string        `json:"contentTypeDetected"`
	PdfRect             *manifestRect `json:"pdfRect"`
	Autoplay            *bool         `json:"autoplay"` // pipeline default is autoplay on
}

type manifestDims struct {
	WidthPt  float64 `json:"width_pt"`
	HeightPt float64 `json:"height_pt"`
}

type manifestRect struct {
	Llx float64 `json:"llx"`
	Lly float64 `json:"lly"`
	Urx float64 `json:"urx"`
	Ury float64 `json:"ury"`
}

// LoadDeck builds a deck from a preparation-pipeline output directory:
// rendered pages under slides_svg/ and an optional video_metadata.json with
// page dimensions and media overlay rectangles.
//
// Malformed records follow the skip-and-log policy: a diagnostic is emitted
// and the affected overlay is dropped; deck loading never fails because of a
// single bad descriptor. Only an unreadable directory or a deck with zero
// pages is an error.
func LoadDeck(dir string, log *zap.Logger) (*Deck, error) {
	d := NewDeck(log)
	d.dir = dir

	pages, err := discoverPages(filepath.Join(dir, svgDirName))
	if err != nil {
		return nil, fmt.Errorf("discover pages in %s: %w", dir, err)
	}

	entries := loadManifest(filepath.Join(dir, manifestName), d.log)

	// Page count: every rendered page gets a slide, even without metadata.
	count := len(pages)
	for _, e := range entries {
		if e.PageIndex != nil && *e.PageIndex >= count {
			count = *e.PageIndex + 1
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("load deck %s: no pages found", dir)
	}

	dims := make([]PageSize, count)
	for _, e := range entries {
		if e.PageIndex == nil || *e.PageIndex < 0 || *e.PageIndex >= count {
			continue
		}
		i := *e.PageIndex
		if dims[i] == (PageSize{}) && e.PageDimensions != nil {
			dims[i] = PageSize{Width: e.PageDimensions.WidthPt, Height: e.PageDimensions.HeightPt}
		}
	}

	for i := 0; i < count; i++ {
		var bg *Background
		if i < len(pages) {
			bg = NewBackground(pages[i])
		} else {
			d.log.Warn("no rendered page for slide", zap.Int("slide", i))
		}
		page := dims[i]
		if !positiveFinite(page.Width) || !positiveFinite(page.Height) {
			// MissingData recovery: read the page size off the SVG itself.
			if bg != nil {
				page = svgPageSize(bg.Path(), d.log)
			}
		}
		d.AddSlide(page, bg)
	}

	for _, e := range entries {
		if !e.HasVideo {
			continue
		}
		if e.PageIndex == nil || e.OutputPath == "" || e.PdfRect == nil {
			d.log.Warn("media record missing required fields, overlay skipped",
				zap.String("output", e.OutputPath))
			continue
		}
		slide := d.Slide(*e.PageIndex)
		if slide == nil {
			d.log.Warn("media record references unknown slide, overlay skipped",
				zap.Int("slide", *e.PageIndex))
			continue
		}
		desc := MediaOverlayDescriptor{
			OwnerSlideIndex: *e.PageIndex,
			Rect:            PageRect{Llx: e.PdfRect.Llx, Lly: e.PdfRect.Lly, Urx: e.PdfRect.Urx, Ury: e.PdfRect.Ury},
			Autoplay:        e.Autoplay == nil || *e.Autoplay,
			Source:          e.OutputPath,
			MIME:            e.ContentTypeDetected,
		}
		if desc.MIME == "" {
			desc.MIME = SniffMIME(filepath.Join(dir, desc.Source))
		}
		if _, err := slide.AddOverlay(desc, nil); err != nil {
			d.log.Warn("overlay rejected", zap.Error(err))
		}
	}

	return d, nil
}

// discoverPages lists the rendered page SVGs in natural order, so page_2
// sorts before page_10. A missing directory yields an empty list, not an
// error; the manifest may still define pages.
func discoverPages(svgDir string) ([]string, error) {
	entries, err := os.ReadDir(svgDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pages []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), svgExt) {
			continue
		}
		pages = append(pages, filepath.Join(svgDir, e.Name()))
	}
	sort.Sort(natural.StringSlice(pages))
	return pages, nil
}

// loadManifest reads the pipeline metadata file. The manifest is optional; a
// missing or unparsable file degrades to an empty entry list with a warning.
func loadManifest(path string, log *zap.Logger) []manifestEntry {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		log.Warn("cannot read manifest", zap.String("path", path), zap.Error(err))
		return nil
	}
	var entries []manifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn("cannot parse manifest", zap.String("path", path), zap.Error(err))
		return nil
	}
	return entries
}

// svgPageSize reads the page dimensions off an SVG's width/height attributes,
// falling back to its viewBox, falling back to FallbackPageSize.
func svgPageSize(path string, log *zap.Logger) PageSize {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		log.Warn("cannot read svg for page size", zap.String("path", path), zap.Error(err))
		return FallbackPageSize
	}
	root := doc.Root()
	if root == nil {
		return FallbackPageSize
	}
	w := svgLength(root.SelectAttrValue("width", ""))
	h := svgLength(root.SelectAttrValue("height", ""))
	if w > 0 && h > 0 {
		return PageSize{Width: w, Height: h}
	}
	if vb := root.SelectAttrValue("viewBox", ""); vb != "" {
		parts := strings.Fields(vb)
		if len(parts) == 4 {
			vw, errW := strconv.ParseFloat(parts[2], 64)
			vh, errH := strconv.ParseFloat(parts[3], 64)
			if errW == nil && errH == nil && vw > 0 && vh > 0 {
				return PageSize{Width: vw, Height: vh}
			}
		}
	}
	log.Warn("svg has no usable page size, using fallback", zap.String("path", path))
	return FallbackPageSize
}

// svgLength parses an SVG length attribute, tolerating a unit suffix.
func svgLength(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSuffix(s, "pt")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
