package comicbubble

import (
	"fmt"
	"image"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
)

// BubbleSpec describes one bubble to overlay.
type BubbleSpec struct {
	Text   string
	Anchor Anchor
	Side   Side
	// Style overrides the renderer's style when set.
	Style *Style
}

// Renderer overlays speech bubbles onto images.
//
// The font is loaded on first use and shared afterwards. A Renderer may be used
// from several goroutines as long as each works on its own canvas.
type Renderer struct {
	fontPath string
	style    Style
	logger   *log.Logger

	once    sync.Once
	font    *truetype.Font
	fontErr error
}

// An Option configures a Renderer.
type Option func(*Renderer)

// WithFontPath sets the TrueType file used for bubble text.
func WithFontPath(path string) Option {
	return func(r *Renderer) { r.fontPath = path }
}

// WithFont uses an already parsed font instead of loading one from disk.
func WithFont(f *truetype.Font) Option {
	return func(r *Renderer) {
		r.once.Do(func() { r.font = f })
	}
}

// WithStyle sets the style for bubbles that carry none of their own.
func WithStyle(s Style) Option {
	return func(r *Renderer) { r.style = s }
}

// WithLogger sets the logger used to report text that does not fit.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// New creates a Renderer using DefaultFontPath and DefaultStyle unless overridden.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		fontPath: DefaultFontPath,
		style:    DefaultStyle(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Style returns the renderer's default bubble style.
func (r *Renderer) Style() Style {
	return r.style
}

func (r *Renderer) loadFont() (*truetype.Font, error) {
	r.once.Do(func() {
		r.font, r.fontErr = LoadFont(r.fontPath)
	})
	if r.font == nil && r.fontErr == nil {
		return nil, fmt.Errorf("%w: no font set", ErrFontUnavailable)
	}
	return r.font, r.fontErr
}

// Render draws a single bubble and returns the result as a new image.
// canvas is left untouched.
func (r *Renderer) Render(canvas image.Image, b BubbleSpec) (*image.RGBA, error) {
	return r.Overlay(canvas, b)
}

// Overlay draws bubbles in order, each on top of the previous ones, and returns
// the result as a new image with the same dimensions as canvas.
// canvas is left untouched.
func (r *Renderer) Overlay(canvas image.Image, bubbles ...BubbleSpec) (*image.RGBA, error) {
	dst := toRGBA(canvas)
	for _, b := range bubbles {
		if err := r.draw(dst, b); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (r *Renderer) draw(dst *image.RGBA, b BubbleSpec) error {
	style := r.style
	if b.Style != nil {
		style = *b.Style
	}

	rect, tail, err := BuildGeometry(b.Anchor, b.Side, dst.Bounds().Size(), style)
	if err != nil {
		return err
	}

	var f *truetype.Font
	layout := TextLayout{Size: style.MaxFontSize, Spacing: style.LineSpacing}
	if strings.TrimSpace(b.Text) != "" {
		if f, err = r.loadFont(); err != nil {
			return err
		}
		layout = Fit(f, b.Text, style.Interior(rect), style)
		if layout.Overflow {
			r.logger.Warn("text overflows bubble", "text", b.Text, "size", layout.Size, "lines", len(layout.Lines))
		}
	}
	r.logger.Debug("bubble", "side", b.Side, "rect", rect.Rectangle(), "apex", tail.Apex, "size", layout.Size)

	return Composite(dst, rect, tail, layout, f, style)
}

// toRGBA copies img into a new RGBA image anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
