package comicbubble

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"golang.org/x/image/draw"
)

func newCanvas(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func opaqueStyle(fill color.NRGBA) Style {
	s := DefaultStyle()
	s.Fill = fill
	s.Width = 160
	s.Height = 80
	s.Padding = 10
	s.Radius = 10
	s.Margin = 5
	return s
}

func closeTo(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v <= tol && v >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestRenderCenterIsFillColor(t *testing.T) {
	tests := []struct {
		name   string
		canvas color.Color
		fill   color.NRGBA
		want   color.RGBA
	}{
		{"opaque fill", color.RGBA{0, 0, 255, 255}, color.NRGBA{200, 30, 30, 255}, color.RGBA{200, 30, 30, 255}},
		{"translucent white over black", color.Black, color.NRGBA{255, 255, 255, 230}, color.RGBA{230, 230, 230, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := opaqueStyle(tt.fill)
			canvas := newCanvas(400, 300, tt.canvas)
			b := BubbleSpec{Anchor: Anchor{0.2, 0.5}, Side: SideLeft, Style: &style}

			out, err := New(WithFont(testFont(t))).Render(canvas, b)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			rect, _, _ := BuildGeometry(b.Anchor, b.Side, image.Pt(400, 300), style)
			c := rect.Center()
			if got := out.RGBAAt(c.X, c.Y); !closeTo(got, tt.want, 2) {
				t.Errorf("center %v = %v, want %v", c, got, tt.want)
			}
		})
	}
}

func TestRenderLeavesInputAlone(t *testing.T) {
	canvas := newCanvas(400, 300, color.White)
	before := append([]uint8(nil), canvas.Pix...)

	out, err := New(WithFont(testFont(t))).Render(canvas, BubbleSpec{Text: "hi", Anchor: Anchor{0.3, 0.25}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(canvas.Pix, before) {
		t.Error("Render() modified its input canvas")
	}
	if bytes.Equal(out.Pix, before) {
		t.Error("Render() output has no bubble")
	}
}

func TestRenderKeepsDimensions(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(10, 20, 410, 320))
	out, err := New().Render(canvas, BubbleSpec{Anchor: Anchor{0.5, 0.5}, Side: SideRight})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := out.Bounds(); got != image.Rect(0, 0, 400, 300) {
		t.Errorf("Bounds() = %v, want 400x300 at origin", got)
	}
}

func TestOverlayPreservesPixelsOutsideBubbles(t *testing.T) {
	style := opaqueStyle(color.NRGBA{255, 255, 255, 255})
	canvas := newCanvas(400, 300, color.RGBA{10, 120, 40, 255})
	bubbles := []BubbleSpec{
		{Anchor: Anchor{0.1, 0.2}, Side: SideLeft, Style: &style},
		{Anchor: Anchor{0.9, 0.8}, Side: SideRight, Style: &style},
	}

	out, err := New().Overlay(canvas, bubbles...)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}

	var touched []image.Rectangle
	for _, b := range bubbles {
		rect, tail, _ := BuildGeometry(b.Anchor, b.Side, image.Pt(400, 300), style)
		touched = append(touched, footprint(rect, tail, style.OutlineWidth))
	}

	changed := 0
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			p := image.Pt(x, y)
			if p.In(touched[0]) || p.In(touched[1]) {
				if out.RGBAAt(x, y) != canvas.RGBAAt(x, y) {
					changed++
				}
				continue
			}
			if out.RGBAAt(x, y) != canvas.RGBAAt(x, y) {
				t.Fatalf("pixel %v outside both bubbles changed: %v -> %v", p, canvas.RGBAAt(x, y), out.RGBAAt(x, y))
			}
		}
	}
	if changed == 0 {
		t.Error("no pixels changed inside the bubbles")
	}
}

func TestOverlayLaterBubbleWins(t *testing.T) {
	red := opaqueStyle(color.NRGBA{220, 0, 0, 255})
	green := opaqueStyle(color.NRGBA{0, 200, 0, 255})
	canvas := newCanvas(400, 300, color.White)

	a := BubbleSpec{Anchor: Anchor{0.3, 0.5}, Side: SideLeft, Style: &red}
	b := BubbleSpec{Anchor: Anchor{0.35, 0.5}, Side: SideLeft, Style: &green}

	r := New()
	both, err := r.Overlay(canvas, a, b)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	alone, err := r.Render(canvas, b)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// (230,150) lies inside both interiors.
	if got, want := both.RGBAAt(230, 150), alone.RGBAAt(230, 150); got != want {
		t.Errorf("overlap pixel = %v, want the later bubble's %v", got, want)
	}
	if got := both.RGBAAt(230, 150); !closeTo(got, color.RGBA{0, 200, 0, 255}, 2) {
		t.Errorf("overlap pixel = %v, want green", got)
	}

	reversed, err := r.Overlay(canvas, b, a)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if got := reversed.RGBAAt(230, 150); !closeTo(got, color.RGBA{220, 0, 0, 255}, 2) {
		t.Errorf("reversed overlap pixel = %v, want red", got)
	}
}

func TestRenderDrawsText(t *testing.T) {
	style := opaqueStyle(color.NRGBA{255, 255, 255, 255})
	canvas := newCanvas(400, 300, color.White)
	b := BubbleSpec{Text: "HELLO", Anchor: Anchor{0.2, 0.5}, Side: SideLeft, Style: &style}

	out, err := New(WithFont(testFont(t))).Render(canvas, b)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	rect, _, _ := BuildGeometry(b.Anchor, b.Side, image.Pt(400, 300), style)
	interior := style.Interior(rect).Rectangle()
	dark := 0
	for y := interior.Min.Y; y < interior.Max.Y; y++ {
		for x := interior.Min.X; x < interior.Max.X; x++ {
			if out.RGBAAt(x, y).R < 100 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("no text pixels found in the bubble interior")
	}
}

func TestRenderFontUnavailable(t *testing.T) {
	r := New(WithFontPath(filepath.Join(t.TempDir(), "missing.ttf")))
	canvas := newCanvas(400, 300, color.White)

	_, err := r.Render(canvas, BubbleSpec{Text: "hi", Anchor: Anchor{0.5, 0.5}})
	if !errors.Is(err, ErrFontUnavailable) {
		t.Errorf("Render() with text error = %v, want ErrFontUnavailable", err)
	}

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := r.Render(canvas, BubbleSpec{Text: text, Anchor: Anchor{0.5, 0.5}}); err != nil {
			t.Errorf("Render(%q) without a font error = %v, want nil", text, err)
		}
	}
}

func TestRenderInvalidAnchor(t *testing.T) {
	_, err := New().Render(newCanvas(10, 10, color.White), BubbleSpec{Anchor: Anchor{2, 0}})
	if !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("Render() error = %v, want ErrInvalidSpec", err)
	}
}

func TestParseFontRejectsGarbage(t *testing.T) {
	if _, err := ParseFont([]byte("not a font")); !errors.Is(err, ErrFontUnavailable) {
		t.Errorf("ParseFont() error = %v, want ErrFontUnavailable", err)
	}
	if _, err := LoadFont(filepath.Join(t.TempDir(), "nope.ttf")); !errors.Is(err, ErrFontUnavailable) {
		t.Errorf("LoadFont() error = %v, want ErrFontUnavailable", err)
	}
}
