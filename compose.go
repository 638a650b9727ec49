package comicbubble

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Composite paints one bubble onto dst in place.
//
// The bubble is drawn on a transparent layer cropped to its footprint and then
// composited over dst, so later calls land on top of earlier ones. Text that
// overflows the footprint is clipped.
func Composite(dst *image.RGBA, rect Rect, tail Tail, layout TextLayout, f *truetype.Font, style Style) error {
	crop := footprint(rect, tail, style.OutlineWidth).Intersect(dst.Bounds())
	if crop.Empty() {
		return nil
	}

	layer := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	origin := draw2d.NewTranslationMatrix(-float64(crop.Min.X), -float64(crop.Min.Y))
	body, arrow := bubblePaths(rect, tail, style.Radius)

	gc := newContext(layer, origin)
	if style.OutlineWidth > 0 {
		// Half of this stroke is covered by the fill below.
		gc.SetLineCap(draw2d.RoundCap)
		gc.SetLineJoin(draw2d.RoundJoin)
		gc.SetLineWidth(style.OutlineWidth * 2)
		gc.SetStrokeColor(style.Outline)
		gc.Stroke(body, arrow)
	}

	mask := image.NewRGBA(layer.Bounds())
	mc := newContext(mask, origin)
	mc.SetFillColor(color.Opaque)
	mc.Fill(body, arrow)
	paintThrough(layer, mask, style.Fill)

	if f != nil && len(layout.Lines) > 0 {
		if err := drawLines(gc, f, style.Interior(rect), layout, style.Text); err != nil {
			return err
		}
	}

	draw.Draw(dst, crop, layer, image.Point{}, draw.Over)
	return nil
}

func newContext(img *image.RGBA, tr draw2d.Matrix) *draw2dimg.GraphicContext {
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetDPI(72)
	gc.SetFillRule(draw2d.FillRuleWinding)
	gc.ComposeMatrixTransform(tr)
	return gc
}

// paintThrough replaces layer with c wherever mask is opaque and blends by
// coverage along the anti-aliased edge. layer and mask share bounds.
func paintThrough(layer, mask *image.RGBA, c color.Color) {
	r, g, b, a := c.RGBA()
	src := [4]uint32{r >> 8, g >> 8, b >> 8, a >> 8}
	for i := 0; i < len(layer.Pix); i += 4 {
		m := uint32(mask.Pix[i+3])
		if m == 0 {
			continue
		}
		for j, s := range src {
			d := uint32(layer.Pix[i+j])
			layer.Pix[i+j] = uint8((s*m + d*(255-m) + 127) / 255)
		}
	}
}

// footprint is the pixel area a bubble can touch, outline included.
func footprint(rect Rect, tail Tail, outlineWidth float64) image.Rectangle {
	r := rect.Rectangle()
	for _, p := range tail.Points() {
		r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
	}
	grow := int(math.Ceil(outlineWidth)) + 2
	return r.Inset(-grow)
}

func bubblePaths(rect Rect, tail Tail, radius float64) (body, arrow *draw2d.Path) {
	x, y := float64(rect.X), float64(rect.Y)
	w, h := float64(rect.Width), float64(rect.Height)
	radius = math.Min(radius, math.Min(w, h)/2)

	body = &draw2d.Path{}
	draw2dkit.RoundedRectangle(body, x, y, x+w, y+h, radius*2, radius*2)

	pts := tail.Points()
	arrow = &draw2d.Path{}
	arrow.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		arrow.LineTo(float64(p.X), float64(p.Y))
	}
	arrow.Close()
	return body, arrow
}

// drawLines centres each line in box and the whole block vertically.
func drawLines(gc *draw2dimg.GraphicContext, f *truetype.Font, box Rect, layout TextLayout, c color.Color) error {
	g := &glyphPath{font: f, scale: fixed.I(layout.Size)}
	text := &draw2d.Path{}

	top := box.Y + (box.Height-layout.Height())/2
	for i, line := range layout.Lines {
		x := box.X + (box.Width-layout.Widths[i])/2
		y := top + layout.Ascent + i*(layout.LineHeight+layout.Spacing)
		if err := g.appendString(text, line, float64(x), float64(y)); err != nil {
			return fmt.Errorf("drawing %q: %w", line, err)
		}
	}

	gc.SetFillColor(c)
	gc.Fill(text)
	return nil
}

// glyphPath turns strings into glyph outlines at a fixed scale.
type glyphPath struct {
	font  *truetype.Font
	scale fixed.Int26_6
	buf   truetype.GlyphBuf
}

func (g *glyphPath) appendString(path draw2d.PathBuilder, s string, x, y float64) error {
	prev, hasPrev := truetype.Index(0), false
	for _, r := range s {
		index := g.font.Index(r)
		if hasPrev {
			x += fUnitsToFloat64(g.font.Kern(g.scale, prev, index))
		}
		if err := g.buf.Load(g.font, g.scale, index, font.HintingNone); err != nil {
			return err
		}
		e0 := 0
		for _, e1 := range g.buf.Ends {
			draw2dimg.DrawContour(path, g.buf.Points[e0:e1], x, y)
			e0 = e1
		}
		x += fUnitsToFloat64(g.font.HMetric(g.scale, index).AdvanceWidth)
		prev, hasPrev = index, true
	}
	return nil
}

func fUnitsToFloat64(x fixed.Int26_6) float64 {
	scaled := x << 2
	return float64(scaled/256) + float64(scaled%256)/256.0
}
