package comicbubble

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/exp/slices"
)

// A Side says which speaker a bubble belongs to.
// A left speaker's bubble sits to the right of its anchor and points left.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

var sideNames = []string{"left", "right"}

func (s Side) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// ParseSide converts "left" or "right" (any case) into a Side.
func ParseSide(name string) (Side, error) {
	i := slices.Index(sideNames, strings.ToLower(strings.TrimSpace(name)))
	if i < 0 {
		return 0, fmt.Errorf("%w: unknown side %q", ErrInvalidSpec, name)
	}
	return Side(i), nil
}

// An Anchor is a point in fractional image coordinates, (0,0) top-left and (1,1) bottom-right.
type Anchor struct {
	X, Y float64
}

// Validate reports an error when either fraction lies outside [0,1].
func (a Anchor) Validate() error {
	if !inUnit(a.X) || !inUnit(a.Y) {
		return fmt.Errorf("%w: anchor (%g, %g) outside [0,1]", ErrInvalidSpec, a.X, a.Y)
	}
	return nil
}

// Resolve converts the anchor to a pixel point on a canvas of the given size.
func (a Anchor) Resolve(size image.Point) image.Point {
	return image.Pt(int(a.X*float64(size.X)), int(a.Y*float64(size.Y)))
}

func inUnit(f float64) bool {
	return f >= 0 && f <= 1
}

// Rect is an axis aligned rectangle in pixel space.
type Rect struct {
	X, Y, Width, Height int
}

// Inset returns the rectangle shrunk by the given amount on each edge.
func (r Rect) Inset(left, right, top, bottom int) Rect {
	return Rect{r.X + left, r.Y + top, r.Width - left - right, r.Height - top - bottom}
}

func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func (r Rect) Center() image.Point {
	return image.Pt(r.X+r.Width/2, r.Y+r.Height/2)
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p image.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Tail is the triangle joining a bubble edge to its anchor.
// BaseStart and BaseEnd lie on the bubble edge, Apex is the anchor.
type Tail struct {
	BaseStart, BaseEnd, Apex image.Point
}

// Points returns the triangle in drawing order.
func (t Tail) Points() [3]image.Point {
	return [3]image.Point{t.BaseStart, t.Apex, t.BaseEnd}
}

// BuildGeometry places a bubble next to the anchor and builds the tail pointing at it.
//
// The bubble is shifted, never resized, to stay on the canvas. When the canvas is
// smaller than the bubble it is pinned to the origin and overhangs the far edges.
func BuildGeometry(anchor Anchor, side Side, canvas image.Point, style Style) (Rect, Tail, error) {
	if canvas.X <= 0 || canvas.Y <= 0 {
		return Rect{}, Tail{}, fmt.Errorf("%w: canvas %dx%d must be positive", ErrInvalidSpec, canvas.X, canvas.Y)
	}
	if err := anchor.Validate(); err != nil {
		return Rect{}, Tail{}, err
	}
	if side != SideLeft && side != SideRight {
		return Rect{}, Tail{}, fmt.Errorf("%w: %v", ErrInvalidSpec, side)
	}
	if err := style.Validate(); err != nil {
		return Rect{}, Tail{}, err
	}

	p := anchor.Resolve(canvas)

	x := p.X + style.TailLength
	if side == SideRight {
		x = p.X - style.TailLength - style.Width
	}
	y := p.Y - style.Height/2

	rect := Rect{
		X:      shiftOnto(x, style.Width, canvas.X, style.Margin),
		Y:      shiftOnto(y, style.Height, canvas.Y, style.Margin),
		Width:  style.Width,
		Height: style.Height,
	}

	edge := tailEdge(p.X, rect, side)

	half := int(math.Round(style.TailWidthRatio*float64(style.Height))) / 2
	inset := int(math.Ceil(style.Radius))
	lo := rect.Y + inset + half
	hi := rect.Y + rect.Height - inset - half
	cy := rect.Y + rect.Height/2
	if lo <= hi {
		cy = clamp(p.Y, lo, hi)
	}

	tail := Tail{
		BaseStart: image.Pt(edge, cy-half),
		BaseEnd:   image.Pt(edge, cy+half),
		Apex:      p,
	}
	return rect, tail, nil
}

// tailEdge picks the vertical edge of rect facing x. When x lies within the
// rect's span the speaker's side decides.
func tailEdge(x int, rect Rect, side Side) int {
	switch right := rect.X + rect.Width; {
	case x <= rect.X:
		return rect.X
	case x >= right:
		return right
	case side == SideRight:
		return right
	default:
		return rect.X
	}
}

// shiftOnto moves a span of length n starting at pos so it lies within [0,size),
// keeping margin from both ends when there is room for it.
func shiftOnto(pos, n, size, margin int) int {
	if lo, hi := margin, size-n-margin; lo <= hi {
		return clamp(pos, lo, hi)
	}
	if hi := size - n; hi >= 0 {
		return clamp(pos, 0, hi)
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
