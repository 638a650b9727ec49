package comicbubble

import (
	"fmt"
	"image/color"
)

// Style controls how a bubble is sized and painted.
type Style struct {
	Fill    color.NRGBA
	Outline color.NRGBA
	Text    color.NRGBA

	// OutlineWidth is the visible outline thickness in pixels. Zero disables the outline.
	OutlineWidth float64
	// Padding insets the text interior from the bubble edge on all sides.
	Padding int
	// Radius is the corner radius of the bubble body.
	Radius float64
	// TailLength is the distance between the anchor and the bubble edge.
	TailLength int
	// TailWidthRatio sets the tail base width as a fraction of the bubble height.
	TailWidthRatio float64

	// Width and Height are the fixed bubble size.
	Width  int
	Height int
	// Margin is kept between the bubble and the canvas edge when there is room.
	Margin int

	MaxFontSize int
	MinFontSize int
	LineSpacing int
}

// DefaultStyle returns a white, slightly translucent bubble with a dark outline.
func DefaultStyle() Style {
	return Style{
		Fill:           color.NRGBA{255, 255, 255, 230},
		Outline:        color.NRGBA{60, 60, 60, 255},
		Text:           color.NRGBA{30, 30, 30, 255},
		OutlineWidth:   2,
		Padding:        20,
		Radius:         18,
		TailLength:     15,
		TailWidthRatio: 0.25,
		Width:          320,
		Height:         140,
		Margin:         25,
		MaxFontSize:    42,
		MinFontSize:    10,
		LineSpacing:    4,
	}
}

// Interior returns the text box of a bubble rectangle.
func (s Style) Interior(r Rect) Rect {
	return r.Inset(s.Padding, s.Padding, s.Padding, s.Padding)
}

// Validate reports whether the style describes a drawable bubble.
func (s Style) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: bubble size %dx%d must be positive", ErrInvalidSpec, s.Width, s.Height)
	case s.Padding < 0 || s.Padding*2 >= s.Width || s.Padding*2 >= s.Height:
		return fmt.Errorf("%w: padding %d leaves no interior in a %dx%d bubble", ErrInvalidSpec, s.Padding, s.Width, s.Height)
	case s.TailLength < 0:
		return fmt.Errorf("%w: tail length %d is negative", ErrInvalidSpec, s.TailLength)
	case s.TailWidthRatio < 0 || s.TailWidthRatio > 1:
		return fmt.Errorf("%w: tail width ratio %g outside [0,1]", ErrInvalidSpec, s.TailWidthRatio)
	case s.OutlineWidth < 0 || s.Radius < 0 || s.Margin < 0 || s.LineSpacing < 0:
		return fmt.Errorf("%w: negative outline, radius, margin or line spacing", ErrInvalidSpec)
	case s.MinFontSize < 1 || s.MaxFontSize < s.MinFontSize:
		return fmt.Errorf("%w: font sizes %d..%d", ErrInvalidSpec, s.MinFontSize, s.MaxFontSize)
	}
	return nil
}
