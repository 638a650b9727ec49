package comicbubble

import (
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// TextLayout is the result of fitting text into a bubble interior.
type TextLayout struct {
	// Size is the chosen font size in pixels.
	Size  int
	Lines []string
	// Widths holds the measured advance of each line.
	Widths     []int
	LineHeight int
	Ascent     int
	Spacing    int
	// Overflow is set when even the minimum size does not fit the box.
	Overflow bool
}

// Height returns the height of the stacked lines.
func (l TextLayout) Height() int {
	n := len(l.Lines)
	if n == 0 {
		return 0
	}
	return n*l.LineHeight + (n-1)*l.Spacing
}

// Width returns the widest line.
func (l TextLayout) Width() int {
	w := 0
	for _, lw := range l.Widths {
		if lw > w {
			w = lw
		}
	}
	return w
}

// Fit picks the largest font size in [style.MinFontSize, style.MaxFontSize] at
// which the word-wrapped text fits box, searching the sizes with a binary search.
//
// Words are never broken. When nothing fits, the minimum size is used and the
// layout is marked as overflowing; wide words then spill out of the box.
func Fit(f *truetype.Font, text string, box Rect, style Style) TextLayout {
	if strings.TrimSpace(text) == "" || f == nil {
		return TextLayout{Size: style.MaxFontSize, Spacing: style.LineSpacing}
	}

	best := style.MinFontSize
	for low, high := style.MinFontSize, style.MaxFontSize; low <= high; {
		size := low + (high-low)/2
		if layoutAt(f, text, box.Width, size, style.LineSpacing).fits(box) {
			best = size
			low = size + 1
		} else {
			high = size - 1
		}
	}

	l := layoutAt(f, text, box.Width, best, style.LineSpacing)
	l.Overflow = !l.fits(box)
	return l
}

func (l TextLayout) fits(box Rect) bool {
	return l.Width() <= box.Width && l.Height() <= box.Height
}

// layoutAt wraps text for a single font size.
func layoutAt(f *truetype.Font, text string, wrapWidth, size, spacing int) TextLayout {
	face := truetype.NewFace(f, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	m := face.Metrics()
	l := TextLayout{
		Size:       size,
		Ascent:     m.Ascent.Ceil(),
		LineHeight: m.Ascent.Ceil() + m.Descent.Ceil(),
		Spacing:    spacing,
	}
	for _, paragraph := range strings.Split(strings.TrimSpace(text), "\n") {
		for _, line := range wrapLine(face, paragraph, wrapWidth) {
			l.Lines = append(l.Lines, line)
			l.Widths = append(l.Widths, measure(face, line))
		}
	}
	return l
}

// wrapLine greedily packs words into lines no wider than wrapWidth.
// A word that is wider on its own still gets a line to itself.
func wrapLine(face font.Face, paragraph string, wrapWidth int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if candidate := line + " " + word; measure(face, candidate) <= wrapWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}

func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
