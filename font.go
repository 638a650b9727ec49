package comicbubble

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
)

// DefaultFontPath is the bold sans-serif face bubbles are lettered with.
const DefaultFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"

// LoadFont reads and parses a TrueType font file.
func LoadFont(path string) (*truetype.Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	f, err := ParseFont(b)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return f, nil
}

// ParseFont parses TrueType font data.
func ParseFont(b []byte) (*truetype.Font, error) {
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	return f, nil
}
