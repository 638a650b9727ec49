package comicbubble

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Upscale enlarges img by an integer factor between 2 and 4 using Catmull-Rom resampling.
func Upscale(img image.Image, factor int) (*image.RGBA, error) {
	if factor < 2 || factor > 4 {
		return nil, fmt.Errorf("%w: scale %d not in 2..4", ErrInvalidSpec, factor)
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))

	s := float64(factor)
	tr := f64.Aff3{
		s, 0, -s * float64(b.Min.X),
		0, s, -s * float64(b.Min.Y),
	}
	draw.CatmullRom.Transform(dst, tr, img, b, draw.Src, nil)
	return dst, nil
}
