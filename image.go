package monocam

import (
	"image"

	"github.com/disintegration/imaging"
)

// imgToNRGBA returns the image as *image.NRGBA with min-point at (0, 0).
// Zero based NRGBA images are returned as they are, any other image,
// gray and paletted avatars included, is copied.
func imgToNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Rect.Min == (image.Point{}) {
		return src
	}
	return imaging.Clone(img)
}
