package monocam

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/monocam/monocam/imop"
	"github.com/monocam/monocam/utils"
)

// ResizeToFace resizes the avatar to the dimension of the detected face.
// The image is returned unchanged when the size is not positive.
func ResizeToFace(img image.Image, w, h int) *image.NRGBA {
	if img == nil {
		return nil
	}
	if w <= 0 || h <= 0 {
		return imgToNRGBA(img)
	}
	return imaging.Resize(img, w, h, areaFilter(img.Bounds(), w, h))
}

// FitToCanvas scales the image by preserving its aspect ratio and centers it
// on a canvas of the given size filled with the background color.
// A nil image results in an empty canvas.
func FitToCanvas(img image.Image, w, h int, bg color.Color) *image.NRGBA {
	canvas := imaging.New(w, h, bg)
	if img == nil || img.Bounds().Empty() {
		return canvas
	}

	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	scale := utils.Min(float64(w)/float64(iw), float64(h)/float64(ih))
	nw := utils.Max(1, int(float64(iw)*scale))
	nh := utils.Max(1, int(float64(ih)*scale))

	resized := imaging.Resize(img, nw, nh, areaFilter(img.Bounds(), nw, nh))

	op := imop.InitOp()
	op.Draw(canvas, resized, image.Pt((w-nw)/2, (h-nh)/2))

	return canvas
}

// areaFilter picks the box filter for shrinking, which averages the covered
// pixels like an area interpolation does, and a linear filter for enlarging.
func areaFilter(b image.Rectangle, w, h int) imaging.ResampleFilter {
	if w <= b.Dx() && h <= b.Dy() {
		return imaging.Box
	}
	return imaging.Linear
}
