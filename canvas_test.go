package monocam

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	black = color.NRGBA{A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

func uniform(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func TestCanvas_EmptyImage(t *testing.T) {
	canvas := FitToCanvas(nil, 40, 30, blue)

	assert.Equal(t, image.Rect(0, 0, 40, 30), canvas.Bounds())
	assert.Equal(t, blue, canvas.NRGBAAt(0, 0))
	assert.Equal(t, blue, canvas.NRGBAAt(39, 29))
}

func TestCanvas_ShrinkWideImage(t *testing.T) {
	// 200x100 fits into 400x400 as 400x200, centered vertically at y=100.
	canvas := FitToCanvas(uniform(800, 400, red), 400, 400, black)

	assert.Equal(t, image.Rect(0, 0, 400, 400), canvas.Bounds())
	assert.Equal(t, black, canvas.NRGBAAt(200, 50))
	assert.Equal(t, red, canvas.NRGBAAt(200, 100))
	assert.Equal(t, red, canvas.NRGBAAt(200, 299))
	assert.Equal(t, black, canvas.NRGBAAt(200, 300))
}

func TestCanvas_EnlargeTallImage(t *testing.T) {
	// 10x20 is scaled by 20 to 200x400 and centered horizontally at x=100.
	canvas := FitToCanvas(uniform(10, 20, red), 400, 400, black)

	assert.Equal(t, black, canvas.NRGBAAt(99, 200))
	assert.Equal(t, red, canvas.NRGBAAt(100, 200))
	assert.Equal(t, red, canvas.NRGBAAt(299, 200))
	assert.Equal(t, black, canvas.NRGBAAt(300, 200))
}

func TestCanvas_DegenerateSizeKeepsOnePixel(t *testing.T) {
	// 1000x1 into 10x10: the height would be truncated to 0.
	canvas := FitToCanvas(uniform(1000, 1, red), 10, 10, black)

	assert.Equal(t, red, canvas.NRGBAAt(5, 4))
	assert.Equal(t, black, canvas.NRGBAAt(5, 0))
}

func TestCanvas_TransparentAvatarShowsBackground(t *testing.T) {
	avatar := uniform(10, 10, color.NRGBA{})
	draw.Draw(avatar, image.Rect(3, 3, 7, 7), &image.Uniform{red}, image.Point{}, draw.Src)

	canvas := FitToCanvas(avatar, 10, 10, blue)

	assert.Equal(t, blue, canvas.NRGBAAt(0, 0))
	assert.Equal(t, red, canvas.NRGBAAt(5, 5))
}

func TestCanvas_ResizeToFace(t *testing.T) {
	img := uniform(50, 40, red)

	res := ResizeToFace(img, 120, 90)
	assert.Equal(t, image.Rect(0, 0, 120, 90), res.Bounds())
	assert.Equal(t, red, res.NRGBAAt(60, 45))

	res = ResizeToFace(img, 20, 10)
	assert.Equal(t, image.Rect(0, 0, 20, 10), res.Bounds())

	// Invalid face sizes keep the avatar as it is.
	res = ResizeToFace(img, 0, 10)
	assert.Equal(t, img.Bounds(), res.Bounds())

	assert.Nil(t, ResizeToFace(nil, 10, 10))
}
