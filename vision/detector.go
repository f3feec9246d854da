package vision

import (
	"errors"
	"fmt"
	"image"

	"github.com/monocam/monocam"
	"gocv.io/x/gocv"
)

// ErrCascadeNotLoaded is returned when a mandatory cascade file is missing or empty.
var ErrCascadeNotLoaded = errors.New("could not load the cascade classifier")

// Detector finds the faces, and the eyes and mouths inside them, on a BGR frame.
type Detector interface {
	Detect(frame gocv.Mat) ([]monocam.Face, error)
	Close() error
}

// NewDetector creates the detection backend selected by the options.
func NewDetector(opts *monocam.Options) (Detector, error) {
	switch opts.Detector {
	case monocam.DetectorHaar:
		return NewHaarDetector(opts)
	case monocam.DetectorPigo:
		return NewPigoDetector(opts)
	}
	return nil, fmt.Errorf("unsupported detector %q", opts.Detector)
}

// frameBounds returns the rectangle covered by the frame.
func frameBounds(m gocv.Mat) image.Rectangle {
	return image.Rect(0, 0, m.Cols(), m.Rows())
}

// downscale resizes the frame by scale and converts it to grayscale into gray.
// The small buffer is reused between frames.
func downscale(frame gocv.Mat, scale float64, small, gray *gocv.Mat) {
	if scale == 1 {
		gocv.CvtColor(frame, gray, gocv.ColorBGRToGray)
		return
	}
	gocv.Resize(frame, small, image.Point{}, scale, scale, gocv.InterpolationLinear)
	gocv.CvtColor(*small, gray, gocv.ColorBGRToGray)
}
