package vision

import (
	"fmt"
	"image"

	"github.com/monocam/monocam"
	"gocv.io/x/gocv"
)

// HaarDetector narrows the search with OpenCV Haar cascades: faces are
// detected on the downscaled frame, eyes on the upper half and the mouth
// on the lower part of every face, at full resolution.
type HaarDetector struct {
	face     gocv.CascadeClassifier
	features *featureCascades
	scale    float64

	small     gocv.Mat
	graySmall gocv.Mat
}

// NewHaarDetector loads the cascades from the cascade directory.
// The face and eye cascades are mandatory, the smile cascade is optional.
func NewHaarDetector(opts *monocam.Options) (*HaarDetector, error) {
	face := gocv.NewCascadeClassifier()
	path := opts.CascadePath(monocam.FaceCascadeFile)
	if !loadCascade(&face, path) {
		face.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeNotLoaded, path)
	}

	features, err := newFeatureCascades(opts)
	if err != nil {
		face.Close()
		return nil, err
	}

	return &HaarDetector{
		face:      face,
		features:  features,
		scale:     opts.DetectScale,
		small:     gocv.NewMat(),
		graySmall: gocv.NewMat(),
	}, nil
}

// Detect implements the Detector interface.
func (d *HaarDetector) Detect(frame gocv.Mat) ([]monocam.Face, error) {
	if frame.Empty() {
		return nil, nil
	}
	downscale(frame, d.scale, &d.small, &d.graySmall)

	p := monocam.FaceParams
	rects := d.face.DetectMultiScaleWithParams(d.graySmall, p.ScaleFactor, p.MinNeighbors, 0, p.MinSize, image.Point{})
	for i, r := range rects {
		rects[i] = monocam.ScaleRect(r, d.scale)
	}
	return d.features.find(frame, rects), nil
}

// Close releases the classifiers and the work buffers.
func (d *HaarDetector) Close() error {
	d.face.Close()
	d.features.Close()
	d.small.Close()
	return d.graySmall.Close()
}
