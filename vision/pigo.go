package vision

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
	"github.com/monocam/monocam"
	"gocv.io/x/gocv"
)

const (
	// qualityThreshold drops the weak face detections.
	qualityThreshold float32 = 5.0
	// iouThreshold is the intersection over union threshold used for clustering.
	iouThreshold = 0.2
)

// PigoDetector finds the faces with the pure Go pigo facefinder cascade.
// The eyes and the mouth are then searched inside every face with the
// same Haar cascades the HaarDetector uses.
type PigoDetector struct {
	classifier *pigo.Pigo
	features   *featureCascades
	scale      float64

	small gocv.Mat
	gray  gocv.Mat
}

// NewPigoDetector unpacks the facefinder cascade file and loads the
// eye and smile cascades from the cascade directory.
func NewPigoDetector(opts *monocam.Options) (*PigoDetector, error) {
	cascadeFile, err := os.ReadFile(opts.FaceFinder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCascadeNotLoaded, err)
	}

	p := pigo.NewPigo()
	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	classifier, err := p.Unpack(cascadeFile)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the facefinder cascade file: %v", err)
	}

	features, err := newFeatureCascades(opts)
	if err != nil {
		return nil, err
	}

	return &PigoDetector{
		classifier: classifier,
		features:   features,
		scale:      opts.DetectScale,
		small:      gocv.NewMat(),
		gray:       gocv.NewMat(),
	}, nil
}

// Detect implements the Detector interface.
func (d *PigoDetector) Detect(frame gocv.Mat) ([]monocam.Face, error) {
	if frame.Empty() {
		return nil, nil
	}
	downscale(frame, d.scale, &d.small, &d.gray)

	cParams := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     1000,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: d.gray.ToBytes(),
			Rows:   d.gray.Rows(),
			Cols:   d.gray.Cols(),
			Dim:    d.gray.Cols(),
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := d.classifier.RunCascade(cParams, 0.0)

	// Calculate the intersection over union (IoU) of two clusters.
	dets = d.classifier.ClusterDetections(dets, iouThreshold)

	rects := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if det.Q < qualityThreshold {
			continue
		}
		rects = append(rects, monocam.ScaleRect(detectionRect(det), d.scale))
	}
	return d.features.find(frame, rects), nil
}

// Close releases the cascades and the work buffers.
func (d *PigoDetector) Close() error {
	d.features.Close()
	d.small.Close()
	return d.gray.Close()
}

// detectionRect converts a pigo detection (center and side) to a rectangle.
func detectionRect(det pigo.Detection) image.Rectangle {
	half := det.Scale / 2
	return image.Rect(det.Col-half, det.Row-half, det.Col-half+det.Scale, det.Row-half+det.Scale)
}
