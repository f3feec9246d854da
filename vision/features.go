package vision

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/monocam/monocam"
	"github.com/monocam/monocam/utils"
	"gocv.io/x/gocv"
)

// featureCascades looks for the eyes and the mouth inside the faces found by
// a face detector. The eye cascade is mandatory, the smile cascade optional.
type featureCascades struct {
	eye      gocv.CascadeClassifier
	mouth    gocv.CascadeClassifier
	hasMouth bool

	gray gocv.Mat
}

func newFeatureCascades(opts *monocam.Options) (*featureCascades, error) {
	fc := &featureCascades{
		eye:   gocv.NewCascadeClassifier(),
		mouth: gocv.NewCascadeClassifier(),
		gray:  gocv.NewMat(),
	}

	path := opts.CascadePath(monocam.EyeCascadeFile)
	if !loadCascade(&fc.eye, path) {
		fc.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeNotLoaded, path)
	}

	path = opts.CascadePath(monocam.MouthCascadeFile)
	fc.hasMouth = loadCascade(&fc.mouth, path)
	if !fc.hasMouth {
		log.Printf(utils.DecorateText("could not load %s, the mouth detection is skipped", utils.WarningMessage), path)
	}
	return fc, nil
}

// loadCascade loads the cascade file only if it exists.
func loadCascade(cc *gocv.CascadeClassifier, path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return cc.Load(path)
}

// find searches the features of every face on the full size frame.
// The face rectangles are in frame coordinates; the ones lying entirely
// outside of the frame are dropped.
func (fc *featureCascades) find(frame gocv.Mat, rects []image.Rectangle) []monocam.Face {
	if len(rects) == 0 {
		return nil
	}
	gocv.CvtColor(frame, &fc.gray, gocv.ColorBGRToGray)
	bounds := frameBounds(frame)

	faces := make([]monocam.Face, 0, len(rects))
	for _, r := range rects {
		if r.Intersect(bounds).Empty() {
			continue
		}
		eyes, mouth := monocam.FeatureRegions(r, bounds)

		face := monocam.Face{Rect: r}
		face.Eyes = fc.detectIn(&fc.eye, eyes, monocam.EyeParams)
		if fc.hasMouth {
			face.Mouths = fc.detectIn(&fc.mouth, mouth, monocam.MouthParams)
		}
		faces = append(faces, face)
	}
	return faces
}

// detectIn runs the classifier over a region of interest of the grayscale
// frame and returns the detections in frame coordinates.
func (fc *featureCascades) detectIn(cc *gocv.CascadeClassifier, roi image.Rectangle, p monocam.CascadeParams) []image.Rectangle {
	if roi.Empty() {
		return nil
	}
	region := fc.gray.Region(roi)
	defer region.Close()

	rects := cc.DetectMultiScaleWithParams(region, p.ScaleFactor, p.MinNeighbors, 0, p.MinSize, image.Point{})
	return monocam.Translate(rects, roi.Min)
}

func (fc *featureCascades) Close() error {
	fc.eye.Close()
	fc.mouth.Close()
	return fc.gray.Close()
}
