package monocam

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
)

// Supported detection backends.
const (
	DetectorHaar = "haar"
	DetectorPigo = "pigo"
)

// Supported display backends.
const (
	DisplayHighGUI = "highgui"
	DisplayGio     = "gio"
)

// Haar cascade file names, as distributed with OpenCV.
const (
	FaceCascadeFile  = "haarcascade_frontalface_default.xml"
	EyeCascadeFile   = "haarcascade_eye.xml"
	MouthCascadeFile = "haarcascade_smile.xml"
)

// CascadeParams holds the multi-scale detection settings of a cascade classifier.
type CascadeParams struct {
	ScaleFactor  float64
	MinNeighbors int
	MinSize      image.Point
}

var (
	// FaceParams is used on the downscaled frame.
	FaceParams = CascadeParams{ScaleFactor: 1.3, MinNeighbors: 5}
	// EyeParams is used on the upper half of every face.
	EyeParams = CascadeParams{ScaleFactor: 1.1, MinNeighbors: 10, MinSize: image.Pt(20, 20)}
	// MouthParams is used on the lower part of every face.
	MouthParams = CascadeParams{ScaleFactor: 1.7, MinNeighbors: 22, MinSize: image.Pt(25, 25)}
)

// Options holds all the settings of a mirror session.
type Options struct {
	// Source is a camera index ("0", "1") or a stream URL or video file.
	Source string
	// DetectScale shrinks the frame before the face detection, <1.0 trades precision for speed.
	DetectScale float64

	CanvasWidth  int
	CanvasHeight int
	Background   color.NRGBA

	Detector   string
	CascadeDir string
	FaceFinder string

	Avatars map[Expression]string

	Display string
	Mirror  bool
	Debug   bool
}

// DefaultOptions returns the settings used when no flag is provided.
func DefaultOptions() *Options {
	return &Options{
		Source:       "0",
		DetectScale:  0.5,
		CanvasWidth:  400,
		CanvasHeight: 400,
		Background:   color.NRGBA{A: 0xff},
		Detector:     DetectorHaar,
		CascadeDir:   filepath.Join("data", "haarcascades"),
		FaceFinder:   filepath.Join("data", "pigo", "facefinder"),
		Avatars: map[Expression]string{
			Normal:     "mono_normal.jpg",
			EyesClosed: "mono_ojos_cerrados.jpeg",
			MouthOpen:  "mono_boca_abierta.jpeg",
		},
		Display: DisplayHighGUI,
		Mirror:  true,
	}
}

// Validate checks the options for values the pipeline cannot work with.
func (o *Options) Validate() error {
	if o.Source == "" {
		return errors.New("missing video source")
	}
	if o.DetectScale <= 0 || o.DetectScale > 1 {
		return fmt.Errorf("detection scale should be in the (0, 1] range, got %v", o.DetectScale)
	}
	if o.CanvasWidth <= 0 || o.CanvasHeight <= 0 {
		return fmt.Errorf("invalid avatar window size %dx%d", o.CanvasWidth, o.CanvasHeight)
	}
	switch o.Detector {
	case DetectorHaar:
	case DetectorPigo:
		if o.FaceFinder == "" {
			return errors.New("the pigo detector needs the facefinder cascade")
		}
	default:
		return fmt.Errorf("unsupported detector %q", o.Detector)
	}
	// The eye and smile cascades are used by both detectors.
	if o.CascadeDir == "" {
		return errors.New("missing the haar cascade directory")
	}
	switch o.Display {
	case DisplayHighGUI, DisplayGio:
	default:
		return fmt.Errorf("unsupported display %q", o.Display)
	}
	if o.Avatars[Normal] == "" {
		return ErrNoNormalAvatar
	}
	return nil
}

// CascadePath returns the path of a haar cascade file inside the cascade directory.
func (o *Options) CascadePath(name string) string {
	return filepath.Join(o.CascadeDir, name)
}

// Window titles.
const (
	CameraWindowTitle = "Camera"
	AvatarWindowTitle = "Mono Avatar"
)
