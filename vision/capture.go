// Package vision binds the avatar pipeline to OpenCV (through gocv):
// it reads the frames of the video source, runs the cascade classifiers
// over them, shows the results in the highgui windows and drives the
// capture, detect, decide, compose and display loop.
package vision

import (
	"fmt"
	"os"
	"strconv"

	"github.com/monocam/monocam/utils"
	"gocv.io/x/gocv"
)

// Source is a blocking frame provider. *gocv.VideoCapture satisfies it.
type Source interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// OpenSource opens a local camera, when src is a device index,
// or a stream URL and a video file otherwise.
func OpenSource(src string) (*gocv.VideoCapture, error) {
	var device interface{} = src
	if id, err := strconv.Atoi(src); err == nil {
		device = id
	}

	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("could not open the %s %s: %w", SourceKind(src), src, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("could not open the %s %s", SourceKind(src), src)
	}
	return vc, nil
}

// SourceKind describes the video source for the status messages.
func SourceKind(src string) string {
	if _, err := strconv.Atoi(src); err == nil {
		return "camera"
	}
	if utils.IsValidUrl(src) {
		return "stream"
	}
	if _, err := os.Stat(src); err == nil {
		return "video file"
	}
	return "video source"
}
