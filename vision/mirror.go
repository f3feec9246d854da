package vision

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/monocam/monocam"
	"gocv.io/x/gocv"
)

// ErrFrameRead is returned when the video source stops providing frames.
var ErrFrameRead = errors.New("could not read a frame from the video source")

var (
	faceColor  = color.RGBA{G: 255}
	eyeColor   = color.RGBA{B: 255}
	mouthColor = color.RGBA{R: 255}
)

// Mirror drives the capture, detect, decide, compose and display loop.
type Mirror struct {
	Options  *monocam.Options
	Source   Source
	Detector Detector
	Display  Display
	Avatars  *monocam.AvatarSet
}

// Run processes frames until the context is cancelled, the user quits from
// the display or the source fails. The returned stats are always valid.
func (m *Mirror) Run(ctx context.Context) (stats monocam.Stats, err error) {
	start := time.Now()
	defer func() {
		stats.Elapsed = time.Since(start)
	}()

	frame := gocv.NewMat()
	defer frame.Close()

	shown := gocv.NewMat()
	defer shown.Close()

	for {
		select {
		case <-ctx.Done():
			return stats, nil
		default:
		}

		if ok := m.Source.Read(&frame); !ok || frame.Empty() {
			return stats, ErrFrameRead
		}

		faces, expr, err := m.Step(&frame, &shown)
		if err != nil {
			return stats, err
		}
		stats.Record(faces, expr)

		if m.Display.Poll() {
			return stats, nil
		}
	}
}

// Step processes a single frame: the frame is mirrored (if requested), the
// detections are drawn on a copy of it and the avatar of the first face is
// rendered on the canvas. Both images are handed to the display.
// It returns the number of faces and the expression shown.
func (m *Mirror) Step(frame, shown *gocv.Mat) (int, monocam.Expression, error) {
	opts := m.Options
	if opts.Mirror {
		gocv.Flip(*frame, frame, 1)
	}

	faces, err := m.Detector.Detect(*frame)
	if err != nil {
		return 0, "", fmt.Errorf("detection failed: %w", err)
	}

	frame.CopyTo(shown)
	for _, f := range faces {
		gocv.Rectangle(shown, f.Rect, faceColor, 2)
		if opts.Debug {
			for _, r := range f.Eyes {
				gocv.Rectangle(shown, r, eyeColor, 1)
			}
			for _, r := range f.Mouths {
				gocv.Rectangle(shown, r, mouthColor, 1)
			}
		}
	}

	canvas, expr := m.Avatars.Render(faces, opts.CanvasWidth, opts.CanvasHeight, opts.Background)
	if err := m.Display.Show(*shown, canvas); err != nil {
		return len(faces), expr, err
	}
	return len(faces), expr, nil
}
