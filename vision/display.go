package vision

import (
	"fmt"
	"image"

	"github.com/monocam/monocam"
	"gocv.io/x/gocv"
)

// Display shows the camera frame and the avatar canvas.
// Poll is called once per frame and reports whether the user asked to quit.
type Display interface {
	Show(camera gocv.Mat, avatar image.Image) error
	Poll() bool
	Close() error
}

// HighGUI displays the frames in two OpenCV windows.
type HighGUI struct {
	camera *gocv.Window
	avatar *gocv.Window
}

// NewHighGUI opens the camera window and the avatar window, the latter with
// an initial size equal to the avatar canvas.
func NewHighGUI(width, height int) *HighGUI {
	d := &HighGUI{
		avatar: gocv.NewWindow(monocam.AvatarWindowTitle),
		camera: gocv.NewWindow(monocam.CameraWindowTitle),
	}
	d.avatar.ResizeWindow(width, height)

	return d
}

// Show implements the Display interface.
func (d *HighGUI) Show(camera gocv.Mat, avatar image.Image) error {
	d.camera.IMShow(camera)

	mat, err := gocv.ImageToMatRGB(avatar)
	if err != nil {
		return fmt.Errorf("could not convert the avatar canvas: %w", err)
	}
	defer mat.Close()
	d.avatar.IMShow(mat)

	return nil
}

// Poll waits a millisecond for a key press, which also refreshes the windows.
func (d *HighGUI) Poll() bool {
	return IsQuitKey(d.avatar.WaitKey(1))
}

// Close destroys both windows.
func (d *HighGUI) Close() error {
	d.camera.Close()
	return d.avatar.Close()
}

// IsQuitKey reports whether the key code returned by WaitKey is 'q' or Esc.
func IsQuitKey(key int) bool {
	if key < 0 {
		return false
	}
	switch key & 0xff {
	case 'q', 'Q', 27:
		return true
	}
	return false
}
