// Package preview shows the camera frames and the avatar canvas in two
// Gio windows. Gio owns the main goroutine, so the caller runs the mirror
// loop in a separate goroutine and calls app.Main from main.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/monocam/monocam"
	"github.com/monocam/monocam/vision"
	"gocv.io/x/gocv"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	maxScreenX = 1366
	maxScreenY = 768
)

var _ vision.Display = (*Display)(nil)

// Display implements vision.Display on top of two Gio windows.
// Every window is refreshed with the latest frame handed over by Show.
type Display struct {
	camera *frameWindow
	avatar *frameWindow

	quit chan struct{}
	once sync.Once
}

// frameWindow is a Gio window holding the last received image.
type frameWindow struct {
	win   *app.Window
	title string
	bg    color.NRGBA
	th    *material.Theme

	mu  sync.Mutex
	img image.Image
}

// NewDisplay opens the camera window with the camera frame size and the
// avatar window with the canvas size. The event loops start right away.
func NewDisplay(camW, camH int, opts *monocam.Options) *Display {
	d := &Display{quit: make(chan struct{})}

	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	d.camera = newFrameWindow(monocam.CameraWindowTitle, camW, camH, color.NRGBA{A: 0xff}, th)
	d.avatar = newFrameWindow(monocam.AvatarWindowTitle, opts.CanvasWidth, opts.CanvasHeight, opts.Background, th)

	go d.loop(d.camera)
	go d.loop(d.avatar)

	return d
}

func newFrameWindow(title string, w, h int, bg color.NRGBA, th *material.Theme) *frameWindow {
	ww, wh := windowSize(w, h)

	fw := &frameWindow{
		win:   new(app.Window),
		title: title,
		bg:    bg,
		th:    th,
	}
	fw.win.Option(
		app.Title(title),
		app.Size(unit.Dp(ww), unit.Dp(wh)),
	)
	return fw
}

// windowSize shrinks the window to the screen size, keeping the aspect ratio.
func windowSize(w, h int) (float32, float32) {
	fw, fh := float64(w), float64(h)
	if fw > maxScreenX || fh > maxScreenY {
		ratio := math.Min(maxScreenX/fw, maxScreenY/fh)
		fw, fh = fw*ratio, fh*ratio
	}
	return float32(math.Round(fw)), float32(math.Round(fh))
}

// Show implements the vision.Display interface.
func (d *Display) Show(camera gocv.Mat, avatar image.Image) error {
	img, err := camera.ToImage()
	if err != nil {
		return fmt.Errorf("could not convert the camera frame: %w", err)
	}
	d.camera.set(img)
	d.avatar.set(avatar)

	return nil
}

// Poll reports whether a window has been closed or a quit key has been pressed.
func (d *Display) Poll() bool {
	select {
	case <-d.quit:
		return true
	default:
		return false
	}
}

// Done is closed when the user asks to quit.
func (d *Display) Done() <-chan struct{} {
	return d.quit
}

// Close closes both windows.
func (d *Display) Close() error {
	d.requestQuit()
	d.camera.win.Perform(system.ActionClose)
	d.avatar.win.Perform(system.ActionClose)

	return nil
}

func (d *Display) requestQuit() {
	d.once.Do(func() { close(d.quit) })
}

// loop runs the window events until a DestroyEvent, an Esc or a Q key press.
func (d *Display) loop(fw *frameWindow) {
	var ops op.Ops

	for {
		switch e := fw.win.Event().(type) {
		case app.DestroyEvent:
			d.requestQuit()
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			for {
				ev, ok := gtx.Event(
					key.Filter{Name: key.NameEscape},
					key.Filter{Name: "Q"},
				)
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					d.requestQuit()
				}
			}
			fw.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (fw *frameWindow) set(img image.Image) {
	fw.mu.Lock()
	fw.img = img
	fw.mu.Unlock()

	fw.win.Invalidate()
}

// draw paints the latest image centered on the window background.
func (fw *frameWindow) draw(gtx C) D {
	paint.Fill(gtx.Ops, fw.bg)

	fw.mu.Lock()
	img := fw.img
	fw.mu.Unlock()

	if img == nil {
		return layout.Center.Layout(gtx, func(gtx C) D {
			lbl := material.Body1(fw.th, "Waiting for the video source...")
			lbl.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			return lbl.Layout(gtx)
		})
	}

	src := paint.NewImageOp(img)
	return layout.Center.Layout(gtx, func(gtx C) D {
		return widget.Image{
			Src:   src,
			Fit:   widget.Contain,
			Scale: 1 / gtx.Metric.PxPerDp,
		}.Layout(gtx)
	})
}
