package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/monocam/monocam"
	"github.com/monocam/monocam/preview"
	"github.com/monocam/monocam/utils"
	"github.com/monocam/monocam/vision"
	"gocv.io/x/gocv"
)

const HelpBanner = `
┌┬┐┌─┐┌┐┌┌─┐┌─┐┌─┐┌┬┐
││││ │││││ ││  ├─┤│││
┴ ┴└─┘┘└┘└─┘└─┘┴ ┴┴ ┴

Webcam mirror swapping the avatar expression with your face.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	defaults = monocam.DefaultOptions()

	// Flags
	source     = flag.String("source", defaults.Source, "Camera index, stream URL or video file")
	scale      = flag.Float64("scale", defaults.DetectScale, "Frame downscale factor used for the face detection")
	width      = flag.Int("width", defaults.CanvasWidth, "Avatar window width")
	height     = flag.Int("height", defaults.CanvasHeight, "Avatar window height")
	detector   = flag.String("detector", defaults.Detector, "Detection backend: haar or pigo")
	cascades   = flag.String("cascades", defaults.CascadeDir, "Directory of the haar cascade files (the eye and smile cascades are used by both detectors)")
	faceFinder = flag.String("facefinder", defaults.FaceFinder, "Pigo face finder cascade")
	normal     = flag.String("normal", defaults.Avatars[monocam.Normal], "Avatar shown by default (file or URL)")
	eyesClosed = flag.String("eyes-closed", defaults.Avatars[monocam.EyesClosed], "Avatar shown with the eyes closed (file or URL)")
	mouthOpen  = flag.String("mouth-open", defaults.Avatars[monocam.MouthOpen], "Avatar shown with the mouth open (file or URL)")
	display    = flag.String("display", defaults.Display, "Display backend: highgui or gio")
	mirror     = flag.Bool("mirror", defaults.Mirror, "Flip the camera frames horizontally")
	debug      = flag.Bool("debug", defaults.Debug, "Draw the eye and mouth detections")
	bg         = flag.String("bg", "#000000", "Avatar window background color")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	bgColor, err := utils.HexToRGBA(*bg)
	if err != nil {
		flag.Usage()
		log.Fatalf(utils.DecorateText("\nInvalid -bg value: %v\n", utils.ErrorMessage), err)
	}

	opts := &monocam.Options{
		Source:       *source,
		DetectScale:  *scale,
		CanvasWidth:  *width,
		CanvasHeight: *height,
		Background:   bgColor,
		Detector:     *detector,
		CascadeDir:   *cascades,
		FaceFinder:   *faceFinder,
		Avatars: map[monocam.Expression]string{
			monocam.Normal:     *normal,
			monocam.EyesClosed: *eyesClosed,
			monocam.MouthOpen:  *mouthOpen,
		},
		Display: *display,
		Mirror:  *mirror,
		Debug:   *debug,
	}
	if err := opts.Validate(); err != nil {
		flag.Usage()
		log.Fatalf(utils.DecorateText("\nInvalid options: %v\n", utils.ErrorMessage), err)
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ MONOCAM", utils.StatusMessage),
		utils.DecorateText("is loading the avatars and the cascades...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*100)
	spinner.Start()

	fail := func(msg string, err error) {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ MONOCAM", utils.StatusMessage),
			utils.DecorateText("✘", utils.ErrorMessage))
		spinner.Stop()
		log.Fatalf(utils.DecorateText(msg+": %v", utils.ErrorMessage), err)
	}

	avatars, err := monocam.LoadAvatars(opts.Avatars)
	if err != nil {
		fail("Failed to load the avatars", err)
	}

	det, err := vision.NewDetector(opts)
	if err != nil {
		fail("Failed to load the detector", err)
	}
	defer det.Close()

	vc, err := vision.OpenSource(opts.Source)
	if err != nil {
		fail("Failed to open the video source", err)
	}
	defer vc.Close()

	spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
		utils.DecorateText("⚡ MONOCAM", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("is reading the %s %s", vision.SourceKind(opts.Source), opts.Source), utils.DefaultMessage),
		utils.DecorateText("✔", utils.SuccessMessage))
	spinner.Stop()

	// Capture CTRL-C signal, stop the loop and restore the cursor visibility back.
	ctx, cancel := context.WithCancel(context.Background())
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		cancel()
	}()

	m := &vision.Mirror{
		Options:  opts,
		Source:   vc,
		Detector: det,
		Avatars:  avatars,
	}

	switch opts.Display {
	case monocam.DisplayGio:
		camW, camH := frameSize(vc)
		d := preview.NewDisplay(camW, camH, opts)
		m.Display = d

		go func() {
			code := run(ctx, m)
			det.Close()
			vc.Close()
			cancel()
			os.Exit(code)
		}()
		app.Main()
	default:
		d := vision.NewHighGUI(opts.CanvasWidth, opts.CanvasHeight)
		m.Display = d

		code := run(ctx, m)
		cancel()
		if code != 0 {
			det.Close()
			vc.Close()
			os.Exit(code)
		}
	}
}

// run drives the mirror loop, closes the display and prints the session stats.
// It returns the process exit code.
func run(ctx context.Context, m *vision.Mirror) int {
	stats, err := m.Run(ctx)
	m.Display.Close()

	fmt.Fprintf(os.Stderr, "\n%s\n", utils.DecorateText(stats.String(), utils.SuccessMessage))

	if err != nil {
		if errors.Is(err, vision.ErrFrameRead) {
			fmt.Fprintln(os.Stderr, utils.DecorateText("No frame could be read from the video source, exiting.", utils.ErrorMessage))
		} else {
			fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}
		return 1
	}
	return 0
}

// frameSize returns the frame size reported by the capture device.
func frameSize(vc *gocv.VideoCapture) (int, int) {
	w := int(vc.Get(gocv.VideoCaptureFrameWidth))
	h := int(vc.Get(gocv.VideoCaptureFrameHeight))
	if w <= 0 || h <= 0 {
		return 640, 480
	}
	return w, h
}
