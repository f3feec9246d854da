/*
Package monocam swaps the expression of a cartoon avatar following the face
seen by a camera: when the mouth is open the avatar opens its mouth, when the
eyes are closed (or cannot be found) the avatar closes its eyes, otherwise the
neutral avatar is shown.

The package holds the frame independent part of the pipeline: the expression
selection rule, the geometry of the regions searched for eyes and mouth, the
avatar set and the fixed size canvas the avatar is centered on. The video
capture, the cascade classifiers and the windows live in the vision and
preview packages, the command line interface in cmd/monocam:

	$ monocam -source 0 -cascades ./data/haarcascades

In case you wish to reuse the avatar part in a self constructed environment
here is a simple example:

	package main

	import (
		"image/color"
		"log"

		"github.com/monocam/monocam"
	)

	func main() {
		avatars, err := monocam.LoadAvatars(monocam.DefaultOptions().Avatars)
		if err != nil {
			log.Fatalf("could not load the avatars: %v", err)
		}
		var faces []monocam.Face // filled by a vision.Detector
		canvas, expr := avatars.Render(faces, 400, 400, color.Black)
		_, _ = canvas, expr
	}
*/
package monocam
