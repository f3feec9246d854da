package monocam

import "image"

// Face is a detected face together with the eyes and mouths found inside it.
// All the rectangles are expressed in full frame coordinates. Rect is the
// detection as reported by the classifier and may reach past the frame edge,
// the avatar is resized to its full size.
type Face struct {
	Rect   image.Rectangle
	Eyes   []image.Rectangle
	Mouths []image.Rectangle
}

// Expression returns the avatar expression matching the face detections.
func (f Face) Expression() Expression {
	return Choose(len(f.Eyes), len(f.Mouths))
}

// ScaleRect maps a rectangle found on a frame resized by scale back to
// the original frame size. Each of the x, y, width and height components
// is divided by scale and truncated.
func ScaleRect(r image.Rectangle, scale float64) image.Rectangle {
	if scale <= 0 {
		return r
	}
	x := int(float64(r.Min.X) / scale)
	y := int(float64(r.Min.Y) / scale)
	w := int(float64(r.Dx()) / scale)
	h := int(float64(r.Dy()) / scale)

	return image.Rect(x, y, x+w, y+h)
}

// EyeRegion returns the upper half of the face, where the eyes are searched.
func EyeRegion(face image.Rectangle) image.Rectangle {
	h := int(float64(face.Dy()) * 0.5)
	return image.Rect(face.Min.X, face.Min.Y, face.Max.X, face.Min.Y+h)
}

// MouthRegion returns the lower part of the face (from 60% of its height
// downwards), where the mouth is searched.
func MouthRegion(face image.Rectangle) image.Rectangle {
	h := int(float64(face.Dy()) * 0.6)
	return image.Rect(face.Min.X, face.Min.Y+h, face.Max.X, face.Max.Y)
}

// FeatureRegions returns the eye and mouth regions of the detected face,
// computed on the whole face and clipped to the frame bounds afterwards.
func FeatureRegions(face, bounds image.Rectangle) (eyes, mouth image.Rectangle) {
	return EyeRegion(face).Intersect(bounds), MouthRegion(face).Intersect(bounds)
}

// Translate moves the rectangles detected inside a region of interest
// to the coordinate space of the frame the region was cut from.
func Translate(rects []image.Rectangle, origin image.Point) []image.Rectangle {
	if len(rects) == 0 {
		return nil
	}
	out := make([]image.Rectangle, len(rects))
	for i, r := range rects {
		out[i] = r.Add(origin)
	}
	return out
}
