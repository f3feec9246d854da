package monocam

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strings"

	"github.com/monocam/monocam/utils"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNoNormalAvatar is returned when the mandatory neutral avatar is missing.
var ErrNoNormalAvatar = errors.New("the normal avatar image is mandatory")

// AvatarSet holds the avatar images keyed by expression.
// It is loaded once and never modified afterwards.
type AvatarSet struct {
	images map[Expression]*image.NRGBA
}

// NewAvatarSet builds an avatar set from already decoded images.
// The normal expression is mandatory, the others fall back to it.
func NewAvatarSet(images map[Expression]image.Image) (*AvatarSet, error) {
	set := &AvatarSet{images: make(map[Expression]*image.NRGBA, len(images))}
	for expr, img := range images {
		if img == nil || img.Bounds().Empty() {
			continue
		}
		set.images[expr] = imgToNRGBA(img)
	}
	if _, ok := set.images[Normal]; !ok {
		return nil, ErrNoNormalAvatar
	}
	return set, nil
}

// LoadAvatars reads the avatar images from the provided paths or URLs.
// A missing or unreadable optional avatar is only reported as a warning.
func LoadAvatars(paths map[Expression]string) (*AvatarSet, error) {
	images := make(map[Expression]image.Image, len(paths))
	for _, expr := range Expressions() {
		path, ok := paths[expr]
		if !ok || path == "" {
			if expr == Normal {
				return nil, ErrNoNormalAvatar
			}
			continue
		}

		img, err := decodeImg(path)
		if err != nil {
			if expr == Normal {
				return nil, fmt.Errorf("%w: %v", ErrNoNormalAvatar, err)
			}
			log.Printf(utils.DecorateText("could not read the %q avatar from %s: %v", utils.WarningMessage), expr, path, err)
			continue
		}
		images[expr] = img
	}
	return NewAvatarSet(images)
}

// Get returns the avatar of the expression, or the normal one if it was not loaded.
func (s *AvatarSet) Get(e Expression) *image.NRGBA {
	if img, ok := s.images[e]; ok {
		return img
	}
	return s.images[Normal]
}

// Has reports whether the expression has its own avatar image.
func (s *AvatarSet) Has(e Expression) bool {
	_, ok := s.images[e]
	return ok
}

// Select returns one avatar per face, resized to the face dimension.
func (s *AvatarSet) Select(faces []Face) []*image.NRGBA {
	avatars := make([]*image.NRGBA, 0, len(faces))
	for _, f := range faces {
		img := s.Get(f.Expression())
		avatars = append(avatars, ResizeToFace(img, f.Rect.Dx(), f.Rect.Dy()))
	}
	return avatars
}

// Render produces the content of the avatar window: the avatar of the first
// face centered on the fixed size canvas, or the normal avatar without faces.
func (s *AvatarSet) Render(faces []Face, w, h int, bg color.Color) (*image.NRGBA, Expression) {
	avatars := s.Select(faces)
	if len(avatars) == 0 {
		return FitToCanvas(s.images[Normal], w, h, bg), Normal
	}
	return FitToCanvas(avatars[0], w, h, bg), faces[0].Expression()
}

// decodeImg decodes an image file or URL to type image.Image.
func decodeImg(src string) (image.Image, error) {
	if utils.IsValidUrl(src) {
		file, err := utils.DownloadImage(src)
		if err != nil {
			return nil, err
		}
		defer os.Remove(file.Name())
		defer file.Close()

		img, _, err := image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("could not decode the downloaded image: %v", err)
		}
		return img, nil
	}

	ctype, err := utils.DetectContentType(src)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("%s is not an image file", src)
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the avatar file: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode the avatar file: %v", err)
	}
	return img, nil
}
