package monocam

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, path string, img image.Image) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("could not create %s: %v", path, err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	}
	if err != nil {
		t.Fatalf("could not encode %s: %v", path, err)
	}
	return path
}

func TestAvatar_LoadAll(t *testing.T) {
	dir := t.TempDir()
	paths := map[Expression]string{
		// Non ASCII file names should be handled like any other.
		Normal:     writeImage(t, filepath.Join(dir, "mono_normal_ñ.png"), uniform(8, 8, red)),
		EyesClosed: writeImage(t, filepath.Join(dir, "mono_ojos_cerrados.bmp"), uniform(8, 8, blue)),
		MouthOpen:  writeImage(t, filepath.Join(dir, "mono_boca_abierta.jpeg"), uniform(16, 8, black)),
	}

	set, err := LoadAvatars(paths)
	assert.NoError(t, err)

	for _, e := range Expressions() {
		assert.True(t, set.Has(e), "expression %s", e)
	}
	assert.Equal(t, red, set.Get(Normal).NRGBAAt(0, 0))
	assert.Equal(t, blue, set.Get(EyesClosed).NRGBAAt(0, 0))
	assert.Equal(t, image.Rect(0, 0, 16, 8), set.Get(MouthOpen).Bounds())
}

func TestAvatar_OptionalFallsBackToNormal(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "mono_boca_abierta.jpeg")
	if err := os.WriteFile(notImage, []byte("definitely not a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}
	paths := map[Expression]string{
		Normal:     writeImage(t, filepath.Join(dir, "mono_normal.png"), uniform(8, 8, red)),
		EyesClosed: filepath.Join(dir, "missing.jpeg"),
		MouthOpen:  notImage,
	}

	set, err := LoadAvatars(paths)
	assert.NoError(t, err)

	assert.False(t, set.Has(EyesClosed))
	assert.False(t, set.Has(MouthOpen))
	assert.Same(t, set.Get(Normal), set.Get(EyesClosed))
	assert.Same(t, set.Get(Normal), set.Get(MouthOpen))
}

func TestAvatar_NormalIsMandatory(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadAvatars(map[Expression]string{
		Normal: filepath.Join(dir, "mono_normal.jpg"),
	})
	assert.True(t, errors.Is(err, ErrNoNormalAvatar))

	_, err = LoadAvatars(map[Expression]string{
		EyesClosed: writeImage(t, filepath.Join(dir, "eyes.png"), uniform(8, 8, red)),
	})
	assert.True(t, errors.Is(err, ErrNoNormalAvatar))

	_, err = NewAvatarSet(map[Expression]image.Image{Normal: image.NewNRGBA(image.Rect(0, 0, 0, 0))})
	assert.True(t, errors.Is(err, ErrNoNormalAvatar))
}

func TestAvatar_LoadFromURL(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(writeImage(t, filepath.Join(dir, "remote.png"), uniform(6, 6, blue)))
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	set, err := LoadAvatars(map[Expression]string{Normal: srv.URL + "/mono.png"})
	assert.NoError(t, err)
	assert.Equal(t, blue, set.Get(Normal).NRGBAAt(3, 3))
}

func TestAvatar_SelectAndRender(t *testing.T) {
	set, err := NewAvatarSet(map[Expression]image.Image{
		Normal:     uniform(10, 10, red),
		EyesClosed: uniform(10, 10, blue),
		MouthOpen:  uniform(10, 10, color.NRGBA{G: 0xff, A: 0xff}),
	})
	assert.NoError(t, err)

	// Without faces the normal avatar fills the canvas.
	canvas, expr := set.Render(nil, 20, 20, black)
	assert.Equal(t, Normal, expr)
	assert.Equal(t, red, canvas.NRGBAAt(10, 10))

	faces := []Face{
		{Rect: image.Rect(0, 0, 40, 20)},
		{
			Rect:   image.Rect(50, 50, 80, 80),
			Eyes:   []image.Rectangle{image.Rect(55, 55, 60, 60), image.Rect(70, 55, 75, 60)},
			Mouths: []image.Rectangle{image.Rect(60, 70, 70, 78)},
		},
	}

	avatars := set.Select(faces)
	assert.Len(t, avatars, 2)
	assert.Equal(t, image.Rect(0, 0, 40, 20), avatars[0].Bounds())
	assert.Equal(t, blue, avatars[0].NRGBAAt(20, 10))
	assert.Equal(t, image.Rect(0, 0, 30, 30), avatars[1].Bounds())
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, avatars[1].NRGBAAt(15, 15))

	// Only the first face is shown: 40x20 centered on 20x20 becomes 20x10 at y=5.
	canvas, expr = set.Render(faces, 20, 20, black)
	assert.Equal(t, EyesClosed, expr)
	assert.Equal(t, black, canvas.NRGBAAt(10, 2))
	assert.Equal(t, blue, canvas.NRGBAAt(10, 10))
}
