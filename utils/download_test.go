package utils

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("could not encode the test image: %v", err)
	}
	return buf.Bytes()
}

func TestUtils_ShouldDownloadImage(t *testing.T) {
	data := encodePNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	f, err := DownloadImage(srv.URL + "/mono.png")
	if err != nil {
		t.Fatalf("could't download test file: %v", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	assert.True(t, strings.HasPrefix(filepath.Base(f.Name()), "monocam-"))
	assert.Equal(t, ".png", filepath.Ext(f.Name()))

	_, format, err := image.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestUtils_ShouldRejectNonImageDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>not an image</body></html>"))
	}))
	defer srv.Close()

	_, err := DownloadImage(srv.URL)
	assert.Error(t, err)
}

func TestUtils_ShouldFailOnHttpError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := DownloadImage(srv.URL + "/missing.jpg")
	assert.Error(t, err)
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("http://192.168.1.20:8080/video"))
	assert.True(t, IsValidUrl("rtsp://camera.local/stream"))
	assert.False(t, IsValidUrl("0"))
	assert.False(t, IsValidUrl("mono_normal.jpg"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	dir := t.TempDir()
	sampleImg := filepath.Join(dir, "muestra_ñ.png")
	if err := os.WriteFile(sampleImg, encodePNG(t), 0644); err != nil {
		t.Fatalf("could not write the sample image: %v", err)
	}

	ftype, err := DetectContentType(sampleImg)
	if err != nil {
		t.Fatalf("could not detect content type: %v", err)
	}
	assert.Contains(t, ftype, "image")

	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0644); err != nil {
		t.Fatalf("could not write the text file: %v", err)
	}
	ftype, err = DetectContentType(txt)
	assert.NoError(t, err)
	assert.NotContains(t, ftype, "image")
}
