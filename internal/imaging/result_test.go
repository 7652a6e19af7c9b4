package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestEncodeResult(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 30, 20))
	img.SetGray(5, 5, color.Gray{255})

	result, err := EncodeResult(img)
	if err != nil {
		t.Fatalf("EncodeResult failed: %v", err)
	}
	if result.Width != 30 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", result.Width, result.Height)
	}
	if result.Channels != 1 {
		t.Errorf("Channels: got %d, want 1", result.Channels)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if r, _, _, _ := decoded.At(5, 5).RGBA(); r>>8 != 255 {
		t.Errorf("round-tripped pixel: got %d, want 255", r>>8)
	}
}

func TestSaveImage(t *testing.T) {
	img := createInMemoryImage(12, 8, color.RGBA{0, 128, 255, 255})
	path := filepath.Join(t.TempDir(), "nested", "out.png")

	if err := SaveImage(img, path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	info, err := LoadImageInfo(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Width != 12 || info.Height != 8 || info.Format != "png" {
		t.Errorf("got %dx%d %s, want 12x8 png", info.Width, info.Height, info.Format)
	}
}

func TestSaveImage_UnknownExtension(t *testing.T) {
	img := createInMemoryImage(4, 4, color.White)
	if err := SaveImage(img, filepath.Join(t.TempDir(), "out.xyz")); err == nil {
		t.Error("SaveImage should fail for an unsupported extension")
	}
}
