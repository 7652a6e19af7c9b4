package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ImageResult is the JSON form of an image produced by an operation.
type ImageResult struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Channels int    `json:"channels"`
	MimeType string `json:"mime_type"`

	// ImageBase64 holds the PNG-encoded image.
	ImageBase64 string `json:"image_base64"`

	// OutputPath is set when the image was also written to disk.
	OutputPath string `json:"output_path,omitempty"`
}

// EncodeResult encodes img as PNG and wraps it in an ImageResult.
func EncodeResult(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &ImageResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Channels:    Channels(img),
		MimeType:    "image/png",
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// SaveImage writes img to path. The format follows the file extension
// (png, jpg, gif, tif or bmp). Missing parent directories are created.
func SaveImage(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
