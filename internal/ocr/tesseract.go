package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/cvhelper-mcp/internal/cvhelper"
)

// DefaultLanguage is used when Options.Language is empty.
const DefaultLanguage = "eng"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a word or text block with its location and OCR confidence.
type TextRegion struct {
	// Text is the recognized text content.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this text in the source image.
	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the complete results of text extraction from an image.
type OCRResult struct {
	// FullText is all recognized text with original spacing and newlines.
	FullText string `json:"full_text"`

	// Words contains individual words with bounding boxes and confidence.
	// May be empty if bounding box extraction fails.
	Words []TextRegion `json:"words"`

	// Blocks contains paragraph-level regions at or above MinConfidence.
	Blocks []TextRegion `json:"blocks"`

	// Preprocessed reports whether the image was binarized before OCR.
	Preprocessed bool `json:"preprocessed"`
}

// Options controls Recognize.
type Options struct {
	// Language is a Tesseract language code such as "eng" or "deu+eng".
	Language string

	// Region restricts OCR to part of the image. The zero rectangle means
	// the whole image. Result coordinates are always in the source image.
	Region image.Rectangle

	// Preprocess converts the image to gray and binarizes it with Otsu's
	// method before OCR.
	Preprocess bool

	// MedianSize, when > 0, removes speckle noise with a median filter of
	// that (odd) size before binarization. Only used with Preprocess.
	MedianSize int

	// Whitelist limits recognition to the given characters.
	Whitelist string

	// MinConfidence drops blocks below this confidence (0.0 to 1.0).
	MinConfidence float64
}

// Prepare returns the image Recognize hands to Tesseract: the requested
// region, optionally denoised and binarized, with the offset of that region
// in the source image.
func Prepare(img image.Image, opts Options) (image.Image, image.Point, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, image.Point{}, cvhelper.ErrEmptyImage
	}

	bounds := img.Bounds()
	region := bounds
	if !opts.Region.Empty() {
		if !opts.Region.In(bounds) {
			return nil, image.Point{}, fmt.Errorf("OCR region %v outside image bounds %v", opts.Region, bounds)
		}
		region = opts.Region
	}

	var out image.Image = img
	if region != bounds || bounds.Min != (image.Point{}) {
		out = imaging.Crop(img, region)
	}
	if !opts.Preprocess {
		return out, region.Min, nil
	}

	gray, err := cvhelper.ToGray(out)
	if err != nil {
		return nil, image.Point{}, err
	}
	out = gray
	if opts.MedianSize > 0 {
		if out, err = cvhelper.BlurMedian(out, opts.MedianSize); err != nil {
			return nil, image.Point{}, fmt.Errorf("denoise failed: %w", err)
		}
	}
	binary, err := cvhelper.ThresholdOtsu(out, cvhelper.DefaultMaxValue)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("binarize failed: %w", err)
	}
	return binary, region.Min, nil
}

// Recognize runs Tesseract on img.
//
// The image (or Options.Region of it) is prepared with Prepare, encoded as
// PNG in memory and passed to Tesseract. Word boxes come from the RIL_WORD
// iterator level and block boxes from RIL_BLOCK; both are translated back to
// source image coordinates. Empty words are skipped.
//
// If word-level bounding box extraction fails, the full text is still
// returned with an empty Words slice.
func Recognize(img image.Image, opts Options) (*OCRResult, error) {
	prepared, offset, err := Prepare(img, opts)
	if err != nil {
		return nil, err
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, prepared, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(opts.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if opts.Whitelist != "" {
		if err := client.SetWhitelist(opts.Whitelist); err != nil {
			return nil, fmt.Errorf("failed to set whitelist: %w", err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	result := &OCRResult{
		FullText:     text,
		Words:        []TextRegion{},
		Blocks:       []TextRegion{},
		Preprocessed: opts.Preprocess,
	}

	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil {
		result.Words = toRegions(boxes, offset, 0, true)
	}
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK); err == nil {
		result.Blocks = toRegions(boxes, offset, opts.MinConfidence, false)
	}
	return result, nil
}

func toRegions(boxes []gosseract.BoundingBox, offset image.Point, minConfidence float64, skipEmpty bool) []TextRegion {
	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if skipEmpty && box.Word == "" {
			continue
		}
		confidence := box.Confidence / 100.0
		if confidence < minConfidence {
			continue
		}
		r := box.Box.Add(offset)
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: confidence,
			Bounds:     Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y},
		})
	}
	return regions
}

// Version returns the version of the linked Tesseract library.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
