package cvhelper

import (
	"errors"
	"image"
	"reflect"
)

var (
	// ErrEmptyImage is returned when an operation receives a nil image or an
	// image with zero width or height.
	ErrEmptyImage = errors.New("image is empty")

	// ErrInvalidArgument is wrapped by every parameter validation error.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotGrayscale is returned by operations that need a single-channel image.
	ErrNotGrayscale = errors.New("image must be single-channel")
)

// checkImage reports ErrEmptyImage for nil (including typed-nil) or
// zero-sized images.
func checkImage(img image.Image) error {
	if img == nil {
		return ErrEmptyImage
	}
	if v := reflect.ValueOf(img); v.Kind() == reflect.Ptr && v.IsNil() {
		return ErrEmptyImage
	}
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}
	return nil
}
