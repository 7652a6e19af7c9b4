package cvhelper

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorSpace names a target of Convert.
type ColorSpace string

const (
	// SpaceGray is single-channel luminance.
	SpaceGray ColorSpace = "gray"
	// SpaceHSV is hue, saturation and value.
	SpaceHSV ColorSpace = "hsv"
	// SpaceXYZ is CIE 1931 XYZ.
	SpaceXYZ ColorSpace = "xyz"
	// SpaceHLS is hue, lightness and saturation.
	SpaceHLS ColorSpace = "hls"
	// SpaceLuv is CIE L*u*v* under D65.
	SpaceLuv ColorSpace = "luv"
)

// CheckColorSpace reports an error unless space is one Convert accepts.
func CheckColorSpace(space ColorSpace) error {
	switch space {
	case SpaceGray, SpaceHSV, SpaceXYZ, SpaceHLS, SpaceLuv:
		return nil
	}
	return fmt.Errorf("unknown color space %q: %w", space, ErrInvalidArgument)
}

// Convert converts an RGB image to the given color space.
func Convert(img image.Image, space ColorSpace) (image.Image, error) {
	var (
		out image.Image
		err error
	)
	switch space {
	case SpaceGray:
		out, err = ToGray(img)
	case SpaceHSV:
		out, err = ToHSV(img)
	case SpaceXYZ:
		out, err = ToXYZ(img)
	case SpaceHLS:
		out, err = ToHLS(img)
	case SpaceLuv:
		out, err = ToLuv(img)
	default:
		return nil, CheckColorSpace(space)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToGray converts img to luminance using Y = 0.299R + 0.587G + 0.114B.
// A single-channel input is returned as a copy.
func ToGray(img image.Image) (*image.Gray, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if g, ok := asGray(img); ok {
		return g, nil
	}
	return redPlane(imaging.Grayscale(img)), nil
}

// ToHSV converts img to HSV with H in 0-179 and S, V in 0-255.
func ToHSV(img image.Image) (*image.NRGBA, error) {
	return convertPixels(img, func(c colorful.Color) (uint8, uint8, uint8) {
		h, s, v := c.Hsv()
		return halfHue(h), saturate(s * 255), saturate(v * 255)
	})
}

// ToHLS converts img to HLS with H in 0-179 and L, S in 0-255.
func ToHLS(img image.Image) (*image.NRGBA, error) {
	return convertPixels(img, func(c colorful.Color) (uint8, uint8, uint8) {
		h, s, l := c.Hsl()
		return halfHue(h), saturate(l * 255), saturate(s * 255)
	})
}

// halfHue maps a hue in degrees to 0-179. Hues that round up to 180 wrap to 0.
func halfHue(h float64) uint8 {
	hh := saturate(h / 2)
	if hh >= 180 {
		hh = 0
	}
	return hh
}

// ToXYZ converts img to CIE XYZ. The RGB samples are used as-is, without
// gamma expansion, and each component is scaled to 0-255.
func ToXYZ(img image.Image) (*image.NRGBA, error) {
	return convertPixels(img, func(c colorful.Color) (uint8, uint8, uint8) {
		x, y, z := colorful.LinearRgbToXyz(c.R, c.G, c.B)
		return saturate(x * 255), saturate(y * 255), saturate(z * 255)
	})
}

// ToLuv converts sRGB img to CIE L*u*v* under D65, encoded as
// L*255/100, (u+134)*255/354 and (v+140)*255/262.
func ToLuv(img image.Image) (*image.NRGBA, error) {
	return convertPixels(img, func(c colorful.Color) (uint8, uint8, uint8) {
		l, u, v := c.Luv()
		// go-colorful reports L, u and v divided by 100.
		return saturate(l * 255),
			saturate((u*100 + 134) * 255 / 354),
			saturate((v*100 + 140) * 255 / 262)
	})
}

// convertPixels maps every RGB pixel through fn, keeping alpha.
func convertPixels(img image.Image, fn func(colorful.Color) (uint8, uint8, uint8)) (*image.NRGBA, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}

	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(src.Rect)

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			i := y * src.Stride
			for x := 0; x < w; x++ {
				c := colorful.Color{
					R: float64(src.Pix[i+0]) / 255,
					G: float64(src.Pix[i+1]) / 255,
					B: float64(src.Pix[i+2]) / 255,
				}
				dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2] = fn(c)
				dst.Pix[i+3] = src.Pix[i+3]
				i += 4
			}
		}
	})
	return dst, nil
}
