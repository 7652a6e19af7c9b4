package cvhelper

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// Normalize linearly stretches the samples of img so that the smallest one
// becomes lower and the largest one becomes upper. All color channels share one
// range; alpha is left untouched. The bounds may be given in either order.
// A flat image maps entirely to the lower bound.
func Normalize(img image.Image, lower, upper int) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	lo, hi := float64(lower), float64(upper)
	if lo > hi {
		lo, hi = hi, lo
	}

	p := splitPlanes(img)
	smin, smax := uint8(255), uint8(0)
	for _, c := range p.color {
		for _, v := range c.Pix {
			if v < smin {
				smin = v
			}
			if v > smax {
				smax = v
			}
		}
	}

	scale := 0.0
	if smax > smin {
		scale = (hi - lo) / float64(smax-smin)
	}
	shift := lo - float64(smin)*scale

	var lut [256]uint8
	for i := range lut {
		lut[i] = saturate(float64(i)*scale + shift)
	}

	return p.mapColor(func(c *image.Gray) *image.Gray {
		dst := image.NewGray(c.Rect)
		parallel.Line(len(c.Pix), func(start, end int) {
			for i := start; i < end; i++ {
				dst.Pix[i] = lut[c.Pix[i]]
			}
		})
		return dst
	}).merge(), nil
}

// CheckResizeFactor reports an error unless factor is finite and positive.
// The output size limit depends on the image and is checked by Resize.
func CheckResizeFactor(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("resize factor %v must be > 0: %w", factor, ErrInvalidArgument)
	}
	return nil
}

// Resize output limits.
const (
	maxResizeSide   = 1 << 16
	maxResizePixels = 1 << 28
)

// Resize shrinks img by factor using bicubic interpolation: a factor of 2
// halves both dimensions and a factor of 0.5 doubles them. The output is
// round(w/factor) x round(h/factor), never smaller than 1x1. Outputs wider
// or taller than 65536 pixels, or larger than 1<<28 pixels, are rejected.
func Resize(img image.Image, factor float64) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if err := CheckResizeFactor(factor); err != nil {
		return nil, err
	}

	b := img.Bounds()
	fw := math.Round(float64(b.Dx()) / factor)
	fh := math.Round(float64(b.Dy()) / factor)
	if fw > maxResizeSide || fh > maxResizeSide || fw*fh > maxResizePixels {
		return nil, fmt.Errorf("resize factor %v gives a %vx%v image: %w", factor, fw, fh, ErrInvalidArgument)
	}
	w, h := int(fw), int(fh)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	resized := imaging.Resize(img, w, h, imaging.CatmullRom)
	if isGray(img) {
		return redPlane(resized), nil
	}
	return resized, nil
}
