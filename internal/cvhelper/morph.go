package cvhelper

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Dilate replaces every sample with the maximum under a kernelSize x
// kernelSize structuring element of the given shape, anchored at its center.
// Color images are processed per channel.
func Dilate(img image.Image, kernelSize int, shape MorphShape) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if err := CheckMorph(kernelSize, shape, 1); err != nil {
		return nil, err
	}
	return splitPlanes(img).mapColor(func(p *image.Gray) *image.Gray {
		return active.dilate(p, shape, kernelSize)
	}).merge(), nil
}

// Erode replaces every sample with the minimum under a kernelSize x
// kernelSize structuring element of the given shape.
func Erode(img image.Image, kernelSize int, shape MorphShape) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if err := CheckMorph(kernelSize, shape, 1); err != nil {
		return nil, err
	}
	return splitPlanes(img).mapColor(func(p *image.Gray) *image.Gray {
		return active.erode(p, shape, kernelSize)
	}).merge(), nil
}

// MorphOpen erodes iterations times and then dilates iterations times with a
// size x size rectangular element. It removes bright specks smaller than the
// element.
func MorphOpen(img image.Image, size, iterations int) (image.Image, error) {
	return morphologyEx(img, size, iterations, true)
}

// MorphClose dilates iterations times and then erodes iterations times with
// a size x size rectangular element. It fills dark holes smaller than the
// element.
func MorphClose(img image.Image, size, iterations int) (image.Image, error) {
	return morphologyEx(img, size, iterations, false)
}

func morphologyEx(img image.Image, size, iterations int, open bool) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if err := CheckMorph(size, MorphRect, iterations); err != nil {
		return nil, err
	}

	first, second := active.erode, active.dilate
	if !open {
		first, second = active.dilate, active.erode
	}
	return splitPlanes(img).mapColor(func(p *image.Gray) *image.Gray {
		for i := 0; i < iterations; i++ {
			p = first(p, MorphRect, size)
		}
		for i := 0; i < iterations; i++ {
			p = second(p, MorphRect, size)
		}
		return p
	}).merge(), nil
}

// CheckMorph validates the parameters shared by the morphology operations.
func CheckMorph(size int, shape MorphShape, iterations int) error {
	if size < 1 {
		return fmt.Errorf("kernel size %d must be >= 1: %w", size, ErrInvalidArgument)
	}
	if shape < MorphRect || shape > MorphEllipse {
		return fmt.Errorf("unknown morph shape %d: %w", int(shape), ErrInvalidArgument)
	}
	if iterations < 1 {
		return fmt.Errorf("iterations %d must be >= 1: %w", iterations, ErrInvalidArgument)
	}
	return nil
}

// morphPlane applies one erosion or dilation. Samples outside the plane never
// win the min/max.
func morphPlane(src *image.Gray, shape MorphShape, size int, dilate bool) *image.Gray {
	if size == 1 {
		return clonePlane(src)
	}
	if shape == MorphRect {
		// A rectangle is separable into a row pass and a column pass.
		return rankCols(rankRows(src, size, dilate), size, dilate)
	}
	return rankMask(src, structuringElement(shape, size), dilate)
}

// structuringElement returns the size x size mask for shape, anchored at
// (size/2, size/2). The ellipse is inscribed in the square, so size 3 yields
// the same mask as a cross.
func structuringElement(shape MorphShape, size int) [][]bool {
	anchor := size / 2
	r := size / 2
	mask := make([][]bool, size)
	for i := range mask {
		mask[i] = make([]bool, size)
		j1, j2 := 0, 0
		switch shape {
		case MorphRect:
			j1, j2 = 0, size
		case MorphCross:
			if i == anchor {
				j1, j2 = 0, size
			} else {
				j1, j2 = anchor, anchor+1
			}
		case MorphEllipse:
			dy := i - r
			if absInt(dy) <= r {
				dx := int(math.Round(float64(r) * math.Sqrt(float64(r*r-dy*dy)/float64(r*r))))
				j1 = max(r-dx, 0)
				j2 = min(r+dx+1, size)
			}
		}
		for j := j1; j < j2; j++ {
			mask[i][j] = true
		}
	}
	return mask
}

// rankMask takes the min or max over the samples selected by mask.
func rankMask(src *image.Gray, mask [][]bool, takeMax bool) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)
	anchor := len(mask) / 2

	var offsets []image.Point
	for i, row := range mask {
		for j, on := range row {
			if on {
				offsets = append(offsets, image.Pt(j-anchor, i-anchor))
			}
		}
	}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				v := src.Pix[y*src.Stride+x]
				for _, o := range offsets {
					sx, sy := x+o.X, y+o.Y
					if sx < 0 || sy < 0 || sx >= w || sy >= h {
						continue
					}
					if s := src.Pix[sy*src.Stride+sx]; better(s, v, takeMax) {
						v = s
					}
				}
				dst.Pix[y*dst.Stride+x] = v
			}
		}
	})
	return dst
}

func better(a, b uint8, takeMax bool) bool {
	if takeMax {
		return a > b
	}
	return a < b
}

// rankRows takes the min or max over a horizontal window of the given size.
func rankRows(src *image.Gray, size int, takeMax bool) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)
	anchor := size / 2

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			for x := 0; x < w; x++ {
				lo, hi := x-anchor, x-anchor+size-1
				if lo < 0 {
					lo = 0
				}
				if hi > w-1 {
					hi = w - 1
				}
				v := row[lo]
				for i := lo + 1; i <= hi; i++ {
					if better(row[i], v, takeMax) {
						v = row[i]
					}
				}
				out[x] = v
			}
		}
	})
	return dst
}

// rankCols takes the min or max over a vertical window of the given size.
func rankCols(src *image.Gray, size int, takeMax bool) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)
	anchor := size / 2

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			lo, hi := y-anchor, y-anchor+size-1
			if lo < 0 {
				lo = 0
			}
			if hi > h-1 {
				hi = h - 1
			}
			out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			copy(out, src.Pix[lo*src.Stride:lo*src.Stride+w])
			for yy := lo + 1; yy <= hi; yy++ {
				row := src.Pix[yy*src.Stride : yy*src.Stride+w]
				for x := 0; x < w; x++ {
					if better(row[x], out[x], takeMax) {
						out[x] = row[x]
					}
				}
			}
		}
	})
	return dst
}

func clonePlane(src *image.Gray) *image.Gray {
	dst := image.NewGray(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
