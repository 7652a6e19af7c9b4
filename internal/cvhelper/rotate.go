package cvhelper

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Affine is a 2x3 matrix in row-major order mapping source pixel indices to
// destination pixel indices:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
type Affine [6]float64

// RotationMatrix returns the affine matrix rotating by angle degrees around
// center and scaling by scale. Positive angles rotate counter-clockwise as
// the image is displayed.
func RotationMatrix(center PointF, angle, scale float64) Affine {
	rad := angle * math.Pi / 180
	a := scale * math.Cos(rad)
	b := scale * math.Sin(rad)
	return Affine{
		a, b, (1-a)*center.X - b*center.Y,
		-b, a, b*center.X + (1-a)*center.Y,
	}
}

// RotateImage rotates img around center by angle, measured in unit, and
// scales it by scale. The output has the size of the input; uncovered pixels
// are zero. Single-channel images are warped directly and color images one
// channel at a time, alpha included.
func RotateImage(img image.Image, center PointF, angle, scale float64, unit AngleUnit) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if unit == Radians {
		angle = angle * 180 / math.Pi
	}
	if err := CheckRotationScale(scale); err != nil {
		return nil, err
	}
	return WarpAffine(img, RotationMatrix(center, angle, scale))
}

// CheckRotationScale reports an error for a zero scale.
func CheckRotationScale(scale float64) error {
	if scale == 0 {
		return fmt.Errorf("rotation scale must not be 0: %w", ErrInvalidArgument)
	}
	return nil
}

// WarpAffine maps img through m with bilinear sampling into an image of the
// same size. Destination pixels whose source falls outside img are zero.
func WarpAffine(img image.Image, m Affine) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}

	p := splitPlanes(img)
	out := p.mapColor(func(c *image.Gray) *image.Gray {
		return active.warpAffine(c, m)
	})
	if p.alpha != nil {
		out.alpha = active.warpAffine(p.alpha, m)
	}
	return out.merge(), nil
}

// warpPlane warps through x/image/draw. The library samples at pixel centers,
// so the matrix is conjugated by a half-pixel shift.
func warpPlane(src *image.Gray, m Affine) *image.Gray {
	s2d := f64.Aff3{
		m[0], m[1], m[2] + 0.5 - 0.5*(m[0]+m[1]),
		m[3], m[4], m[5] + 0.5 - 0.5*(m[3]+m[4]),
	}
	dst := image.NewGray(src.Rect)
	draw.BiLinear.Transform(dst, s2d, src, src.Bounds(), draw.Src, nil)
	return dst
}
