package cvhelper

import (
	"image"
	"math"
)

// Moments holds the spatial, central and normalized central moments of a
// polygon up to the third order.
type Moments struct {
	M00 float64 `json:"m00"`
	M10 float64 `json:"m10"`
	M01 float64 `json:"m01"`
	M20 float64 `json:"m20"`
	M11 float64 `json:"m11"`
	M02 float64 `json:"m02"`
	M30 float64 `json:"m30"`
	M21 float64 `json:"m21"`
	M12 float64 `json:"m12"`
	M03 float64 `json:"m03"`

	Mu20 float64 `json:"mu20"`
	Mu11 float64 `json:"mu11"`
	Mu02 float64 `json:"mu02"`
	Mu30 float64 `json:"mu30"`
	Mu21 float64 `json:"mu21"`
	Mu12 float64 `json:"mu12"`
	Mu03 float64 `json:"mu03"`

	Nu20 float64 `json:"nu20"`
	Nu11 float64 `json:"nu11"`
	Nu02 float64 `json:"nu02"`
	Nu30 float64 `json:"nu30"`
	Nu21 float64 `json:"nu21"`
	Nu12 float64 `json:"nu12"`
	Nu03 float64 `json:"nu03"`
}

// Centroid returns (m10/m00, m01/m00), or the zero point for a degenerate
// polygon.
func (m Moments) Centroid() PointF {
	if m.M00 == 0 {
		return PointF{}
	}
	return PointF{X: m.M10 / m.M00, Y: m.M01 / m.M00}
}

// ComputeMoments integrates over the polygon closed by points using Green's
// theorem. The result does not depend on the winding direction. Fewer than
// three points, or a polygon with no area, yields all zeros.
func ComputeMoments(points []image.Point) Moments {
	var m Moments
	if len(points) < 3 {
		return m
	}

	var a00, a10, a01, a20, a11, a02, a30, a21, a12, a03 float64
	last := points[len(points)-1]
	xp, yp := float64(last.X), float64(last.Y)
	for _, p := range points {
		x, y := float64(p.X), float64(p.Y)
		xp2, yp2 := xp*xp, yp*yp
		x2, y2 := x*x, y*y
		dxy := xp*y - x*yp
		sx := xp + x
		sy := yp + y

		a00 += dxy
		a10 += dxy * sx
		a01 += dxy * sy
		a20 += dxy * (xp*sx + x2)
		a11 += dxy * (xp*(sy+yp) + x*(sy+y))
		a02 += dxy * (yp*sy + y2)
		a30 += dxy * sx * (xp2 + x2)
		a03 += dxy * sy * (yp2 + y2)
		a21 += dxy * (xp2*(3*yp+y) + 2*x*xp*sy + x2*(yp+3*y))
		a12 += dxy * (yp2*(3*xp+x) + 2*y*yp*sx + y2*(xp+3*x))

		xp, yp = x, y
	}

	if math.Abs(a00) <= 1.1920929e-07 {
		return m
	}
	sign := 1.0
	if a00 < 0 {
		sign = -1
	}
	m.M00 = sign * a00 / 2
	m.M10 = sign * a10 / 6
	m.M01 = sign * a01 / 6
	m.M20 = sign * a20 / 12
	m.M11 = sign * a11 / 24
	m.M02 = sign * a02 / 12
	m.M30 = sign * a30 / 20
	m.M21 = sign * a21 / 60
	m.M12 = sign * a12 / 60
	m.M03 = sign * a03 / 20

	cx, cy := m.M10/m.M00, m.M01/m.M00
	m.Mu20 = m.M20 - m.M10*cx
	m.Mu11 = m.M11 - m.M10*cy
	m.Mu02 = m.M02 - m.M01*cy
	m.Mu30 = m.M30 - cx*(3*m.Mu20+cx*m.M10)
	m.Mu21 = m.M21 - cx*(2*m.Mu11+cx*m.M01) - cy*m.Mu20
	m.Mu12 = m.M12 - cy*(2*m.Mu11+cy*m.M10) - cx*m.Mu02
	m.Mu03 = m.M03 - cy*(3*m.Mu02+cy*m.M01)

	inv := 1 / m.M00
	s2 := inv * inv
	s3 := s2 * math.Sqrt(inv)
	m.Nu20 = m.Mu20 * s2
	m.Nu11 = m.Mu11 * s2
	m.Nu02 = m.Mu02 * s2
	m.Nu30 = m.Mu30 * s3
	m.Nu21 = m.Mu21 * s3
	m.Nu12 = m.Mu12 * s3
	m.Nu03 = m.Mu03 * s3
	return m
}
