package cvhelper

import (
	"fmt"
	"image"
)

// Axis selects a coordinate of a contour point.
type Axis int

const (
	// AxisX selects the horizontal coordinate.
	AxisX Axis = iota
	// AxisY selects the vertical coordinate.
	AxisY
)

// Contour is an ordered list of boundary points with its precomputed
// moments. Area is the zeroth moment, the enclosed polygon area.
type Contour struct {
	Points  []image.Point `json:"points"`
	Moments Moments       `json:"moments"`
	Area    float64       `json:"area"`
}

// NewContour wraps points and computes their moments.
func NewContour(points []image.Point) *Contour {
	return NewContourWithMoments(points, ComputeMoments(points))
}

// NewContourWithMoments wraps points with moments computed elsewhere.
func NewContourWithMoments(points []image.Point, m Moments) *Contour {
	return &Contour{Points: points, Moments: m, Area: m.M00}
}

// Len returns the number of points.
func (c *Contour) Len() int {
	return len(c.Points)
}

// At returns point i. It panics if i is out of range.
func (c *Contour) At(i int) image.Point {
	return c.Points[i]
}

// Coord returns one coordinate of point i. It panics if i is out of range
// and returns ErrInvalidArgument for an unknown axis.
func (c *Contour) Coord(i int, axis Axis) (int, error) {
	p := c.Points[i]
	switch axis {
	case AxisX:
		return p.X, nil
	case AxisY:
		return p.Y, nil
	}
	return 0, fmt.Errorf("axis %d: %w", int(axis), ErrInvalidArgument)
}

// Set replaces point i. Moments are not recomputed; call UpdateMoments once
// editing is done.
func (c *Contour) Set(i int, p image.Point) {
	c.Points[i] = p
}

// SetCoord replaces one coordinate of point i.
func (c *Contour) SetCoord(i int, axis Axis, v int) error {
	switch axis {
	case AxisX:
		c.Points[i].X = v
	case AxisY:
		c.Points[i].Y = v
	default:
		return fmt.Errorf("axis %d: %w", int(axis), ErrInvalidArgument)
	}
	return nil
}

// UpdateMoments recomputes Moments and Area from the current points.
func (c *Contour) UpdateMoments() {
	c.Moments = ComputeMoments(c.Points)
	c.Area = c.Moments.M00
}

// BoundingRect returns the smallest rectangle containing every point.
// Max is exclusive, so a single point yields a 1x1 rectangle.
func (c *Contour) BoundingRect() image.Rectangle {
	if len(c.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c.Points[0], Max: c.Points[0].Add(image.Pt(1, 1))}
	for _, p := range c.Points[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

// ScaleContourToRect expresses c in the coordinate frame of rect by
// subtracting rect.Min from every point. It returns a new contour and leaves
// c untouched. The area is unchanged; the other moments are recomputed for
// the translated points.
func ScaleContourToRect(c *Contour, rect image.Rectangle) *Contour {
	points := make([]image.Point, len(c.Points))
	for i, p := range c.Points {
		points[i] = p.Sub(rect.Min)
	}
	return NewContour(points)
}

// FindContours traces the outer border of every 8-connected region of
// non-zero samples in a single-channel image. Regions inside holes of other
// regions are skipped. Contours are ordered by the raster position of their
// top-left pixel and list every border pixel counter-clockwise.
func FindContours(img image.Image) ([]*Contour, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	g, ok := asGray(img)
	if !ok {
		return nil, ErrNotGrayscale
	}

	borders := active.findContours(g)
	contours := make([]*Contour, len(borders))
	for i, pts := range borders {
		contours[i] = NewContour(pts)
	}
	return contours, nil
}
