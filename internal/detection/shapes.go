package detection

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ironsheep/cvhelper-mcp/internal/cvhelper"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// The coordinate convention follows standard image bounds:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Shape kinds reported by Classify.
const (
	KindRectangle = "rectangle"
	KindCircle    = "circle"
	KindLine      = "line"
	KindPoint     = "point"
	KindOther     = "other"
)

// Classification thresholds.
const (
	rectangleThreshold = 0.9
	circleThreshold    = 0.75
)

// Shape describes one contour.
type Shape struct {
	// Kind is one of rectangle, circle, line, point or other.
	Kind string `json:"kind"`

	// Bounds is the bounding box of the contour pixels.
	Bounds Bounds `json:"bounds"`

	// Centroid is the center of mass of the enclosed polygon.
	Centroid cvhelper.PointF `json:"centroid"`

	// Area is the polygon area through the border pixel centers.
	Area float64 `json:"area"`

	// Perimeter is the length of the closed border polyline.
	Perimeter float64 `json:"perimeter"`

	// Rectangularity is Area divided by the area of the bounding box through
	// the same pixel centers (1.0 for an axis-aligned rectangle).
	Rectangularity float64 `json:"rectangularity"`

	// Circularity is 4*pi*Area/Perimeter^2 (about 0.9 for a digital disk,
	// 0.785 for a square).
	Circularity float64 `json:"circularity"`

	// FillColor is the hex color sampled at the centroid, if an image was given.
	FillColor string `json:"fill_color,omitempty"`

	// Points lists the border pixels when requested.
	Points []Point `json:"points,omitempty"`
}

// ShapesResult contains the shapes found in an image.
type ShapesResult struct {
	Shapes []Shape `json:"shapes"`
	Count  int     `json:"count"`
}

// DescribeContours measures and classifies contours, keeping their order.
//
// Contours with an area below minArea are skipped. img is used only to
// sample the fill color and may be nil. When includePoints is set, each
// shape carries its border pixels.
func DescribeContours(img image.Image, contours []*cvhelper.Contour, minArea float64, includePoints bool) *ShapesResult {
	shapes := make([]Shape, 0, len(contours))

	for _, c := range contours {
		if c.Area < minArea {
			continue
		}

		rect := c.BoundingRect()
		perimeter := Perimeter(c.Points)

		// Pixel centers span one less than the pixel extent.
		boxArea := float64((rect.Dx() - 1) * (rect.Dy() - 1))
		rectangularity := 0.0
		if boxArea > 0 {
			rectangularity = c.Area / boxArea
		}
		circularity := 0.0
		if perimeter > 0 {
			circularity = 4 * math.Pi * c.Area / (perimeter * perimeter)
		}

		centroid := c.Moments.Centroid()
		if c.Area == 0 {
			centroid = cvhelper.PointF{
				X: float64(rect.Min.X+rect.Max.X-1) / 2,
				Y: float64(rect.Min.Y+rect.Max.Y-1) / 2,
			}
		}

		shape := Shape{
			Kind:           Classify(c, rectangularity, circularity),
			Bounds:         Bounds{X1: rect.Min.X, Y1: rect.Min.Y, X2: rect.Max.X, Y2: rect.Max.Y},
			Centroid:       centroid,
			Area:           c.Area,
			Perimeter:      perimeter,
			Rectangularity: rectangularity,
			Circularity:    circularity,
		}
		if img != nil {
			shape.FillColor = sampleColorHex(img, int(math.Round(centroid.X)), int(math.Round(centroid.Y)))
		}
		if includePoints {
			shape.Points = make([]Point, len(c.Points))
			for i, p := range c.Points {
				shape.Points[i] = Point{X: p.X, Y: p.Y}
			}
		}
		shapes = append(shapes, shape)
	}

	return &ShapesResult{
		Shapes: shapes,
		Count:  len(shapes),
	}
}

// DetectShapes binarizes img with Otsu's method, traces the outer contours
// of the foreground and describes them, largest first.
//
// Foreground is brighter than the Otsu level; set darkOnLight for dark
// shapes on a light background.
func DetectShapes(img image.Image, minArea float64, darkOnLight bool) (*ShapesResult, error) {
	binary, _, err := Binarize(img, -1, darkOnLight)
	if err != nil {
		return nil, err
	}

	contours, err := cvhelper.FindContours(binary)
	if err != nil {
		return nil, err
	}

	result := DescribeContours(img, contours, minArea, false)
	sort.SliceStable(result.Shapes, func(i, j int) bool {
		return result.Shapes[i].Area > result.Shapes[j].Area
	})
	return result, nil
}

// Binarize converts img to gray and marks samples above level as foreground
// (255). A negative level selects the Otsu level. With darkOnLight the mask
// is inverted so that dark samples are foreground. The level used is
// returned.
func Binarize(img image.Image, level int, darkOnLight bool) (*image.Gray, int, error) {
	gray, err := cvhelper.ToGray(img)
	if err != nil {
		return nil, 0, err
	}
	if level < 0 {
		if level, err = cvhelper.OtsuLevel(gray); err != nil {
			return nil, 0, fmt.Errorf("binarize failed: %w", err)
		}
	}

	binary := image.NewGray(gray.Rect)
	for i, v := range gray.Pix {
		if (int(v) > level) != darkOnLight {
			binary.Pix[i] = 255
		}
	}
	return binary, level, nil
}

// Classify names the shape of contour c from its measures. Contours that
// enclose no area are lines (several pixels) or points (one pixel).
func Classify(c *cvhelper.Contour, rectangularity, circularity float64) string {
	switch {
	case c.Area == 0 && c.Len() <= 1:
		return KindPoint
	case c.Area == 0:
		return KindLine
	case rectangularity >= rectangleThreshold:
		return KindRectangle
	case circularity >= circleThreshold:
		return KindCircle
	}
	return KindOther
}

// Perimeter returns the length of the closed polyline through points.
func Perimeter(points []image.Point) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	prev := points[len(points)-1]
	for _, p := range points {
		total += math.Hypot(float64(p.X-prev.X), float64(p.Y-prev.Y))
		prev = p
	}
	return total
}

// sampleColorHex returns the hex color (#RRGGBB) of a pixel, or "" when the
// point lies outside img.
func sampleColorHex(img image.Image, x, y int) string {
	b := img.Bounds()
	x += b.Min.X
	y += b.Min.Y
	if !image.Pt(x, y).In(b) {
		return ""
	}
	r, g, bl, _ := img.At(x, y).RGBA()
	return fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(bl>>8))
}
