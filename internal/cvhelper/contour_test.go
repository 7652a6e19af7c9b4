package cvhelper

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestComputeMoments_Square(t *testing.T) {
	square := []image.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	m := ComputeMoments(square)
	if m.M00 != 100 {
		t.Errorf("m00: got %v, want 100", m.M00)
	}
	if c := m.Centroid(); c.X != 5 || c.Y != 5 {
		t.Errorf("centroid: got %+v, want (5,5)", c)
	}
	if math.Abs(m.Mu20-2500.0/3) > 1e-9 || math.Abs(m.Mu02-2500.0/3) > 1e-9 {
		t.Errorf("mu20/mu02: got %v/%v, want 833.33", m.Mu20, m.Mu02)
	}
	if math.Abs(m.Mu11) > 1e-9 {
		t.Errorf("mu11: got %v, want 0", m.Mu11)
	}
	if math.Abs(m.Nu20-1.0/12) > 1e-12 {
		t.Errorf("nu20: got %v, want 1/12", m.Nu20)
	}
}

func TestComputeMoments_WindingIndependent(t *testing.T) {
	cw := []image.Point{{0, 0}, {6, 0}, {6, 4}, {0, 4}}
	ccw := []image.Point{{0, 0}, {0, 4}, {6, 4}, {6, 0}}

	a, b := ComputeMoments(cw), ComputeMoments(ccw)
	if a != b {
		t.Errorf("moments differ by winding:\n%+v\n%+v", a, b)
	}
	if a.M00 != 24 {
		t.Errorf("m00: got %v, want 24", a.M00)
	}
}

func TestComputeMoments_Degenerate(t *testing.T) {
	tests := [][]image.Point{
		nil,
		{{1, 1}},
		{{1, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
	}
	for _, pts := range tests {
		if m := ComputeMoments(pts); m != (Moments{}) {
			t.Errorf("ComputeMoments(%v): got %+v, want zero", pts, m)
		}
		if c := ComputeMoments(pts).Centroid(); c != (PointF{}) {
			t.Errorf("Centroid(%v): got %+v, want zero", pts, c)
		}
	}
}

func TestContour_Accessors(t *testing.T) {
	c := NewContour([]image.Point{{1, 2}, {5, 2}, {5, 7}})

	if c.Len() != 3 {
		t.Errorf("Len: got %d, want 3", c.Len())
	}
	if p := c.At(1); p != image.Pt(5, 2) {
		t.Errorf("At(1): got %v", p)
	}
	if v, err := c.Coord(2, AxisY); err != nil || v != 7 {
		t.Errorf("Coord(2, y): got %d, %v", v, err)
	}
	if _, err := c.Coord(0, Axis(2)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Coord bad axis: got %v, want ErrInvalidArgument", err)
	}
	if c.Area != 10 {
		t.Errorf("Area: got %v, want 10", c.Area)
	}

	if err := c.SetCoord(0, AxisX, 0); err != nil {
		t.Fatalf("SetCoord failed: %v", err)
	}
	if err := c.SetCoord(0, Axis(-1), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetCoord bad axis: got %v, want ErrInvalidArgument", err)
	}
	c.Set(1, image.Pt(6, 2))
	if c.Area != 10 {
		t.Errorf("Area changed before UpdateMoments: %v", c.Area)
	}
	c.UpdateMoments()
	if c.Area != 15 {
		t.Errorf("Area after UpdateMoments: got %v, want 15", c.Area)
	}
}

func TestContour_BoundingRect(t *testing.T) {
	c := NewContour([]image.Point{{3, 4}, {8, 1}, {5, 9}})
	if got := c.BoundingRect(); got != image.Rect(3, 1, 9, 10) {
		t.Errorf("got %v, want (3,1)-(9,10)", got)
	}
	if got := NewContour(nil).BoundingRect(); got != (image.Rectangle{}) {
		t.Errorf("empty contour: got %v", got)
	}
}

func TestScaleContourToRect(t *testing.T) {
	orig := []image.Point{{12, 15}, {20, 15}, {20, 25}}
	c := NewContour(append([]image.Point(nil), orig...))

	scaled := ScaleContourToRect(c, image.Rect(10, 10, 30, 30))

	want := []image.Point{{2, 5}, {10, 5}, {10, 15}}
	for i, p := range scaled.Points {
		if p != want[i] {
			t.Errorf("point %d: got %v, want %v", i, p, want[i])
		}
	}
	for i, p := range c.Points {
		if p != orig[i] {
			t.Errorf("input modified at %d: got %v, want %v", i, p, orig[i])
		}
	}
	if scaled.Area != c.Area {
		t.Errorf("area: got %v, want %v", scaled.Area, c.Area)
	}
	if got := scaled.Moments.Centroid(); math.Abs(got.X-(c.Moments.Centroid().X-10)) > 1e-9 {
		t.Errorf("centroid x: got %v", got.X)
	}
}

func TestFindContours_Block(t *testing.T) {
	img := createGray(5, 5, 0)
	fillRect(img, image.Rect(1, 1, 4, 4), 255)

	contours, err := FindContours(img)
	if err != nil {
		t.Fatalf("FindContours failed: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}

	want := []image.Point{{1, 1}, {1, 2}, {1, 3}, {2, 3}, {3, 3}, {3, 2}, {3, 1}, {2, 1}}
	c := contours[0]
	if c.Len() != len(want) {
		t.Fatalf("got %d points %v, want %v", c.Len(), c.Points, want)
	}
	for i, p := range want {
		if c.At(i) != p {
			t.Errorf("point %d: got %v, want %v", i, c.At(i), p)
		}
	}
	if c.Area != 4 {
		t.Errorf("area: got %v, want 4", c.Area)
	}
	if r := c.BoundingRect(); r != image.Rect(1, 1, 4, 4) {
		t.Errorf("bounding rect: got %v", r)
	}
}

func TestFindContours_SkipsRegionsInsideHoles(t *testing.T) {
	img := createGray(20, 16, 0)
	// Ring with a blob in its hole.
	fillRect(img, image.Rect(2, 2, 12, 12), 255)
	fillRect(img, image.Rect(4, 4, 10, 10), 0)
	fillRect(img, image.Rect(6, 6, 8, 8), 255)
	// Separate square and a single pixel.
	fillRect(img, image.Rect(14, 3, 18, 7), 255)
	img.SetGray(16, 13, color.Gray{255})

	contours, err := FindContours(img)
	if err != nil {
		t.Fatalf("FindContours failed: %v", err)
	}
	if len(contours) != 3 {
		t.Fatalf("got %d contours, want 3", len(contours))
	}

	wantRects := []image.Rectangle{
		image.Rect(2, 2, 12, 12),
		image.Rect(14, 3, 18, 7),
		image.Rect(16, 13, 17, 14),
	}
	for i, want := range wantRects {
		if got := contours[i].BoundingRect(); got != want {
			t.Errorf("contour %d: got %v, want %v", i, got, want)
		}
	}
	if contours[0].Area != 81 {
		t.Errorf("ring area: got %v, want 81", contours[0].Area)
	}
	if contours[2].Len() != 1 || contours[2].Area != 0 {
		t.Errorf("single pixel: got %d points, area %v", contours[2].Len(), contours[2].Area)
	}
}

func TestFindContours_Line(t *testing.T) {
	img := createGray(5, 3, 0)
	fillRect(img, image.Rect(1, 1, 4, 2), 255)

	contours, err := FindContours(img)
	if err != nil {
		t.Fatalf("FindContours failed: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	want := []image.Point{{1, 1}, {2, 1}, {3, 1}, {2, 1}}
	for i, p := range want {
		if contours[0].At(i) != p {
			t.Errorf("point %d: got %v, want %v", i, contours[0].At(i), p)
		}
	}
}

func TestFindContours_RegionTouchingFrame(t *testing.T) {
	img := createGray(6, 6, 0)
	fillRect(img, image.Rect(0, 0, 3, 6), 255)

	contours, err := FindContours(img)
	if err != nil {
		t.Fatalf("FindContours failed: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	if got := contours[0].BoundingRect(); got != image.Rect(0, 0, 3, 6) {
		t.Errorf("bounding rect: got %v", got)
	}
}

func TestFindContours_RejectsColor(t *testing.T) {
	_, err := FindContours(createColor(4, 4, color.RGBA{255, 255, 255, 255}))
	if !errors.Is(err, ErrNotGrayscale) {
		t.Errorf("got %v, want ErrNotGrayscale", err)
	}
}
