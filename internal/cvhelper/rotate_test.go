package cvhelper

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestRotationMatrix(t *testing.T) {
	tests := []struct {
		name   string
		center PointF
		angle  float64
		scale  float64
		want   Affine
	}{
		{"identity", PointF{3, 4}, 0, 1, Affine{1, 0, 0, 0, 1, 0}},
		{"scale", PointF{3, 4}, 0, 2, Affine{2, 0, -3, 0, 2, -4}},
		{"quarter turn", PointF{2, 2}, 90, 1, Affine{0, 1, 0, -1, 0, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotationMatrix(tt.center, tt.angle, tt.scale)
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestRotateImage_QuarterTurn(t *testing.T) {
	img := createGray(5, 5, 0)
	img.SetGray(4, 2, color.Gray{255})

	out, err := RotateImage(img, PointF{2, 2}, 90, 1, Degrees)
	if err != nil {
		t.Fatalf("RotateImage failed: %v", err)
	}
	if out.Bounds() != img.Bounds() {
		t.Errorf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}
	if got := grayAt(t, out, 2, 0); got < 250 {
		t.Errorf("marker: got %d at (2,0), want ~255", got)
	}
	if got := grayAt(t, out, 4, 2); got > 5 {
		t.Errorf("old marker position: got %d, want ~0", got)
	}
}

func TestRotateImage_RadiansMatchDegrees(t *testing.T) {
	img := createStep(9, 9, 4, 20, 220)

	a, err := RotateImage(img, PointF{4, 4}, math.Pi/6, 1, Radians)
	if err != nil {
		t.Fatalf("RotateImage failed: %v", err)
	}
	b, err := RotateImage(img, PointF{4, 4}, 30, 1, Degrees)
	if err != nil {
		t.Fatalf("RotateImage failed: %v", err)
	}
	ga, gb := a.(*image.Gray), b.(*image.Gray)
	for i := range ga.Pix {
		if absInt(int(ga.Pix[i])-int(gb.Pix[i])) > 1 {
			t.Fatalf("results differ at index %d: %d vs %d", i, ga.Pix[i], gb.Pix[i])
		}
	}
}

func TestRotateImage_UncoveredCornersAreZero(t *testing.T) {
	img := createColor(9, 9, color.RGBA{200, 100, 50, 255})

	out, err := RotateImage(img, PointF{4, 4}, 45, 1, Degrees)
	if err != nil {
		t.Fatalf("RotateImage failed: %v", err)
	}
	if c := nrgbaAt(t, out, 0, 0); c.A != 0 {
		t.Errorf("corner alpha: got %d, want 0", c.A)
	}
	c := nrgbaAt(t, out, 4, 4)
	if absInt(int(c.R)-200) > 1 || absInt(int(c.G)-100) > 1 || c.A < 254 {
		t.Errorf("center: got %+v, want ~{200 100 50 255}", c)
	}
}

func TestRotateImage_ZeroScale(t *testing.T) {
	_, err := RotateImage(createGray(3, 3, 0), PointF{1, 1}, 10, 0, Degrees)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestWarpAffine_Translation(t *testing.T) {
	img := createGray(6, 6, 0)
	img.SetGray(1, 1, color.Gray{180})

	out, err := WarpAffine(img, Affine{1, 0, 2, 0, 1, 3})
	if err != nil {
		t.Fatalf("WarpAffine failed: %v", err)
	}
	if got := grayAt(t, out, 3, 4); got != 180 {
		t.Errorf("moved pixel: got %d, want 180", got)
	}
	if got := grayAt(t, out, 1, 1); got != 0 {
		t.Errorf("old position: got %d, want 0", got)
	}
}

func TestParseAngleUnit(t *testing.T) {
	tests := []struct {
		name    string
		want    AngleUnit
		wantErr bool
	}{
		{"", Radians, false},
		{"rad", Radians, false},
		{"radians", Radians, false},
		{"deg", Degrees, false},
		{"degrees", Degrees, false},
		{"turns", Radians, true},
	}
	for _, tt := range tests {
		got, err := ParseAngleUnit(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAngleUnit(%q): err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseAngleUnit(%q): got %v, want %v", tt.name, got, tt.want)
		}
	}
}
