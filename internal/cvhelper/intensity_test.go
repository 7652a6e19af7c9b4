package cvhelper

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNormalize_StretchesGray(t *testing.T) {
	img := createStep(4, 2, 2, 50, 100)

	out, err := Normalize(img, 0, 255)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got := grayAt(t, out, 0, 0); got != 0 {
		t.Errorf("dark side: got %d, want 0", got)
	}
	if got := grayAt(t, out, 3, 1); got != 255 {
		t.Errorf("bright side: got %d, want 255", got)
	}
}

func TestNormalize_SwappedBounds(t *testing.T) {
	img := createStep(4, 2, 2, 0, 200)

	out, err := Normalize(img, 100, 10)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got := grayAt(t, out, 0, 0); got != 10 {
		t.Errorf("dark side: got %d, want 10", got)
	}
	if got := grayAt(t, out, 3, 0); got != 100 {
		t.Errorf("bright side: got %d, want 100", got)
	}
}

func TestNormalize_FlatImage(t *testing.T) {
	out, err := Normalize(createGray(3, 3, 77), 20, 200)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	for _, v := range out.(*image.Gray).Pix {
		if v != 20 {
			t.Fatalf("got %d, want 20", v)
		}
	}
}

func TestNormalize_ColorSharesRange(t *testing.T) {
	img := createColor(2, 1, color.RGBA{100, 150, 200, 255})
	img.SetRGBA(1, 0, color.RGBA{150, 150, 150, 255})

	out, err := Normalize(img, 0, 100)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	c := nrgbaAt(t, out, 0, 0)
	if c.R != 0 || c.G != 50 || c.B != 100 {
		t.Errorf("got %+v, want R=0 G=50 B=100", c)
	}
	if c.A != 255 {
		t.Errorf("alpha: got %d, want 255", c.A)
	}
}

func TestResize_Dimensions(t *testing.T) {
	img := createGray(10, 8, 100)

	tests := []struct {
		factor      float64
		wantW, wantH int
	}{
		{2, 5, 4},
		{0.5, 20, 16},
		{3, 3, 3},
		{100, 1, 1},
	}
	for _, tt := range tests {
		out, err := Resize(img, tt.factor)
		if err != nil {
			t.Fatalf("Resize(%v) failed: %v", tt.factor, err)
		}
		b := out.Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("Resize(%v): got %dx%d, want %dx%d", tt.factor, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestResize_KeepsGrayAndValue(t *testing.T) {
	out, err := Resize(createGray(10, 10, 100), 2)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if got := grayAt(t, out, 2, 2); absInt(int(got)-100) > 1 {
		t.Errorf("got %d, want ~100", got)
	}
}

func TestResize_InvalidFactor(t *testing.T) {
	for _, f := range []float64{0, -1} {
		if _, err := Resize(createGray(4, 4, 0), f); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Resize(%v): got %v, want ErrInvalidArgument", f, err)
		}
	}
}

func TestResize_OutputTooLarge(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		factor float64
	}{
		{"tiny factor", 100, 100, 1e-9},
		{"too wide", 100, 1, 1.0 / 1000},
		{"too many pixels", 100, 100, 1.0 / 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resize(createGray(tt.w, tt.h, 0), tt.factor)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}
