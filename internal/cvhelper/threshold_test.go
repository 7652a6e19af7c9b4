package cvhelper

import (
	"errors"
	"image/color"
	"testing"
)

func TestThresholdBinary(t *testing.T) {
	img := createGray(4, 1, 0)
	for x, v := range []uint8{10, 100, 101, 250} {
		img.SetGray(x, 0, color.Gray{v})
	}

	out, err := ThresholdBinary(img, 100, 200)
	if err != nil {
		t.Fatalf("ThresholdBinary failed: %v", err)
	}
	for x, want := range []uint8{0, 0, 200, 200} {
		if got := grayAt(t, out, x, 0); got != want {
			t.Errorf("x=%d: got %d, want %d", x, got, want)
		}
	}
}

func TestThresholdToZero(t *testing.T) {
	img := createGray(3, 1, 0)
	for x, v := range []uint8{50, 128, 129} {
		img.SetGray(x, 0, color.Gray{v})
	}

	out, err := ThresholdToZero(img, 128, DefaultMaxValue)
	if err != nil {
		t.Fatalf("ThresholdToZero failed: %v", err)
	}
	for x, want := range []uint8{0, 0, 129} {
		if got := grayAt(t, out, x, 0); got != want {
			t.Errorf("x=%d: got %d, want %d", x, got, want)
		}
	}
}

func TestThresholdBinary_ColorPerChannel(t *testing.T) {
	out, err := ThresholdBinary(createColor(2, 2, color.RGBA{200, 50, 150, 255}), 100, 255)
	if err != nil {
		t.Fatalf("ThresholdBinary failed: %v", err)
	}
	c := nrgbaAt(t, out, 0, 0)
	if c.R != 255 || c.G != 0 || c.B != 255 || c.A != 255 {
		t.Errorf("got %+v, want {255 0 255 255}", c)
	}
}

func TestOtsuLevel_Bimodal(t *testing.T) {
	level, err := OtsuLevel(createStep(20, 10, 10, 50, 200))
	if err != nil {
		t.Fatalf("OtsuLevel failed: %v", err)
	}
	if level < 50 || level >= 200 {
		t.Errorf("level %d does not separate 50 from 200", level)
	}
}

func TestThresholdOtsu_Binarizes(t *testing.T) {
	img := createStep(20, 10, 10, 40, 180)
	img.SetGray(0, 0, color.Gray{45})
	img.SetGray(19, 9, color.Gray{175})

	out, err := ThresholdOtsu(img, 255)
	if err != nil {
		t.Fatalf("ThresholdOtsu failed: %v", err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			want := uint8(0)
			if x >= 10 {
				want = 255
			}
			if got := out.GrayAt(x, y).Y; got != want {
				t.Fatalf("(%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestThresholdOtsuToZero_KeepsBrightSamples(t *testing.T) {
	out, err := ThresholdOtsuToZero(createStep(20, 10, 10, 40, 180), 255)
	if err != nil {
		t.Fatalf("ThresholdOtsuToZero failed: %v", err)
	}
	if got := out.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("dark side: got %d, want 0", got)
	}
	if got := out.GrayAt(15, 5).Y; got != 180 {
		t.Errorf("bright side: got %d, want 180", got)
	}
}

func TestOtsu_FlatImage(t *testing.T) {
	level, err := OtsuLevel(createGray(5, 5, 90))
	if err != nil {
		t.Fatalf("OtsuLevel failed: %v", err)
	}
	if level != 0 {
		t.Errorf("got %d, want 0", level)
	}
}

func TestOtsu_RejectsColor(t *testing.T) {
	img := createColor(3, 3, color.RGBA{1, 2, 3, 255})
	if _, err := ThresholdOtsu(img, 255); !errors.Is(err, ErrNotGrayscale) {
		t.Errorf("ThresholdOtsu: got %v, want ErrNotGrayscale", err)
	}
	if _, err := OtsuLevel(img); !errors.Is(err, ErrNotGrayscale) {
		t.Errorf("OtsuLevel: got %v, want ErrNotGrayscale", err)
	}
}
