package cvhelper

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestToGray_Luminance(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want uint8
	}{
		{"red", color.RGBA{255, 0, 0, 255}, 76},
		{"green", color.RGBA{0, 255, 0, 255}, 150},
		{"blue", color.RGBA{0, 0, 255, 255}, 29},
		{"white", color.RGBA{255, 255, 255, 255}, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ToGray(createColor(2, 2, tt.c))
			if err != nil {
				t.Fatalf("ToGray failed: %v", err)
			}
			if got := g.GrayAt(1, 1).Y; got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToGray_GrayInputIsCopied(t *testing.T) {
	img := createGray(3, 3, 42)
	g, err := ToGray(img)
	if err != nil {
		t.Fatalf("ToGray failed: %v", err)
	}
	g.Pix[0] = 0
	if img.Pix[0] != 42 {
		t.Error("ToGray returned the input instead of a copy")
	}
}

func TestToHSV(t *testing.T) {
	tests := []struct {
		name    string
		c       color.RGBA
		h, s, v uint8
	}{
		{"red", color.RGBA{255, 0, 0, 255}, 0, 255, 255},
		{"green", color.RGBA{0, 255, 0, 255}, 60, 255, 255},
		{"blue", color.RGBA{0, 0, 255, 255}, 120, 255, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0, 0, 0},
		{"hue wraps to zero", color.RGBA{255, 0, 1, 255}, 0, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ToHSV(createColor(1, 1, tt.c))
			if err != nil {
				t.Fatalf("ToHSV failed: %v", err)
			}
			c := out.NRGBAAt(0, 0)
			if c.R != tt.h || c.G != tt.s || c.B != tt.v {
				t.Errorf("got (%d,%d,%d), want (%d,%d,%d)", c.R, c.G, c.B, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestToHLS_Red(t *testing.T) {
	out, err := ToHLS(createColor(1, 1, color.RGBA{255, 0, 0, 255}))
	if err != nil {
		t.Fatalf("ToHLS failed: %v", err)
	}
	c := out.NRGBAAt(0, 0)
	if c.R != 0 || absInt(int(c.G)-128) > 1 || c.B != 255 {
		t.Errorf("got (%d,%d,%d), want (0,~128,255)", c.R, c.G, c.B)
	}
}

func TestToHLS_HueWraps(t *testing.T) {
	out, err := ToHLS(createColor(1, 1, color.RGBA{255, 0, 1, 255}))
	if err != nil {
		t.Fatalf("ToHLS failed: %v", err)
	}
	if h := out.NRGBAAt(0, 0).R; h != 0 {
		t.Errorf("H = %d, want 0", h)
	}
}

func TestToXYZ_White(t *testing.T) {
	out, err := ToXYZ(createColor(1, 1, color.RGBA{255, 255, 255, 255}))
	if err != nil {
		t.Fatalf("ToXYZ failed: %v", err)
	}
	c := out.NRGBAAt(0, 0)
	if absInt(int(c.R)-242) > 1 || c.G != 255 || c.B != 255 {
		t.Errorf("got (%d,%d,%d), want (~242,255,255)", c.R, c.G, c.B)
	}
}

func TestToLuv_WhiteAndBlack(t *testing.T) {
	out, err := ToLuv(createColor(1, 1, color.RGBA{255, 255, 255, 255}))
	if err != nil {
		t.Fatalf("ToLuv failed: %v", err)
	}
	c := out.NRGBAAt(0, 0)
	if c.R != 255 || absInt(int(c.G)-97) > 1 || absInt(int(c.B)-136) > 1 {
		t.Errorf("white: got (%d,%d,%d), want (255,~97,~136)", c.R, c.G, c.B)
	}

	out, err = ToLuv(createColor(1, 1, color.RGBA{0, 0, 0, 255}))
	if err != nil {
		t.Fatalf("ToLuv failed: %v", err)
	}
	if c := out.NRGBAAt(0, 0); c.R != 0 {
		t.Errorf("black: got L=%d, want 0", c.R)
	}
}

func TestConvert_Dispatch(t *testing.T) {
	img := createColor(2, 2, color.RGBA{10, 20, 30, 255})

	for _, space := range []ColorSpace{SpaceHSV, SpaceHLS, SpaceXYZ, SpaceLuv} {
		out, err := Convert(img, space)
		if err != nil {
			t.Fatalf("Convert(%s) failed: %v", space, err)
		}
		if _, ok := out.(*image.NRGBA); !ok {
			t.Errorf("Convert(%s): got %T, want *image.NRGBA", space, out)
		}
	}

	out, err := Convert(img, SpaceGray)
	if err != nil {
		t.Fatalf("Convert(gray) failed: %v", err)
	}
	if _, ok := out.(*image.Gray); !ok {
		t.Errorf("Convert(gray): got %T, want *image.Gray", out)
	}

	if _, err := Convert(img, "lab"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Convert(lab): got %v, want ErrInvalidArgument", err)
	}
}

func TestConvert_EmptyImageHasNoTypedNil(t *testing.T) {
	out, err := Convert(nil, SpaceHSV)
	if !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("got %v, want ErrEmptyImage", err)
	}
	if out != nil {
		t.Errorf("got %#v, want nil interface", out)
	}
}
