package cvhelper

import (
	"image"
	"image/color"
	"testing"
)

// createGray creates a single-channel image filled with v.
func createGray(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// createColor creates an opaque RGBA image filled with c.
func createColor(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// createStep creates a gray image that is lo left of column split and hi
// from split onwards.
func createStep(width, height, split int, lo, hi uint8) *image.Gray {
	img := createGray(width, height, lo)
	for y := 0; y < height; y++ {
		for x := split; x < width; x++ {
			img.SetGray(x, y, color.Gray{hi})
		}
	}
	return img
}

// fillRect sets every pixel of r to v.
func fillRect(img *image.Gray, r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{v})
		}
	}
}

func grayAt(t *testing.T, img image.Image, x, y int) uint8 {
	t.Helper()
	g, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", img)
	}
	return g.GrayAt(x, y).Y
}

func nrgbaAt(t *testing.T, img image.Image, x, y int) color.NRGBA {
	t.Helper()
	n, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("expected *image.NRGBA, got %T", img)
	}
	return n.NRGBAAt(x, y)
}

func countNonZero(g *image.Gray) int {
	n := 0
	for _, v := range g.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
