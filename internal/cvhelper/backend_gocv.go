//go:build gocv
// +build gocv

package cvhelper

import (
	"image"
	"log"

	"gocv.io/x/gocv"
)

func init() {
	active = gocvBackend{}
}

// gocvBackend routes the plane primitives to OpenCV. Planes go in as
// single-channel 8-bit Mats and come back as *image.Gray.
type gocvBackend struct{}

func (gocvBackend) name() string { return "gocv" }

var morphShapes = map[MorphShape]gocv.MorphShape{
	MorphRect:    gocv.MorphRect,
	MorphCross:   gocv.MorphCross,
	MorphEllipse: gocv.MorphEllipse,
}

func (g gocvBackend) erode(src *image.Gray, shape MorphShape, size int) *image.Gray {
	return g.morph(src, shape, size, false)
}

func (g gocvBackend) dilate(src *image.Gray, shape MorphShape, size int) *image.Gray {
	return g.morph(src, shape, size, true)
}

func (gocvBackend) morph(src *image.Gray, shape MorphShape, size int, dilate bool) *image.Gray {
	return withMat(src, func(in gocv.Mat, out *gocv.Mat) {
		kernel := gocv.GetStructuringElement(morphShapes[shape], image.Pt(size, size))
		defer kernel.Close()
		if dilate {
			gocv.Dilate(in, out, kernel)
		} else {
			gocv.Erode(in, out, kernel)
		}
	})
}

func (gocvBackend) gaussian(src *image.Gray, size int, sigmaX, sigmaY float64) *image.Gray {
	if sigmaX < 0 {
		sigmaX = 0
	}
	if sigmaY < 0 {
		sigmaY = 0
	}
	return withMat(src, func(in gocv.Mat, out *gocv.Mat) {
		gocv.GaussianBlur(in, out, image.Pt(size, size), sigmaX, sigmaY, gocv.BorderDefault)
	})
}

func (gocvBackend) median(src *image.Gray, size int) *image.Gray {
	return withMat(src, func(in gocv.Mat, out *gocv.Mat) {
		gocv.MedianBlur(in, out, size)
	})
}

// canny uses OpenCV's default L1 gradient norm; gocv does not expose the L2
// switch.
func (gocvBackend) canny(src *image.Gray, low, high float64) *image.Gray {
	return withMat(src, func(in gocv.Mat, out *gocv.Mat) {
		gocv.Canny(in, out, float32(low), float32(high))
	})
}

func (gocvBackend) warpAffine(src *image.Gray, m Affine) *image.Gray {
	return withMat(src, func(in gocv.Mat, out *gocv.Mat) {
		mat := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
		defer mat.Close()
		for i, v := range m {
			mat.SetDoubleAt(i/3, i%3, v)
		}
		gocv.WarpAffine(in, out, mat, image.Pt(src.Rect.Dx(), src.Rect.Dy()))
	})
}

func (gocvBackend) findContours(src *image.Gray) [][]image.Point {
	mat, err := gocv.ImageGrayToMatGray(src)
	if err != nil {
		log.Printf("gocv: contour input conversion failed, using go backend: %v", err)
		return traceOuterBorders(src)
	}
	defer mat.Close()

	found := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer found.Close()

	borders := make([][]image.Point, found.Size())
	for i := range borders {
		borders[i] = found.At(i).ToPoints()
	}
	return borders
}

// withMat converts src to a Mat, runs fn and converts the result back. A
// conversion failure is logged and yields an unmodified copy of src.
func withMat(src *image.Gray, fn func(in gocv.Mat, out *gocv.Mat)) *image.Gray {
	in, err := gocv.ImageGrayToMatGray(src)
	if err != nil {
		log.Printf("gocv: input conversion failed: %v", err)
		return clonePlane(src)
	}
	defer in.Close()

	out := gocv.NewMat()
	defer out.Close()
	fn(in, &out)

	img, err := out.ToImage()
	if err != nil {
		log.Printf("gocv: output conversion failed: %v", err)
		return clonePlane(src)
	}
	if g, ok := asGray(img); ok {
		return g
	}
	return redPlane(img)
}
