package cvhelper

import "image"

// backend implements the plane-level primitives that the exported operations
// are built from. Every method takes a single 8-bit plane with origin (0,0)
// and returns a new plane of the same size.
type backend interface {
	name() string
	erode(src *image.Gray, shape MorphShape, size int) *image.Gray
	dilate(src *image.Gray, shape MorphShape, size int) *image.Gray
	gaussian(src *image.Gray, size int, sigmaX, sigmaY float64) *image.Gray
	median(src *image.Gray, size int) *image.Gray
	canny(src *image.Gray, low, high float64) *image.Gray
	warpAffine(src *image.Gray, m Affine) *image.Gray
	findContours(src *image.Gray) [][]image.Point
}

// active is replaced at init time when the gocv build tag is set.
var active backend = goBackend{}

// Backend returns the name of the active backend: "go" or "gocv".
func Backend() string {
	return active.name()
}

// goBackend implements the primitives with bild, imaging and x/image.
type goBackend struct{}

func (goBackend) name() string { return "go" }

func (goBackend) erode(src *image.Gray, shape MorphShape, size int) *image.Gray {
	return morphPlane(src, shape, size, false)
}

func (goBackend) dilate(src *image.Gray, shape MorphShape, size int) *image.Gray {
	return morphPlane(src, shape, size, true)
}

func (goBackend) gaussian(src *image.Gray, size int, sigmaX, sigmaY float64) *image.Gray {
	return gaussianPlane(src, size, sigmaX, sigmaY)
}

func (goBackend) median(src *image.Gray, size int) *image.Gray {
	return medianPlane(src, size)
}

func (goBackend) canny(src *image.Gray, low, high float64) *image.Gray {
	return cannyPlane(src, low, high)
}

func (goBackend) warpAffine(src *image.Gray, m Affine) *image.Gray {
	return warpPlane(src, m)
}

func (goBackend) findContours(src *image.Gray) [][]image.Point {
	return traceOuterBorders(src)
}
