// Package cvhelper provides small, parameterized image-processing operations:
// morphology, color conversion, blurring, thresholding, edge detection,
// contours and rotation.
//
// Every operation takes a standard image.Image, validates it, delegates the
// numeric work to an image library and returns a new image. The input is
// never modified.
//
// # Image Model
//
// A *image.Gray (or *image.Gray16) input is treated as a single-channel
// image and single-channel results are returned as *image.Gray. Any other
// input is treated as an R, G, B image with an alpha channel; results are
// returned as *image.NRGBA and the alpha channel is carried through.
// Results always have their origin at (0,0).
//
// Color-space conversions (HSV, HLS, XYZ, Luv) return *image.NRGBA whose R,
// G and B bytes hold the three converted channels in order, using the usual
// 8-bit computer-vision encodings:
//   - HSV: H = hue/2 (0-179), S and V scaled to 0-255
//   - HLS: H = hue/2 (0-179), L and S scaled to 0-255
//   - XYZ: linear transform of the 8-bit RGB values, saturated to 0-255
//   - Luv: L*255/100, (u+134)*255/354, (v+140)*255/262
//
// # Backends
//
// The plane-level primitives (erosion, dilation, gaussian and median
// filters, Canny, affine warp, contour tracing) run on a pure Go backend
// built from bild, imaging and golang.org/x/image. Building with the gocv
// tag routes them to OpenCV through gocv instead. Backend reports which one
// is active.
//
// # Errors
//
// Operations return ErrEmptyImage for nil or zero-sized images,
// ErrInvalidArgument (wrapped with detail) for out-of-range parameters and
// ErrNotGrayscale when a single-channel image is required. Use errors.Is to
// test for them.
package cvhelper
