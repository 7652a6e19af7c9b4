package cvhelper

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Canny finds edges with the Canny detector and returns a binary image with
// 255 on edge pixels and 0 elsewhere.
//
// Gradients come from 3x3 Sobel operators and their magnitude uses the L2
// norm sqrt(Gx² + Gy²), so thresholds are in gradient units (a full black to
// white step measures 1020). Pixels above high are strong edges; pixels above
// low are kept only when 8-connected to a strong edge. Color input is
// converted to gray first. Swapped thresholds are reordered.
func Canny(img image.Image, low, high float64) (*image.Gray, error) {
	gray, err := ToGray(img)
	if err != nil {
		return nil, err
	}
	if low > high {
		low, high = high, low
	}
	return active.canny(gray, low, high), nil
}

// cannyPlane runs Sobel gradients, non-maximum suppression and hysteresis on
// a gray plane. The Sobel border is reflected without repeating the edge
// pixel, and magnitudes outside the frame count as 0 during suppression.
func cannyPlane(src *image.Gray, low, high float64) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)

	at := func(x, y int) float64 {
		return float64(src.Pix[reflect101(y, h)*src.Stride+reflect101(x, w)])
	}

	magnitude := make([]float64, w*h)
	direction := make([]uint8, w*h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				gx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
					at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
				gy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
					at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
				magnitude[y*w+x] = math.Sqrt(gx*gx + gy*gy)
				direction[y*w+x] = sector(gx, gy)
			}
		}
	})

	// Neighbor offsets along the gradient for each sector:
	// horizontal, rising diagonal, vertical, falling diagonal.
	offsets := [4][2]int{{1, 0}, {1, -1}, {0, 1}, {1, 1}}

	const (
		none = iota
		weak
		strong
	)
	magAt := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return magnitude[y*w+x]
	}

	class := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			mag := magnitude[i]
			if mag <= low {
				continue
			}
			o := offsets[direction[i]]
			prev := magAt(x-o[0], y-o[1])
			next := magAt(x+o[0], y+o[1])
			// Strict on one side so a plateau two pixels wide yields one edge.
			if mag > prev && mag >= next {
				if mag > high {
					class[i] = strong
				} else {
					class[i] = weak
				}
			}
		}
	}

	// Hysteresis: grow strong edges through weak neighbours.
	stack := make([]int, 0, 64)
	for i, c := range class {
		if c == strong {
			stack = append(stack, i)
			dst.Pix[(i/w)*dst.Stride+i%w] = 255
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if class[j] == weak {
					class[j] = strong
					dst.Pix[ny*dst.Stride+nx] = 255
					stack = append(stack, j)
				}
			}
		}
	}
	return dst
}

// sector quantizes a gradient direction into one of four undirected bins.
func sector(gx, gy float64) uint8 {
	angle := math.Atan2(gy, gx)
	if angle < 0 {
		angle += math.Pi
	}
	switch {
	case angle < math.Pi/8 || angle >= 7*math.Pi/8:
		return 0
	case angle < 3*math.Pi/8:
		return 3
	case angle < 5*math.Pi/8:
		return 2
	default:
		return 1
	}
}

// reflect101 maps i into [0, n) by mirroring about the first and last
// index, so -1 maps to 1 and n maps to n-2.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}
