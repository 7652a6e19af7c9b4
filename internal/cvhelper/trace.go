package cvhelper

import "image"

// neighbours lists the 8-neighbourhood counter-clockwise on screen, starting
// east. Index arithmetic mod 8 rotates around a pixel.
var neighbours = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

const west = 4

// traceOuterBorders returns the outer border of every outermost 8-connected
// foreground region, in raster order of the region's first pixel.
func traceOuterBorders(src *image.Gray) [][]image.Point {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	fg := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && src.Pix[y*src.Stride+x] != 0
	}

	outside := outerBackground(src)
	seen := make([]bool, w*h)
	var borders [][]image.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if seen[y*w+x] || !fg(x, y) {
				continue
			}
			// The first pixel of a region has background to its left; the
			// region is outermost when that background reaches the frame.
			external := x == 0 || outside[y*w+x-1]
			markRegion(src, seen, x, y)
			if external {
				borders = append(borders, followBorder(fg, image.Pt(x, y)))
			}
		}
	}
	return borders
}

// followBorder walks the outer border starting at the top-left pixel p0 of a
// region, whose west neighbour is background.
func followBorder(fg func(x, y int) bool, p0 image.Point) []image.Point {
	on := func(p image.Point) bool { return fg(p.X, p.Y) }

	// Search clockwise from west for the first foreground neighbour.
	var p1 image.Point
	found := false
	for k := 0; k < 8; k++ {
		q := p0.Add(neighbours[(west-k+8)%8])
		if on(q) {
			p1, found = q, true
			break
		}
	}
	if !found {
		return []image.Point{p0}
	}

	points := []image.Point{p0}
	prev, cur := p1, p0
	for {
		d := direction(cur, prev)
		var next image.Point
		for k := 1; k <= 8; k++ {
			q := cur.Add(neighbours[(d+k)%8])
			if on(q) {
				next = q
				break
			}
		}
		if next == p0 && cur == p1 {
			return points
		}
		points = append(points, next)
		prev, cur = cur, next
	}
}

// direction returns the neighbours index of b as seen from a.
func direction(a, b image.Point) int {
	d := b.Sub(a)
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return 0
}

// markRegion flags every pixel of the 8-connected region containing (x, y).
func markRegion(src *image.Gray, seen []bool, x, y int) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	stack := []image.Point{{x, y}}
	seen[y*w+x] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range neighbours {
			q := p.Add(n)
			if q.X < 0 || q.Y < 0 || q.X >= w || q.Y >= h {
				continue
			}
			i := q.Y*w + q.X
			if !seen[i] && src.Pix[q.Y*src.Stride+q.X] != 0 {
				seen[i] = true
				stack = append(stack, q)
			}
		}
	}
}

// outerBackground flags the zero samples 4-connected to the image frame.
func outerBackground(src *image.Gray) []bool {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := make([]bool, w*h)
	var stack []image.Point
	push := func(x, y int) {
		i := y*w + x
		if !out[i] && src.Pix[y*src.Stride+x] == 0 {
			out[i] = true
			stack = append(stack, image.Pt(x, y))
		}
	}
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.X > 0 {
			push(p.X-1, p.Y)
		}
		if p.X < w-1 {
			push(p.X+1, p.Y)
		}
		if p.Y > 0 {
			push(p.X, p.Y-1)
		}
		if p.Y < h-1 {
			push(p.X, p.Y+1)
		}
	}
	return out
}
