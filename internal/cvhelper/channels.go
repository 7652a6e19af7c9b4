package cvhelper

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// planes is an image split into 8-bit sample planes. A single-channel source
// yields one color plane and no alpha; anything else yields R, G and B color
// planes plus an alpha plane.
type planes struct {
	color []*image.Gray
	alpha *image.Gray
}

// asGray returns a copy of img with origin (0,0) if img is single-channel.
func asGray(img image.Image) (*image.Gray, bool) {
	switch src := img.(type) {
	case *image.Gray, *image.Gray16:
		b := src.Bounds()
		dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst, true
	}
	return nil, false
}

// isGray reports whether img is treated as single-channel.
func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}

// splitPlanes separates img into sample planes.
func splitPlanes(img image.Image) planes {
	if g, ok := asGray(img); ok {
		return planes{color: []*image.Gray{g}}
	}

	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	rect := image.Rect(0, 0, w, h)
	r, g, b, a := image.NewGray(rect), image.NewGray(rect), image.NewGray(rect), image.NewGray(rect)

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			si := y * src.Stride
			di := y * r.Stride
			for x := 0; x < w; x++ {
				r.Pix[di+x] = src.Pix[si+0]
				g.Pix[di+x] = src.Pix[si+1]
				b.Pix[di+x] = src.Pix[si+2]
				a.Pix[di+x] = src.Pix[si+3]
				si += 4
			}
		}
	})

	return planes{color: []*image.Gray{r, g, b}, alpha: a}
}

// single reports whether the planes came from a single-channel image.
func (p planes) single() bool {
	return len(p.color) == 1 && p.alpha == nil
}

// mapColor applies fn to every color plane. Alpha is shared, not copied.
func (p planes) mapColor(fn func(*image.Gray) *image.Gray) planes {
	out := planes{color: make([]*image.Gray, len(p.color)), alpha: p.alpha}
	for i, c := range p.color {
		out.color[i] = fn(c)
	}
	return out
}

// merge reassembles the planes into a *image.Gray or *image.NRGBA.
func (p planes) merge() image.Image {
	if p.single() {
		return p.color[0]
	}

	rect := p.color[0].Rect
	w, h := rect.Dx(), rect.Dy()
	dst := image.NewNRGBA(rect)
	r, g, b := p.color[0], p.color[1], p.color[2]

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			si := y * r.Stride
			di := y * dst.Stride
			for x := 0; x < w; x++ {
				dst.Pix[di+0] = r.Pix[si+x]
				dst.Pix[di+1] = g.Pix[si+x]
				dst.Pix[di+2] = b.Pix[si+x]
				if p.alpha != nil {
					dst.Pix[di+3] = p.alpha.Pix[si+x]
				} else {
					dst.Pix[di+3] = 0xff
				}
				di += 4
			}
		}
	})
	return dst
}

// redPlane extracts the R channel of an RGBA or NRGBA library result. Used to
// bring single-plane filter output back to *image.Gray.
func redPlane(img image.Image) *image.Gray {
	var pix []uint8
	var stride int
	var rect image.Rectangle
	switch src := img.(type) {
	case *image.RGBA:
		pix, stride, rect = src.Pix, src.Stride, src.Rect
	case *image.NRGBA:
		pix, stride, rect = src.Pix, src.Stride, src.Rect
	default:
		n := imaging.Clone(img)
		pix, stride, rect = n.Pix, n.Stride, n.Rect
	}

	w, h := rect.Dx(), rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			si := y * stride
			di := y * dst.Stride
			for x := 0; x < w; x++ {
				dst.Pix[di+x] = pix[si]
				si += 4
			}
		}
	})
	return dst
}

func saturate(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
