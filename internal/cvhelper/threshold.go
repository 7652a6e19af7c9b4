package cvhelper

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// ThresholdBinary sets samples above value to maxValue and all others to 0.
// Color images are thresholded per channel.
func ThresholdBinary(img image.Image, value, maxValue int) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	return splitPlanes(img).mapColor(func(p *image.Gray) *image.Gray {
		return thresholdPlane(p, value, maxValue, false)
	}).merge(), nil
}

// ThresholdToZero keeps samples above value and sets all others to 0.
// maxValue is accepted for symmetry with the other threshold operations and
// has no effect.
func ThresholdToZero(img image.Image, value, maxValue int) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	return splitPlanes(img).mapColor(func(p *image.Gray) *image.Gray {
		return thresholdPlane(p, value, maxValue, true)
	}).merge(), nil
}

// ThresholdOtsu binarizes a single-channel image at the level chosen by
// Otsu's method: samples above the level become maxValue, the rest 0.
func ThresholdOtsu(img image.Image, maxValue int) (*image.Gray, error) {
	g, level, err := otsu(img)
	if err != nil {
		return nil, err
	}
	return thresholdPlane(g, level, maxValue, false), nil
}

// ThresholdOtsuToZero zeroes the samples of a single-channel image that are
// at or below the Otsu level and keeps the rest.
func ThresholdOtsuToZero(img image.Image, maxValue int) (*image.Gray, error) {
	g, level, err := otsu(img)
	if err != nil {
		return nil, err
	}
	return thresholdPlane(g, level, maxValue, true), nil
}

// OtsuLevel returns the threshold Otsu's method picks for a single-channel
// image.
func OtsuLevel(img image.Image) (int, error) {
	_, level, err := otsu(img)
	return level, err
}

func otsu(img image.Image) (*image.Gray, int, error) {
	if err := checkImage(img); err != nil {
		return nil, 0, err
	}
	g, ok := asGray(img)
	if !ok {
		return nil, 0, ErrNotGrayscale
	}
	return g, otsuLevel(g), nil
}

// otsuLevel maximizes the between-class variance over the 256-bin histogram.
// Ties keep the lowest level.
func otsuLevel(g *image.Gray) int {
	var hist [256]float64
	for _, v := range g.Pix {
		hist[v]++
	}

	n := float64(len(g.Pix))
	mu := 0.0
	for i := range hist {
		hist[i] /= n
		mu += float64(i) * hist[i]
	}

	const eps = 1.1920929e-07
	q1, mu1 := 0.0, 0.0
	maxSigma, level := 0.0, 0
	for i, p := range hist {
		mu1 *= q1
		q1 += p
		q2 := 1 - q1
		if min(q1, q2) < eps || max(q1, q2) > 1-eps {
			continue
		}
		mu1 = (mu1 + float64(i)*p) / q1
		mu2 := (mu - q1*mu1) / q2
		sigma := q1 * q2 * (mu1 - mu2) * (mu1 - mu2)
		if sigma > maxSigma {
			maxSigma = sigma
			level = i
		}
	}
	return level
}

func thresholdPlane(src *image.Gray, value, maxValue int, toZero bool) *image.Gray {
	hi := saturate(float64(maxValue))

	var lut [256]uint8
	for i := range lut {
		if i > value {
			if toZero {
				lut[i] = uint8(i)
			} else {
				lut[i] = hi
			}
		}
	}

	dst := image.NewGray(src.Rect)
	parallel.Line(len(src.Pix), func(start, end int) {
		for i := start; i < end; i++ {
			dst.Pix[i] = lut[src.Pix[i]]
		}
	})
	return dst
}
