package cvhelper

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
)

// Default parameters shared by the blur and threshold operations.
const (
	DefaultKernelSize = 3
	DefaultMaxValue   = 255
)

// smallGaussian holds the fixed binomial kernels used for sizes up to 7 when
// sigma is derived from the kernel size.
var smallGaussian = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// BlurGaussian smooths img with a kernelSize x kernelSize Gaussian kernel.
// kernelSize must be odd and positive. A sigmaX <= 0 is derived from the
// kernel size as 0.3*((kernelSize-1)*0.5-1)+0.8; a sigmaY <= 0 reuses sigmaX.
func BlurGaussian(img image.Image, kernelSize int, sigmaX, sigmaY float64) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if err := CheckGaussianKernel(kernelSize); err != nil {
		return nil, err
	}
	return splitPlanes(img).mapColor(func(p *image.Gray) *image.Gray {
		return active.gaussian(p, kernelSize, sigmaX, sigmaY)
	}).merge(), nil
}

// BlurMedian replaces every sample with the median of its kernelSize x
// kernelSize neighbourhood. kernelSize must be odd and greater than 1.
// Borders are replicated.
func BlurMedian(img image.Image, kernelSize int) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if err := CheckMedianKernel(kernelSize); err != nil {
		return nil, err
	}
	return splitPlanes(img).mapColor(func(p *image.Gray) *image.Gray {
		return active.median(p, kernelSize)
	}).merge(), nil
}

// CheckGaussianKernel reports whether size is a valid BlurGaussian kernel.
func CheckGaussianKernel(size int) error {
	if size < 1 || size%2 == 0 {
		return fmt.Errorf("gaussian kernel size %d must be odd and positive: %w", size, ErrInvalidArgument)
	}
	return nil
}

// CheckMedianKernel reports whether size is a valid BlurMedian kernel.
func CheckMedianKernel(size int) error {
	if size < 3 || size%2 == 0 {
		return fmt.Errorf("median kernel size %d must be odd and > 1: %w", size, ErrInvalidArgument)
	}
	return nil
}

// gaussianKernel returns a normalized 1-D Gaussian kernel.
func gaussianKernel(size int, sigma float64) []float64 {
	if sigma <= 0 {
		if k, ok := smallGaussian[size]; ok {
			return k
		}
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}

	k := make([]float64, size)
	center := float64(size-1) / 2
	sum := 0.0
	for i := range k {
		x := float64(i) - center
		k[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

func gaussianPlane(src *image.Gray, size int, sigmaX, sigmaY float64) *image.Gray {
	if sigmaY <= 0 {
		sigmaY = sigmaX
	}
	kx := gaussianKernel(size, sigmaX)
	ky := gaussianKernel(size, sigmaY)

	k := convolution.NewKernel(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			k.Matrix[y*size+x] = kx[x] * ky[y]
		}
	}

	// Bias 0.5 turns the library's truncation into rounding.
	out := convolution.Convolve(src, k, &convolution.Options{Bias: 0.5, KeepAlpha: true})
	return redPlane(out)
}

func medianPlane(src *image.Gray, size int) *image.Gray {
	return redPlane(effect.Median(src, float64(size/2)))
}
