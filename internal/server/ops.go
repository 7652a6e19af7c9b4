package server

import (
	"encoding/json"
	"image"

	"github.com/ironsheep/cvhelper-mcp/internal/cvhelper"
	"github.com/ironsheep/cvhelper-mcp/internal/imaging"
)

// imageOp decodes and checks an operation's arguments and returns the step
// that applies it. Fields that belong to other operations are ignored.
// Errors from imageOp never depend on the image; those come from the step.
type imageOp func(args json.RawMessage) (imageStep, error)

// imageStep transforms one image.
type imageStep func(img image.Image) (image.Image, error)

// imageOps holds the operations available to the cv_* tools and to
// cv_pipeline steps.
var imageOps = map[string]imageOp{
	"crop":          opCrop,
	"dilate":        opDilate,
	"erode":         opErode,
	"morph_open":    opMorphOpen,
	"morph_close":   opMorphClose,
	"normalize":     opNormalize,
	"resize":        opResize,
	"convert_color": opConvertColor,
	"blur_gaussian": opBlurGaussian,
	"blur_median":   opBlurMedian,
	"threshold":     opThreshold,
	"canny":         opCanny,
	"rotate":        opRotate,
}

// Threshold modes accepted by cv_threshold.
const (
	ModeBinary     = "binary"
	ModeToZero     = "tozero"
	ModeOtsu       = "otsu"
	ModeOtsuToZero = "otsu_tozero"
)

type cropArgs struct {
	Region json.RawMessage `json:"region"`
}

func opCrop(args json.RawMessage) (imageStep, error) {
	var a cropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Region) == 0 {
		return nil, invalidParams("region is required")
	}
	return func(img image.Image) (image.Image, error) {
		rect, err := parseRegion(a.Region, img.Bounds())
		if err != nil {
			return nil, err
		}
		return imaging.Crop(img, rect)
	}, nil
}

type morphArgs struct {
	KernelSize int    `json:"kernel_size"`
	Shape      string `json:"shape"`
}

func (a *morphArgs) parse(args json.RawMessage) (cvhelper.MorphShape, error) {
	if err := decodeArgs(args, a); err != nil {
		return 0, err
	}
	if a.KernelSize == 0 {
		a.KernelSize = cvhelper.DefaultKernelSize
	}
	shape, err := cvhelper.ParseMorphShape(a.Shape)
	if err != nil {
		return 0, err
	}
	return shape, cvhelper.CheckMorph(a.KernelSize, shape, 1)
}

func opDilate(args json.RawMessage) (imageStep, error) {
	var a morphArgs
	shape, err := a.parse(args)
	if err != nil {
		return nil, err
	}
	return func(img image.Image) (image.Image, error) {
		return cvhelper.Dilate(img, a.KernelSize, shape)
	}, nil
}

func opErode(args json.RawMessage) (imageStep, error) {
	var a morphArgs
	shape, err := a.parse(args)
	if err != nil {
		return nil, err
	}
	return func(img image.Image) (image.Image, error) {
		return cvhelper.Erode(img, a.KernelSize, shape)
	}, nil
}

type morphExArgs struct {
	Size       int `json:"size"`
	Iterations int `json:"iterations"`
}

func (a *morphExArgs) parse(args json.RawMessage) error {
	if err := decodeArgs(args, a); err != nil {
		return err
	}
	if a.Size == 0 {
		a.Size = cvhelper.DefaultKernelSize
	}
	if a.Iterations == 0 {
		a.Iterations = 1
	}
	return cvhelper.CheckMorph(a.Size, cvhelper.MorphRect, a.Iterations)
}

func opMorphOpen(args json.RawMessage) (imageStep, error) {
	var a morphExArgs
	if err := a.parse(args); err != nil {
		return nil, err
	}
	return func(img image.Image) (image.Image, error) {
		return cvhelper.MorphOpen(img, a.Size, a.Iterations)
	}, nil
}

func opMorphClose(args json.RawMessage) (imageStep, error) {
	var a morphExArgs
	if err := a.parse(args); err != nil {
		return nil, err
	}
	return func(img image.Image) (image.Image, error) {
		return cvhelper.MorphClose(img, a.Size, a.Iterations)
	}, nil
}

type normalizeArgs struct {
	Min int  `json:"min"`
	Max *int `json:"max"`
}

func opNormalize(args json.RawMessage) (imageStep, error) {
	var a normalizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	upper := 255
	if a.Max != nil {
		upper = *a.Max
	}
	return func(img image.Image) (image.Image, error) {
		return cvhelper.Normalize(img, a.Min, upper)
	}, nil
}

type resizeArgs struct {
	Factor float64 `json:"factor"`
}

func opResize(args json.RawMessage) (imageStep, error) {
	var a resizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := cvhelper.CheckResizeFactor(a.Factor); err != nil {
		return nil, err
	}
	return func(img image.Image) (image.Image, error) {
		return cvhelper.Resize(img, a.Factor)
	}, nil
}

type convertColorArgs struct {
	Space string `json:"space"`
}

func opConvertColor(args json.RawMessage) (imageStep, error) {
	var a convertColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	space := cvhelper.ColorSpace(a.Space)
	if err := cvhelper.CheckColorSpace(space); err != nil {
		return nil, err
	}
	return func(img image.Image) (image.Image, error) {
		return cvhelper.Convert(img, space)
	}, nil
}

type gaussianArgs struct {
	KernelSize int     `json:"kernel_size"`
	SigmaX     float64 `json:"sigma_x"`
	SigmaY     float64 `json:"sigma_y"`
}

func opBlurGaussian(args json.RawMessage) (imageStep, error) {
	var a gaussianArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.KernelSize == 0 {
		a.KernelSize = cvhelper.DefaultKernelSize
	}
	if err := cvhelper.CheckGaussianKernel(a.KernelSize); err != nil {
		return nil, err
	}
	return func(img image.Image) (image.Image, error) {
		return cvhelper.BlurGaussian(img, a.KernelSize, a.SigmaX, a.SigmaY)
	}, nil
}

type medianArgs struct {
	KernelSize int `json:"kernel_size"`
}

func opBlurMedian(args json.RawMessage) (imageStep, error) {
	var a medianArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.KernelSize == 0 {
		a.KernelSize = cvhelper.DefaultKernelSize
	}
	if err := cvhelper.CheckMedianKernel(a.KernelSize); err != nil {
		return nil, err
	}
	return func(img image.Image) (image.Image, error) {
		return cvhelper.BlurMedian(img, a.KernelSize)
	}, nil
}

type thresholdArgs struct {
	Mode     string `json:"mode"`
	Value    int    `json:"value"`
	MaxValue *int   `json:"max_value"`
}

func opThreshold(args json.RawMessage) (imageStep, error) {
	var a thresholdArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	maxValue := cvhelper.DefaultMaxValue
	if a.MaxValue != nil {
		maxValue = *a.MaxValue
	}

	switch a.Mode {
	case "", ModeBinary:
		return func(img image.Image) (image.Image, error) {
			return cvhelper.ThresholdBinary(img, a.Value, maxValue)
		}, nil
	case ModeToZero:
		return func(img image.Image) (image.Image, error) {
			return cvhelper.ThresholdToZero(img, a.Value, maxValue)
		}, nil
	case ModeOtsu:
		return func(img image.Image) (image.Image, error) {
			return asImage(cvhelper.ThresholdOtsu(img, maxValue))
		}, nil
	case ModeOtsuToZero:
		return func(img image.Image) (image.Image, error) {
			return asImage(cvhelper.ThresholdOtsuToZero(img, maxValue))
		}, nil
	}
	return nil, invalidParams("unknown threshold mode %q", a.Mode)
}

type cannyArgs struct {
	LowThreshold  float64 `json:"low_threshold"`
	HighThreshold float64 `json:"high_threshold"`
}

func opCanny(args json.RawMessage) (imageStep, error) {
	var a cannyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return func(img image.Image) (image.Image, error) {
		return asImage(cvhelper.Canny(img, a.LowThreshold, a.HighThreshold))
	}, nil
}

type rotateArgs struct {
	Angle   float64  `json:"angle"`
	CenterX *float64 `json:"center_x"`
	CenterY *float64 `json:"center_y"`
	Scale   *float64 `json:"scale"`
	Unit    string   `json:"unit"`
}

// opRotate rotates around the image center unless a center is given. The
// center of a w x h image is ((w-1)/2, (h-1)/2) in pixel indices.
func opRotate(args json.RawMessage) (imageStep, error) {
	var a rotateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	unit, err := cvhelper.ParseAngleUnit(a.Unit)
	if err != nil {
		return nil, err
	}
	scale := 1.0
	if a.Scale != nil {
		scale = *a.Scale
	}
	if err := cvhelper.CheckRotationScale(scale); err != nil {
		return nil, err
	}

	return func(img image.Image) (image.Image, error) {
		b := img.Bounds()
		center := cvhelper.PointF{
			X: float64(b.Dx()-1) / 2,
			Y: float64(b.Dy()-1) / 2,
		}
		if a.CenterX != nil {
			center.X = *a.CenterX
		}
		if a.CenterY != nil {
			center.Y = *a.CenterY
		}
		return cvhelper.RotateImage(img, center, a.Angle, scale, unit)
	}, nil
}

// asImage returns a gray result as an image.Image, never as a typed nil.
func asImage(g *image.Gray, err error) (image.Image, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}
