package cvhelper

import "fmt"

// MorphShape selects the structuring element used by morphology operations.
type MorphShape int

const (
	// MorphRect is a filled size x size square.
	MorphRect MorphShape = iota
	// MorphCross is the center row plus the center column of the square.
	MorphCross
	// MorphEllipse is the ellipse inscribed in the square.
	MorphEllipse
)

// String returns the lower-case name of the shape.
func (s MorphShape) String() string {
	switch s {
	case MorphRect:
		return "rect"
	case MorphCross:
		return "cross"
	case MorphEllipse:
		return "ellipse"
	}
	return fmt.Sprintf("MorphShape(%d)", int(s))
}

// ParseMorphShape maps "rect", "cross" or "ellipse" to a MorphShape.
// An empty name selects MorphRect.
func ParseMorphShape(name string) (MorphShape, error) {
	switch name {
	case "", "rect":
		return MorphRect, nil
	case "cross":
		return MorphCross, nil
	case "ellipse":
		return MorphEllipse, nil
	}
	return MorphRect, fmt.Errorf("unknown morph shape %q: %w", name, ErrInvalidArgument)
}

// AngleUnit is the unit of a rotation angle.
type AngleUnit int

const (
	// Radians measures angles in radians.
	Radians AngleUnit = iota
	// Degrees measures angles in degrees.
	Degrees
)

// ParseAngleUnit maps "radians" or "degrees" to an AngleUnit.
// An empty name selects Radians.
func ParseAngleUnit(name string) (AngleUnit, error) {
	switch name {
	case "", "radians", "rad":
		return Radians, nil
	case "degrees", "deg":
		return Degrees, nil
	}
	return Radians, fmt.Errorf("unknown angle unit %q: %w", name, ErrInvalidArgument)
}

// PointF is a point with sub-pixel coordinates.
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
