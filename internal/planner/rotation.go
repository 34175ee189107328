package planner

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
)

// RotationPlan describes a rotated image and the canvas that encloses it.
type RotationPlan struct {
	// Source is the unrotated image size.
	Source geometry.Dimension `json:"source"`

	// Angle is the rotation in degrees, normalized to [0,360).
	Angle float64 `json:"angle"`

	// Bounding is the axis-aligned box enclosing the rotated image.
	Bounding geometry.Dimension `json:"bounding"`

	// OriginX and OriginY position the unrotated image so that its center
	// coincides with the center of Bounding.
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`

	// Transform maps unrotated source coordinates into Bounding: translate
	// the source center to the origin, rotate, then move to the bounding
	// center.
	Transform geometry.Affine `json:"transform"`
}

// NormalizeAngle wraps any angle into [0,360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 || a == 0 {
		// Also clears the sign of -0.
		a = 0
	}
	return a
}

// sincos snaps quarter turns to exact values so 0 and 90 degree rotations
// produce exact bounding boxes and transforms.
func sincos(deg float64) (sin, cos float64) {
	switch deg {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(deg * math.Pi / 180)
}

// PlanRotation computes the bounding box and center-pivot transform for
// rotating an image of the given size by angle degrees.
func PlanRotation(source geometry.Dimension, angle float64) (RotationPlan, error) {
	if !source.Valid() {
		return RotationPlan{}, fmt.Errorf("%w: rotation source %s", geometry.ErrDegenerateDimension, source)
	}

	deg := NormalizeAngle(angle)
	sin, cos := sincos(deg)
	absSin, absCos := math.Abs(sin), math.Abs(cos)

	w, h := source.Width, source.Height
	bounding := geometry.Dimension{
		Width:  w*absCos + h*absSin,
		Height: w*absSin + h*absCos,
		Unit:   source.Unit,
	}
	ox, oy := geometry.CenterOffset(bounding, source)

	transform := geometry.Translate(bounding.Width/2, bounding.Height/2).
		Multiply(geometry.Rotate(sin, cos)).
		Multiply(geometry.Translate(-w/2, -h/2))

	return RotationPlan{
		Source:    source,
		Angle:     deg,
		Bounding:  bounding,
		OriginX:   ox,
		OriginY:   oy,
		Transform: transform,
	}, nil
}
