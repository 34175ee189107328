package planner

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
)

// ErrInvalidTargetSize is returned when a requested output size has a zero or
// negative side.
var ErrInvalidTargetSize = errors.New("invalid target size")

// CropPlan describes which part of the source to sample and how large the
// output canvas is.
type CropPlan struct {
	// Source is the sub-rectangle of the source image, in source pixels.
	Source geometry.Rectangle `json:"source"`

	// Output is the final canvas size in pixels.
	Output geometry.Dimension `json:"output"`

	// Clamped is set when the upscale guard reduced Output below the
	// requested target.
	Clamped bool `json:"clamped"`
}

// PlanCrop computes the source rectangle and output size for a crop & resize.
//
// With lockAspectRatio the source is center-cropped to the target's aspect
// ratio, trimming the sides of a relatively wider source or the top and
// bottom of a relatively taller one. Without it the full source is used and
// stretched to the target.
//
// When allowUpscale is false and the cropped source is smaller than the target
// on either axis, the output is shrunk to the cropped source size on both
// axes, so the result may be smaller than requested but is never enlarged.
func PlanCrop(source, target geometry.Dimension, lockAspectRatio, allowUpscale bool) (CropPlan, error) {
	if !target.Valid() {
		return CropPlan{}, fmt.Errorf("%w: %gx%g", ErrInvalidTargetSize, target.Width, target.Height)
	}
	if !source.Valid() {
		return CropPlan{}, fmt.Errorf("%w: source %s", geometry.ErrDegenerateDimension, source)
	}

	src := geometry.Rectangle{Width: source.Width, Height: source.Height, Unit: geometry.Pixel}

	if lockAspectRatio {
		srcRatio := source.Width / source.Height
		targetRatio := target.Width / target.Height

		if srcRatio > targetRatio {
			src.Width = source.Height * targetRatio
			src.X = (source.Width - src.Width) / 2
		} else {
			src.Height = source.Width / targetRatio
			src.Y = (source.Height - src.Height) / 2
		}
	}

	plan := CropPlan{
		Source: src,
		Output: geometry.Px(target.Width, target.Height),
	}

	if !allowUpscale && (src.Width < target.Width || src.Height < target.Height) {
		plan.Output = geometry.Px(src.Width, src.Height)
		plan.Clamped = true
	}

	if err := plan.Source.Validate(); err != nil {
		return CropPlan{}, err
	}
	return plan, nil
}
