package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

// RenderRotation executes a rotation plan. Angles turn clockwise. The result
// is sized to the plan's bounding box; corners the rotated image does not
// cover are filled with bg, or left transparent when bg is nil.
//
// Quarter turns are lossless. Other angles are resampled by bild.
func RenderRotation(img image.Image, plan planner.RotationPlan, bg color.Color) image.Image {
	var out image.Image
	switch plan.Angle {
	case 0:
		// Always 8-bit NRGBA so PDF embedding never sees 16-bit PNG.
		out = imaging.Clone(img)
	case 90:
		// imaging turns counter-clockwise.
		out = imaging.Rotate270(img)
	case 180:
		out = imaging.Rotate180(img)
	case 270:
		out = imaging.Rotate90(img)
	default:
		out = transform.Rotate(img, plan.Angle, &transform.RotationOptions{ResizeBounds: true})
	}

	// bild sizes the canvas from its own rounding; conform to the plan.
	w := roundSide(plan.Bounding.Width)
	h := roundSide(plan.Bounding.Height)
	if b := out.Bounds(); b.Dx() != w || b.Dy() != h {
		out = imaging.PasteCenter(imaging.New(w, h, color.Transparent), out)
	}

	if bg == nil {
		return out
	}
	return flatten(out, bg)
}
