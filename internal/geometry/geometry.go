package geometry

import (
	"errors"
	"fmt"
)

// ErrDegenerateDimension is returned when a zero or negative width or height
// is used where a ratio or divisor is required.
var ErrDegenerateDimension = errors.New("degenerate dimension")

// Reference density used for pixel to physical length conversion.
const (
	ReferenceDPI       = 96.0
	MillimetersPerInch = 25.4
)

// Unit tags a value as pixels or physical millimetres.
type Unit string

const (
	Pixel      Unit = "px"
	Millimeter Unit = "mm"
)

// Dimension is a width/height pair in a given unit.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit"`
}

// Px returns a pixel dimension.
func Px(w, h float64) Dimension { return Dimension{Width: w, Height: h, Unit: Pixel} }

// Mm returns a millimetre dimension.
func Mm(w, h float64) Dimension { return Dimension{Width: w, Height: h, Unit: Millimeter} }

// Valid reports whether both sides are strictly positive.
func (d Dimension) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// Swap returns the dimension with width and height exchanged.
func (d Dimension) Swap() Dimension {
	return Dimension{Width: d.Height, Height: d.Width, Unit: d.Unit}
}

// Scale multiplies both sides by f.
func (d Dimension) Scale(f float64) Dimension {
	return Dimension{Width: d.Width * f, Height: d.Height * f, Unit: d.Unit}
}

// ToPhysical converts a pixel dimension to millimetres at the reference
// density. Dimensions already in millimetres are returned unchanged.
func (d Dimension) ToPhysical() Dimension {
	if d.Unit == Millimeter {
		return d
	}
	return Mm(PixelsToMillimeters(d.Width), PixelsToMillimeters(d.Height))
}

func (d Dimension) String() string {
	return fmt.Sprintf("%gx%g%s", d.Width, d.Height, d.Unit)
}

// Rectangle is a position plus size in source-pixel or page-physical space.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit"`
}

// Size returns the rectangle's dimension.
func (r Rectangle) Size() Dimension {
	return Dimension{Width: r.Width, Height: r.Height, Unit: r.Unit}
}

// Right returns the X coordinate of the right edge.
func (r Rectangle) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rectangle) Bottom() float64 { return r.Y + r.Height }

// Validate rejects rectangles with negative or zero area. A degenerate
// rectangle must never be used as a crop or draw source.
func (r Rectangle) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: rectangle %gx%g at (%g,%g)", ErrDegenerateDimension, r.Width, r.Height, r.X, r.Y)
	}
	return nil
}

// AspectRatio returns width/height.
func AspectRatio(d Dimension) (float64, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("%w: aspect ratio of %s", ErrDegenerateDimension, d)
	}
	return d.Width / d.Height, nil
}

// ToPhysicalLength converts a pixel count to millimetres at the given density.
func ToPhysicalLength(pixels, dpi float64) float64 {
	return pixels / dpi * MillimetersPerInch
}

// PixelsToMillimeters converts at the fixed reference density.
func PixelsToMillimeters(pixels float64) float64 {
	return ToPhysicalLength(pixels, ReferenceDPI)
}

// CenterOffset returns the offset that centers inner within outer. Either
// component is negative when inner is larger than outer on that axis.
func CenterOffset(outer, inner Dimension) (dx, dy float64) {
	return (outer.Width - inner.Width) / 2, (outer.Height - inner.Height) / 2
}
