package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
)

var (
	// ErrInvalidPageSize is returned for unknown page size names and
	// non-positive custom sizes.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrMarginExceedsPage is returned when the margins leave no drawable
	// area on either axis.
	ErrMarginExceedsPage = errors.New("margins exceed page")

	// ErrNegativeMargin is returned when any margin is below zero.
	ErrNegativeMargin = errors.New("negative margin")
)

// Standard page sizes in portrait orientation, millimetres.
var (
	A4     = geometry.Mm(210, 297)
	Letter = geometry.Mm(216, 279)
)

// Orientation of a page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Dimension resolves a page size name ("a4", "letter" or "custom") and
// orientation to a physical page size. custom is only read for "custom".
func Dimension(name string, custom geometry.Dimension, orientation Orientation) (geometry.Dimension, error) {
	var d geometry.Dimension
	switch strings.ToLower(name) {
	case "a4", "":
		d = A4
	case "letter":
		d = Letter
	case "custom":
		if !custom.Valid() {
			return geometry.Dimension{}, fmt.Errorf("%w: custom %gx%g", ErrInvalidPageSize, custom.Width, custom.Height)
		}
		d = geometry.Mm(custom.Width, custom.Height)
	default:
		return geometry.Dimension{}, fmt.Errorf("%w: %q", ErrInvalidPageSize, name)
	}

	switch orientation {
	case Portrait, "":
	case Landscape:
		d = d.Swap()
	default:
		return geometry.Dimension{}, fmt.Errorf("%w: orientation %q", ErrInvalidPageSize, orientation)
	}
	return d, nil
}

// Margins are the four page margins in millimetres.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Uniform returns equal margins on all four sides.
func Uniform(mm float64) Margins {
	return Margins{Top: mm, Right: mm, Bottom: mm, Left: mm}
}

// Drawable returns the page area inside the margins.
func (m Margins) Drawable(page geometry.Dimension) (geometry.Rectangle, error) {
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return geometry.Rectangle{}, fmt.Errorf("%w: %+v", ErrNegativeMargin, m)
	}

	r := geometry.Rectangle{
		X:      m.Left,
		Y:      m.Top,
		Width:  page.Width - m.Left - m.Right,
		Height: page.Height - m.Top - m.Bottom,
		Unit:   geometry.Millimeter,
	}
	if r.Width <= 0 || r.Height <= 0 {
		return geometry.Rectangle{}, fmt.Errorf("%w: %+v on %gx%gmm leaves %gx%gmm",
			ErrMarginExceedsPage, m, page.Width, page.Height, r.Width, r.Height)
	}
	return r, nil
}
