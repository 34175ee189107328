package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
)

// ErrUnknownStrategy is returned for a fit strategy name that is not recognized.
var ErrUnknownStrategy = errors.New("unknown fit strategy")

// Strategy selects how content is placed inside a drawable area.
type Strategy string

const (
	// Contain fits the content entirely inside the area (letterboxed).
	Contain Strategy = "contain"
	// Cover fills the area entirely; the content may overflow one axis.
	Cover Strategy = "cover"
	// Stretch fills the area exactly, ignoring the aspect ratio.
	Stretch Strategy = "stretch"
)

// ParseStrategy accepts contain/cover/stretch and the aliases fit and fill.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "contain", "fit", "":
		return Contain, nil
	case "cover", "fill":
		return Cover, nil
	case "stretch":
		return Stretch, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// FitResult is the drawn size of the content and its offset inside the
// drawable area.
type FitResult struct {
	Strategy Strategy           `json:"strategy"`
	Drawn    geometry.Dimension `json:"drawn"`
	OffsetX  float64            `json:"offset_x"`
	OffsetY  float64            `json:"offset_y"`
}

// PlanFit places content of the given size inside the drawable area.
//
// The axis whose scale decides the result is assigned the drawable length
// exactly, so Contain always touches one edge pair and Cover always covers
// both. Cover results may exceed the area; PlanFit does not clip.
func PlanFit(drawable, content geometry.Dimension, strategy Strategy) (FitResult, error) {
	if !drawable.Valid() {
		return FitResult{}, fmt.Errorf("%w: drawable area %s", geometry.ErrDegenerateDimension, drawable)
	}
	if !content.Valid() {
		return FitResult{}, fmt.Errorf("%w: content %s", geometry.ErrDegenerateDimension, content)
	}

	sx := drawable.Width / content.Width
	sy := drawable.Height / content.Height

	drawn := geometry.Dimension{Unit: drawable.Unit}
	switch strategy {
	case Contain:
		if sx <= sy {
			drawn.Width, drawn.Height = drawable.Width, content.Height*sx
		} else {
			drawn.Width, drawn.Height = content.Width*sy, drawable.Height
		}
	case Cover:
		if sx >= sy {
			drawn.Width, drawn.Height = drawable.Width, content.Height*sx
		} else {
			drawn.Width, drawn.Height = content.Width*sy, drawable.Height
		}
	case Stretch:
		drawn.Width, drawn.Height = drawable.Width, drawable.Height
	default:
		return FitResult{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	ox, oy := geometry.CenterOffset(drawable, drawn)
	return FitResult{
		Strategy: strategy,
		Drawn:    drawn,
		OffsetX:  ox,
		OffsetY:  oy,
	}, nil
}
