package page

import (
	"context"
	"fmt"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

// ImageRef is an opaque, caller-owned reference to a source image, such as a
// file path.
type ImageRef string

// Source supplies the native pixel dimensions of a referenced image. It is
// the decode boundary: implementations may block on I/O.
type Source interface {
	Dimensions(ctx context.Context, ref ImageRef) (geometry.Dimension, error)
}

// Layout holds the page-level settings shared by every page of a document.
type Layout struct {
	PageSize    geometry.Dimension `json:"page_size"`
	Margins     Margins            `json:"margins"`
	Strategy    planner.Strategy   `json:"strategy"`
	Rotation    float64            `json:"rotation"`
	Decorations Decorations        `json:"decorations"`
}

// Image is the embedded image of a page: its identity, native size and the
// plans applied to it. Placement is the absolute drawn rectangle on the page.
type Image struct {
	Ref       ImageRef             `json:"ref"`
	Pixels    geometry.Dimension   `json:"pixels"`
	Rotation  planner.RotationPlan `json:"rotation"`
	Fit       planner.FitResult    `json:"fit"`
	Placement geometry.Rectangle   `json:"placement"`
}

// Spec describes one page. Specs are values; nothing in this package
// modifies a Spec after returning it.
type Spec struct {
	Index       int                `json:"index"`
	Size        geometry.Dimension `json:"size"`
	Margins     Margins            `json:"margins"`
	Drawable    geometry.Rectangle `json:"drawable"`
	Image       Image              `json:"image"`
	Decorations []Decoration       `json:"decorations,omitempty"`
}

// Composer turns an ordered image sequence into page specs.
type Composer struct {
	layout   Layout
	source   Source
	drawable geometry.Rectangle
}

// NewComposer validates the layout before any image is decoded.
func NewComposer(layout Layout, source Source) (*Composer, error) {
	if !layout.PageSize.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPageSize, layout.PageSize)
	}
	if layout.Strategy == "" {
		layout.Strategy = planner.Contain
	}
	if _, err := planner.ParseStrategy(string(layout.Strategy)); err != nil {
		return nil, err
	}

	drawable, err := layout.Margins.Drawable(layout.PageSize)
	if err != nil {
		return nil, err
	}

	return &Composer{
		layout:   layout,
		source:   source,
		drawable: drawable,
	}, nil
}

// Drawable returns the area inside the margins.
func (c *Composer) Drawable() geometry.Rectangle {
	return c.drawable
}

// Layout returns the composer's layout with defaults applied.
func (c *Composer) Layout() Layout {
	return c.layout
}

// Compose lays out one page per reference, strictly in order. Each image's
// dimensions are awaited before the next one is requested. On failure the
// pages completed so far are returned together with the error.
func (c *Composer) Compose(ctx context.Context, refs []ImageRef) ([]Spec, error) {
	pages := make([]Spec, 0, len(refs))
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		px, err := c.source.Dimensions(ctx, ref)
		if err != nil {
			return pages, fmt.Errorf("page %d (%s): %w", i+1, ref, err)
		}

		spec, err := c.PlanPage(i, ref, px)
		if err != nil {
			return pages, fmt.Errorf("page %d (%s): %w", i+1, ref, err)
		}
		pages = append(pages, spec)
	}
	return pages, nil
}

// PlanPage builds the first-pass spec for a single image of known pixel size.
func (c *Composer) PlanPage(index int, ref ImageRef, px geometry.Dimension) (Spec, error) {
	rotation, err := planner.PlanRotation(px, c.layout.Rotation)
	if err != nil {
		return Spec{}, err
	}

	fit, err := planner.PlanFit(c.drawable.Size(), rotation.Bounding.ToPhysical(), c.layout.Strategy)
	if err != nil {
		return Spec{}, err
	}

	spec := Spec{
		Index:    index,
		Size:     c.layout.PageSize,
		Margins:  c.layout.Margins,
		Drawable: c.drawable,
		Image: Image{
			Ref:      ref,
			Pixels:   px,
			Rotation: rotation,
			Fit:      fit,
			Placement: geometry.Rectangle{
				X:      c.drawable.X + fit.OffsetX,
				Y:      c.drawable.Y + fit.OffsetY,
				Width:  fit.Drawn.Width,
				Height: fit.Drawn.Height,
				Unit:   geometry.Millimeter,
			},
		},
	}
	spec.Decorations = firstPass(c.layout.Decorations, spec)
	return spec, nil
}

// Finalize runs the second pass. With page numbers enabled it returns new
// specs carrying "Page N of M" where M is len(pages); otherwise it returns a
// copy of pages.
func (c *Composer) Finalize(pages []Spec) []Spec {
	if !c.layout.Decorations.PageNumbers {
		out := make([]Spec, len(pages))
		copy(out, pages)
		return out
	}
	return NumberPages(pages)
}

// NumberPages returns new specs with a page-number decoration appended to
// each page. The input slice and its decoration slices are left untouched.
func NumberPages(pages []Spec) []Spec {
	total := len(pages)
	out := make([]Spec, total)
	for i, p := range pages {
		decorations := make([]Decoration, 0, len(p.Decorations)+1)
		decorations = append(decorations, p.Decorations...)
		decorations = append(decorations, pageNumber(p, i+1, total))

		p.Decorations = decorations
		out[i] = p
	}
	return out
}
