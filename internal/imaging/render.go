package imaging

import (
	"bytes"
	"context"
	"image/color"

	"github.com/ironsheep/image-compose-mcp/internal/page"
	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

// DocumentRenderer turns page images into encoded bytes for a document
// writer. Images are read through Cache. Those the renderer had to load are
// evicted once rendered, so a combine run holds at most one decoded image of
// its own; images that were already cached stay cached.
type DocumentRenderer struct {
	Cache *ImageCache

	// Format is the embedded encoding. JPEG is flattened onto Background.
	Format Format

	// Quality is the JPEG quality in [0,1].
	Quality float64

	// Background fills the corners exposed by rotation. Nil keeps them
	// transparent for PNG and white for JPEG.
	Background color.Color
}

// Render implements document.Renderer.
func (r *DocumentRenderer) Render(ctx context.Context, ref page.ImageRef, rotation planner.RotationPlan) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	path := string(ref)
	_, cached := r.Cache.lookup(path)
	src, err := r.Cache.Load(path)
	if err != nil {
		return nil, "", err
	}
	if !cached {
		defer r.Cache.Evict(path)
	}

	format := r.Format
	if format == "" {
		format = PNG
	}
	bg := r.Background
	if format == JPEG {
		bg = opaqueBackground(bg)
	}

	img := RenderRotation(src.Image, rotation, bg)

	var buf bytes.Buffer
	if err := Encode(&buf, img, format, r.Quality); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), string(format), nil
}
