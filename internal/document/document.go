// Package document assembles page specs into a document and drives a
// document writer to serialize it.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
	"github.com/ironsheep/image-compose-mcp/internal/page"
	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

var (
	// ErrEmptyDocument is returned when a document has no pages.
	ErrEmptyDocument = errors.New("empty document")

	// ErrEncode is returned when an image or the document cannot be encoded.
	ErrEncode = errors.New("encode failed")
)

// DefaultFileName is used when no output file name is given.
const DefaultFileName = "combined.pdf"

// Metadata is the optional document information.
type Metadata struct {
	Title  string `json:"title,omitempty" yaml:"title"`
	Author string `json:"author,omitempty" yaml:"author"`
}

// Spec is an ordered, non-empty page sequence plus document metadata.
type Spec struct {
	Unit     geometry.Unit `json:"unit"`
	Pages    []page.Spec   `json:"pages"`
	Metadata Metadata      `json:"metadata"`
	FileName string        `json:"file_name"`
}

// Assemble builds a document from pages in the given order. The page slice is
// copied, so later changes to the caller's slice do not reach the document.
func Assemble(pages []page.Spec, meta Metadata, fileName string) (*Spec, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyDocument
	}
	if fileName == "" {
		fileName = DefaultFileName
	}

	own := make([]page.Spec, len(pages))
	copy(own, pages)

	return &Spec{
		Unit:     geometry.Millimeter,
		Pages:    own,
		Metadata: meta,
		FileName: fileName,
	}, nil
}

// Writer opens documents. It is the boundary to the PDF serializer.
type Writer interface {
	NewDocument(unit geometry.Unit, firstPage geometry.Dimension) (Handle, error)
}

// Handle is an open document. The first page exists as soon as the handle is
// created; AddPage opens each further page.
type Handle interface {
	AddPage(size geometry.Dimension) error
	DrawImage(data []byte, format string, rect geometry.Rectangle, clip *geometry.Rectangle) error
	DrawText(text string, x, y, fontSize float64, align page.Align) error
	SetMetadata(meta Metadata) error
	Serialize(w io.Writer) error
}

// Renderer produces the encoded bytes of a rotated image. format names the
// encoding ("png" or "jpeg") so the writer can embed it.
type Renderer interface {
	Render(ctx context.Context, ref page.ImageRef, rotation planner.RotationPlan) (data []byte, format string, err error)
}

// WriteOptions tunes how pages are handed to the writer.
type WriteOptions struct {
	// ClipOverflow clips each image to its page's drawable area, which only
	// matters for Cover placements.
	ClipOverflow bool

	// OnPage, if set, is called after each page has been written.
	OnPage func(index, total int)
}

// Write sends doc to the writer page by page, in order, and serializes the
// result to out. Rendering happens one page at a time. An error names the
// page it happened on; doc itself is never modified.
func Write(ctx context.Context, doc *Spec, w Writer, r Renderer, out io.Writer, opts WriteOptions) error {
	if doc == nil || len(doc.Pages) == 0 {
		return ErrEmptyDocument
	}

	h, err := w.NewDocument(doc.Unit, doc.Pages[0].Size)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	if err := h.SetMetadata(doc.Metadata); err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}

	total := len(doc.Pages)
	for i, p := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writePage(ctx, h, r, p, i, opts); err != nil {
			return fmt.Errorf("page %d (%s): %w", i+1, p.Image.Ref, err)
		}
		if opts.OnPage != nil {
			opts.OnPage(i, total)
		}
	}

	return h.Serialize(out)
}

func writePage(ctx context.Context, h Handle, r Renderer, p page.Spec, i int, opts WriteOptions) error {
	if i > 0 {
		if err := h.AddPage(p.Size); err != nil {
			return err
		}
	}

	if err := p.Image.Placement.Validate(); err != nil {
		return err
	}
	data, format, err := r.Render(ctx, p.Image.Ref, p.Image.Rotation)
	if err != nil {
		return err
	}

	var clip *geometry.Rectangle
	if opts.ClipOverflow {
		d := p.Drawable
		clip = &d
	}
	if err := h.DrawImage(data, format, p.Image.Placement, clip); err != nil {
		return err
	}

	for _, d := range p.Decorations {
		if err := h.DrawText(d.Text, d.X, d.Y, d.FontSize, d.Align); err != nil {
			return err
		}
	}
	return nil
}
