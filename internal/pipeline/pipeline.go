package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/rs/zerolog"

	"github.com/ironsheep/image-compose-mcp/internal/config"
	"github.com/ironsheep/image-compose-mcp/internal/document"
	"github.com/ironsheep/image-compose-mcp/internal/geometry"
	"github.com/ironsheep/image-compose-mcp/internal/imaging"
	"github.com/ironsheep/image-compose-mcp/internal/page"
	"github.com/ironsheep/image-compose-mcp/internal/pdf"
	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

// Creator is recorded as the producing tool in generated documents.
const Creator = "imgcompose"

// ErrPageCountMismatch is returned when a written document does not read back
// with one page per input image.
var ErrPageCountMismatch = errors.New("page count mismatch")

// PartialError reports a failure on one page of a multi-image run. Pages
// holds every page composed before the failure, in order.
type PartialError struct {
	Pages []page.Spec
	Err   error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%v (%d pages completed)", e.Err, len(e.Pages))
}

func (e *PartialError) Unwrap() error { return e.Err }

// Pipeline runs the crop and combine workflows.
type Pipeline struct {
	Cache  *imaging.ImageCache
	Writer document.Writer
	Log    zerolog.Logger
}

// New returns a Pipeline writing PDFs with fpdf.
func New(cache *imaging.ImageCache, log zerolog.Logger) *Pipeline {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	return &Pipeline{
		Cache:  cache,
		Writer: pdf.NewWriter(Creator),
		Log:    log,
	}
}

// CropOutput is an encoded crop and the plan that produced it.
type CropOutput struct {
	imaging.CropResult
	Source geometry.Dimension `json:"source"`
	Plan   planner.CropPlan   `json:"plan"`
}

// CropResize validates opts, decodes r, plans the crop and encodes the result.
func (p *Pipeline) CropResize(ctx context.Context, r io.Reader, opts config.CropOptions) (*CropOutput, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	format, err := imaging.ParseFormat(opts.OutputFormat)
	if err != nil {
		return nil, err
	}
	bg, err := imaging.ParseColor(opts.BackgroundColor)
	if err != nil {
		return nil, err
	}

	src, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.crop(src, opts, format, bg)
}

// CropFile is CropResize for an image on disk, read through the cache.
func (p *Pipeline) CropFile(ctx context.Context, path string, opts config.CropOptions) (*CropOutput, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	format, err := imaging.ParseFormat(opts.OutputFormat)
	if err != nil {
		return nil, err
	}
	bg, err := imaging.ParseColor(opts.BackgroundColor)
	if err != nil {
		return nil, err
	}

	src, err := p.Cache.Load(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.crop(src, opts, format, bg)
}

func (p *Pipeline) crop(src *imaging.Source, opts config.CropOptions, format imaging.Format, bg color.Color) (*CropOutput, error) {
	plan, err := planner.PlanCrop(src.Size, opts.Target(), opts.LockAspectRatio, opts.AllowUpscale)
	if err != nil {
		return nil, err
	}
	if plan.Clamped {
		p.Log.Debug().
			Str("requested", opts.Target().String()).
			Str("output", plan.Output.String()).
			Msg("upscale disabled, output reduced to source size")
	}

	res, err := imaging.EncodeCrop(src.Image, plan, format, opts.JPEGQuality, bg)
	if err != nil {
		return nil, err
	}
	return &CropOutput{CropResult: *res, Source: src.Size, Plan: plan}, nil
}

// Plan lays out refs as pages, numbers them and assembles the document
// without rendering anything. On a page failure the error is a
// *PartialError holding the pages planned so far.
func (p *Pipeline) Plan(ctx context.Context, refs []page.ImageRef, opts config.DocumentOptions) (*document.Spec, error) {
	if len(refs) == 0 {
		return nil, document.ErrEmptyDocument
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	layout, err := opts.Layout()
	if err != nil {
		return nil, err
	}
	composer, err := page.NewComposer(layout, p.Cache)
	if err != nil {
		return nil, err
	}

	pages, err := composer.Compose(ctx, refs)
	if err != nil {
		return nil, &PartialError{Pages: pages, Err: err}
	}
	return document.Assemble(composer.Finalize(pages), opts.Metadata, opts.OutputFileName)
}

// CombineResult describes a written document.
type CombineResult struct {
	Document  *document.Spec `json:"document"`
	PageCount int            `json:"page_count"`
	Bytes     int            `json:"bytes"`
}

// Combine plans refs, renders every page into a PDF, verifies the page count
// of the result and copies it to out. onPage, if set, is called after each
// page is written. Nothing reaches out unless the whole document succeeded.
func (p *Pipeline) Combine(ctx context.Context, refs []page.ImageRef, opts config.DocumentOptions, out io.Writer, onPage func(index, total int)) (*CombineResult, error) {
	doc, err := p.Plan(ctx, refs, opts)
	if err != nil {
		return nil, err
	}

	var bg color.Color
	if opts.Background != "" {
		if bg, err = imaging.ParseColor(opts.Background); err != nil {
			return nil, err
		}
	}
	renderer := &imaging.DocumentRenderer{
		Cache:      p.Cache,
		Format:     opts.EmbedFormat(),
		Quality:    opts.ImageQuality,
		Background: bg,
	}

	var buf bytes.Buffer
	written := 0
	wopts := document.WriteOptions{
		ClipOverflow: opts.ClipOverflow,
		OnPage: func(index, total int) {
			written = index + 1
			p.Log.Debug().Int("page", index+1).Int("total", total).Msg("page written")
			if onPage != nil {
				onPage(index, total)
			}
		},
	}
	if err := document.Write(ctx, doc, p.Writer, renderer, &buf, wopts); err != nil {
		return nil, &PartialError{Pages: doc.Pages[:written], Err: err}
	}

	n, err := pdf.PageCount(buf.Bytes())
	if err != nil {
		return nil, err
	}
	if n != len(doc.Pages) {
		return nil, fmt.Errorf("%w: wrote %d pages, read back %d", ErrPageCountMismatch, len(doc.Pages), n)
	}

	size := buf.Len()
	if _, err := buf.WriteTo(out); err != nil {
		return nil, fmt.Errorf("write %s: %w", doc.FileName, err)
	}

	p.Log.Info().
		Str("file", doc.FileName).
		Int("pages", n).
		Int("bytes", size).
		Str("image_format", string(renderer.Format)).
		Msg("document combined")

	return &CombineResult{Document: doc, PageCount: n, Bytes: size}, nil
}
