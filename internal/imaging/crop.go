package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

// CropResult contains an encoded crop ready to save or return to a client.
// ImageBase64 is only filled by callers that inline the bytes.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      Format `json:"format"`
	MimeType    string `json:"mime_type"`
	FileName    string `json:"file_name"`
	Clamped     bool   `json:"clamped"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Data        []byte `json:"-"`
}

// RenderCrop executes a crop plan: it samples plan.Source from img, resamples
// it to plan.Output with a Lanczos filter and flattens it onto bg.
//
// The source rectangle is rounded to whole pixels and clamped to the image
// bounds. Output sides are rounded and never smaller than 1 pixel. A nil bg
// keeps the alpha channel.
func RenderCrop(img image.Image, plan planner.CropPlan, bg color.Color) (image.Image, error) {
	bounds := img.Bounds()

	x1 := bounds.Min.X + int(math.Round(plan.Source.X))
	y1 := bounds.Min.Y + int(math.Round(plan.Source.Y))
	x2 := bounds.Min.X + int(math.Round(plan.Source.Right()))
	y2 := bounds.Min.Y + int(math.Round(plan.Source.Bottom()))
	rect := image.Rect(x1, y1, x2, y2).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	w := roundSide(plan.Output.Width)
	h := roundSide(plan.Output.Height)

	cropped := imaging.Crop(img, rect)
	if cropped.Bounds().Dx() != w || cropped.Bounds().Dy() != h {
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}

	if bg == nil {
		return cropped, nil
	}
	return flatten(cropped, bg), nil
}

// EncodeCrop renders and encodes a crop plan into a CropResult. JPEG has no
// alpha, so a nil or translucent bg becomes white for it.
//
// The suggested file name follows the crop-WxH.ext pattern.
func EncodeCrop(img image.Image, plan planner.CropPlan, format Format, quality float64, bg color.Color) (*CropResult, error) {
	if format == JPEG {
		bg = opaqueBackground(bg)
	}

	out, err := RenderCrop(img, plan, bg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, out, format, quality); err != nil {
		return nil, err
	}

	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	return &CropResult{
		Width:    w,
		Height:   h,
		Format:   format,
		MimeType: format.MIMEType(),
		FileName: CropFileName(w, h, format),
		Clamped:  plan.Clamped,
		Data:     buf.Bytes(),
	}, nil
}

// CropFileName returns the download name for a crop of the given size.
func CropFileName(w, h int, format Format) string {
	return fmt.Sprintf("crop-%dx%d.%s", w, h, format.Extension())
}

func roundSide(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}

// flatten composites img over a solid background of the same size.
func flatten(img image.Image, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}
