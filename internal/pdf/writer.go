package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ironsheep/image-compose-mcp/internal/document"
	"github.com/ironsheep/image-compose-mcp/internal/geometry"
	"github.com/ironsheep/image-compose-mcp/internal/page"
)

// ErrUnsupportedUnit is returned for documents not laid out in millimeters.
var ErrUnsupportedUnit = errors.New("unsupported document unit")

const fontFamily = "Helvetica"

// Writer creates fpdf documents.
type Writer struct {
	// Creator is recorded in the document information dictionary.
	Creator string

	// Now supplies the creation and modification dates. Nil uses
	// BuildDate, so identical input always yields identical bytes.
	Now func() time.Time
}

// BuildDate is the date stamped into documents by a Writer without a clock:
// SOURCE_DATE_EPOCH when it holds Unix seconds, the Unix epoch otherwise.
func BuildDate() time.Time {
	if v := os.Getenv("SOURCE_DATE_EPOCH"); v != "" {
		if sec, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(sec, 0).UTC()
		}
	}
	return time.Unix(0, 0).UTC()
}

// NewWriter returns a Writer that records creator as the producing tool.
func NewWriter(creator string) *Writer {
	return &Writer{Creator: creator}
}

// NewDocument implements document.Writer.
func (w *Writer) NewDocument(unit geometry.Unit, firstPage geometry.Dimension) (document.Handle, error) {
	if unit != geometry.Millimeter {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
	}
	if !firstPage.Valid() {
		return nil, fmt.Errorf("%w: first page %s", geometry.ErrDegenerateDimension, firstPage)
	}

	size := fpdf.SizeType{Wd: firstPage.Width, Ht: firstPage.Height}
	f := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           size,
	})
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)
	f.SetCatalogSort(true)
	if w.Creator != "" {
		f.SetCreator(w.Creator, true)
	}
	now := BuildDate
	if w.Now != nil {
		now = w.Now
	}
	stamp := now()
	f.SetCreationDate(stamp)
	f.SetModificationDate(stamp)

	h := &handle{
		pdf: f,
		tr:  f.UnicodeTranslatorFromDescriptor(""),
	}
	if err := h.AddPage(firstPage); err != nil {
		return nil, err
	}
	return h, nil
}

// handle is an open fpdf document.
type handle struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	pages  int
	images int
}

func (h *handle) AddPage(size geometry.Dimension) error {
	if !size.Valid() {
		return fmt.Errorf("%w: page %s", geometry.ErrDegenerateDimension, size)
	}
	// Sizes arrive already oriented; "P" keeps width and height as given.
	h.pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.Width, Ht: size.Height})
	h.pages++
	return h.pdf.Error()
}

func (h *handle) DrawImage(data []byte, format string, rect geometry.Rectangle, clip *geometry.Rectangle) error {
	imageType, err := imageType(format)
	if err != nil {
		return err
	}

	h.images++
	name := fmt.Sprintf("img%d", h.images)
	opts := fpdf.ImageOptions{ImageType: imageType, AllowNegativePosition: true}
	h.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if err := h.pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", document.ErrEncode, err)
	}

	if clip != nil {
		h.pdf.ClipRect(clip.X, clip.Y, clip.Width, clip.Height, false)
	}
	h.pdf.ImageOptions(name, rect.X, rect.Y, rect.Width, rect.Height, false, opts, 0, "")
	if clip != nil {
		h.pdf.ClipEnd()
	}
	return h.pdf.Error()
}

func (h *handle) DrawText(text string, x, y, fontSize float64, align page.Align) error {
	h.pdf.SetFont(fontFamily, "", fontSize)
	s := h.tr(text)
	if align == page.AlignRight {
		x -= h.pdf.GetStringWidth(s)
	}
	h.pdf.Text(x, y, s)
	return h.pdf.Error()
}

func (h *handle) SetMetadata(meta document.Metadata) error {
	if meta.Title != "" {
		h.pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		h.pdf.SetAuthor(meta.Author, true)
	}
	return h.pdf.Error()
}

func (h *handle) Serialize(w io.Writer) error {
	if err := h.pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", document.ErrEncode, err)
	}
	return nil
}

func imageType(format string) (string, error) {
	switch format {
	case "png":
		return "PNG", nil
	case "jpeg", "jpg":
		return "JPG", nil
	}
	return "", fmt.Errorf("%w: cannot embed %q images", document.ErrEncode, format)
}
