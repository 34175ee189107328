package imaging

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-compose-mcp/internal/document"
)

// ErrEncode is returned when an image cannot be encoded. It is the same
// error kind a document writer reports.
var ErrEncode = document.ErrEncode

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 0.92

// ParseFormat maps a user supplied name to a Format. The empty string selects
// PNG and "jpg" is accepted for JPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png", "image/png":
		return PNG, nil
	case "jpeg", "jpg", "image/jpeg":
		return JPEG, nil
	}
	return "", fmt.Errorf("%w: unknown output format %q", ErrEncode, s)
}

// MIMEType returns the MIME type of the format.
func (f Format) MIMEType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension returns the file extension without a dot.
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

// Encode writes img to w. quality is in [0,1] and only affects JPEG output;
// it is mapped onto the encoder's 1..100 scale.
func Encode(w io.Writer, img image.Image, format Format, quality float64) error {
	var err error
	switch format {
	case PNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality(quality)))
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrEncode, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, format, err)
	}
	return nil
}

func jpegQuality(q float64) int {
	n := int(math.Round(q * 100))
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}

// opaqueBackground returns bg, or white when bg is nil or not fully opaque.
func opaqueBackground(bg color.Color) color.Color {
	if bg == nil {
		return color.White
	}
	if _, _, _, a := bg.RGBA(); a != 0xffff {
		return color.White
	}
	return bg
}
