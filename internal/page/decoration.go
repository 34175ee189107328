package page

import "fmt"

// Decoration font sizes in points and the caption gap in millimetres.
const (
	HeaderFontSize     = 10.0
	FooterFontSize     = 10.0
	CaptionFontSize    = 9.0
	PageNumberFontSize = 9.0
	CaptionGapMM       = 5.0
)

// DecorationKind identifies a decoration.
type DecorationKind string

const (
	HeaderKind     DecorationKind = "header"
	FooterKind     DecorationKind = "footer"
	CaptionKind    DecorationKind = "caption"
	PageNumberKind DecorationKind = "page_number"
)

// Align tells the document writer which end of the text sits on the anchor.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Decorations is the caller's choice of page text.
type Decorations struct {
	Header      string `json:"header,omitempty" yaml:"header"`
	Footer      string `json:"footer,omitempty" yaml:"footer"`
	Caption     string `json:"caption,omitempty" yaml:"caption"`
	PageNumbers bool   `json:"page_numbers" yaml:"page_numbers"`
}

// Decoration is a piece of text anchored on the page. X and Y are the text
// baseline anchor in millimetres from the page's top-left corner.
type Decoration struct {
	Kind     DecorationKind `json:"kind"`
	Text     string         `json:"text"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	FontSize float64        `json:"font_size"`
	Align    Align          `json:"align"`
}

// PageNumberText formats the page-number decoration for 1-based page n of total.
func PageNumberText(n, total int) string {
	return fmt.Sprintf("Page %d of %d", n, total)
}

// firstPass builds the decorations that do not depend on the page count.
func firstPass(d Decorations, s Spec) []Decoration {
	var out []Decoration

	if d.Header != "" {
		out = append(out, Decoration{
			Kind: HeaderKind, Text: d.Header,
			X: s.Margins.Left, Y: s.Margins.Top / 2,
			FontSize: HeaderFontSize, Align: AlignLeft,
		})
	}
	if d.Caption != "" {
		out = append(out, Decoration{
			Kind: CaptionKind, Text: d.Caption,
			X: s.Drawable.X, Y: s.Image.Placement.Bottom() + CaptionGapMM,
			FontSize: CaptionFontSize, Align: AlignLeft,
		})
	}
	if d.Footer != "" {
		out = append(out, Decoration{
			Kind: FooterKind, Text: d.Footer,
			X: s.Margins.Left, Y: s.Size.Height - s.Margins.Bottom/2,
			FontSize: FooterFontSize, Align: AlignLeft,
		})
	}
	return out
}

// pageNumber builds the bottom-right page-number decoration for s.
func pageNumber(s Spec, n, total int) Decoration {
	return Decoration{
		Kind:     PageNumberKind,
		Text:     PageNumberText(n, total),
		X:        s.Size.Width - s.Margins.Right,
		Y:        s.Size.Height - s.Margins.Bottom/2,
		FontSize: PageNumberFontSize,
		Align:    AlignRight,
	}
}
