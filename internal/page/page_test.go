package page

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

// stubSource returns fixed dimensions per reference and records call order.
type stubSource struct {
	sizes map[ImageRef]geometry.Dimension
	calls []ImageRef
}

func (s *stubSource) Dimensions(_ context.Context, ref ImageRef) (geometry.Dimension, error) {
	s.calls = append(s.calls, ref)
	d, ok := s.sizes[ref]
	if !ok {
		return geometry.Dimension{}, errors.New("unsupported format")
	}
	return d, nil
}

func newStubSource() *stubSource {
	return &stubSource{sizes: map[ImageRef]geometry.Dimension{
		"a.png": geometry.Px(400, 300),
		"b.png": geometry.Px(300, 400),
		"c.png": geometry.Px(800, 800),
	}}
}

func TestDimension(t *testing.T) {
	tests := []struct {
		name        string
		size        string
		custom      geometry.Dimension
		orientation Orientation
		want        geometry.Dimension
	}{
		{"a4 portrait", "a4", geometry.Dimension{}, Portrait, geometry.Mm(210, 297)},
		{"a4 landscape", "A4", geometry.Dimension{}, Landscape, geometry.Mm(297, 210)},
		{"letter", "letter", geometry.Dimension{}, Portrait, geometry.Mm(216, 279)},
		{"custom landscape", "custom", geometry.Mm(100, 150), Landscape, geometry.Mm(150, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dimension(tt.size, tt.custom, tt.orientation)
			if err != nil {
				t.Fatalf("Dimension failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := Dimension("custom", geometry.Mm(0, 10), Portrait); !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("zero custom size: got %v", err)
	}
	if _, err := Dimension("a3", geometry.Dimension{}, Portrait); !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("unknown size: got %v", err)
	}
	if _, err := Dimension("a4", geometry.Dimension{}, Orientation("diagonal")); !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("unknown orientation: got %v", err)
	}
}

func TestMargins_Drawable(t *testing.T) {
	r, err := Uniform(20).Drawable(A4)
	if err != nil {
		t.Fatalf("Drawable failed: %v", err)
	}
	if r.X != 20 || r.Y != 20 || r.Width != 170 || r.Height != 257 {
		t.Errorf("drawable: got %+v, want 170x257 at (20,20)", r)
	}
}

func TestMargins_ExceedPage(t *testing.T) {
	tests := []struct {
		name string
		m    Margins
	}{
		{"top+bottom equals height", Margins{Top: 150, Bottom: 147}},
		{"top+bottom exceeds height", Margins{Top: 200, Bottom: 100}},
		{"left+right exceeds width", Margins{Left: 105, Right: 105}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.Drawable(A4); !errors.Is(err, ErrMarginExceedsPage) {
				t.Errorf("got %v, want ErrMarginExceedsPage", err)
			}
		})
	}
}

func TestMargins_Negative(t *testing.T) {
	for _, m := range []Margins{{Left: -1}, {Top: -0.5}, {Right: -10, Bottom: 5}} {
		_, err := m.Drawable(A4)
		if !errors.Is(err, ErrNegativeMargin) {
			t.Errorf("%+v: got %v, want ErrNegativeMargin", m, err)
		}
		if errors.Is(err, ErrMarginExceedsPage) {
			t.Errorf("%+v: negative margin reported as exceeding the page", m)
		}
	}
}

func TestNewComposer_RejectsBeforeDecoding(t *testing.T) {
	src := newStubSource()
	_, err := NewComposer(Layout{PageSize: A4, Margins: Margins{Top: 200, Bottom: 97}}, src)
	if !errors.Is(err, ErrMarginExceedsPage) {
		t.Fatalf("got %v, want ErrMarginExceedsPage", err)
	}
	if len(src.calls) != 0 {
		t.Errorf("source was called %d times", len(src.calls))
	}

	if _, err := NewComposer(Layout{PageSize: A4, Strategy: "zoom"}, src); !errors.Is(err, planner.ErrUnknownStrategy) {
		t.Errorf("got %v, want ErrUnknownStrategy", err)
	}
}

func TestCompose_EndToEnd(t *testing.T) {
	src := newStubSource()
	c, err := NewComposer(Layout{
		PageSize:    A4,
		Strategy:    planner.Contain,
		Decorations: Decorations{PageNumbers: true},
	}, src)
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	refs := []ImageRef{"a.png", "b.png", "c.png"}
	first, err := c.Compose(context.Background(), refs)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	pages := c.Finalize(first)

	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	if !reflect.DeepEqual(src.calls, refs) {
		t.Errorf("decode order: got %v, want %v", src.calls, refs)
	}

	for i, p := range pages {
		if p.Image.Ref != refs[i] || p.Index != i {
			t.Errorf("page %d: got ref %s index %d", i, p.Image.Ref, p.Index)
		}

		drawn := p.Image.Fit.Drawn
		touches := drawn.Width == p.Drawable.Width || drawn.Height == p.Drawable.Height
		if !touches || drawn.Width > p.Drawable.Width+1e-9 || drawn.Height > p.Drawable.Height+1e-9 {
			t.Errorf("page %d: drawn %s violates contain in %s", i, drawn, p.Drawable.Size())
		}
	}

	// 400x300 on 210x297 is width-limited
	if pages[0].Image.Placement.Width != 210 || pages[0].Image.Placement.X != 0 {
		t.Errorf("page 1 placement: got %+v", pages[0].Image.Placement)
	}
	wantH := 210 * 300.0 / 400.0
	if math.Abs(pages[0].Image.Placement.Height-wantH) > 1e-9 {
		t.Errorf("page 1 height: got %f, want %f", pages[0].Image.Placement.Height, wantH)
	}

	numbers := decorationsOf(pages[1], PageNumberKind)
	if len(numbers) != 1 || numbers[0].Text != "Page 2 of 3" {
		t.Errorf("page 2 number: got %+v", numbers)
	}
	if numbers[0].Align != AlignRight || numbers[0].X != 210 {
		t.Errorf("page number anchor: got %+v", numbers[0])
	}

	// first pass is untouched
	if len(decorationsOf(first[1], PageNumberKind)) != 0 {
		t.Error("Finalize modified first-pass pages")
	}
}

func TestCompose_Decorations(t *testing.T) {
	c, err := NewComposer(Layout{
		PageSize: A4,
		Margins:  Uniform(20),
		Decorations: Decorations{
			Header:  "Holiday",
			Footer:  "2024",
			Caption: "Beach",
		},
	}, newStubSource())
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	spec, err := c.PlanPage(0, "a.png", geometry.Px(400, 300))
	if err != nil {
		t.Fatalf("PlanPage failed: %v", err)
	}

	header := decorationsOf(spec, HeaderKind)
	if len(header) != 1 || header[0].X != 20 || header[0].Y != 10 || header[0].FontSize != HeaderFontSize {
		t.Errorf("header: got %+v", header)
	}

	footer := decorationsOf(spec, FooterKind)
	if len(footer) != 1 || footer[0].Y != 287 {
		t.Errorf("footer: got %+v", footer)
	}

	caption := decorationsOf(spec, CaptionKind)
	wantY := spec.Image.Placement.Bottom() + CaptionGapMM
	if len(caption) != 1 || caption[0].X != 20 || caption[0].Y != wantY {
		t.Errorf("caption: got %+v, want y=%f", caption, wantY)
	}

	if len(decorationsOf(spec, PageNumberKind)) != 0 {
		t.Error("page numbers should not be set without the option")
	}
}

func TestCompose_Rotation(t *testing.T) {
	c, err := NewComposer(Layout{PageSize: A4, Rotation: 90}, newStubSource())
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	spec, err := c.PlanPage(0, "a.png", geometry.Px(400, 300))
	if err != nil {
		t.Fatalf("PlanPage failed: %v", err)
	}

	b := spec.Image.Rotation.Bounding
	if b.Width != 300 || b.Height != 400 {
		t.Errorf("bounding: got %s, want 300x400", b)
	}
	// a 3:4 box on a 210x297 page is width-limited
	if spec.Image.Placement.Width != 210 {
		t.Errorf("placement: got %+v", spec.Image.Placement)
	}
}

func TestCompose_PartialOnFailure(t *testing.T) {
	src := newStubSource()
	c, err := NewComposer(Layout{PageSize: A4}, src)
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	pages, err := c.Compose(context.Background(), []ImageRef{"a.png", "broken.txt", "c.png"})
	if err == nil {
		t.Fatal("expected error for unknown image")
	}
	if len(pages) != 1 || pages[0].Image.Ref != "a.png" {
		t.Errorf("partial pages: got %+v", pages)
	}
	if len(src.calls) != 2 {
		t.Errorf("images after the failure should not be decoded, calls: %v", src.calls)
	}
}

func TestCompose_Canceled(t *testing.T) {
	c, err := NewComposer(Layout{PageSize: A4}, newStubSource())
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pages, err := c.Compose(ctx, []ImageRef{"a.png"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if len(pages) != 0 {
		t.Errorf("got %d pages", len(pages))
	}
}

func TestCompose_Deterministic(t *testing.T) {
	layout := Layout{
		PageSize:    Letter,
		Margins:     Uniform(12.5),
		Strategy:    planner.Cover,
		Rotation:    33,
		Decorations: Decorations{Header: "h", Caption: "c", PageNumbers: true},
	}
	refs := []ImageRef{"c.png", "a.png", "b.png"}

	run := func() []Spec {
		c, err := NewComposer(layout, newStubSource())
		if err != nil {
			t.Fatalf("NewComposer failed: %v", err)
		}
		pages, err := c.Compose(context.Background(), refs)
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		return c.Finalize(pages)
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("identical inputs produced different page specs")
	}
}

func TestMove(t *testing.T) {
	seq := []ImageRef{"a", "b", "c", "d"}

	tests := []struct {
		from, to int
		want     []ImageRef
	}{
		{0, 2, []ImageRef{"b", "c", "a", "d"}},
		{3, 0, []ImageRef{"d", "a", "b", "c"}},
		{1, 1, []ImageRef{"a", "b", "c", "d"}},
		{0, 3, []ImageRef{"b", "c", "d", "a"}},
	}

	for _, tt := range tests {
		got, err := Move(seq, tt.from, tt.to)
		if err != nil {
			t.Fatalf("Move(%d,%d) failed: %v", tt.from, tt.to, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Move(%d,%d): got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	if !reflect.DeepEqual(seq, []ImageRef{"a", "b", "c", "d"}) {
		t.Errorf("Move modified its input: %v", seq)
	}
	if _, err := Move(seq, 4, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got %v, want ErrIndexOutOfRange", err)
	}
	if _, err := Move(seq, 0, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got %v, want ErrIndexOutOfRange", err)
	}
}

func TestRemove(t *testing.T) {
	seq := []ImageRef{"a", "b", "c"}
	got, err := Remove(seq, 1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !reflect.DeepEqual(got, []ImageRef{"a", "c"}) {
		t.Errorf("got %v", got)
	}
	if !reflect.DeepEqual(seq, []ImageRef{"a", "b", "c"}) {
		t.Errorf("Remove modified its input: %v", seq)
	}
	if _, err := Remove(seq, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got %v, want ErrIndexOutOfRange", err)
	}
}

func decorationsOf(s Spec, kind DecorationKind) []Decoration {
	var out []Decoration
	for _, d := range s.Decorations {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
