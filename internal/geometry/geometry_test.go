package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		name string
		d    Dimension
		want float64
	}{
		{"landscape", Px(400, 300), 4.0 / 3.0},
		{"portrait", Px(300, 400), 0.75},
		{"square", Mm(50, 50), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AspectRatio(tt.d)
			if err != nil {
				t.Fatalf("AspectRatio failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AspectRatio(%s): got %f, want %f", tt.d, got, tt.want)
			}
		})
	}
}

func TestAspectRatio_Degenerate(t *testing.T) {
	for _, d := range []Dimension{Px(100, 0), Px(0, 100), Px(-5, 10)} {
		if _, err := AspectRatio(d); !errors.Is(err, ErrDegenerateDimension) {
			t.Errorf("AspectRatio(%s): got %v, want ErrDegenerateDimension", d, err)
		}
	}
}

func TestPixelsToMillimeters(t *testing.T) {
	// 96px is one inch
	if got := PixelsToMillimeters(96); got != 25.4 {
		t.Errorf("96px: got %f mm, want 25.4", got)
	}
	if got := ToPhysicalLength(300, 300); got != 25.4 {
		t.Errorf("300px at 300dpi: got %f mm, want 25.4", got)
	}
	if got := PixelsToMillimeters(0); got != 0 {
		t.Errorf("0px: got %f", got)
	}
}

func TestDimension_ToPhysical(t *testing.T) {
	got := Px(192, 96).ToPhysical()
	if got.Unit != Millimeter || got.Width != 50.8 || got.Height != 25.4 {
		t.Errorf("ToPhysical: got %s, want 50.8x25.4mm", got)
	}

	mm := Mm(10, 20)
	if mm.ToPhysical() != mm {
		t.Error("ToPhysical should leave millimetre dimensions unchanged")
	}
}

func TestCenterOffset(t *testing.T) {
	dx, dy := CenterOffset(Mm(170, 257), Mm(150, 257))
	if dx != 10 || dy != 0 {
		t.Errorf("got (%f,%f), want (10,0)", dx, dy)
	}

	// inner larger than outer yields negative offsets
	dx, dy = CenterOffset(Mm(100, 100), Mm(120, 140))
	if dx != -10 || dy != -20 {
		t.Errorf("got (%f,%f), want (-10,-20)", dx, dy)
	}
}

func TestRectangle_Validate(t *testing.T) {
	if err := (Rectangle{Width: 10, Height: 5}).Validate(); err != nil {
		t.Errorf("valid rectangle rejected: %v", err)
	}

	tests := []struct {
		name string
		r    Rectangle
	}{
		{"zero width", Rectangle{Width: 0, Height: 5}},
		{"zero height", Rectangle{Width: 5, Height: 0}},
		{"negative", Rectangle{Width: -1, Height: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); !errors.Is(err, ErrDegenerateDimension) {
				t.Errorf("got %v, want ErrDegenerateDimension", err)
			}
		})
	}
}

func TestRectangle_Edges(t *testing.T) {
	r := Rectangle{X: 20, Y: 30, Width: 170, Height: 257}
	if r.Right() != 190 || r.Bottom() != 287 {
		t.Errorf("edges: got right=%f bottom=%f", r.Right(), r.Bottom())
	}
	if r.Size().Width != 170 || r.Size().Height != 257 {
		t.Errorf("Size: got %s", r.Size())
	}
}

func TestAffine(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Fatal("Identity is not identity")
	}

	m := Translate(10, 20).Multiply(Translate(-10, -20))
	if !m.IsIdentity() {
		t.Errorf("translate round trip: got %+v", m)
	}

	x, y := RotateDegrees(90).Apply(1, 0)
	if math.Abs(x) > 1e-12 || math.Abs(y-1) > 1e-12 {
		t.Errorf("rotate 90 of (1,0): got (%f,%f), want (0,1)", x, y)
	}

	// translate applied after rotation
	x, y = Translate(5, 5).Multiply(Rotate(0, 1)).Apply(1, 2)
	if x != 6 || y != 7 {
		t.Errorf("composed: got (%f,%f), want (6,7)", x, y)
	}
}
