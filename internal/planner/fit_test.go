package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"contain", Contain},
		{"fit", Contain},
		{"", Contain},
		{"Cover", Cover},
		{"fill", Cover},
		{" stretch ", Stretch},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if err != nil {
			t.Fatalf("ParseStrategy(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseStrategy("zoom"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("got %v, want ErrUnknownStrategy", err)
	}
}

var fitCases = []struct {
	drawable, content geometry.Dimension
}{
	{geometry.Mm(170, 257), geometry.Mm(105.83, 79.375)},
	{geometry.Mm(210, 297), geometry.Mm(79.375, 105.83)},
	{geometry.Mm(210, 297), geometry.Mm(211.67, 211.67)},
	{geometry.Mm(297, 210), geometry.Mm(10, 1000)},
	{geometry.Mm(100, 100), geometry.Mm(100, 100)},
}

func TestPlanFit_Contain(t *testing.T) {
	for _, tc := range fitCases {
		fit, err := PlanFit(tc.drawable, tc.content, Contain)
		if err != nil {
			t.Fatalf("PlanFit failed: %v", err)
		}

		touchesX := fit.Drawn.Width == tc.drawable.Width
		touchesY := fit.Drawn.Height == tc.drawable.Height
		if !touchesX && !touchesY {
			t.Errorf("%s in %s: drawn %s touches no edge pair", tc.content, tc.drawable, fit.Drawn)
		}
		if fit.OffsetX < -tolerance || fit.OffsetY < -tolerance {
			t.Errorf("%s in %s: negative margin (%f,%f)", tc.content, tc.drawable, fit.OffsetX, fit.OffsetY)
		}

		gotRatio := fit.Drawn.Width / fit.Drawn.Height
		wantRatio := tc.content.Width / tc.content.Height
		if math.Abs(gotRatio-wantRatio)/wantRatio > tolerance {
			t.Errorf("%s in %s: aspect ratio %f, want %f", tc.content, tc.drawable, gotRatio, wantRatio)
		}
	}
}

func TestPlanFit_Cover(t *testing.T) {
	for _, tc := range fitCases {
		fit, err := PlanFit(tc.drawable, tc.content, Cover)
		if err != nil {
			t.Fatalf("PlanFit failed: %v", err)
		}
		if fit.Drawn.Width < tc.drawable.Width-tolerance || fit.Drawn.Height < tc.drawable.Height-tolerance {
			t.Errorf("%s in %s: drawn %s does not cover", tc.content, tc.drawable, fit.Drawn)
		}
		if fit.OffsetX > tolerance || fit.OffsetY > tolerance {
			t.Errorf("%s in %s: cover offsets should be <= 0, got (%f,%f)", tc.content, tc.drawable, fit.OffsetX, fit.OffsetY)
		}
	}
}

func TestPlanFit_Stretch(t *testing.T) {
	for _, tc := range fitCases {
		fit, err := PlanFit(tc.drawable, tc.content, Stretch)
		if err != nil {
			t.Fatalf("PlanFit failed: %v", err)
		}
		if fit.Drawn != tc.drawable {
			t.Errorf("drawn: got %s, want %s", fit.Drawn, tc.drawable)
		}
		if fit.OffsetX != 0 || fit.OffsetY != 0 {
			t.Errorf("offset: got (%f,%f), want (0,0)", fit.OffsetX, fit.OffsetY)
		}
	}
}

func TestPlanFit_ContainCentersLetterbox(t *testing.T) {
	fit, err := PlanFit(geometry.Mm(200, 100), geometry.Mm(50, 50), Contain)
	if err != nil {
		t.Fatalf("PlanFit failed: %v", err)
	}
	if fit.Drawn.Width != 100 || fit.Drawn.Height != 100 {
		t.Errorf("drawn: got %s, want 100x100", fit.Drawn)
	}
	if fit.OffsetX != 50 || fit.OffsetY != 0 {
		t.Errorf("offset: got (%f,%f), want (50,0)", fit.OffsetX, fit.OffsetY)
	}
}

func TestPlanFit_Errors(t *testing.T) {
	if _, err := PlanFit(geometry.Mm(0, 100), geometry.Mm(10, 10), Contain); !errors.Is(err, geometry.ErrDegenerateDimension) {
		t.Errorf("zero drawable: got %v", err)
	}
	if _, err := PlanFit(geometry.Mm(100, 100), geometry.Mm(10, 0), Contain); !errors.Is(err, geometry.ErrDegenerateDimension) {
		t.Errorf("zero content: got %v", err)
	}
	if _, err := PlanFit(geometry.Mm(100, 100), geometry.Mm(10, 10), Strategy("zoom")); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("bad strategy: got %v", err)
	}
}
