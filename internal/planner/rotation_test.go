package planner

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{720, 0},
		{-90, 270},
		{-360, 0},
		{450, 90},
		{45.5, 45.5},
		{-1e-20, 0},
	}

	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if got != tt.want || math.Signbit(got) {
			t.Errorf("NormalizeAngle(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlanRotation_NegativeFullTurnEncodesZero(t *testing.T) {
	plan, err := PlanRotation(geometry.Px(10, 10), -360)
	if err != nil {
		t.Fatalf("PlanRotation failed: %v", err)
	}
	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"angle":0,`) {
		t.Errorf("expected angle 0 in %s", data)
	}
}

func TestPlanRotation_ZeroIsExact(t *testing.T) {
	src := geometry.Px(400, 300)

	for _, angle := range []float64{0, 360, -360} {
		plan, err := PlanRotation(src, angle)
		if err != nil {
			t.Fatalf("PlanRotation(%v) failed: %v", angle, err)
		}
		if plan.Bounding != src {
			t.Errorf("angle %v: bounding %s, want %s", angle, plan.Bounding, src)
		}
		if !plan.Transform.IsIdentity() {
			t.Errorf("angle %v: transform %+v is not identity", angle, plan.Transform)
		}
		if plan.OriginX != 0 || plan.OriginY != 0 {
			t.Errorf("angle %v: origin (%v,%v), want (0,0)", angle, plan.OriginX, plan.OriginY)
		}
	}
}

func TestPlanRotation_QuarterTurnSwapsAxes(t *testing.T) {
	for _, src := range []geometry.Dimension{geometry.Px(400, 300), geometry.Px(300, 400), geometry.Px(1, 999)} {
		for _, angle := range []float64{90, 270, -90} {
			plan, err := PlanRotation(src, angle)
			if err != nil {
				t.Fatalf("PlanRotation failed: %v", err)
			}
			if math.Abs(plan.Bounding.Width-src.Height) > tolerance || math.Abs(plan.Bounding.Height-src.Width) > tolerance {
				t.Errorf("%s at %v: bounding %s, want swapped", src, angle, plan.Bounding)
			}
		}
	}
}

func TestPlanRotation_BoundingBox(t *testing.T) {
	plan, err := PlanRotation(geometry.Px(100, 100), 45)
	if err != nil {
		t.Fatalf("PlanRotation failed: %v", err)
	}

	want := 100 * math.Sqrt2
	if math.Abs(plan.Bounding.Width-want) > 1e-9 || math.Abs(plan.Bounding.Height-want) > 1e-9 {
		t.Errorf("bounding: got %s, want %.4f square", plan.Bounding, want)
	}

	// content is centered inside the enlarged canvas
	wantOrigin := (want - 100) / 2
	if math.Abs(plan.OriginX-wantOrigin) > 1e-9 || math.Abs(plan.OriginY-wantOrigin) > 1e-9 {
		t.Errorf("origin: got (%f,%f), want %f", plan.OriginX, plan.OriginY, wantOrigin)
	}
}

func TestPlanRotation_TransformMapsCenterToCenter(t *testing.T) {
	src := geometry.Px(640, 480)
	for _, angle := range []float64{30, 90, 135, 180, 200, 333} {
		plan, err := PlanRotation(src, angle)
		if err != nil {
			t.Fatalf("PlanRotation failed: %v", err)
		}

		x, y := plan.Transform.Apply(src.Width/2, src.Height/2)
		if math.Abs(x-plan.Bounding.Width/2) > 1e-9 || math.Abs(y-plan.Bounding.Height/2) > 1e-9 {
			t.Errorf("angle %v: center maps to (%f,%f), want (%f,%f)", angle, x, y,
				plan.Bounding.Width/2, plan.Bounding.Height/2)
		}

		// every corner stays inside the bounding box
		for _, c := range [][2]float64{{0, 0}, {src.Width, 0}, {0, src.Height}, {src.Width, src.Height}} {
			cx, cy := plan.Transform.Apply(c[0], c[1])
			if cx < -1e-9 || cy < -1e-9 || cx > plan.Bounding.Width+1e-9 || cy > plan.Bounding.Height+1e-9 {
				t.Errorf("angle %v: corner %v maps outside bounding box to (%f,%f)", angle, c, cx, cy)
			}
		}
	}
}

func TestPlanRotation_Degenerate(t *testing.T) {
	_, err := PlanRotation(geometry.Px(0, 10), 45)
	if !errors.Is(err, geometry.ErrDegenerateDimension) {
		t.Errorf("got %v, want ErrDegenerateDimension", err)
	}
}
