package imaging

import (
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

func planRotation(t *testing.T, w, h, angle float64) planner.RotationPlan {
	t.Helper()
	plan, err := planner.PlanRotation(geometry.Px(w, h), angle)
	if err != nil {
		t.Fatalf("PlanRotation failed: %v", err)
	}
	return plan
}

func TestRenderRotation_QuarterTurns(t *testing.T) {
	img := createPatternImage(40, 20)

	// Each case names where the red top-left quadrant ends up.
	tests := []struct {
		angle float64
		w, h  int
		redX  int
		redY  int
	}{
		{0, 40, 20, 0, 0},
		{90, 20, 40, 19, 0},
		{180, 40, 20, 39, 19},
		{270, 20, 40, 0, 39},
		{-90, 20, 40, 0, 39},
	}

	for _, tt := range tests {
		plan := planRotation(t, 40, 20, tt.angle)
		out := RenderRotation(img, plan, nil)

		b := out.Bounds()
		if b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("angle %g: expected %dx%d, got %dx%d", tt.angle, tt.w, tt.h, b.Dx(), b.Dy())
			continue
		}
		r, g, bl, _ := out.At(b.Min.X+tt.redX, b.Min.Y+tt.redY).RGBA()
		if r>>8 != 255 || g>>8 != 0 || bl>>8 != 0 {
			t.Errorf("angle %g: expected red at (%d,%d), got (%d,%d,%d)", tt.angle, tt.redX, tt.redY, r>>8, g>>8, bl>>8)
		}
	}
}

func TestRenderRotation_ArbitraryAngle(t *testing.T) {
	img := createInMemoryImage(40, 20, color.RGBA{0, 0, 255, 255})
	plan := planRotation(t, 40, 20, 45)

	out := RenderRotation(img, plan, color.White)

	w := int(math.Round(plan.Bounding.Width))
	h := int(math.Round(plan.Bounding.Height))
	if out.Bounds().Dx() != w || out.Bounds().Dy() != h {
		t.Fatalf("expected %dx%d, got %dx%d", w, h, out.Bounds().Dx(), out.Bounds().Dy())
	}

	// Corners are outside the rotated image and take the background.
	r, g, b, a := out.At(out.Bounds().Min.X, out.Bounds().Min.Y).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Errorf("expected white corner, got (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}

	// The center is covered by the image.
	cx, cy := out.Bounds().Min.X+w/2, out.Bounds().Min.Y+h/2
	r, g, b, _ = out.At(cx, cy).RGBA()
	if b>>8 < 200 || r>>8 > 50 || g>>8 > 50 {
		t.Errorf("expected blue center, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestRenderRotation_TransparentCorners(t *testing.T) {
	img := createInMemoryImage(40, 20, color.RGBA{0, 0, 255, 255})
	plan := planRotation(t, 40, 20, 30)

	out := RenderRotation(img, plan, nil)
	_, _, _, a := out.At(out.Bounds().Min.X, out.Bounds().Min.Y).RGBA()
	if a != 0 {
		t.Errorf("expected transparent corner, got alpha %d", a>>8)
	}
}

func TestRenderRotation_DoesNotModifyInput(t *testing.T) {
	img := createPatternImage(10, 6)
	before := img.At(0, 0)

	RenderRotation(img, planRotation(t, 10, 6, 90), color.Black)

	if img.At(0, 0) != before || img.Bounds().Dx() != 10 {
		t.Error("input image was modified")
	}
}
