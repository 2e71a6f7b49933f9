package export

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMapToPercent_FullCanvas(t *testing.T) {
	rect := MapToPercent(Position{X: 0, Y: 0}, Size{Width: CanvasWidth, Height: CanvasHeight})
	if !almostEqual(rect.Left, 0) || !almostEqual(rect.Top, 0) {
		t.Fatalf("expected origin at 0,0, got %v,%v", rect.Left, rect.Top)
	}
	if !almostEqual(rect.Width, 100) || !almostEqual(rect.Height, 100) {
		t.Fatalf("expected 100%% extents, got %v,%v", rect.Width, rect.Height)
	}
}

func TestMapToPercent_QuarterComponent(t *testing.T) {
	rect := MapToPercent(Position{X: 400, Y: 225}, Size{Width: 200, Height: 112.5})
	if !almostEqual(rect.Left, 50) || !almostEqual(rect.Top, 50) {
		t.Fatalf("expected 50%%,50%% origin, got %v,%v", rect.Left, rect.Top)
	}
	if !almostEqual(rect.Width, 25) || !almostEqual(rect.Height, 25) {
		t.Fatalf("expected 25%% extents, got %v,%v", rect.Width, rect.Height)
	}
}

func TestMapToPercent_StaysInsideCanvas(t *testing.T) {
	rect := MapToPercent(Position{X: 600, Y: 300}, Size{Width: 200, Height: 150})
	if rect.Left+rect.Width > 100+1e-9 {
		t.Fatalf("component overflows horizontally: %v + %v", rect.Left, rect.Width)
	}
	if rect.Top+rect.Height > 100+1e-9 {
		t.Fatalf("component overflows vertically: %v + %v", rect.Top, rect.Height)
	}
}

func TestMapToScale_AppliesOffsetAndScale(t *testing.T) {
	scale := ScaleSpec{Width: 10, Height: 4.8, OffsetY: 0.8}
	rect := MapToScale(Position{X: 400, Y: 0}, Size{Width: 400, Height: 225}, scale)

	if !almostEqual(rect.Left, 5) {
		t.Fatalf("expected left 5, got %v", rect.Left)
	}
	if !almostEqual(rect.Top, 0.8) {
		t.Fatalf("expected top 0.8 (offset only), got %v", rect.Top)
	}
	if !almostEqual(rect.Width, 5) {
		t.Fatalf("expected width 5, got %v", rect.Width)
	}
	if !almostEqual(rect.Height, 2.4) {
		t.Fatalf("expected height 2.4, got %v", rect.Height)
	}
}

func TestMapToScale_FullCanvasFillsUsableArea(t *testing.T) {
	scale := ScaleSpec{Width: 10, Height: 4.8, OffsetX: 0.5, OffsetY: 0.8}
	rect := MapToScale(Position{}, Size{Width: CanvasWidth, Height: CanvasHeight}, scale)

	if !almostEqual(rect.Left, 0.5) || !almostEqual(rect.Top, 0.8) {
		t.Fatalf("expected origin at offsets, got %v,%v", rect.Left, rect.Top)
	}
	if !almostEqual(rect.Width, 10) || !almostEqual(rect.Height, 4.8) {
		t.Fatalf("expected full usable area, got %v,%v", rect.Width, rect.Height)
	}
}
