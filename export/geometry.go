package export

// The logical canvas is the single source of truth for component
// geometry. Every renderer derives target coordinates from these two
// constants; none carries its own canvas size.
const (
	CanvasWidth  = 800.0
	CanvasHeight = 450.0
)

// Rect is a resolved rectangle in a target unit system.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// ScaleSpec describes an absolute-unit target drawing area: its usable
// width/height and the origin offset of that area within the target
// (e.g. slide content starting below a title band).
type ScaleSpec struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

// MapToPercent projects logical geometry into percentages of the canvas.
func MapToPercent(pos Position, size Size) Rect {
	return Rect{
		Left:   pos.X / CanvasWidth * 100,
		Top:    pos.Y / CanvasHeight * 100,
		Width:  size.Width / CanvasWidth * 100,
		Height: size.Height / CanvasHeight * 100,
	}
}

// MapToScale projects logical geometry into an absolute-unit target by
// multiplying the logical fraction by the usable area and adding the
// area's origin offset.
func MapToScale(pos Position, size Size, scale ScaleSpec) Rect {
	return Rect{
		Left:   scale.OffsetX + pos.X/CanvasWidth*scale.Width,
		Top:    scale.OffsetY + pos.Y/CanvasHeight*scale.Height,
		Width:  size.Width / CanvasWidth * scale.Width,
		Height: size.Height / CanvasHeight * scale.Height,
	}
}
